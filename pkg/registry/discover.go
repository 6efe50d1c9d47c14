package registry

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/reelkit/reelkit/pkg/errors"
	"github.com/reelkit/reelkit/pkg/observability"
)

// Descriptor is the on-disk shape of a data-driven plugin. One TOML file
// per implementation, filed under the subdirectory of its category:
//
//	<dir>/effects/vignette.toml
//	<dir>/transitions/glitch.toml
//	<dir>/animations/bounce.toml
//
// The filter string is expanded at apply time: $width, $height, $fps,
// $duration and $source come from the placement, any other $key resolves
// from defaults merged with the caller's options.
type Descriptor struct {
	Name     string            `toml:"name"`
	Summary  string            `toml:"summary"`
	Filter   string            `toml:"filter"`
	Required []string          `toml:"required"`
	Defaults map[string]string `toml:"defaults"`
}

func (d *Descriptor) validate() error {
	if err := errors.ValidateRegistryName(d.Name); err != nil {
		return err
	}
	if strings.TrimSpace(d.Filter) == "" {
		return errors.New(errors.ErrCodeInvalidDescriptor, "descriptor %q: filter must not be empty", d.Name)
	}
	return nil
}

// templateApplier renders a descriptor's filter template against the
// placement parameters.
type templateApplier struct {
	filter   string
	defaults map[string]string
}

// Apply implements Applier.
func (t *templateApplier) Apply(p Params) (string, error) {
	var missing []string
	out := os.Expand(t.filter, func(key string) string {
		switch key {
		case "width":
			return fmt.Sprint(p.Width)
		case "height":
			return fmt.Sprint(p.Height)
		case "fps":
			return fmt.Sprint(p.FPS)
		case "duration":
			return fmt.Sprint(p.Duration)
		case "source":
			return p.Source
		}
		if v, ok := p.Options[key]; ok {
			return fmt.Sprint(v)
		}
		if v, ok := t.defaults[key]; ok {
			return v
		}
		missing = append(missing, key)
		return ""
	})
	if len(missing) > 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "filter references undefined keys: %s", strings.Join(missing, ", "))
	}
	return out, nil
}

// requiredValidator rejects configs that omit a required option and have
// no default covering it.
func requiredValidator(required []string, defaults map[string]string) Validator {
	return func(config map[string]any) error {
		for _, key := range required {
			if _, ok := config[key]; ok {
				continue
			}
			if _, ok := defaults[key]; ok {
				continue
			}
			return errors.New(errors.ErrCodeInvalidInput, "missing required option %q", key)
		}
		return nil
	}
}

// Discover scans dir for TOML descriptors and registers every valid one
// in its category's registry. The scan never fails as a whole because a
// single file is malformed: bad descriptors are logged as warnings and
// skipped. Missing category subdirectories are fine. Returns the number
// of descriptors registered.
func (s *Set) Discover(dir string, logger *log.Logger) (int, error) {
	if logger == nil {
		logger = log.Default()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeNotFound, err, "plugin directory %q", dir)
	}
	if !info.IsDir() {
		return 0, errors.New(errors.ErrCodeInvalidInput, "plugin path %q is not a directory", dir)
	}

	observability.Discovery().OnScanStart(dir)

	total := 0
	for _, category := range []struct {
		name string
		reg  *Registry
	}{
		{"effects", s.Effects},
		{"transitions", s.Transitions},
		{"animations", s.Animations},
	} {
		sub := filepath.Join(dir, category.name)
		n, err := discoverCategory(sub, category.reg, logger)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func discoverCategory(dir string, reg *Registry, logger *log.Logger) (int, error) {
	dirents, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "reading plugin directory %q", dir)
	}

	count := 0
	for _, de := range dirents {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".toml") {
			continue
		}
		path := filepath.Join(dir, de.Name())
		name, err := loadDescriptor(path, reg)
		if err != nil {
			logger.Warn("skipping plugin descriptor", "path", path, "error", err)
			observability.Discovery().OnDescriptorFailed(path, err)
			continue
		}
		observability.Discovery().OnDescriptorLoaded(reg.Category(), name)
		count++
	}
	return count, nil
}

func loadDescriptor(path string, reg *Registry) (string, error) {
	if err := errors.ValidateDescriptorFilename(filepath.Base(path)); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "reading descriptor")
	}
	var d Descriptor
	if err := toml.Unmarshal(data, &d); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidDescriptor, err, "parsing descriptor")
	}
	if err := d.validate(); err != nil {
		return "", err
	}

	impl := &templateApplier{filter: d.Filter, defaults: maps.Clone(d.Defaults)}
	opts := []RegisterOption{
		WithMetadata(map[string]any{"summary": d.Summary, "source": path}),
	}
	if len(d.Required) > 0 {
		opts = append(opts, WithValidator(requiredValidator(d.Required, d.Defaults)))
	}
	if err := reg.Register(d.Name, impl, opts...); err != nil {
		return "", err
	}
	return d.Name, nil
}
