package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reelkit/reelkit/pkg/errors"
)

// Format identifies a serialization encoding.
type Format string

// Supported encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath infers the encoding from a file extension.
// Unknown extensions default to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// =============================================================================
// Spec Serialization API
// =============================================================================

// Marshal encodes a spec to JSON bytes with stable two-space indentation.
func Marshal(s *Spec) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(s, &buf, FormatJSON); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalYAML encodes a spec to YAML bytes.
func MarshalYAML(s *Spec) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(s, &buf, FormatYAML); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a spec from JSON or YAML bytes, sniffing the format.
func Unmarshal(data []byte) (*Spec, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return Read(bytes.NewReader(data), FormatJSON)
	}
	return Read(bytes.NewReader(data), FormatYAML)
}

// Write encodes a spec to an io.Writer in the given format.
func Write(s *Spec, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode spec: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode spec: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode spec: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeUnsupported, "unknown spec format %q", format)
	}
	return nil
}

// Read decodes a spec from an io.Reader in the given format and checks
// the structural contract (version, known groups and mediums, derived
// timing fields in range).
func Read(r io.Reader, format Format) (*Spec, error) {
	var s Spec
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "decode spec")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "decode spec")
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown spec format %q", format)
	}
	if err := s.CheckStructure(); err != nil {
		return nil, err
	}
	return &s, nil
}

// WriteFile writes a spec to a file, inferring the format from the
// extension. The file is created with 0644 permissions.
func WriteFile(s *Spec, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(s, f, FormatForPath(path))
}

// ReadFile reads a spec file, inferring the format from the extension.
func ReadFile(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, FormatForPath(path))
}

// =============================================================================
// Structural Checks
// =============================================================================

// knownGroups and knownMediums mirror the timeline package's vocabulary.
// Kept as string sets here so the spec package stays a data-only leaf.
var (
	knownGroups  = map[string]bool{"video": true, "text": true, "voice": true, "music": true, "sfx": true}
	knownMediums = map[string]bool{"image": true, "video": true, "text": true, "voice": true, "music": true, "sfx": true}
)

// CheckStructure verifies the decoded tree is a well-formed spec: known
// version, valid canvas, known group and medium names, non-negative
// timing. It does not run composition-level validation (overlap policies,
// registry references); rebuild the spec through the timeline package for
// that.
func (s *Spec) CheckStructure() error {
	if s.Version == "" {
		return errors.New(errors.ErrCodeInvalidSpec, "missing spec version")
	}
	if s.Version != Version {
		return errors.New(errors.ErrCodeInvalidSpec, "unsupported spec version %q (want %s)", s.Version, Version)
	}
	if err := errors.ValidateCanvasSize(s.Canvas.Width, s.Canvas.Height); err != nil {
		return err
	}
	if err := errors.ValidateFrameRate(s.Canvas.FPS); err != nil {
		return err
	}

	for _, t := range s.Tracks {
		if t.Name == "" {
			return errors.New(errors.ErrCodeInvalidSpec, "track with empty name")
		}
		if !knownGroups[t.Group] {
			return errors.New(errors.ErrCodeInvalidSpec, "track %s: unknown group %q", t.Name, t.Group)
		}
		for _, c := range t.Clips {
			if !knownMediums[c.Medium] {
				return errors.New(errors.ErrCodeInvalidSpec, "track %s: unknown medium %q", t.Name, c.Medium)
			}
			if c.Source == "" {
				return errors.New(errors.ErrCodeInvalidSpec, "track %s: clip with empty source", t.Name)
			}
			if c.Start < 0 {
				return errors.New(errors.ErrCodeInvalidSpec, "track %s: clip %q starts at %g", t.Name, c.Source, c.Start)
			}
			if !c.Unbounded && c.Duration < 0 {
				return errors.New(errors.ErrCodeInvalidSpec, "track %s: clip %q has negative duration", t.Name, c.Source)
			}
		}
	}

	for _, tr := range s.Transitions {
		if tr.Type == "" {
			return errors.New(errors.ErrCodeInvalidSpec, "transition with empty type")
		}
		if tr.Start < 0 || tr.Duration <= 0 {
			return errors.New(errors.ErrCodeInvalidSpec, "transition %q has invalid window [%g, %g)", tr.Type, tr.Start, tr.Start+tr.Duration)
		}
	}

	return nil
}
