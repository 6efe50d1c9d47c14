package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDescriptor(t *testing.T, dir, category, filename, content string) {
	t.Helper()
	sub := filepath.Join(dir, category)
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, filename), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, "effects", "vignette.toml", `
name = "vignette"
summary = "Darkened corners"
filter = "vignette=PI/4"
`)
	writeDescriptor(t, dir, "transitions", "glitch.toml", `
name = "glitch"
filter = "xfade=transition=pixelize:duration=$duration"
`)
	writeDescriptor(t, dir, "animations", "bounce.toml", `
name = "bounce"
filter = "scale=w='iw*abs(sin(t))':h=-1"
`)

	s := NewEmptySet()
	n, err := s.Discover(dir, nil)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Discover() registered = %d, want 3", n)
	}
	if !s.HasEffect("vignette") || !s.HasTransition("glitch") || !s.HasAnimation("bounce") {
		t.Errorf("Discover() missing entries: effects=%v transitions=%v animations=%v",
			s.Effects.List(), s.Transitions.List(), s.Animations.List())
	}

	meta, ok := s.Effects.Meta("vignette")
	if !ok {
		t.Fatal("Meta(vignette) ok = false")
	}
	if meta["summary"] != "Darkened corners" {
		t.Errorf("Meta()[summary] = %v, want descriptor summary", meta["summary"])
	}
}

func TestDiscoverSkipsBadDescriptors(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, "effects", "good.toml", `
name = "good"
filter = "hue=s=0"
`)
	writeDescriptor(t, dir, "effects", "broken.toml", `this is not toml [`)
	writeDescriptor(t, dir, "effects", "nameless.toml", `
filter = "hue=s=0"
`)
	writeDescriptor(t, dir, "effects", "nofilter.toml", `
name = "nofilter"
`)
	writeDescriptor(t, dir, "effects", "notes.txt", `ignored`)

	s := NewEmptySet()
	n, err := s.Discover(dir, nil)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Discover() registered = %d, want 1", n)
	}
	if got := s.Effects.List(); len(got) != 1 || got[0] != "good" {
		t.Errorf("Effects.List() = %v, want [good]", got)
	}
}

func TestDiscoverMissingDirectory(t *testing.T) {
	s := NewEmptySet()
	if _, err := s.Discover(filepath.Join(t.TempDir(), "absent"), nil); err == nil {
		t.Error("Discover() on missing directory expected error, got nil")
	}
}

func TestDiscoverEmptyCategories(t *testing.T) {
	// A plugin root with no category subdirectories is valid and empty.
	s := NewEmptySet()
	n, err := s.Discover(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Discover() registered = %d, want 0", n)
	}
}

func TestTemplateApplierExpansion(t *testing.T) {
	impl := &templateApplier{
		filter:   "zoompan=s=${width}x${height}:d=$duration:k=$strength",
		defaults: map[string]string{"strength": "2"},
	}

	out, err := impl.Apply(Params{Width: 1080, Height: 1920, Duration: 4})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	want := "zoompan=s=1080x1920:d=4:k=2"
	if out != want {
		t.Errorf("Apply() = %q, want %q", out, want)
	}

	// Caller options win over defaults.
	out, err = impl.Apply(Params{Width: 1080, Height: 1920, Duration: 4, Options: map[string]any{"strength": 9}})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if want := "zoompan=s=1080x1920:d=4:k=9"; out != want {
		t.Errorf("Apply() = %q, want %q", out, want)
	}
}

func TestTemplateApplierUndefinedKey(t *testing.T) {
	impl := &templateApplier{filter: "gblur=sigma=$sigma"}
	if _, err := impl.Apply(Params{}); err == nil {
		t.Error("Apply() with undefined key expected error, got nil")
	}
}

func TestRequiredValidator(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, "effects", "strict.toml", `
name = "strict"
filter = "gblur=sigma=$sigma"
required = ["sigma"]
`)

	s := NewEmptySet()
	if _, err := s.Discover(dir, nil); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if err := s.Effects.Validate("strict", nil); err == nil {
		t.Error("Validate() without required option expected error, got nil")
	}
	if err := s.Effects.Validate("strict", map[string]any{"sigma": 4}); err != nil {
		t.Errorf("Validate() with required option = %v, want nil", err)
	}
}
