package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	return path
}

func TestStatic(t *testing.T) {
	p := NewStatic(map[string]any{"defaults.duration": 5.0})

	if got := p.Get("defaults.duration", 0.0); got != 5.0 {
		t.Errorf("Get() = %v, want 5.0", got)
	}
	if got := p.Get("defaults.fps", 30.0); got != 30.0 {
		t.Errorf("Get() unset key = %v, want default 30.0", got)
	}
}

func TestFileProvider(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "reelkit.toml", `
[defaults]
duration = 5.0
font_color = "yellow"

[defaults.nested]
depth = 2
`)

	p, err := NewFileProvider(path)
	if err != nil {
		t.Fatalf("NewFileProvider error: %v", err)
	}

	if got := p.Get("defaults.duration", 0.0); got != 5.0 {
		t.Errorf("Get(defaults.duration) = %v, want 5.0", got)
	}
	if got := p.Get("defaults.font_color", ""); got != "yellow" {
		t.Errorf("Get(defaults.font_color) = %v, want yellow", got)
	}
	if got := p.Get("defaults.nested.depth", int64(0)); got != int64(2) {
		t.Errorf("Get(defaults.nested.depth) = %v, want 2", got)
	}
	if got := p.Get("absent", "fallback"); got != "fallback" {
		t.Errorf("Get(absent) = %v, want fallback", got)
	}
}

func TestFileProviderMissingFile(t *testing.T) {
	p, err := NewFileProvider(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("NewFileProvider on missing file error: %v", err)
	}
	if got := p.Get("anything", "def"); got != "def" {
		t.Errorf("Get() on empty provider = %v, want def", got)
	}
}

func TestFileProviderMalformed(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "bad.toml", "not [ valid")
	if _, err := NewFileProvider(path); err == nil {
		t.Error("NewFileProvider on malformed file expected error, got nil")
	}
}

func TestFileProviderRefresh(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "reelkit.toml", "[defaults]\nduration = 5.0\n")

	p, err := NewFileProvider(path)
	if err != nil {
		t.Fatalf("NewFileProvider error: %v", err)
	}
	if got := p.Get("defaults.duration", 0.0); got != 5.0 {
		t.Fatalf("Get() = %v, want 5.0", got)
	}

	writeConfig(t, dir, "reelkit.toml", "[defaults]\nduration = 8.0\n")

	// Values are stable until an explicit refresh.
	if got := p.Get("defaults.duration", 0.0); got != 5.0 {
		t.Errorf("Get() before Refresh = %v, want stale 5.0", got)
	}
	if err := p.Refresh(); err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if got := p.Get("defaults.duration", 0.0); got != 8.0 {
		t.Errorf("Get() after Refresh = %v, want 8.0", got)
	}
}

func TestLayeredPrecedence(t *testing.T) {
	system := NewStatic(map[string]any{
		"defaults.duration": 3.0,
		"defaults.fps":      30.0,
	})
	user := NewStatic(map[string]any{
		"defaults.duration": 5.0,
	})
	project := NewStatic(map[string]any{
		"defaults.font_color": "red",
	})

	l := NewLayered(system, user, project)

	// Later layers win.
	if got := l.Get("defaults.duration", 0.0); got != 5.0 {
		t.Errorf("Get(defaults.duration) = %v, want user layer 5.0", got)
	}
	// Untouched keys fall through to lower layers.
	if got := l.Get("defaults.fps", 0.0); got != 30.0 {
		t.Errorf("Get(defaults.fps) = %v, want system layer 30.0", got)
	}
	if got := l.Get("defaults.font_color", ""); got != "red" {
		t.Errorf("Get(defaults.font_color) = %v, want project layer red", got)
	}
	// Fully unset keys return the call-site default.
	if got := l.Get("defaults.position", "center"); got != "center" {
		t.Errorf("Get(defaults.position) = %v, want center", got)
	}
}

func TestStandardCascade(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "reelkit.toml", "[defaults]\nduration = 7.0\n")

	l, err := Standard(dir)
	if err != nil {
		t.Fatalf("Standard error: %v", err)
	}
	if got := l.Get("defaults.duration", 0.0); got != 7.0 {
		t.Errorf("Get() = %v, want project value 7.0", got)
	}
}
