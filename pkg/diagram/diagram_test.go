package diagram

import (
	"strings"
	"testing"

	"github.com/reelkit/reelkit/pkg/spec"
)

func sampleSpec() *spec.Spec {
	return &spec.Spec{
		Version:  spec.Version,
		Canvas:   spec.Canvas{Width: 1080, Height: 1920, FPS: 30},
		Duration: 13,
		Tracks: []spec.Track{
			{
				Name: "video_0", Group: "video", Policy: "forbid",
				Clips: []spec.Clip{
					{Medium: "image", Source: "intro.png", Start: 0, Duration: 10, Effect: "ken-burns"},
				},
			},
			{
				Name: "music_0", Group: "music", Policy: "forbid", Volume: 1,
				Clips: []spec.Clip{
					{Medium: "music", Source: "bed.mp3", Start: 0, Unbounded: true},
				},
			},
		},
		Transitions: []spec.Transition{
			{Type: "fade", Start: 12, Duration: 1},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleSpec(), Options{})

	for _, want := range []string{
		"digraph composition",
		`"video_0"`,
		`"music_0"`,
		"1080x1920 @ 30fps",
		"fade",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}

	// Compact labels omit clip windows.
	if strings.Contains(dot, "intro.png") {
		t.Error("ToDOT() compact output should not list clip sources")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sampleSpec(), Options{Detailed: true})

	if !strings.Contains(dot, "intro.png") {
		t.Errorf("detailed ToDOT() missing clip source\n%s", dot)
	}
	if !strings.Contains(dot, "+ken-burns") {
		t.Errorf("detailed ToDOT() missing effect annotation\n%s", dot)
	}
	// Open-ended clips render with an open window.
	if !strings.Contains(dot, "...)") {
		t.Errorf("detailed ToDOT() missing open-ended window\n%s", dot)
	}
}

func TestToDOTSkipsEmptyGroups(t *testing.T) {
	s := sampleSpec()
	dot := ToDOT(s, Options{})
	if strings.Contains(dot, `label="voice"`) {
		t.Error("ToDOT() rendered a cluster for an empty group")
	}
}

func TestShorten(t *testing.T) {
	long := strings.Repeat("a", 100)
	got := shorten(long)
	if len(got) != 32 || !strings.HasSuffix(got, "...") {
		t.Errorf("shorten() = %q (len %d), want 32 chars ending in ...", got, len(got))
	}
	if shorten("short.png") != "short.png" {
		t.Error("shorten() should leave short names alone")
	}
}
