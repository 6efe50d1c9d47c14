package timeline

import (
	"reflect"
	"testing"

	"github.com/reelkit/reelkit/pkg/errors"
	"github.com/reelkit/reelkit/pkg/spec"
)

func buildSample(t *testing.T) *spec.Spec {
	t.Helper()
	s, err := NewBuilder().
		SetSize(1280, 720).
		SetFPS(24).
		AddImage("a.png", WithDuration(10), WithEffect("zoom-in", nil)).
		AddText("caption", WithDuration(3), WithFontColor("yellow")).
		AddVoiceAt("v.mp3", 1, WithDuration(8), WithVolume(0.9)).
		AddMusic("bed.mp3").
		AddTransition("fade", 1).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return s
}

func TestFromSpecRoundTrip(t *testing.T) {
	s1 := buildSample(t)

	b, err := FromSpec(s1)
	if err != nil {
		t.Fatalf("FromSpec() error = %v", err)
	}
	s2, err := b.Build()
	if err != nil {
		t.Fatalf("rebuild error = %v", err)
	}

	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("round trip changed the spec\nfirst:  %+v\nsecond: %+v", s1, s2)
	}
}

func TestFromSpecRestoresCursors(t *testing.T) {
	s, err := NewBuilder().AddImage("a.png", WithDuration(10)).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	b, err := FromSpec(s)
	if err != nil {
		t.Fatalf("FromSpec() error = %v", err)
	}
	if got := b.Cursor(GroupVideo); got != 10 {
		t.Errorf("restored video cursor = %g, want 10", got)
	}

	// Sequential adds continue after the restored content.
	b.AddImage("b.png", WithDuration(5))
	clips := b.Timeline().Tracks(GroupVideo)[0].Clips
	if last := clips[len(clips)-1]; last.Start != 10 {
		t.Errorf("appended clip start = %g, want 10", last.Start)
	}
}

func TestFromSpecPreservesTrackIdentity(t *testing.T) {
	s1 := buildSample(t)
	b, err := FromSpec(s1)
	if err != nil {
		t.Fatalf("FromSpec() error = %v", err)
	}

	for _, want := range s1.Tracks {
		got, ok := b.Timeline().Track(Group(want.Group), want.Name)
		if !ok {
			t.Fatalf("track %q missing after FromSpec", want.Name)
		}
		if len(got.Clips) != len(want.Clips) {
			t.Errorf("track %q clips = %d, want %d", want.Name, len(got.Clips), len(want.Clips))
		}
		if got.Z != want.Z {
			t.Errorf("track %q Z = %d, want %d", want.Name, got.Z, want.Z)
		}
	}
}

func TestFromSpecRejectsBadSpecs(t *testing.T) {
	base := func() *spec.Spec {
		return &spec.Spec{
			Version: spec.Version,
			Canvas:  spec.Canvas{Width: 1080, Height: 1920, FPS: 30},
		}
	}

	tests := []struct {
		name   string
		mutate func(*spec.Spec)
	}{
		{
			"unknown group",
			func(s *spec.Spec) {
				s.Tracks = []spec.Track{{Name: "hologram_0", Group: "hologram", Policy: "forbid"}}
			},
		},
		{
			"duplicate track names",
			func(s *spec.Spec) {
				s.Tracks = []spec.Track{
					{Name: "video_0", Group: "video", Policy: "forbid"},
					{Name: "video_0", Group: "video", Policy: "forbid"},
				}
			},
		},
		{
			"medium outside track group",
			func(s *spec.Spec) {
				s.Tracks = []spec.Track{{
					Name: "video_0", Group: "video", Policy: "forbid",
					Clips: []spec.Clip{{Medium: "music", Source: "m.mp3", Start: 0, Duration: 5}},
				}}
			},
		},
		{
			"version mismatch",
			func(s *spec.Spec) { s.Version = "99.0" },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base()
			tt.mutate(s)
			if _, err := FromSpec(s); err == nil {
				t.Error("FromSpec() expected error, got nil")
			}
		})
	}
}

func TestBuildEmitsVersion(t *testing.T) {
	s, err := NewBuilder().AddImage("a.png", WithDuration(1)).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if s.Version != spec.Version {
		t.Errorf("spec version = %q, want %q", s.Version, spec.Version)
	}
}

func TestBuildObservesValidationToggle(t *testing.T) {
	b := NewBuilder().
		AddImageAt("a.png", 0, WithDuration(10)).
		AddImageAt("b.png", 0, WithDuration(10), OnTrack("video_0"))

	if _, err := b.Build(); !errors.Is(err, errors.ErrCodeOverlapConflict) {
		t.Fatalf("validated Build() error = %v, want overlap conflict", err)
	}

	b.DisableValidation()
	if _, err := b.Build(); err != nil {
		t.Errorf("unvalidated Build() error = %v, want nil", err)
	}
}
