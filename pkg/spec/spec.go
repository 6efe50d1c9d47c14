// Package spec defines the immutable, serializable timeline specification
// emitted by a build.
//
// A Spec is plain data: a tree of maps, sequences, and scalars with both
// JSON and YAML representations. It is the contract between the authoring
// engine and external collaborators - renderers consume it, configuration
// providers store it, and AI agents generate it. The format is designed
// for round-trip fidelity: decode(encode(spec)) is structurally identical
// to spec.
//
// Once emitted, a Spec is never mutated by the engine; it is safe to share
// across goroutines without synchronization.
package spec

import "math"

// Version is the current spec format version.
const Version = "1.0"

// Spec is the frozen snapshot of a composition.
type Spec struct {
	Version     string         `json:"version" yaml:"version"`
	Canvas      Canvas         `json:"canvas" yaml:"canvas"`
	Duration    float64        `json:"duration" yaml:"duration"`
	Tracks      []Track        `json:"tracks" yaml:"tracks"`
	Transitions []Transition   `json:"transitions,omitempty" yaml:"transitions,omitempty"`
	Meta        map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Canvas holds output frame settings.
type Canvas struct {
	Width  int     `json:"width" yaml:"width"`
	Height int     `json:"height" yaml:"height"`
	FPS    float64 `json:"fps" yaml:"fps"`
}

// Track is one layer of same-group clips.
type Track struct {
	Name   string `json:"name" yaml:"name"`
	Group  string `json:"group" yaml:"group"`
	Policy string `json:"policy" yaml:"policy"`
	Clips  []Clip `json:"clips" yaml:"clips"`

	Z      int     `json:"z,omitempty" yaml:"z,omitempty"`
	Volume float64 `json:"volume,omitempty" yaml:"volume,omitempty"`
	Muted  bool    `json:"muted,omitempty" yaml:"muted,omitempty"`
}

// Clip is one timed media reference. End times are derived, not stored:
// Start + Duration, or open-ended when Unbounded is set.
type Clip struct {
	Medium    string  `json:"medium" yaml:"medium"`
	Source    string  `json:"source" yaml:"source"`
	Start     float64 `json:"start" yaml:"start"`
	Duration  float64 `json:"duration" yaml:"duration"`
	Unbounded bool    `json:"unbounded,omitempty" yaml:"unbounded,omitempty"`

	Volume  float64 `json:"volume,omitempty" yaml:"volume,omitempty"`
	FadeIn  float64 `json:"fade_in,omitempty" yaml:"fade_in,omitempty"`
	FadeOut float64 `json:"fade_out,omitempty" yaml:"fade_out,omitempty"`

	FontSize  int    `json:"font_size,omitempty" yaml:"font_size,omitempty"`
	FontColor string `json:"font_color,omitempty" yaml:"font_color,omitempty"`
	Position  string `json:"position,omitempty" yaml:"position,omitempty"`

	Effect       string         `json:"effect,omitempty" yaml:"effect,omitempty"`
	EffectParams map[string]any `json:"effect_params,omitempty" yaml:"effect_params,omitempty"`
	Animation    string         `json:"animation,omitempty" yaml:"animation,omitempty"`

	Meta map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// End returns the derived end time. Open-ended clips extend to +Inf.
func (c Clip) End() float64 {
	if c.Unbounded {
		return math.Inf(1)
	}
	return c.Start + c.Duration
}

// Transition is a global, track-independent blend marker.
type Transition struct {
	Type      string         `json:"type" yaml:"type"`
	Start     float64        `json:"start" yaml:"start"`
	Duration  float64        `json:"duration" yaml:"duration"`
	Direction string         `json:"direction,omitempty" yaml:"direction,omitempty"`
	Easing    string         `json:"easing,omitempty" yaml:"easing,omitempty"`
	Meta      map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// ClipCount returns the number of clips across all tracks.
func (s *Spec) ClipCount() int {
	n := 0
	for _, t := range s.Tracks {
		n += len(t.Clips)
	}
	return n
}

// TracksByGroup returns the tracks belonging to one placement group,
// preserving their order in the spec.
func (s *Spec) TracksByGroup(group string) []Track {
	var out []Track
	for _, t := range s.Tracks {
		if t.Group == group {
			out = append(out, t)
		}
	}
	return out
}
