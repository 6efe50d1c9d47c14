package timeline

import (
	"fmt"
	"math"
)

// Metadata stores arbitrary key-value pairs attached to clips, transitions,
// or the timeline itself. Maps are never nil after construction.
type Metadata map[string]any

// Attributes holds medium-specific clip settings. Fields that do not apply
// to a clip's medium are left at their zero values and omitted from
// serialized specs.
type Attributes struct {
	// Audio
	Volume  float64 // gain multiplier, 1.0 = unity
	FadeIn  float64 // seconds
	FadeOut float64 // seconds

	// Text
	FontSize  int
	FontColor string
	Position  string // e.g. "center", "bottom", "top-left"

	// Visual decoration, keyed into the effect/animation registries
	Effect       string
	EffectParams Metadata
	Animation    string

	// Free-form extension data, preserved through serialization
	Meta Metadata
}

// Clip is an immutable timed reference to one piece of media. Clips are
// created by builder add-calls and owned by exactly one track; an "edit"
// replaces the clip in place rather than mutating it.
//
// A clip is either bounded (Duration > 0, or 0 for sfx markers) or
// open-ended (Unbounded set, Duration ignored). End time is always derived,
// never stored.
type Clip struct {
	Medium    Medium
	Source    string
	Start     float64 // seconds from composition origin
	Duration  float64 // seconds; meaningful only when !Unbounded
	Unbounded bool
	Attrs     Attributes
}

// End returns the derived end time. Open-ended clips extend to +Inf.
func (c Clip) End() float64 {
	if c.Unbounded {
		return math.Inf(1)
	}
	return c.Start + c.Duration
}

// Overlaps reports whether the half-open intervals [c.Start, c.End()) and
// [o.Start, o.End()) intersect. A clip ending exactly when another starts
// does not overlap it.
func (c Clip) Overlaps(o Clip) bool {
	return c.Start < o.End() && o.Start < c.End()
}

// Window returns the clip's interval formatted for error messages,
// e.g. "[2.00, 7.00)" or "[2.00, +inf)".
func (c Clip) Window() string {
	if c.Unbounded {
		return fmt.Sprintf("[%.2f, +inf)", c.Start)
	}
	return fmt.Sprintf("[%.2f, %.2f)", c.Start, c.End())
}
