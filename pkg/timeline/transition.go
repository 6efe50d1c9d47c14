package timeline

// Transition is a global, track-independent marker describing a blend
// between adjacent content. Transitions live in one flat list and may
// legitimately overlap each other (a cross-fade and a simultaneous
// color-fade, for example).
type Transition struct {
	Type      string  // registry key, e.g. "fade", "slide-left"
	Start     float64 // seconds from composition origin
	Duration  float64 // seconds, always > 0
	Direction string  // optional, e.g. "left", "up"
	Easing    string  // optional, e.g. "linear", "ease-in-out"
	Meta      Metadata
}

// End returns the derived end time of the transition window.
func (t Transition) End() float64 {
	return t.Start + t.Duration
}
