package timeline

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/reelkit/reelkit/pkg/errors"
)

// Canvas holds output frame settings. The renderer consumes these verbatim.
type Canvas struct {
	Width  int
	Height int
	FPS    float64
}

// Default canvas settings for short-form portrait output.
const (
	DefaultWidth  = 1080
	DefaultHeight = 1920
	DefaultFPS    = 30.0
)

// TypeResolver answers whether a registry-keyed type exists. Validated
// builds use it to fail fast on dangling effect, transition, and animation
// references instead of deferring to the renderer.
type TypeResolver interface {
	HasEffect(name string) bool
	HasTransition(name string) bool
	HasAnimation(name string) bool
}

// Timeline is the canonical mutable composition state: per-group track
// lists, the global transition list, and canvas settings. It stays mutable
// until a build projects it into an immutable spec snapshot.
//
// Timeline is not safe for concurrent use without external synchronization.
type Timeline struct {
	canvas      Canvas
	tracks      map[Group][]*Track // creation order per group
	transitions []Transition
	meta        Metadata
}

// New creates an empty timeline with default canvas settings.
func New() *Timeline {
	return &Timeline{
		canvas: Canvas{Width: DefaultWidth, Height: DefaultHeight, FPS: DefaultFPS},
		tracks: make(map[Group][]*Track),
		meta:   Metadata{},
	}
}

// Canvas returns the current canvas settings.
func (t *Timeline) Canvas() Canvas { return t.canvas }

// SetCanvas replaces the canvas settings.
func (t *Timeline) SetCanvas(c Canvas) { t.canvas = c }

// Meta returns the timeline-level metadata map.
func (t *Timeline) Meta() Metadata { return t.meta }

// Tracks returns the track list for a group in creation order.
// The returned slice is shared; callers must not reorder it.
func (t *Timeline) Tracks(g Group) []*Track { return t.tracks[g] }

// AllTracks returns every track in group order, then creation order.
func (t *Timeline) AllTracks() []*Track {
	var out []*Track
	for _, g := range Groups() {
		out = append(out, t.tracks[g]...)
	}
	return out
}

// Track looks up a track by group and name.
func (t *Timeline) Track(g Group, name string) (*Track, bool) {
	for _, tr := range t.tracks[g] {
		if tr.Name == name {
			return tr, true
		}
	}
	return nil, false
}

// TrackCount returns the number of tracks across all groups.
func (t *Timeline) TrackCount() int {
	n := 0
	for _, g := range Groups() {
		n += len(t.tracks[g])
	}
	return n
}

// ClipCount returns the number of clips across all tracks.
func (t *Timeline) ClipCount() int {
	n := 0
	for _, tr := range t.AllTracks() {
		n += len(tr.Clips)
	}
	return n
}

// Transitions returns the transition list sorted by start time.
func (t *Timeline) Transitions() []Transition {
	out := slices.Clone(t.transitions)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// AddTransition appends a transition to the flat global list.
func (t *Timeline) AddTransition(tr Transition) {
	t.transitions = append(t.transitions, tr)
}

// TotalDuration returns the maximum finite end time across all clips.
// Open-ended clips do not contribute; an all-unbounded composition has
// total duration zero until a bounded clip anchors it.
func (t *Timeline) TotalDuration() float64 {
	total := 0.0
	for _, tr := range t.AllTracks() {
		for _, c := range tr.Clips {
			if end := c.End(); !math.IsInf(end, 1) && end > total {
				total = end
			}
		}
	}
	return total
}

// newTrack creates and registers the next track for a group. Names are
// deterministic: "<group>_<index>" by creation order. Visual tracks stack
// by creation index; audio tracks start at unity gain.
func (t *Timeline) newTrack(g Group, policy OverlapPolicy) *Track {
	tr := &Track{
		Name:   fmt.Sprintf("%s_%d", g, len(t.tracks[g])),
		Group:  g,
		Policy: policy,
	}
	if g.IsVisual() {
		tr.Z = len(t.tracks[g])
	}
	if g.IsAudio() {
		tr.Volume = 1.0
	}
	t.tracks[g] = append(t.tracks[g], tr)
	return tr
}

// Place appends a clip to the first track in its group that can host it
// without violating the track's overlap policy, creating a new track when
// none qualifies. The K-th simultaneous clip on a group therefore lands on
// the K-th layer automatically. Returns the hosting track.
func (t *Timeline) Place(c Clip, policy OverlapPolicy) *Track {
	g := c.Medium.Group()
	for _, tr := range t.tracks[g] {
		if tr.CanHost(c) {
			tr.Append(c)
			return tr
		}
	}
	tr := t.newTrack(g, policy)
	tr.Append(c)
	return tr
}

// PlaceOn appends a clip to a specific named track, bypassing allocation.
// The clip is appended even if it overlaps existing content on a forbid
// track; a validated build reports the conflict.
func (t *Timeline) PlaceOn(name string, c Clip) (*Track, error) {
	g := c.Medium.Group()
	tr, ok := t.Track(g, name)
	if !ok {
		return nil, errors.New(errors.ErrCodeTrackNotFound, "no %s track named %q", g, name)
	}
	tr.Append(c)
	return tr, nil
}

// Reset discards all tracks and transitions, returning the timeline to its
// initial empty state. Canvas settings and metadata are preserved.
func (t *Timeline) Reset() {
	t.tracks = make(map[Group][]*Track)
	t.transitions = nil
}

// Validate checks cross-entity consistency:
//
//  1. Every transition window lies within [0, total duration].
//  2. Every registry-keyed type reference resolves (when res is non-nil).
//  3. Every forbid-policy track is free of overlapping clips.
//
// It returns the first violation found, carrying the offending identifiers.
func (t *Timeline) Validate(res TypeResolver) error {
	total := t.TotalDuration()

	for _, tr := range t.transitions {
		if tr.Start < 0 || tr.End() > total {
			return errors.New(errors.ErrCodeInvalidTiming,
				"transition %q window [%.2f, %.2f) outside composition [0, %.2f]",
				tr.Type, tr.Start, tr.End(), total)
		}
	}

	if res != nil {
		if err := t.validateReferences(res); err != nil {
			return err
		}
	}

	for _, tr := range t.AllTracks() {
		if a, b, ok := tr.conflict(); ok {
			return errors.New(errors.ErrCodeOverlapConflict,
				"track %s forbids overlap but %s %s overlaps %s %s",
				tr.Name, a.Medium, a.Window(), b.Medium, b.Window())
		}
	}

	return nil
}

func (t *Timeline) validateReferences(res TypeResolver) error {
	for _, tr := range t.AllTracks() {
		for _, c := range tr.Clips {
			if c.Attrs.Effect != "" && !res.HasEffect(c.Attrs.Effect) {
				return errors.New(errors.ErrCodeEffectNotFound,
					"clip %q on track %s references unknown effect %q", c.Source, tr.Name, c.Attrs.Effect)
			}
			if c.Attrs.Animation != "" && !res.HasAnimation(c.Attrs.Animation) {
				return errors.New(errors.ErrCodeAnimationNotFound,
					"clip %q on track %s references unknown animation %q", c.Source, tr.Name, c.Attrs.Animation)
			}
		}
	}
	for _, tr := range t.transitions {
		if !res.HasTransition(tr.Type) {
			return errors.New(errors.ErrCodeTransitionNotFound,
				"transition at %.2f references unknown type %q", tr.Start, tr.Type)
		}
	}
	return nil
}
