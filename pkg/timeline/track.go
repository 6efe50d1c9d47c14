package timeline

import (
	"github.com/reelkit/reelkit/pkg/errors"
)

// OverlapPolicy controls whether a track tolerates temporally overlapping
// clips. The allocator never places overlapping clips on a forbid track,
// but explicit track pinning can; validated builds report the conflict.
type OverlapPolicy string

// Overlap policies.
const (
	OverlapForbid OverlapPolicy = "forbid"
	OverlapAllow  OverlapPolicy = "allow"
)

// Valid reports whether p is a supported policy.
func (p OverlapPolicy) Valid() bool {
	return p == OverlapForbid || p == OverlapAllow
}

// Track is an ordered container of same-group clips. Clips are kept in
// creation order, which is not necessarily time order. Tracks are created
// lazily by the allocator and named "<group>_<index>".
type Track struct {
	Name   string
	Group  Group
	Policy OverlapPolicy
	Clips  []Clip

	// Visual tracks only: stacking order, higher draws on top.
	Z int

	// Audio tracks only.
	Volume float64
	Muted  bool
}

// CanHost reports whether c can be placed on the track without violating
// its overlap policy. Allow tracks accept anything.
func (t *Track) CanHost(c Clip) bool {
	if t.Policy == OverlapAllow {
		return true
	}
	for _, existing := range t.Clips {
		if existing.Overlaps(c) {
			return false
		}
	}
	return true
}

// Append adds a clip to the track in creation order.
func (t *Track) Append(c Clip) {
	t.Clips = append(t.Clips, c)
}

// Replace swaps the clip at index i for c. This is the only way to "edit"
// a clip: clips themselves are immutable values.
func (t *Track) Replace(i int, c Clip) error {
	if i < 0 || i >= len(t.Clips) {
		return errors.New(errors.ErrCodeNotFound, "track %s has no clip at index %d", t.Name, i)
	}
	t.Clips[i] = c
	return nil
}

// conflicts returns the first pair of overlapping clips on a forbid track,
// or ok=false if the track satisfies its policy.
func (t *Track) conflict() (a, b Clip, ok bool) {
	if t.Policy == OverlapAllow {
		return Clip{}, Clip{}, false
	}
	for i := range t.Clips {
		for j := i + 1; j < len(t.Clips); j++ {
			if t.Clips[i].Overlaps(t.Clips[j]) {
				return t.Clips[i], t.Clips[j], true
			}
		}
	}
	return Clip{}, Clip{}, false
}
