package timeline

import (
	"github.com/reelkit/reelkit/pkg/errors"
)

// cursors tracks the sequential write position per placement group.
// Cursors only ever move forward while sequential calls are made; explicit
// placement never touches them.
type cursors struct {
	pos map[Group]float64
}

func newCursors() *cursors {
	return &cursors{pos: make(map[Group]float64)}
}

// at returns the current cursor for a group (zero if untouched).
func (c *cursors) at(g Group) float64 { return c.pos[g] }

// advance moves a group's cursor forward to end. Positions never regress.
func (c *cursors) advance(g Group, end float64) {
	if end > c.pos[g] {
		c.pos[g] = end
	}
}

// syncToStory raises every non-video cursor that lags behind the visual
// story tail. Sequential base media define the story timeline: overlays
// and audio added sequentially afterwards start where the story has
// advanced to, not at their own stale positions.
func (c *cursors) syncToStory(end float64) {
	for _, g := range Groups() {
		if g == GroupVideo {
			continue
		}
		if end > c.pos[g] {
			c.pos[g] = end
		}
	}
}

func (c *cursors) reset() {
	c.pos = make(map[Group]float64)
}

// placement is a caller's timing request before resolution: either
// sequential (cursor-driven) or explicit (literal coordinates), with an
// optional duration XOR end time.
type placement struct {
	explicit bool
	start    float64 // explicit mode only

	hasDuration bool
	duration    float64
	hasEnd      bool
	end         float64
}

// resolveTiming computes a clip's start and duration from a placement
// request, the group cursor, and the duration fallback chain:
// explicit duration/end, then the builder's batch default, then the
// configuration provider default, then open-ended.
//
// Zero-duration clips are permitted only for explicitly placed sfx markers.
func (b *Builder) resolveTiming(m Medium, p placement) (start, duration float64, unbounded bool, err error) {
	if p.hasDuration && p.hasEnd {
		return 0, 0, false, errors.New(errors.ErrCodeInvalidDuration,
			"%s clip: duration and end time are mutually exclusive", m)
	}
	if !p.explicit && p.hasEnd {
		return 0, 0, false, errors.New(errors.ErrCodeInvalidTiming,
			"%s clip: end time requires explicit placement", m)
	}

	if p.explicit {
		if p.start < 0 {
			return 0, 0, false, errors.New(errors.ErrCodeInvalidTiming,
				"%s clip: start time must be >= 0, got %g", m, p.start)
		}
		start = p.start
	} else {
		start = b.cur.at(m.Group())
	}

	switch {
	case p.hasDuration:
		duration = p.duration
	case p.hasEnd:
		duration = p.end - start
	case b.batchDuration > 0:
		duration = b.batchDuration
	default:
		if d := b.configFloat(keyDefaultDuration, 0); d > 0 {
			duration = d
		} else {
			return start, 0, true, nil
		}
	}

	if duration < 0 {
		return 0, 0, false, errors.New(errors.ErrCodeInvalidDuration,
			"%s clip at %.2f: duration must not be negative, got %g", m, start, duration)
	}
	if duration == 0 && !(p.explicit && m == MediumSFX) {
		return 0, 0, false, errors.New(errors.ErrCodeInvalidDuration,
			"%s clip at %.2f: zero duration is only allowed for explicitly placed sfx markers", m, start)
	}

	return start, duration, false, nil
}

// advanceCursors applies the post-placement cursor rules for a sequential
// add: bounded clips advance their own group's cursor by their duration,
// and base visual clips additionally pull lagging overlay and audio
// cursors up to the new story tail. Open-ended clips advance nothing.
func (b *Builder) advanceCursors(c Clip) {
	if c.Unbounded {
		return
	}
	g := c.Medium.Group()
	b.cur.advance(g, c.End())
	if g == GroupVideo {
		b.cur.syncToStory(c.End())
	}
}
