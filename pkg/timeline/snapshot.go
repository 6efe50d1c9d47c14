package timeline

import (
	"maps"
	"math"
	"time"

	"github.com/reelkit/reelkit/pkg/errors"
	"github.com/reelkit/reelkit/pkg/observability"
	"github.com/reelkit/reelkit/pkg/spec"
)

// Build projects the current state into an immutable spec snapshot.
//
// Build never consumes the builder: further add-calls remain legal and a
// later Build simply re-snapshots. Two consecutive builds with no
// intervening mutation produce structurally equal specs.
//
// When validation is enabled, recorded caller errors and cross-entity
// consistency violations fail the build; when disabled, Build performs
// only structural assembly and defers correctness to the renderer.
func (b *Builder) Build() (*spec.Spec, error) {
	start := time.Now()
	observability.Builder().OnBuildStart()

	fail := func(err error) (*spec.Spec, error) {
		observability.Builder().OnBuildComplete(b.tl.ClipCount(), b.tl.TotalDuration(), time.Since(start), err)
		return nil, err
	}

	if err := b.Err(); err != nil {
		return fail(err)
	}
	if b.validate {
		if err := b.tl.Validate(b.resolver); err != nil {
			return fail(err)
		}
	}

	s := b.snapshot()
	observability.Builder().OnBuildComplete(s.ClipCount(), s.Duration, time.Since(start), nil)
	return s, nil
}

// snapshot deep-copies the mutable model into plain spec data. Later
// builder mutations never reach an already-emitted snapshot.
func (b *Builder) snapshot() *spec.Spec {
	s := &spec.Spec{
		Version: spec.Version,
		Canvas: spec.Canvas{
			Width:  b.tl.canvas.Width,
			Height: b.tl.canvas.Height,
			FPS:    b.tl.canvas.FPS,
		},
		Duration: b.tl.TotalDuration(),
		Tracks:   make([]spec.Track, 0, b.tl.TrackCount()),
		Meta:     cloneMeta(b.tl.meta),
	}

	for _, tr := range b.tl.AllTracks() {
		st := spec.Track{
			Name:   tr.Name,
			Group:  string(tr.Group),
			Policy: string(tr.Policy),
			Z:      tr.Z,
			Volume: tr.Volume,
			Muted:  tr.Muted,
			Clips:  make([]spec.Clip, 0, len(tr.Clips)),
		}
		for _, c := range tr.Clips {
			st.Clips = append(st.Clips, snapshotClip(c))
		}
		s.Tracks = append(s.Tracks, st)
	}

	for _, tr := range b.tl.Transitions() {
		s.Transitions = append(s.Transitions, spec.Transition{
			Type:      tr.Type,
			Start:     tr.Start,
			Duration:  tr.Duration,
			Direction: tr.Direction,
			Easing:    tr.Easing,
			Meta:      cloneMeta(tr.Meta),
		})
	}

	return s
}

func snapshotClip(c Clip) spec.Clip {
	out := spec.Clip{
		Medium:       string(c.Medium),
		Source:       c.Source,
		Start:        c.Start,
		Unbounded:    c.Unbounded,
		Volume:       c.Attrs.Volume,
		FadeIn:       c.Attrs.FadeIn,
		FadeOut:      c.Attrs.FadeOut,
		FontSize:     c.Attrs.FontSize,
		FontColor:    c.Attrs.FontColor,
		Position:     c.Attrs.Position,
		Effect:       c.Attrs.Effect,
		EffectParams: cloneMeta(c.Attrs.EffectParams),
		Animation:    c.Attrs.Animation,
		Meta:         cloneMeta(c.Attrs.Meta),
	}
	if !c.Unbounded {
		out.Duration = c.Duration
	}
	return out
}

func cloneMeta(m Metadata) map[string]any {
	if len(m) == 0 {
		return nil
	}
	return maps.Clone(m)
}

// FromSpec reconstructs a builder from a previously emitted (or externally
// generated) spec. Track identity, order, and clip placement are preserved
// verbatim; no re-allocation happens. Sequential cursors resume at each
// group's furthest finite clip end, so subsequent sequential adds append
// after the existing content.
func FromSpec(s *spec.Spec, opts ...BuilderOption) (*Builder, error) {
	if err := s.CheckStructure(); err != nil {
		return nil, err
	}

	b := NewBuilder(opts...)
	b.tl.SetCanvas(Canvas{Width: s.Canvas.Width, Height: s.Canvas.Height, FPS: s.Canvas.FPS})
	if len(s.Meta) > 0 {
		b.tl.meta = maps.Clone(Metadata(s.Meta))
	}

	for _, st := range s.Tracks {
		g := Group(st.Group)
		policy := OverlapPolicy(st.Policy)
		if policy == "" {
			policy = OverlapForbid
		}
		if !policy.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidSpec, "track %s: unknown overlap policy %q", st.Name, st.Policy)
		}
		if _, exists := b.tl.Track(g, st.Name); exists {
			return nil, errors.New(errors.ErrCodeInvalidSpec, "duplicate %s track name %q", g, st.Name)
		}

		tr := &Track{
			Name:   st.Name,
			Group:  g,
			Policy: policy,
			Z:      st.Z,
			Volume: st.Volume,
			Muted:  st.Muted,
		}
		for _, sc := range st.Clips {
			m := Medium(sc.Medium)
			if m.Group() != g {
				return nil, errors.New(errors.ErrCodeInvalidSpec,
					"track %s: %s clip %q does not belong to group %s", st.Name, m, sc.Source, g)
			}
			tr.Append(Clip{
				Medium:    m,
				Source:    sc.Source,
				Start:     sc.Start,
				Duration:  sc.Duration,
				Unbounded: sc.Unbounded,
				Attrs: Attributes{
					Volume:       sc.Volume,
					FadeIn:       sc.FadeIn,
					FadeOut:      sc.FadeOut,
					FontSize:     sc.FontSize,
					FontColor:    sc.FontColor,
					Position:     sc.Position,
					Effect:       sc.Effect,
					EffectParams: Metadata(sc.EffectParams),
					Animation:    sc.Animation,
					Meta:         Metadata(sc.Meta),
				},
			})
		}
		b.tl.tracks[g] = append(b.tl.tracks[g], tr)
	}

	for _, st := range s.Transitions {
		b.tl.AddTransition(Transition{
			Type:      st.Type,
			Start:     st.Start,
			Duration:  st.Duration,
			Direction: st.Direction,
			Easing:    st.Easing,
			Meta:      Metadata(st.Meta),
		})
	}

	for _, g := range Groups() {
		tail := 0.0
		for _, tr := range b.tl.tracks[g] {
			for _, c := range tr.Clips {
				if end := c.End(); !math.IsInf(end, 1) && end > tail {
					tail = end
				}
			}
		}
		b.cur.advance(g, tail)
	}

	return b, nil
}
