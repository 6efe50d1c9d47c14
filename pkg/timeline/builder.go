package timeline

import (
	stderrors "errors"

	"github.com/reelkit/reelkit/pkg/errors"
	"github.com/reelkit/reelkit/pkg/observability"
	"github.com/reelkit/reelkit/pkg/registry"
)

// ConfigSource supplies persisted defaults consulted before the builder's
// hardcoded fallbacks. Implementations are expected to be cheap and
// synchronous; see the config package for file-backed providers.
type ConfigSource interface {
	Get(key string, def any) any
}

// Configuration keys the builder consults.
const (
	keyDefaultDuration  = "defaults.duration"
	keyDefaultVolume    = "defaults.volume"
	keyDefaultFPS       = "defaults.fps"
	keyDefaultWidth     = "defaults.width"
	keyDefaultHeight    = "defaults.height"
	keyDefaultFontSize  = "defaults.font_size"
	keyDefaultFontColor = "defaults.font_color"
	keyDefaultPosition  = "defaults.position"
)

// Builder is the fluent composition surface. Every call mutates the
// builder and returns it for chaining; Build projects the current state
// into an immutable spec snapshot without consuming the builder.
//
// Caller-input errors are detected synchronously in the offending call and
// recorded with enough context to pinpoint it; Err and Build surface them.
// A call that fails leaves the timeline untouched.
//
// Builder is a single-owner resource: concurrent use requires external
// synchronization.
type Builder struct {
	tl       *Timeline
	cur      *cursors
	resolver TypeResolver
	config   ConfigSource

	batchDuration float64
	policy        OverlapPolicy
	validate      bool

	errs []error
}

// BuilderOption configures a new builder.
type BuilderOption func(*Builder)

// WithResolver sets the registry lookup used by validated builds.
// Passing nil disables registry reference checking.
func WithResolver(res TypeResolver) BuilderOption {
	return func(b *Builder) { b.resolver = res }
}

// WithConfig injects a persisted-defaults provider.
func WithConfig(cs ConfigSource) BuilderOption {
	return func(b *Builder) { b.config = cs }
}

// WithOverlapPolicy sets the policy given to tracks the allocator creates.
func WithOverlapPolicy(p OverlapPolicy) BuilderOption {
	return func(b *Builder) { b.policy = p }
}

// NewBuilder creates an empty builder with validation enabled, the
// built-in registries resolving effect, transition, and animation
// references, and canvas defaults taken from the configuration provider
// where present.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		tl:       New(),
		cur:      newCursors(),
		resolver: registry.NewSet(),
		policy:   OverlapForbid,
		validate: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.config != nil {
		c := b.tl.Canvas()
		c.FPS = b.configFloat(keyDefaultFPS, c.FPS)
		c.Width = b.configInt(keyDefaultWidth, c.Width)
		c.Height = b.configInt(keyDefaultHeight, c.Height)
		b.tl.SetCanvas(c)
	}
	return b
}

// Timeline exposes the mutable model for inspection. Intermediate states
// are always inspectable, even when momentarily invalid.
func (b *Builder) Timeline() *Timeline { return b.tl }

// Cursor returns the sequential cursor position for a group.
func (b *Builder) Cursor(g Group) float64 { return b.cur.at(g) }

// Err returns all errors recorded so far, joined, or nil.
func (b *Builder) Err() error { return stderrors.Join(b.errs...) }

// =============================================================================
// Visual media
// =============================================================================

// AddImage appends an image clip at the visual cursor.
func (b *Builder) AddImage(source string, opts ...ClipOption) *Builder {
	return b.add(MediumImage, source, placement{}, opts)
}

// AddImageAt places an image clip at an explicit start time.
// The visual cursor is left untouched.
func (b *Builder) AddImageAt(source string, start float64, opts ...ClipOption) *Builder {
	return b.add(MediumImage, source, placement{explicit: true, start: start}, opts)
}

// AddVideo appends a video clip at the visual cursor.
func (b *Builder) AddVideo(source string, opts ...ClipOption) *Builder {
	return b.add(MediumVideo, source, placement{}, opts)
}

// AddVideoAt places a video clip at an explicit start time.
func (b *Builder) AddVideoAt(source string, start float64, opts ...ClipOption) *Builder {
	return b.add(MediumVideo, source, placement{explicit: true, start: start}, opts)
}

// =============================================================================
// Text overlays
// =============================================================================

// AddText appends a text overlay at the text cursor.
func (b *Builder) AddText(text string, opts ...ClipOption) *Builder {
	return b.add(MediumText, text, placement{}, opts)
}

// AddTextAt places a text overlay at an explicit start time.
func (b *Builder) AddTextAt(text string, start float64, opts ...ClipOption) *Builder {
	return b.add(MediumText, text, placement{explicit: true, start: start}, opts)
}

// =============================================================================
// Audio
// =============================================================================

// AddVoice appends a voice clip at the voice cursor.
func (b *Builder) AddVoice(source string, opts ...ClipOption) *Builder {
	return b.add(MediumVoice, source, placement{}, opts)
}

// AddVoiceAt places a voice clip at an explicit start time.
func (b *Builder) AddVoiceAt(source string, start float64, opts ...ClipOption) *Builder {
	return b.add(MediumVoice, source, placement{explicit: true, start: start}, opts)
}

// AddMusic appends a music clip at the music cursor.
func (b *Builder) AddMusic(source string, opts ...ClipOption) *Builder {
	return b.add(MediumMusic, source, placement{}, opts)
}

// AddMusicAt places a music clip at an explicit start time.
func (b *Builder) AddMusicAt(source string, start float64, opts ...ClipOption) *Builder {
	return b.add(MediumMusic, source, placement{explicit: true, start: start}, opts)
}

// AddSFX appends a sound-effect clip at the sfx cursor.
func (b *Builder) AddSFX(source string, opts ...ClipOption) *Builder {
	return b.add(MediumSFX, source, placement{}, opts)
}

// AddSFXAt places a sound-effect clip at an explicit start time.
// Zero-duration sfx markers are only legal through this form.
func (b *Builder) AddSFXAt(source string, start float64, opts ...ClipOption) *Builder {
	return b.add(MediumSFX, source, placement{explicit: true, start: start}, opts)
}

// =============================================================================
// Transitions
// =============================================================================

// AddTransition places a transition overlapping the tail of preceding
// content: its start is the current composition tail minus its duration.
func (b *Builder) AddTransition(typ string, duration float64, opts ...TransitionOption) *Builder {
	if duration <= 0 {
		return b.fail(errors.New(errors.ErrCodeInvalidDuration,
			"transition %q: duration must be positive, got %g", typ, duration))
	}
	start := b.tl.TotalDuration() - duration
	if start < 0 {
		start = 0
	}
	return b.addTransition(Transition{Type: typ, Start: start, Duration: duration}, opts)
}

// AddTransitionAt places a transition at literal coordinates.
func (b *Builder) AddTransitionAt(typ string, start, duration float64, opts ...TransitionOption) *Builder {
	if duration <= 0 {
		return b.fail(errors.New(errors.ErrCodeInvalidDuration,
			"transition %q: duration must be positive, got %g", typ, duration))
	}
	if start < 0 {
		return b.fail(errors.New(errors.ErrCodeInvalidTiming,
			"transition %q: start time must be >= 0, got %g", typ, start))
	}
	return b.addTransition(Transition{Type: typ, Start: start, Duration: duration}, opts)
}

func (b *Builder) addTransition(tr Transition, opts []TransitionOption) *Builder {
	if err := errors.ValidateRegistryName(tr.Type); err != nil {
		return b.fail(err)
	}
	for _, opt := range opts {
		opt(&tr)
	}
	b.tl.AddTransition(tr)
	observability.Builder().OnTransitionAdded(tr.Type, tr.Start, tr.Duration)
	return b
}

// =============================================================================
// Global settings and mode toggles
// =============================================================================

// SetDuration sets the batch default duration inherited by clips added
// without an explicit duration or end time. Zero clears the default.
func (b *Builder) SetDuration(d float64) *Builder {
	if d < 0 {
		return b.fail(errors.New(errors.ErrCodeInvalidDuration,
			"batch duration must not be negative, got %g", d))
	}
	b.batchDuration = d
	return b
}

// SetFPS sets the canvas frame rate.
func (b *Builder) SetFPS(fps float64) *Builder {
	if err := errors.ValidateFrameRate(fps); err != nil {
		return b.fail(err)
	}
	c := b.tl.Canvas()
	c.FPS = fps
	b.tl.SetCanvas(c)
	return b
}

// SetSize sets the canvas pixel dimensions.
func (b *Builder) SetSize(width, height int) *Builder {
	if err := errors.ValidateCanvasSize(width, height); err != nil {
		return b.fail(err)
	}
	c := b.tl.Canvas()
	c.Width, c.Height = width, height
	b.tl.SetCanvas(c)
	return b
}

// EnableValidation makes subsequent builds run consistency checks.
func (b *Builder) EnableValidation() *Builder {
	b.validate = true
	return b
}

// DisableValidation makes subsequent builds skip consistency checks,
// deferring all correctness to the downstream renderer.
func (b *Builder) DisableValidation() *Builder {
	b.validate = false
	return b
}

// Clear resets tracks, transitions, cursors, and recorded errors back to
// the initial empty state. Canvas settings and toggles are preserved.
func (b *Builder) Clear() *Builder {
	b.tl.Reset()
	b.cur.reset()
	b.errs = nil
	return b
}

// =============================================================================
// Internals
// =============================================================================

func (b *Builder) fail(err error) *Builder {
	b.errs = append(b.errs, err)
	return b
}

// add resolves timing, applies medium defaults, and places the clip.
func (b *Builder) add(m Medium, source string, p placement, opts []ClipOption) *Builder {
	if err := errors.ValidateSourceRef(source); err != nil {
		return b.fail(errors.Wrap(errors.GetCode(err), err, "%s clip", m))
	}

	req := clipRequest{placement: p}
	for _, opt := range opts {
		opt(&req)
	}

	start, duration, unbounded, err := b.resolveTiming(m, req.placement)
	if err != nil {
		return b.fail(err)
	}

	clip := Clip{
		Medium:    m,
		Source:    source,
		Start:     start,
		Duration:  duration,
		Unbounded: unbounded,
		Attrs:     b.resolveAttrs(m, req),
	}

	var track *Track
	if req.track != "" {
		track, err = b.tl.PlaceOn(req.track, clip)
		if err != nil {
			return b.fail(err)
		}
	} else {
		track = b.tl.Place(clip, b.policy)
	}

	if !p.explicit {
		b.advanceCursors(clip)
	}

	observability.Builder().OnClipPlaced(string(m), track.Name, clip.Start, clip.Duration, clip.Unbounded)
	return b
}

// resolveAttrs fills medium-appropriate attributes, consulting the
// configuration provider for unset values.
func (b *Builder) resolveAttrs(m Medium, req clipRequest) Attributes {
	attrs := Attributes{
		Effect:       req.effect,
		EffectParams: req.effectParams,
		Animation:    req.animation,
		Meta:         req.meta,
	}
	if m.IsAudio() {
		attrs.Volume = b.configFloat(keyDefaultVolume, 1.0)
		if req.hasVolume {
			attrs.Volume = req.volume
		}
		attrs.FadeIn = req.fadeIn
		attrs.FadeOut = req.fadeOut
	}
	if m == MediumText {
		attrs.FontSize = req.fontSize
		if attrs.FontSize == 0 {
			attrs.FontSize = b.configInt(keyDefaultFontSize, 48)
		}
		attrs.FontColor = req.fontColor
		if attrs.FontColor == "" {
			attrs.FontColor = b.configString(keyDefaultFontColor, "white")
		}
		attrs.Position = req.position
		if attrs.Position == "" {
			attrs.Position = b.configString(keyDefaultPosition, "center")
		}
	}
	return attrs
}

func (b *Builder) configFloat(key string, def float64) float64 {
	if b.config == nil {
		return def
	}
	switch v := b.config.Get(key, def).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

func (b *Builder) configInt(key string, def int) int {
	return int(b.configFloat(key, float64(def)))
}

func (b *Builder) configString(key, def string) string {
	if b.config == nil {
		return def
	}
	if s, ok := b.config.Get(key, def).(string); ok {
		return s
	}
	return def
}
