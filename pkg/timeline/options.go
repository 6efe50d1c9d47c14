package timeline

import "maps"

// clipRequest collects per-call options before timing resolution.
type clipRequest struct {
	placement
	track string // pin to a named track, bypassing allocation

	volume    float64
	hasVolume bool
	fadeIn    float64
	fadeOut   float64

	fontSize  int
	fontColor string
	position  string

	effect       string
	effectParams Metadata
	animation    string

	meta Metadata
}

// ClipOption configures a single add-call.
type ClipOption func(*clipRequest)

// WithDuration bounds the clip to d seconds. Mutually exclusive with
// WithEnd; supplying both is a configuration error.
func WithDuration(d float64) ClipOption {
	return func(r *clipRequest) {
		r.hasDuration = true
		r.duration = d
	}
}

// WithEnd bounds the clip by an absolute end time. Only valid with
// explicit placement; the duration is derived as end - start.
func WithEnd(end float64) ClipOption {
	return func(r *clipRequest) {
		r.hasEnd = true
		r.end = end
	}
}

// OnTrack pins the clip to a named track instead of letting the allocator
// choose one. The track must already exist; placement on a pinned track
// skips the overlap check, deferring conflicts to validated builds.
func OnTrack(name string) ClipOption {
	return func(r *clipRequest) { r.track = name }
}

// WithVolume sets the gain multiplier for audio clips (1.0 = unity).
func WithVolume(v float64) ClipOption {
	return func(r *clipRequest) {
		r.volume = v
		r.hasVolume = true
	}
}

// WithFade sets audio fade-in and fade-out lengths in seconds.
func WithFade(in, out float64) ClipOption {
	return func(r *clipRequest) {
		r.fadeIn = in
		r.fadeOut = out
	}
}

// WithFontSize sets the font size for text clips.
func WithFontSize(size int) ClipOption {
	return func(r *clipRequest) { r.fontSize = size }
}

// WithFontColor sets the font color for text clips.
func WithFontColor(color string) ClipOption {
	return func(r *clipRequest) { r.fontColor = color }
}

// WithPosition sets the on-canvas anchor for text clips,
// e.g. "center", "bottom", "top-left".
func WithPosition(pos string) ClipOption {
	return func(r *clipRequest) { r.position = pos }
}

// WithEffect attaches a registry-keyed visual effect to the clip.
// The name is resolved against the effect registry at validated builds.
func WithEffect(name string, params Metadata) ClipOption {
	return func(r *clipRequest) {
		r.effect = name
		if params != nil {
			r.effectParams = maps.Clone(params)
		}
	}
}

// WithAnimation attaches a registry-keyed animation to a text clip.
func WithAnimation(name string) ClipOption {
	return func(r *clipRequest) { r.animation = name }
}

// WithMeta merges free-form metadata into the clip. Values survive
// serialization round-trips untouched.
func WithMeta(meta Metadata) ClipOption {
	return func(r *clipRequest) {
		if r.meta == nil {
			r.meta = Metadata{}
		}
		maps.Copy(r.meta, meta)
	}
}

// TransitionOption configures a transition add-call.
type TransitionOption func(*Transition)

// WithDirection sets the transition's direction hint, e.g. "left".
func WithDirection(dir string) TransitionOption {
	return func(t *Transition) { t.Direction = dir }
}

// WithEasing sets the transition's easing curve, e.g. "ease-in-out".
func WithEasing(easing string) TransitionOption {
	return func(t *Transition) { t.Easing = easing }
}

// WithTransitionMeta merges free-form metadata into the transition.
func WithTransitionMeta(meta Metadata) TransitionOption {
	return func(t *Transition) {
		if t.Meta == nil {
			t.Meta = Metadata{}
		}
		maps.Copy(t.Meta, meta)
	}
}
