package registry

import "fmt"

// === Built-in effects ===

// Built-in effects render as zoompan/filter expressions sized to the
// target canvas. Frame counts derive from duration and fps so the
// expression covers the whole clip window.

func frames(p Params) int {
	fps := p.FPS
	if fps <= 0 {
		fps = 30
	}
	n := int(p.Duration * fps)
	if n < 1 {
		n = 1
	}
	return n
}

func zoomIn(p Params) (string, error) {
	return fmt.Sprintf(
		"zoompan=z='min(zoom+0.0015,1.5)':d=%d:x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':s=%dx%d:fps=%g",
		frames(p), p.Width, p.Height, p.FPS), nil
}

func zoomOut(p Params) (string, error) {
	return fmt.Sprintf(
		"zoompan=z='if(lte(zoom,1.0),1.5,max(1.0,zoom-0.0015))':d=%d:x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':s=%dx%d:fps=%g",
		frames(p), p.Width, p.Height, p.FPS), nil
}

func panLeft(p Params) (string, error) {
	d := frames(p)
	return fmt.Sprintf(
		"zoompan=z=1.2:d=%d:x='(iw-iw/zoom)*(1-on/%d)':y='ih/2-(ih/zoom/2)':s=%dx%d:fps=%g",
		d, d, p.Width, p.Height, p.FPS), nil
}

func panRight(p Params) (string, error) {
	d := frames(p)
	return fmt.Sprintf(
		"zoompan=z=1.2:d=%d:x='(iw-iw/zoom)*(on/%d)':y='ih/2-(ih/zoom/2)':s=%dx%d:fps=%g",
		d, d, p.Width, p.Height, p.FPS), nil
}

func kenBurns(p Params) (string, error) {
	d := frames(p)
	return fmt.Sprintf(
		"zoompan=z='1+0.3*on/%d':d=%d:x='(iw-iw/zoom)*(on/%d)':y='(ih-ih/zoom)*(on/%d)':s=%dx%d:fps=%g",
		d, d, d, d, p.Width, p.Height, p.FPS), nil
}

func grayscale(Params) (string, error) {
	return "hue=s=0", nil
}

func blur(p Params) (string, error) {
	sigma := 10.0
	if v, ok := p.Options["sigma"].(float64); ok && v > 0 {
		sigma = v
	}
	return fmt.Sprintf("gblur=sigma=%g", sigma), nil
}

// === Built-in transitions ===

// xfade covers every built-in transition; the name selects the xfade
// transition mode.
func xfade(mode string) ApplierFunc {
	return func(p Params) (string, error) {
		return fmt.Sprintf("xfade=transition=%s:duration=%g", mode, p.Duration), nil
	}
}

// === Built-in animations ===

func fadeIn(p Params) (string, error) {
	return fmt.Sprintf("fade=t=in:st=0:d=%g", p.Duration), nil
}

func fadeOut(p Params) (string, error) {
	return fmt.Sprintf("fade=t=out:st=0:d=%g", p.Duration), nil
}

func slideIn(p Params) (string, error) {
	return fmt.Sprintf("overlay=x='min(0,-w+(t/%g)*w)':y=0", p.Duration), nil
}

func typewriter(p Params) (string, error) {
	// Reveal the text box left to right over the clip duration.
	return fmt.Sprintf("crop=w='min(iw,iw*t/%g)':h=ih:x=0:y=0", p.Duration), nil
}

func pop(p Params) (string, error) {
	return fmt.Sprintf("scale=w='iw*min(1,t/%g)':h=-1:eval=frame", p.Duration), nil
}

func registerBuiltins(s *Set) {
	for _, b := range []struct {
		name string
		fn   ApplierFunc
	}{
		{"zoom-in", zoomIn},
		{"zoom-out", zoomOut},
		{"pan-left", panLeft},
		{"pan-right", panRight},
		{"ken-burns", kenBurns},
		{"grayscale", grayscale},
		{"blur", blur},
	} {
		_ = s.Effects.Register(b.name, b.fn)
	}

	for _, mode := range []struct{ name, xfade string }{
		{"fade", "fade"},
		{"crossfade", "fadeblack"},
		{"slide-left", "slideleft"},
		{"slide-right", "slideright"},
		{"wipe", "wipeleft"},
		{"dissolve", "dissolve"},
	} {
		_ = s.Transitions.Register(mode.name, xfade(mode.xfade))
	}

	for _, b := range []struct {
		name string
		fn   ApplierFunc
	}{
		{"fade-in", fadeIn},
		{"fade-out", fadeOut},
		{"slide-in", slideIn},
		{"typewriter", typewriter},
		{"pop", pop},
	} {
		_ = s.Animations.Register(b.name, b.fn)
	}
}
