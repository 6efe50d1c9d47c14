// Package diagram renders the structure of a composition as a Graphviz
// diagram: one cluster per placement group, one node per track, with
// clip windows listed inside the track node.
package diagram

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/reelkit/reelkit/pkg/spec"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes clip windows and attributes in track labels.
	// When false, only track names and clip counts are shown.
	Detailed bool
}

// groupOrder fixes cluster layout top to bottom: visuals first, audio
// beds last.
var groupOrder = []string{"video", "text", "voice", "music", "sfx"}

// ToDOT converts a spec to Graphviz DOT format. The resulting DOT string
// can be rendered using [RenderSVG] or [RenderPNG].
func ToDOT(s *spec.Spec, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph composition {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  \"canvas\" [label=%q, fillcolor=lightblue];\n",
		fmt.Sprintf("%dx%d @ %gfps\n%.1fs", s.Canvas.Width, s.Canvas.Height, s.Canvas.FPS, s.Duration))

	for i, group := range groupOrder {
		tracks := s.TracksByGroup(group)
		if len(tracks) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", group)
		buf.WriteString("    style=dashed;\n")
		for _, tr := range tracks {
			fmt.Fprintf(&buf, "    %q [label=%q];\n", tr.Name, trackLabel(tr, opts.Detailed))
			fmt.Fprintf(&buf, "    \"canvas\" -> %q [style=invis];\n", tr.Name)
		}
		buf.WriteString("  }\n")
	}

	if len(s.Transitions) > 0 {
		buf.WriteString("\n")
		for i, tr := range s.Transitions {
			id := fmt.Sprintf("transition_%d", i)
			fmt.Fprintf(&buf, "  %q [label=%q, shape=diamond, fillcolor=lightyellow];\n",
				id, fmt.Sprintf("%s\n%.1fs @ %.1fs", tr.Type, tr.Duration, tr.Start))
			fmt.Fprintf(&buf, "  \"canvas\" -> %q [style=dotted];\n", id)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func trackLabel(tr spec.Track, detailed bool) string {
	head := fmt.Sprintf("%s (%d clips)", tr.Name, len(tr.Clips))
	if !detailed {
		return head
	}

	parts := []string{head}
	for _, c := range tr.Clips {
		window := fmt.Sprintf("[%.1fs, %.1fs)", c.Start, c.End())
		if c.Unbounded {
			window = fmt.Sprintf("[%.1fs, ...)", c.Start)
		}
		line := fmt.Sprintf("%s %s %s", c.Medium, shorten(c.Source), window)
		if c.Effect != "" {
			line += " +" + c.Effect
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, "\n")
}

// shorten keeps labels readable for long source references.
func shorten(source string) string {
	const max = 32
	if len(source) <= max {
		return source
	}
	return source[:max-3] + "..."
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
