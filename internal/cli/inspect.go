package cli

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/reelkit/reelkit/pkg/diagram"
	"github.com/reelkit/reelkit/pkg/errors"
	"github.com/reelkit/reelkit/pkg/spec"
)

// inspectCommand creates the inspect command for summarizing compositions.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		diagramOut  string
		detailed    bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [spec.json|spec.yaml]",
		Short: "Summarize a composition and render structure diagrams",
		Long: `Summarize a composition and render structure diagrams.

The inspect command prints canvas settings, per-track clip layouts, and
global transitions for a spec document.

With --diagram the track structure is rendered with graphviz; the output
format follows the file extension (.svg, .png, .dot). With --interactive
an in-terminal browser opens for navigating tracks and clips.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadSpecFile(args[0])
			if err != nil {
				printError("Could not read %s", args[0])
				return err
			}
			if interactive {
				return c.runBrowser(doc)
			}
			c.printSummary(doc, detailed)
			if diagramOut != "" {
				return c.writeDiagram(cmd.Context(), doc, diagramOut, detailed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&diagramOut, "diagram", "d", "", "write a structure diagram (.svg, .png, or .dot)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include per-clip windows")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse tracks and clips in the terminal")

	return cmd
}

// printSummary writes the composition overview to stdout.
func (c *CLI) printSummary(doc *spec.Spec, detailed bool) {
	fmt.Println(StyleTitle.Render("Composition"))
	printKeyValue("canvas", fmt.Sprintf("%dx%d @ %g fps", doc.Canvas.Width, doc.Canvas.Height, doc.Canvas.FPS))
	printKeyValue("duration", fmt.Sprintf("%.2fs", doc.Duration))
	printKeyValue("version", doc.Version)
	printNewline()

	for _, t := range doc.Tracks {
		fmt.Println(StyleHighlight.Render(t.Name) + StyleDim.Render(fmt.Sprintf("  %s · %d clips", t.Group, len(t.Clips))))
		if !detailed {
			continue
		}
		for _, cl := range t.Clips {
			printDetail("%s %s %s", cl.Medium, cl.Source, clipWindow(cl))
		}
	}

	if len(doc.Transitions) > 0 {
		printNewline()
		fmt.Println(StyleTitle.Render("Transitions"))
		for _, tr := range doc.Transitions {
			printDetail("%s at %.2fs for %.2fs", tr.Type, tr.Start, tr.Duration)
		}
	}
}

// clipWindow formats the half-open play window of a clip.
func clipWindow(c spec.Clip) string {
	if c.Unbounded {
		return fmt.Sprintf("[%.2f, ...)", c.Start)
	}
	return fmt.Sprintf("[%.2f, %.2f)", c.Start, c.End())
}

// writeDiagram renders the structure diagram to path, picking the format
// from the file extension.
func (c *CLI) writeDiagram(ctx context.Context, doc *spec.Spec, path string, detailed bool) error {
	dot := diagram.ToDOT(doc, diagram.Options{Detailed: detailed})

	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".dot", ".gv":
		data = []byte(dot)
	case ".svg":
		data, err = c.renderDiagram(ctx, "Rendering SVG diagram...", func() ([]byte, error) {
			return diagram.RenderSVG(ctx, dot)
		})
	case ".png":
		data, err = c.renderDiagram(ctx, "Rendering PNG diagram...", func() ([]byte, error) {
			return diagram.RenderPNG(ctx, dot)
		})
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported diagram extension %q", ext)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	printSuccess("Diagram written")
	printFile(path)
	return nil
}

func (c *CLI) renderDiagram(ctx context.Context, msg string, render func() ([]byte, error)) ([]byte, error) {
	spinner := newSpinner(ctx, msg)
	spinner.Start()
	data, err := render()
	if err != nil {
		spinner.StopWithError("Diagram rendering failed")
		return nil, err
	}
	spinner.Stop()
	return data, nil
}

// runBrowser opens the interactive track browser.
func (c *CLI) runBrowser(doc *spec.Spec) error {
	if len(doc.Tracks) == 0 {
		printWarning("Composition has no tracks")
		return nil
	}
	model := NewTrackBrowserModel(doc)
	_, err := tea.NewProgram(model).Run()
	return err
}

// finite replaces +Inf with the composition duration so open-ended clips
// can be displayed on a bounded scale.
func finite(v, total float64) float64 {
	if math.IsInf(v, 1) {
		return total
	}
	return v
}
