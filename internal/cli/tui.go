package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/reelkit/reelkit/pkg/spec"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// TrackBrowserModel - Interactive track and clip browsing
// =============================================================================

// TrackBrowserModel is the bubbletea model for browsing a composition's
// tracks and their clips.
type TrackBrowserModel struct {
	Spec   *spec.Spec
	Cursor int
}

// NewTrackBrowserModel creates a browser over the given composition.
func NewTrackBrowserModel(doc *spec.Spec) TrackBrowserModel {
	return TrackBrowserModel{Spec: doc}
}

func (m TrackBrowserModel) Init() tea.Cmd {
	return nil
}

func (m TrackBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Spec.Tracks)-1 {
			m.Cursor++
		}
	}
	return m, nil
}

func (m TrackBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Composition Browser"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%.2fs · %d tracks · ↑/↓ navigate · q quit", m.Spec.Duration, len(m.Spec.Tracks))))
	b.WriteString("\n\n")

	for i, t := range m.Spec.Tracks {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(cursor + style.Render(t.Name))
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s · %d clips", t.Group, len(t.Clips))))
		b.WriteString("\n")
	}

	if len(m.Spec.Tracks) > 0 {
		b.WriteString("\n")
		b.WriteString(m.clipTable(m.Spec.Tracks[m.Cursor]))
		b.WriteString("\n")
	}

	return b.String()
}

// clipTable renders the clips of one track as a table.
func (m TrackBrowserModel) clipTable(t spec.Track) string {
	rows := make([][]string, 0, len(t.Clips))
	for _, c := range t.Clips {
		extras := []string{}
		if c.Effect != "" {
			extras = append(extras, "effect:"+c.Effect)
		}
		if c.Animation != "" {
			extras = append(extras, "anim:"+c.Animation)
		}
		rows = append(rows, []string{
			c.Medium,
			c.Source,
			clipWindow(c),
			m.timelineBar(c),
			strings.Join(extras, " "),
		})
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(listDimStyle).
		Headers("MEDIUM", "SOURCE", "WINDOW", "TIMELINE", "EXTRAS").
		Rows(rows...)

	return tbl.String()
}

// barWidth is the character width of the inline timeline bar.
const barWidth = 24

// timelineBar draws the clip's position on a fixed-width scale of the
// whole composition.
func (m TrackBrowserModel) timelineBar(c spec.Clip) string {
	total := m.Spec.Duration
	if total <= 0 {
		return strings.Repeat("█", barWidth)
	}

	start := int(c.Start / total * barWidth)
	end := int(finite(c.End(), total) / total * barWidth)
	if start > barWidth {
		start = barWidth
	}
	if end > barWidth {
		end = barWidth
	}
	if end <= start {
		end = start + 1
		if end > barWidth {
			start, end = barWidth-1, barWidth
		}
	}

	return listDimStyle.Render(strings.Repeat("·", start)) +
		StyleHighlight.Render(strings.Repeat("█", end-start)) +
		listDimStyle.Render(strings.Repeat("·", barWidth-end))
}
