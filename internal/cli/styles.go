package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/phoenix-rise/internal/models"
)

// Styles renders command output in the user's stored theme. The renderer
// follows the output writer, so piped output carries no escape codes.
type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Accent lipgloss.Style
	Muted  lipgloss.Style
	Panel  lipgloss.Style
}

func NewStyles(w io.Writer, theme models.Theme) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Title: r.NewStyle().
			Foreground(lipgloss.Color(theme.Primary)).
			Bold(true),
		Header: r.NewStyle().
			Foreground(lipgloss.Color(theme.Secondary)).
			Bold(true).
			MarginTop(1),
		Label: r.NewStyle().
			Foreground(lipgloss.Color(theme.Text)).
			Width(24),
		Value: r.NewStyle().
			Foreground(lipgloss.Color(theme.Accent)),
		Accent: r.NewStyle().
			Foreground(lipgloss.Color(theme.Accent)).
			Bold(true),
		Muted: r.NewStyle().
			Foreground(lipgloss.Color("240")),
		Panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Primary)).
			Padding(0, 1),
	}
}

// Styles builds the output styles from the current theme.
func (c *Context) Styles() Styles {
	return NewStyles(c.Writer(), c.Store.Snapshot().Theme)
}

// Row renders a label/value pair.
func (s Styles) Row(label string, value any) string {
	return s.Label.Render(label) + s.Value.Render(fmt.Sprint(value))
}

// Rows joins label/value pairs vertically, keeping their order.
func (s Styles) Rows(pairs ...[2]string) string {
	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		lines = append(lines, s.Row(p[0], p[1]))
	}
	return strings.Join(lines, "\n")
}

// Swatch renders a color sample next to its hex value.
func (s Styles) Swatch(hex string) string {
	return s.Value.Foreground(lipgloss.Color(hex)).Render("■■ " + hex)
}
