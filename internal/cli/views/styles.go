package views

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lifestock/internal/scheduler"
)

// styles are bound to a renderer for the destination writer so colour is
// dropped when output is not a terminal.
type styles struct {
	header   lipgloss.Style
	dim      lipgloss.Style
	marked   lipgloss.Style
	today    lipgloss.Style
	selected lipgloss.Style
	status   map[scheduler.Urgency]lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		header: r.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),
		dim: r.NewStyle().
			Foreground(lipgloss.Color("240")),
		marked: r.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),
		today: r.NewStyle().
			Underline(true),
		selected: r.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Bold(true),
		status: map[scheduler.Urgency]lipgloss.Style{
			scheduler.Expired:  r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			scheduler.Soon:     r.NewStyle().Foreground(lipgloss.Color("214")),
			scheduler.Upcoming: r.NewStyle().Foreground(lipgloss.Color("39")),
			scheduler.Later:    r.NewStyle().Foreground(lipgloss.Color("240")),
		},
	}
}
