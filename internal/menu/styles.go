package menu

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles holds the lipgloss styles bound to one output.
type styles struct {
	title   lipgloss.Style
	rule    lipgloss.Style
	label   lipgloss.Style
	option  lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	info    lipgloss.Style
	dim     lipgloss.Style
}

// newStyles creates styles whose color support follows w, so output to a
// file or buffer stays plain.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
		rule:    r.NewStyle().Foreground(lipgloss.Color("#6C757D")),
		label:   r.NewStyle().Foreground(lipgloss.Color("#4ECDC4")),
		option:  r.NewStyle().Foreground(lipgloss.Color("#F8B500")),
		success: r.NewStyle().Foreground(lipgloss.Color("#95E1A3")),
		warning: r.NewStyle().Foreground(lipgloss.Color("#FFE66D")),
		err:     r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		info:    r.NewStyle().Foreground(lipgloss.Color("#A8DADC")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("#6C757D")),
	}
}
