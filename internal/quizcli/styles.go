package quizcli

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	question lipgloss.Style
	option   lipgloss.Style
	hint     lipgloss.Style
	notice   lipgloss.Style
	score    lipgloss.Style
}

// newStyles returns colored styles, or plain ones when color is false.
func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{title: plain, question: plain, option: plain, hint: plain, notice: plain, score: plain}
	}
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		question: lipgloss.NewStyle().Bold(true),
		option:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		hint:     lipgloss.NewStyle().Faint(true),
		notice:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		score:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	}
}
