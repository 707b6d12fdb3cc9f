package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles the lipgloss styles used by the interactive views.
// All TUI helpers pull from `current`.
type Theme struct {
	Name                                 string
	Title, Muted, Accent, Success, Error lipgloss.Style
	Due, Selected, Help, Prompt, LineNo  lipgloss.Style
	Border                               lipgloss.Border
	BorderColor                          lipgloss.TerminalColor
}

var current = classic()

func classic() Theme {
	return Theme{
		Name:        "classic",
		Title:       lipgloss.NewStyle().Bold(true),
		Muted:       lipgloss.NewStyle().Faint(true),
		Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Due:         lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected:    lipgloss.NewStyle().Bold(true).Reverse(true),
		Help:        lipgloss.NewStyle().Faint(true),
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		LineNo:      lipgloss.NewStyle().Faint(true),
		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("8"),
	}
}

func mono() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:        "mono",
		Title:       plain,
		Muted:       plain,
		Accent:      plain,
		Success:     plain,
		Error:       plain,
		Due:         plain,
		Selected:    plain.Reverse(true),
		Help:        plain,
		Prompt:      plain,
		LineNo:      plain,
		Border:      lipgloss.NormalBorder(),
		BorderColor: lipgloss.NoColor{},
	}
}

// SetTheme selects a theme by name. Unknown names fall back to classic.
// mono also turns off colored status output.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "mono":
		current = mono()
		SetColor(false)
	default:
		current = classic()
	}
}

// Current returns the active theme.
func Current() Theme { return current }

// Box frames inner with the theme border.
func (t Theme) Box() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
}
