package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	// Focused marks the control that receives enter and typed text.
	Focused lipgloss.Style

	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor
	FocusColor  lipgloss.TerminalColor

	SymOK, SymFail, SymBullet, SymCursor string
}

var current = classic()

func SetTheme(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon":
		current = Theme{
			Name:    "neon",
			Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")), // bright magenta
			Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Focused: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("13")),

			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("5"),
			FocusColor:  lipgloss.Color("13"),

			SymOK: "✔", SymFail: "✖", SymBullet: "•", SymCursor: "▸ ",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Name:  "mono",
			Title: plain.Bold(true), Muted: plain, Accent: plain,
			Success: plain, Error: plain, Pending: plain,
			Focused: plain.Reverse(true),

			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.NoColor{},
			FocusColor:  lipgloss.NoColor{},

			SymOK: "ok", SymFail: "x", SymBullet: "-", SymCursor: "> ",
		}
	default:
		current = classic()
	}
}

func classic() Theme {
	return Theme{
		Name:    "classic",
		Title:   lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Faint(true),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Focused: lipgloss.NewStyle().Bold(true).Reverse(true),

		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("8"),
		FocusColor:  lipgloss.Color("12"),

		SymOK: "✔", SymFail: "✖", SymBullet: "•", SymCursor: "> ",
	}
}

// Expose what renderers need
func Current() Theme { return current }
