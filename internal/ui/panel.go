package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel draws a framed box around lines using the current theme.
func Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, Box(strings.Join(lines, "\n"), false))
}

// Box frames content; focused boxes use the theme's focus color.
func Box(content string, focused bool) string {
	t := Current()
	color := t.BorderColor
	if focused {
		color = t.FocusColor
	}
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(color).
		Padding(0, 1).
		Render(content)
}

// Button renders a control label, highlighted when focused.
func Button(label string, focused bool) string {
	text := "[ " + label + " ]"
	if focused {
		return Current().Focused.Render(text)
	}
	return Current().Accent.Render(text)
}

func OK(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Success.Render(t.SymOK+" "+msg))
}

func Fail(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Error.Render(t.SymFail+" "+msg))
}
