package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderInputLine draws a labelled single-line field; focused fields get the accent marker.
func renderInputLine(bodyW int, label, inputView string, focused bool) string {
	if bodyW < 10 {
		bodyW = 10
	}

	// Text inputs should always render as a single visual line inside modals.
	inputView = strings.ReplaceAll(inputView, "\n", " ")
	inputView = strings.ReplaceAll(inputView, "\r", " ")

	marker := "  "
	labelSt := styleMuted()
	if focused {
		marker = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("▌ ")
		labelSt = lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
	}
	head := marker + labelSt.Render(label)

	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return head + "\n" + line
}
