package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	modalMaxWidth = 72
	modalMinWidth = 30
)

// modalBodyWidth is the usable content width inside a modal box for a terminal width.
func modalBodyWidth(termW int) int {
	w := termW - 8
	if w > modalMaxWidth {
		w = modalMaxWidth
	}
	if w < modalMinWidth {
		w = modalMinWidth
	}
	return w
}

func renderModalBox(termW int, title, body string) string {
	bodyW := modalBodyWidth(termW)
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Width(bodyW).
		Padding(0, 1).
		Render(title)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1)
	return box.Render(header + "\n\n" + body)
}

func placeCentered(w, h int, s string) string {
	if w <= 0 || h <= 0 {
		return s
	}
	// If the content fills the screen, Place will naturally have no padding; otherwise it centers.
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, s)
}

func truncateToWidth(s string, w int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	if w <= 1 {
		return "…"
	}
	return xansi.Cut(s, 0, w-1) + "…"
}

func padOrCutANSI(s string, w int) string {
	cur := xansi.StringWidth(s)
	switch {
	case cur < w:
		return s + strings.Repeat(" ", w-cur)
	case cur > w:
		// Terminate ANSI styling to prevent bleed.
		return xansi.Cut(s, 0, w) + "\x1b[0m"
	default:
		return s
	}
}
