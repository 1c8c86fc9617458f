package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// cardInnerLines: name, counts, progress bar, preview rows, "+N more".
const cardInnerLines = 3 + previewCount + 1

type cardDelegate struct {
	normalCard   lipgloss.Style
	selectedCard lipgloss.Style

	titleStyle lipgloss.Style
	metaStyle  lipgloss.Style
	doneStyle  lipgloss.Style
}

func newListCardDelegate() cardDelegate {
	base := lipgloss.NewStyle().
		Width(0). // Set per-render.
		Padding(0, 1, 0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Foreground(colorSurfaceFg)

	selected := base.BorderForeground(colorAccent)

	return cardDelegate{
		normalCard:   base,
		selectedCard: selected,
		titleStyle:   lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg),
		metaStyle:    lipgloss.NewStyle().Foreground(colorCardMetaFg),
		doneStyle:    styleMuted().Strikethrough(true),
	}
}

func (d cardDelegate) Height() int  { return cardInnerLines + 2 } // + border top/bottom
func (d cardDelegate) Spacing() int { return 1 }
func (d cardDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d cardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listCardItem)
	if !ok {
		return
	}
	totalW := m.Width()
	if totalW < 12 {
		return
	}

	card := d.normalCard
	if index == m.Index() {
		card = d.selectedCard
	}
	innerW := totalW - card.GetHorizontalFrameSize()
	if innerW < 1 {
		innerW = 1
	}
	card = card.Width(innerW)

	fmt.Fprint(w, card.Render(strings.Join(d.cardLines(it, innerW), "\n")))
}

func (d cardDelegate) cardLines(it listCardItem, innerW int) []string {
	l := it.list
	lines := make([]string, 0, cardInnerLines)

	name := strings.TrimSpace(l.Name)
	if name == "" {
		name = "(unnamed list)"
	}
	lines = append(lines, d.titleStyle.Render(truncateToWidth(name, innerW)))

	total := len(l.Items)
	lines = append(lines, d.metaStyle.Render(fmt.Sprintf("%d/%d items completed", l.CompletedCount(), total)))

	barW := innerW - 5
	if barW > 40 {
		barW = 40
	}
	lines = append(lines, renderProgressBar(l.Progress(), barW))

	preview, more := l.Preview(previewCount)
	for i := 0; i < previewCount; i++ {
		if i >= len(preview) {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, d.renderPreviewRow(i+1, preview[i].Name, preview[i].Completed, renderCategoryBadge(preview[i].Category), innerW))
	}
	if more > 0 {
		lines = append(lines, styleMuted().Render(fmt.Sprintf("+%d more", more)))
	} else {
		lines = append(lines, "")
	}
	return lines
}

// renderPreviewRow lays out "N ● Name  [Badge]" with the badge pinned right.
func (d cardDelegate) renderPreviewRow(n int, name string, done bool, badge string, innerW int) string {
	left := styleMuted().Render(fmt.Sprintf("%d", n)) + " " + renderCheckbox(done) + " "
	badgeW := xansi.StringWidth(badge)
	nameW := innerW - xansi.StringWidth(left) - badgeW - 1
	if nameW < 1 {
		return padOrCutANSI(left+name, innerW)
	}
	nameTxt := truncateToWidth(name, nameW)
	if done {
		nameTxt = d.doneStyle.Render(nameTxt)
	}
	return padOrCutANSI(left+nameTxt, innerW-badgeW) + badge
}
