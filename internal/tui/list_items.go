package tui

import (
	"fmt"
	"math"
	"strings"

	"shoplist-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// previewCount is how many items a dashboard card shows before "+N more".
const previewCount = 3

type listCardItem struct {
	list model.ShoppingList
}

func (i listCardItem) FilterValue() string { return i.list.Name }
func (i listCardItem) Title() string       { return i.list.Name }
func (i listCardItem) Description() string { return i.list.ID }

// refreshLists rebuilds the dashboard from the store, keeping the selection on the same list.
func (m *appModel) refreshLists() {
	selectedID := ""
	if cur, ok := m.selectedList(); ok {
		selectedID = cur.ID
	}

	lists := m.lists.Lists()
	items := make([]list.Item, 0, len(lists))
	idx := 0
	for i, l := range lists {
		if l.ID == selectedID {
			idx = i
		}
		items = append(items, listCardItem{list: l})
	}
	m.dashboard.SetItems(items)
	if len(items) > 0 {
		if idx >= len(items) {
			idx = len(items) - 1
		}
		m.dashboard.Select(idx)
	}
}

func (m appModel) selectedList() (model.ShoppingList, bool) {
	it, ok := m.dashboard.SelectedItem().(listCardItem)
	if !ok {
		return model.ShoppingList{}, false
	}
	return it.list, true
}

// renderProgressBar draws a fixed-width bar followed by the percentage.
func renderProgressBar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if width < 4 {
		width = 4
	}
	filled := int(math.Round(float64(pct) / 100 * float64(width)))
	if filled > width {
		filled = width
	}

	on := lipgloss.NewStyle().Foreground(colorProgressOn).Render(strings.Repeat(glyphBarFull(), filled))
	off := lipgloss.NewStyle().Foreground(colorProgressOff).Render(strings.Repeat(glyphBarEmpty(), width-filled))
	return on + off + " " + fmt.Sprintf("%3d%%", pct)
}

func renderCheckbox(done bool) string {
	if done {
		return styleSuccess().Render(glyphChecked())
	}
	return styleMuted().Render(glyphUnchecked())
}

func renderCategoryBadge(c model.Category) string {
	return styleBadge().Render(c.Label())
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// We render our own header + footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	// Filtering would swallow the dashboard's single-letter keys.
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("list", "lists")
	l.KeyMap.Quit.SetKeys("q")
	// Drop the "d" page-down alias; it deletes on the dashboard.
	l.KeyMap.NextPage.SetKeys("right", "l", "pgdown", "f")

	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}
