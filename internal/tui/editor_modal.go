package tui

import (
	"errors"
	"fmt"
	"strings"

	"shoplist-cli/internal/liststore"
	"shoplist-cli/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"
)

type editorFocus int

const (
	editorFocusName editorFocus = iota
	editorFocusItem
	editorFocusCategory
	editorFocusItems
)

// editorForm is the view state around editor.Editor; the staged list itself
// lives in the editor.
type editorForm struct {
	name  textinput.Model
	item  textinput.Model
	focus editorFocus
	// categoryIdx indexes model.Categories(); -1 means none picked yet.
	categoryIdx int
	itemCursor  int
}

func newEditorForm(name string) editorForm {
	ni := textinput.New()
	ni.Placeholder = "e.g. Weekly groceries"
	ni.Prompt = ""
	ni.CharLimit = 120
	ni.SetValue(name)
	ni.CursorEnd()
	ni.Focus()

	ii := textinput.New()
	ii.Placeholder = "e.g. Milk"
	ii.Prompt = ""
	ii.CharLimit = 120

	return editorForm{name: ni, item: ii, focus: editorFocusName, categoryIdx: -1}
}

func (f *editorForm) setFocus(focus editorFocus) {
	f.focus = focus
	f.name.Blur()
	f.item.Blur()
	switch focus {
	case editorFocusName:
		f.name.Focus()
	case editorFocusItem:
		f.item.Focus()
	}
}

func (f editorForm) category() model.Category {
	cats := model.Categories()
	if f.categoryIdx < 0 || f.categoryIdx >= len(cats) {
		return ""
	}
	return cats[f.categoryIdx]
}

func (f *editorForm) cycleCategory(delta int) {
	n := len(model.Categories())
	if f.categoryIdx < 0 {
		if delta > 0 {
			f.categoryIdx = 0
		} else {
			f.categoryIdx = n - 1
		}
		return
	}
	f.categoryIdx = (f.categoryIdx + delta + n) % n
}

func (m *appModel) openEditorNew() {
	if err := m.editor.OpenNew(); err != nil {
		m.showError(err)
		return
	}
	m.editorForm = newEditorForm("")
	m.modal = modalEditor
}

func (m *appModel) openEditorFor(l model.ShoppingList) {
	if err := m.editor.OpenExisting(l); err != nil {
		m.showError(err)
		return
	}
	m.editorForm = newEditorForm(l.Name)
	m.modal = modalEditor
}

func (m *appModel) closeEditor() {
	m.editor.Cancel()
	m.modal = modalNone
	m.editorForm = editorForm{}
}

func (m appModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.editorForm
	switch msg.String() {
	case "esc":
		m.closeEditor()
		m.showMinibuffer("Changes discarded")
		return m, nil
	case "ctrl+s":
		m.saveEditor()
		return m, nil
	case "tab":
		m.cycleEditorFocus(1)
		return m, nil
	case "shift+tab":
		m.cycleEditorFocus(-1)
		return m, nil
	}

	switch f.focus {
	case editorFocusName:
		if msg.String() == "enter" {
			f.setFocus(editorFocusItem)
			return m, nil
		}
		var cmd tea.Cmd
		f.name, cmd = f.name.Update(msg)
		_ = m.editor.SetName(f.name.Value())
		return m, cmd

	case editorFocusItem:
		if msg.String() == "enter" {
			m.addStagedItem()
			return m, nil
		}
		var cmd tea.Cmd
		f.item, cmd = f.item.Update(msg)
		return m, cmd

	case editorFocusCategory:
		switch msg.String() {
		case "left", "h":
			f.cycleCategory(-1)
		case "right", "l":
			f.cycleCategory(1)
		case "enter":
			m.addStagedItem()
		}
		return m, nil

	case editorFocusItems:
		items := m.editor.Items()
		if len(items) == 0 {
			return m, nil
		}
		if f.itemCursor >= len(items) {
			f.itemCursor = len(items) - 1
		}
		switch msg.String() {
		case "up", "k":
			if f.itemCursor > 0 {
				f.itemCursor--
			}
		case "down", "j":
			if f.itemCursor < len(items)-1 {
				f.itemCursor++
			}
		case " ", "space":
			m.editor.ToggleItem(items[f.itemCursor].ID)
		case "x", "delete":
			m.editor.RemoveItem(items[f.itemCursor].ID)
			if f.itemCursor > 0 && f.itemCursor >= len(items)-1 {
				f.itemCursor--
			}
			if len(items) == 1 {
				f.setFocus(editorFocusItem)
			}
		}
		return m, nil
	}
	return m, nil
}

func (m *appModel) cycleEditorFocus(delta int) {
	n := 4
	if len(m.editor.Items()) == 0 {
		// Nothing to highlight in the staged list.
		n = 3
	}
	next := (int(m.editorForm.focus) + delta + n) % n
	m.editorForm.setFocus(editorFocus(next))
}

func (m *appModel) addStagedItem() {
	f := &m.editorForm
	it, err := m.editor.AddItem(f.item.Value(), f.category())
	if err != nil {
		m.showError(err)
		return
	}
	f.item.SetValue("")
	m.showMinibuffer("Added " + it.Name)
}

func (m *appModel) saveEditor() {
	_, editing := m.editor.Editing()
	if err := m.editor.Save(m.lists); err != nil {
		m.showError(err)
		var v liststore.ValidationError
		if !errors.As(err, &v) {
			m.log.Error("save list", zap.Error(err))
		}
		return
	}
	m.modal = modalNone
	m.editorForm = editorForm{}
	if !editing {
		// New lists are prepended; follow them.
		m.refreshLists()
		m.dashboard.Select(0)
		m.showMinibuffer("List created")
		return
	}
	m.refreshLists()
	m.showMinibuffer("List saved")
}

func (m appModel) viewEditor() string {
	w := m.width
	if w <= 0 {
		w = 80
	}
	bodyW := modalBodyWidth(w)
	f := m.editorForm

	title := "New list"
	if _, editing := m.editor.Editing(); editing {
		title = "Edit list"
	}

	lines := []string{
		renderInputLine(bodyW, "Name", f.name.View(), f.focus == editorFocusName),
		"",
		renderInputLine(bodyW, "New item", f.item.View(), f.focus == editorFocusItem),
		"",
		m.renderCategoryPicker(bodyW),
		"",
		m.renderStagedItems(bodyW),
	}
	if m.minibufferText != "" {
		lines = append(lines, "", m.renderMinibuffer())
	}
	lines = append(lines, "", styleMuted().Width(bodyW).Render(
		"tab: next field   ←/→: category   enter: add item   space: toggle   x: remove   ctrl+s: save   esc: cancel",
	))
	return renderModalBox(w, title, strings.Join(lines, "\n"))
}

func (m appModel) renderCategoryPicker(bodyW int) string {
	f := m.editorForm
	focused := f.focus == editorFocusCategory

	marker := "  "
	labelSt := styleMuted()
	if focused {
		marker = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("▌ ")
		labelSt = lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
	}

	value := styleMuted().Render("Choose a category")
	if c := f.category(); c != "" {
		value = lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Render(c.Label())
	}
	line := "  ‹ " + value + " ›"
	return marker + labelSt.Render("Category") + "\n" + padOrCutANSI(line, bodyW)
}

func (m appModel) renderStagedItems(bodyW int) string {
	items := m.editor.Items()
	head := fmt.Sprintf("Items (%d)", len(items))
	if m.editorForm.focus == editorFocusItems {
		head = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("▌ ") +
			lipgloss.NewStyle().Bold(true).Render(head)
	} else {
		head = "  " + styleMuted().Render(head)
	}
	if len(items) == 0 {
		return head + "\n" + styleMuted().Render("  No items yet. Add one above.")
	}

	rows := make([]string, 0, len(items))
	for i, it := range items {
		cursor := "  "
		if m.editorForm.focus == editorFocusItems && i == m.editorForm.itemCursor {
			cursor = lipgloss.NewStyle().Foreground(colorAccent).Render(glyphBullet() + " ")
		}
		badge := renderCategoryBadge(it.Category)
		left := cursor + renderCheckbox(it.Completed) + " "
		rowW := bodyW - xansi.StringWidth(badge)
		nameW := rowW - xansi.StringWidth(left) - 1
		rows = append(rows, padOrCutANSI(left+truncateToWidth(it.Name, nameW), rowW)+badge)
	}
	return head + "\n" + strings.Join(rows, "\n")
}
