package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m appModel) Init() tea.Cmd { return tea.Batch(textinput.Blink, m.waitForSnapshot()) }

// waitForSnapshot blocks until another writer saves the snapshot.
func (m appModel) waitForSnapshot() tea.Cmd {
	if m.changes == nil || m.reload == nil {
		return nil
	}
	changes := m.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return snapshotChangedMsg{}
	}
}

// reloadSnapshot runs on the update loop so no local edit can land between the
// read and the Restore.
func (m appModel) reloadSnapshot() (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	lists, err := m.reload(ctx)
	if err != nil {
		m.log.Warn("reload snapshot", zap.Error(err))
		return m, m.waitForSnapshot()
	}
	m.lists.Restore(lists)
	m.refreshLists()
	return m, m.waitForSnapshot()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = ws.Width
		m.height = ws.Height
		m.resizeLists()
		return m, nil
	}

	if _, ok := msg.(snapshotChangedMsg); ok {
		return m.reloadSnapshot()
	}

	if m.screen == screenLogin {
		return m.updateLogin(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.modal == modalEditor {
			// Cursor blink.
			var c1, c2 tea.Cmd
			m.editorForm.name, c1 = m.editorForm.name.Update(msg)
			m.editorForm.item, c2 = m.editorForm.item.Update(msg)
			return m, tea.Batch(c1, c2)
		}
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.Update(msg)
		return m, cmd
	}
	if km.String() == "ctrl+c" {
		return m, tea.Quit
	}
	// Notifications last until the next key press.
	m.clearMinibuffer()

	switch m.modal {
	case modalEditor:
		return m.updateEditor(km)
	case modalConfirmDelete:
		return m.updateConfirmDelete(km)
	case modalHelp:
		switch km.String() {
		case "esc", "q", "?", "enter":
			m.modal = modalNone
		}
		return m, nil
	}

	return m.updateDashboard(km)
}

func (m appModel) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "n":
		m.openEditorNew()
		return m, textinput.Blink
	case "enter", "e":
		if l, ok := m.selectedList(); ok {
			m.openEditorFor(l)
			return m, textinput.Blink
		}
		return m, nil
	case "d":
		if l, ok := m.selectedList(); ok {
			m.deleteForID = l.ID
			m.confirmFocus = confirmFocusCancel
			m.modal = modalConfirmDelete
		}
		return m, nil
	case "1", "2", "3":
		m.togglePreviewItem(int(msg.String()[0] - '0'))
		return m, nil
	case "L":
		m.logout()
		return m, nil
	case "?":
		m.modal = modalHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.dashboard, cmd = m.dashboard.Update(msg)
	return m, cmd
}

// togglePreviewItem flips the n-th (1-based) previewed item of the selected list
// straight through the store.
func (m *appModel) togglePreviewItem(n int) {
	l, ok := m.selectedList()
	if !ok {
		return
	}
	preview, _ := l.Preview(previewCount)
	if n < 1 || n > len(preview) {
		return
	}
	it := preview[n-1]
	if !m.lists.ToggleItem(l.ID, it.ID) {
		return
	}
	m.refreshLists()
	m.log.Debug("toggled item from dashboard", zap.String("list_id", l.ID), zap.String("item_id", it.ID))
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n", "q":
		m.modal = modalNone
		m.deleteForID = ""
		return m, nil
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.confirmFocus = m.confirmFocus.toggle()
		return m, nil
	case "y":
		m.confirmDelete()
		return m, nil
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmDelete()
			return m, nil
		}
		m.modal = modalNone
		m.deleteForID = ""
		return m, nil
	}
	return m, nil
}

func (m *appModel) confirmDelete() {
	id := m.deleteForID
	name := id
	if l, ok := m.lists.Get(id); ok {
		name = l.Name
	}
	m.modal = modalNone
	m.deleteForID = ""
	if m.lists.DeleteList(id) {
		m.refreshLists()
		m.showMinibuffer(fmt.Sprintf("Deleted %q", name))
	}
}
