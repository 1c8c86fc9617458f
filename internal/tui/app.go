package tui

import (
	"fmt"
	"strings"

	"shoplist-cli/internal/docs"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.screen == screenLogin {
		return m.viewLogin()
	}

	switch m.modal {
	case modalEditor:
		return placeCentered(m.width, m.height, m.viewEditor())
	case modalConfirmDelete:
		return placeCentered(m.width, m.height, m.viewConfirmDelete())
	case modalHelp:
		return placeCentered(m.width, m.height, m.viewHelp())
	}
	return m.viewDashboard()
}

func (m appModel) viewDashboard() string {
	contentW := m.contentWidth()

	title := lipgloss.NewStyle().Bold(true).Render(glyphCart() + " Shopping lists")
	who := ""
	if email := m.signedInEmail(); email != "" {
		who = styleMuted().Render(email)
	}
	gap := contentW - lipgloss.Width(title) - lipgloss.Width(who)
	if gap < 1 {
		gap = 1
	}
	header := title + strings.Repeat(" ", gap) + who

	n := m.lists.Len()
	count := styleMuted().Render(fmt.Sprintf("%d lists", n))
	if n == 1 {
		count = styleMuted().Render("1 list")
	}

	var body string
	if n == 0 {
		body = m.viewEmptyState(contentW)
	} else {
		body = m.dashboard.View()
	}

	footer := styleMuted().Width(contentW).Render(
		"n: new   enter/e: edit   d: delete   1-3: toggle item   ↑/↓: move   ?: help   L: log out   q: quit",
	)
	status := ""
	if m.minibufferText != "" {
		status = m.renderMinibuffer()
	}

	out := strings.Join([]string{header, count, body, status, footer}, "\n")
	return lipgloss.NewStyle().PaddingLeft(outerMarginW).Render(out)
}

func (m appModel) viewEmptyState(w int) string {
	msg := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Bold(true).Render("No lists yet"),
		styleMuted().Render("Press n to create your first shopping list."),
	)
	return lipgloss.Place(w, 7, lipgloss.Center, lipgloss.Center, msg)
}

func (m appModel) viewConfirmDelete() string {
	name := m.deleteForID
	if l, ok := m.lists.Get(m.deleteForID); ok {
		name = l.Name
	}
	body := fmt.Sprintf("Delete %q? This cannot be undone.", name)
	return renderConfirmModal(m.width, "Delete list", body, "Delete", "Cancel", m.confirmFocus)
}

func (m appModel) viewHelp() string {
	w := m.width
	if w <= 0 {
		w = 80
	}
	bodyW := modalBodyWidth(w)
	md, ok := docs.Get("keys")
	if !ok {
		md = "No help available."
	}
	body := renderMarkdown(md, bodyW) + "\n\n" + styleMuted().Render("esc/?: close")
	return renderModalBox(w, "Help", body)
}

func (m appModel) renderMinibuffer() string {
	if m.minibufferKind == minibufferError {
		return styleError().Render(m.minibufferText)
	}
	return styleSuccess().Render(m.minibufferText)
}
