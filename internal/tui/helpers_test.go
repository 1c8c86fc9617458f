package tui

import (
	"fmt"
	"testing"
	"time"

	"shoplist-cli/internal/auth"
	"shoplist-cli/internal/liststore"
	"shoplist-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

func seqIDs() liststore.IDGenerator {
	n := 0
	return func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func fixedClock() time.Time {
	return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
}

func newTestLists(t *testing.T, lists ...model.ShoppingList) *liststore.Store {
	t.Helper()
	return liststore.New(
		liststore.WithClock(fixedClock),
		liststore.WithIDGenerator(seqIDs()),
		liststore.WithLists(lists),
	)
}

// newSignedInModel returns a dashboard model that has already been sized.
func newSignedInModel(t *testing.T, lists *liststore.Store) appModel {
	t.Helper()
	m := newAppModel(Options{
		Lists:   lists,
		Session: &auth.Session{Email: "ana@example.com"},
		IDs:     seqIDs(),
	})
	return send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func send(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	mm, _ := m.Update(msg)
	out, ok := mm.(appModel)
	if !ok {
		t.Fatalf("expected appModel, got %T", mm)
	}
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+f":
		return tea.KeyMsg{Type: tea.KeyCtrlF}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m appModel, s string) appModel {
	t.Helper()
	for _, r := range s {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func groceries() model.ShoppingList {
	return model.ShoppingList{
		ID:        "list-a",
		Name:      "Groceries",
		CreatedAt: fixedClock(),
		Items: []model.ShoppingItem{
			{ID: "item-a1", Name: "Milk", Category: model.CategoryDairy, Completed: true},
			{ID: "item-a2", Name: "Bread", Category: model.CategoryBakery},
			{ID: "item-a3", Name: "Apples", Category: model.CategoryFruits},
			{ID: "item-a4", Name: "Soap", Category: model.CategoryHygiene},
			{ID: "item-a5", Name: "Chips", Category: model.CategorySnacks},
		},
	}
}
