// Package tui is the interactive front end: a login screen, the dashboard of
// list cards, and the list editor modal.
package tui

import (
	"context"
	"time"

	"shoplist-cli/internal/auth"
	"shoplist-cli/internal/liststore"
	"shoplist-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type Options struct {
	Lists *liststore.Store
	Auth  auth.Authenticator

	// Session starts the app signed in, skipping the login screen.
	Session *auth.Session
	// Email pre-fills the login form.
	Email      string
	LoginDelay time.Duration

	// IDs generates staged item ids in the editor; defaults to liststore.NewRandomID.
	IDs liststore.IDGenerator

	// SelectedListID is selected on the dashboard at start, when it exists.
	SelectedListID string

	// Changes signals that the on-disk snapshot was written; Reload reads it back.
	// Both are optional and only used together.
	Changes <-chan struct{}
	Reload  func(context.Context) ([]model.ShoppingList, error)

	// Glyphs is "unicode" or "ascii".
	Glyphs string
	Logger *zap.Logger

	OnLogin  func(auth.Session)
	OnLogout func()
}

// Result is the UI state worth restoring on the next launch.
type Result struct {
	Email          string
	SelectedListID string
}

func Run(ctx context.Context, opts Options) (Result, error) {
	applyThemePreference()
	applyColorProfilePreference()
	applyGlyphPreference(opts.Glyphs)

	m := newAppModel(opts)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return Result{}, err
	}
	fm, ok := final.(appModel)
	if !ok {
		return Result{}, nil
	}
	return fm.result(), nil
}
