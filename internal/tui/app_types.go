package tui

import (
	"shoplist-cli/internal/auth"
)

type screen int

const (
	screenLogin screen = iota
	screenDashboard
)

type modalKind int

const (
	modalNone modalKind = iota
	modalEditor
	modalConfirmDelete
	modalHelp
)

type minibufferKind int

const (
	minibufferInfo minibufferKind = iota
	minibufferError
)

// loginTimerMsg fires once the login delay has elapsed.
type loginTimerMsg struct {
	seq int
}

type loginDoneMsg struct {
	session auth.Session
	err     error
}

// snapshotChangedMsg means another writer saved the snapshot.
type snapshotChangedMsg struct{}
