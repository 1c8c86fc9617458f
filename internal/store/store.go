// Package store keeps an on-disk snapshot of the list collection in SQLite.
//
// The in-memory liststore.Store stays the owner of the lists; this package only
// loads and saves whole snapshots.
package store

import (
	"context"
	"os"
	"path/filepath"

	"shoplist-cli/internal/model"
)

const (
	sqliteFileName = "shoplist.sqlite"
	lockFileName   = "shoplist.lock"
)

type Store struct {
	Dir string
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(filepath.Clean(s.Dir), sqliteFileName)
}

func (s Store) lockPath() string {
	return filepath.Join(filepath.Clean(s.Dir), lockFileName)
}

// Load returns the saved lists, newest first. A fresh directory yields an empty slice.
func (s Store) Load(ctx context.Context) ([]model.ShoppingList, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return s.LoadSQLite(ctx)
}

// Save replaces the snapshot with lists.
func (s Store) Save(ctx context.Context, lists []model.ShoppingList) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return s.SaveSQLite(ctx, lists)
}

// Update runs a load-modify-save cycle under the cross-process lock. fn receives
// the current lists and returns the lists to save.
func (s Store) Update(ctx context.Context, fn func([]model.ShoppingList) ([]model.ShoppingList, error)) error {
	return s.WithLock(ctx, func() error {
		cur, err := s.Load(ctx)
		if err != nil {
			return err
		}
		next, err := fn(cur)
		if err != nil {
			return err
		}
		return s.Save(ctx, next)
	})
}
