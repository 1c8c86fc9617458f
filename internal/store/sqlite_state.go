package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"shoplist-cli/internal/model"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout helps avoid "database is locked" flakiness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLiteState(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS lists (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			items_total INTEGER NOT NULL,
			items_done INTEGER NOT NULL,
			created_at_unixms INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_lists_position ON lists(position);`,
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT NOT NULL,
			list_id TEXT NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			completed INTEGER NOT NULL,
			PRIMARY KEY(list_id, id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_items_category ON items(category);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// LoadSQLite reads the snapshot ordered as it was saved.
func (s Store) LoadSQLite(ctx context.Context) ([]model.ShoppingList, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var v string
	err = db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, "version").Scan(&v)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, err
	default:
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("snapshot version %q: %w", v, err)
		}
		if n > schemaVersion {
			return nil, fmt.Errorf("snapshot version %d is newer than supported version %d", n, schemaVersion)
		}
	}

	out, err := readJSONRows[model.ShoppingList](ctx, db, `SELECT json FROM lists ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	// Ensure nil slices are empty for stable callers.
	if out == nil {
		out = []model.ShoppingList{}
	}
	for i := range out {
		if out[i].Items == nil {
			out[i].Items = []model.ShoppingItem{}
		}
	}
	return out, nil
}

// SaveSQLite replaces the snapshot in a single transaction.
func (s Store) SaveSQLite(ctx context.Context, lists []model.ShoppingList) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, "version", strconv.Itoa(schemaVersion)); err != nil {
		return err
	}
	rev, err := readRevision(ctx, tx)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, "revision", strconv.FormatInt(rev+1, 10)); err != nil {
		return err
	}

	// Replace-all: the collection is small and always saved whole.
	for _, t := range []string{"items", "lists"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	nowMs := time.Now().UTC().UnixMilli()
	for pos, l := range lists {
		raw, err := json.Marshal(l)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO lists(id, position, name, items_total, items_done, created_at_unixms, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
			l.ID, pos, l.Name, len(l.Items), l.CompletedCount(), l.CreatedAt.UTC().UnixMilli(), string(raw), nowMs); err != nil {
			return fmt.Errorf("save list %s: %w", l.ID, err)
		}
		for ipos, it := range l.Items {
			if _, err := tx.ExecContext(ctx, `INSERT INTO items(id, list_id, position, name, category, completed) VALUES(?, ?, ?, ?, ?, ?)`,
				it.ID, l.ID, ipos, it.Name, string(it.Category), boolToInt(it.Completed)); err != nil {
				return fmt.Errorf("save item %s/%s: %w", l.ID, it.ID, err)
			}
		}
	}

	return tx.Commit()
}

// Revision is bumped by every save. A directory without a snapshot is revision 0;
// the database is not created just to answer.
func (s Store) Revision(ctx context.Context) (int64, error) {
	if _, err := os.Stat(s.sqlitePath()); errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()
	return readRevision(ctx, db)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func readRevision(ctx context.Context, q queryRower) (int64, error) {
	var v string
	err := q.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, "revision").Scan(&v)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return 0, nil
	case err != nil:
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("snapshot revision %q: %w", v, err)
	}
	return n, nil
}

// CategoryCounts returns how many open (not completed) items each category holds across all lists.
func (s Store) CategoryCounts(ctx context.Context) (map[model.Category]int, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT category, COUNT(1) FROM items WHERE completed = 0 GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[model.Category]int{}
	for rows.Next() {
		var c string
		var n int
		if err := rows.Scan(&c, &n); err != nil {
			return nil, err
		}
		out[model.Category(c)] = n
	}
	return out, rows.Err()
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, query string) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(js), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
