package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryInterval = 50 * time.Millisecond

var ErrLocked = errors.New("snapshot is locked by another shoplist process")

// WithLock serializes read-modify-write cycles across processes (CLI commands and
// a persisting TUI may run side by side). ctx bounds how long we wait.
func (s Store) WithLock(ctx context.Context, fn func() error) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	fl := flock.New(s.lockPath())
	ok, err := fl.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("%w: %v", ErrLocked, err)
		}
		return fmt.Errorf("lock %s: %w", s.lockPath(), err)
	}
	if !ok {
		return ErrLocked
	}
	defer func() { _ = fl.Unlock() }()
	return fn()
}
