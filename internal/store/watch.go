package store

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const watchDebounce = 150 * time.Millisecond

// Watcher reports saves made by other writers. Only writes to the main db file
// are considered (readers create and remove the -wal/-shm files on every open),
// and a notification is sent only when the snapshot revision moved past the last
// one seen or observed.
type Watcher struct {
	s       Store
	w       *fsnotify.Watcher
	log     *zap.Logger
	seen    atomic.Int64
	changes chan struct{}
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching the data dir. The returned Watcher must be closed; its
// Changes channel is closed when it stops.
func (s Store) Watch(ctx context.Context, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	rev, err := s.Revision(ctx)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Clean(s.Dir)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		s:       s,
		w:       fw,
		log:     log,
		changes: make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	w.seen.Store(rev)
	go w.run(ctx)
	return w, nil
}

func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Observe records a revision this process wrote itself so it is not reported.
func (w *Watcher) Observe(rev int64) {
	for {
		cur := w.seen.Load()
		if rev <= cur || w.seen.CompareAndSwap(cur, rev) {
			return
		}
	}
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		<-w.done
		err = w.w.Close()
	})
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	defer close(w.changes)

	ticker := time.NewTicker(watchDebounce / 3)
	defer ticker.Stop()

	dbPath := filepath.Clean(w.s.sqlitePath())
	var last time.Time
	pending := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != dbPath || ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			pending = true
			last = time.Now()
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.log.Warn("snapshot watch", zap.Error(err))
		case <-ticker.C:
			if !pending || time.Since(last) < watchDebounce {
				continue
			}
			pending = false
			rev, err := w.s.Revision(ctx)
			if err != nil {
				w.log.Warn("snapshot revision", zap.Error(err))
				continue
			}
			if rev <= w.seen.Load() {
				continue
			}
			w.Observe(rev)
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}
