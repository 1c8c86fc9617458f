// Package liststore is the in-memory owner of all shopping lists.
//
// The store hands out deep copies only: callers can mutate what they read
// without touching the canonical collection, and changes land exclusively
// through CreateList, UpdateList, DeleteList and ToggleItem.
package liststore

import (
	"strings"
	"sync"
	"time"

	"shoplist-cli/internal/model"

	"go.uber.org/zap"
)

type Store struct {
	mu    sync.RWMutex
	lists []model.ShoppingList // newest first

	clock     func() time.Time
	ids       IDGenerator
	log       *zap.Logger
	listeners []func([]model.ShoppingList)
}

type Option func(*Store)

func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) { s.ids = gen }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithLists seeds the store. Order is kept as given (newest first).
func WithLists(ls []model.ShoppingList) Option {
	return func(s *Store) { s.lists = model.CloneLists(ls) }
}

func New(opts ...Option) *Store {
	s := &Store{
		clock: func() time.Time { return time.Now().UTC() },
		ids:   NewRandomID,
		log:   zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.lists == nil {
		s.lists = []model.ShoppingList{}
	}
	return s
}

// OnChange registers fn to run after every successful mutation with a snapshot
// of the collection. Listeners run synchronously, outside the store lock.
func (s *Store) OnChange(fn func([]model.ShoppingList)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Store) Lists() []model.ShoppingList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneLists(s.lists)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lists)
}

func (s *Store) Get(id string) (model.ShoppingList, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(strings.TrimSpace(id))
	if i < 0 {
		return model.ShoppingList{}, false
	}
	return s.lists[i].Clone(), true
}

// Progress is the completion percentage of l.
func (s *Store) Progress(l model.ShoppingList) int {
	return l.Progress()
}

// CreateList validates name and drafts, then prepends a new list with fresh ids.
// On a validation error nothing is added.
func (s *Store) CreateList(name string, drafts []model.ItemDraft) (model.ShoppingList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.ShoppingList{}, invalid("name", ErrBlankName)
	}
	if len(drafts) == 0 {
		return model.ShoppingList{}, invalid("items", ErrNoItems)
	}
	for _, d := range drafts {
		if err := validateItem(d.Name, d.Category); err != nil {
			return model.ShoppingList{}, err
		}
	}

	s.mu.Lock()
	taken := map[string]bool{}
	l := model.ShoppingList{
		ID:        s.newListID(),
		Name:      name,
		Items:     make([]model.ShoppingItem, 0, len(drafts)),
		CreatedAt: s.clock(),
	}
	for _, d := range drafts {
		l.Items = append(l.Items, model.ShoppingItem{
			ID:       newItemID(s.ids, taken),
			Name:     strings.TrimSpace(d.Name),
			Category: d.Category,
		})
	}
	s.lists = append([]model.ShoppingList{l}, s.lists...)
	snap, fns := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Debug("list created", zap.String("list_id", l.ID), zap.Int("items", len(l.Items)))
	s.notify(snap, fns)
	return l.Clone(), nil
}

// UpdateList replaces the list with the same id in place. Items without an id
// are assigned one.
func (s *Store) UpdateList(l model.ShoppingList) error {
	l = l.Clone()
	l.ID = strings.TrimSpace(l.ID)
	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		return invalid("name", ErrBlankName)
	}
	if len(l.Items) == 0 {
		return invalid("items", ErrNoItems)
	}
	seen := map[string]bool{}
	for i := range l.Items {
		it := &l.Items[i]
		it.Name = strings.TrimSpace(it.Name)
		if err := validateItem(it.Name, it.Category); err != nil {
			return err
		}
		if it.ID == "" {
			continue
		}
		if seen[it.ID] {
			return invalid("items", ErrDuplicateItemID)
		}
		seen[it.ID] = true
	}

	s.mu.Lock()
	i := s.indexOf(l.ID)
	if i < 0 {
		s.mu.Unlock()
		return NotFoundError{Kind: "list", ID: l.ID}
	}
	for j := range l.Items {
		if l.Items[j].ID == "" {
			l.Items[j].ID = newItemID(s.ids, seen)
		}
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = s.lists[i].CreatedAt
	}
	s.lists[i] = l
	snap, fns := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Debug("list updated", zap.String("list_id", l.ID), zap.Int("items", len(l.Items)))
	s.notify(snap, fns)
	return nil
}

// DeleteList removes the list and reports whether it existed. Unknown ids are a no-op.
func (s *Store) DeleteList(id string) bool {
	id = strings.TrimSpace(id)
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.lists = append(s.lists[:i:i], s.lists[i+1:]...)
	snap, fns := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Debug("list deleted", zap.String("list_id", id))
	s.notify(snap, fns)
	return true
}

// ToggleItem flips the completed flag and reports whether an item was found.
// Unknown list or item ids are a no-op.
func (s *Store) ToggleItem(listID, itemID string) bool {
	listID = strings.TrimSpace(listID)
	itemID = strings.TrimSpace(itemID)
	s.mu.Lock()
	i := s.indexOf(listID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	l := s.lists[i].Clone()
	found := false
	for j := range l.Items {
		if l.Items[j].ID == itemID {
			l.Items[j].Completed = !l.Items[j].Completed
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return false
	}
	s.lists[i] = l
	snap, fns := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Debug("item toggled", zap.String("list_id", listID), zap.String("item_id", itemID))
	s.notify(snap, fns)
	return true
}

// Restore replaces the whole collection, e.g. after loading a snapshot from disk.
// Listeners are not notified.
func (s *Store) Restore(ls []model.ShoppingList) {
	s.mu.Lock()
	s.lists = model.CloneLists(ls)
	s.mu.Unlock()
}

func (s *Store) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.lists {
		if s.lists[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() ([]model.ShoppingList, []func([]model.ShoppingList)) {
	if len(s.listeners) == 0 {
		return nil, nil
	}
	return model.CloneLists(s.lists), append([]func([]model.ShoppingList){}, s.listeners...)
}

func (s *Store) notify(snap []model.ShoppingList, fns []func([]model.ShoppingList)) {
	for _, fn := range fns {
		fn(model.CloneLists(snap))
	}
}

func validateItem(name string, c model.Category) error {
	if strings.TrimSpace(name) == "" {
		return invalid("item", ErrBlankItemName)
	}
	if !c.Valid() {
		return invalid("item", ErrUnknownCategory)
	}
	return nil
}
