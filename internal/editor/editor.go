// Package editor stages edits to a single shopping list before they are
// committed. The staged copy is a deep clone: nothing reaches the list store
// until Save succeeds, and Cancel simply drops it.
package editor

import (
	"errors"
	"strings"

	"shoplist-cli/internal/liststore"
	"shoplist-cli/internal/model"
)

var (
	ErrNotOpen          = errors.New("editor is not open")
	ErrAlreadyOpen      = errors.New("editor is already open")
	ErrCategoryRequired = errors.New("select a category")
)

// Aliases so callers can match editor failures without importing liststore.
var (
	ErrBlankName     = liststore.ErrBlankName
	ErrNoItems       = liststore.ErrNoItems
	ErrBlankItemName = liststore.ErrBlankItemName
)

type State int

const (
	StateClosed State = iota
	StateOpen
	StateSaving
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateSaving:
		return "saving"
	default:
		return "closed"
	}
}

// Committer receives the finalized list on Save. *liststore.Store implements it.
type Committer interface {
	CreateList(name string, drafts []model.ItemDraft) (model.ShoppingList, error)
	UpdateList(list model.ShoppingList) error
}

type Editor struct {
	state State

	// base is the list being edited; nil when creating.
	base  *model.ShoppingList
	name  string
	items []model.ShoppingItem

	ids liststore.IDGenerator
}

func New(ids liststore.IDGenerator) *Editor {
	if ids == nil {
		ids = liststore.NewRandomID
	}
	return &Editor{ids: ids}
}

func (e *Editor) State() State { return e.state }

func (e *Editor) IsOpen() bool { return e.state == StateOpen }

// OpenNew stages an empty list for creation.
func (e *Editor) OpenNew() error {
	if e.state != StateClosed {
		return ErrAlreadyOpen
	}
	e.reset()
	e.items = []model.ShoppingItem{}
	e.state = StateOpen
	return nil
}

// OpenExisting stages a copy of l's name and items.
func (e *Editor) OpenExisting(l model.ShoppingList) error {
	if e.state != StateClosed {
		return ErrAlreadyOpen
	}
	e.reset()
	base := l.Clone()
	e.base = &base
	e.name = base.Name
	e.items = base.Clone().Items
	if e.items == nil {
		e.items = []model.ShoppingItem{}
	}
	e.state = StateOpen
	return nil
}

// Editing reports the id of the list being edited, if any.
func (e *Editor) Editing() (string, bool) {
	if e.base == nil {
		return "", false
	}
	return e.base.ID, true
}

func (e *Editor) Name() string { return e.name }

func (e *Editor) SetName(name string) error {
	if e.state != StateOpen {
		return ErrNotOpen
	}
	e.name = name
	return nil
}

// Items returns a copy of the staged items.
func (e *Editor) Items() []model.ShoppingItem {
	return append([]model.ShoppingItem(nil), e.items...)
}

// AddItem appends a new incomplete item. A blank name or missing category is a
// validation error and leaves the staged state unchanged.
func (e *Editor) AddItem(name string, c model.Category) (model.ShoppingItem, error) {
	if e.state != StateOpen {
		return model.ShoppingItem{}, ErrNotOpen
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.ShoppingItem{}, liststore.ValidationError{Field: "item", Err: ErrBlankItemName}
	}
	if !c.Valid() {
		return model.ShoppingItem{}, liststore.ValidationError{Field: "category", Err: ErrCategoryRequired}
	}
	taken := make(map[string]bool, len(e.items))
	for _, it := range e.items {
		taken[it.ID] = true
	}
	id := e.ids("item")
	for taken[id] {
		id = e.ids("item")
	}
	it := model.ShoppingItem{ID: id, Name: name, Category: c}
	e.items = append(e.items, it)
	return it, nil
}

func (e *Editor) RemoveItem(id string) bool {
	if e.state != StateOpen {
		return false
	}
	for i := range e.items {
		if e.items[i].ID == id {
			e.items = append(e.items[:i:i], e.items[i+1:]...)
			return true
		}
	}
	return false
}

// ToggleItem flips the staged item's completed flag.
func (e *Editor) ToggleItem(id string) bool {
	if e.state != StateOpen {
		return false
	}
	for i := range e.items {
		if e.items[i].ID == id {
			e.items[i].Completed = !e.items[i].Completed
			return true
		}
	}
	return false
}

// Save validates the staged list and hands it to c: the full list when editing,
// name and drafts when creating. Any failure keeps the editor open with its
// staged state intact.
func (e *Editor) Save(c Committer) error {
	if e.state != StateOpen {
		return ErrNotOpen
	}
	name := strings.TrimSpace(e.name)
	if name == "" {
		return liststore.ValidationError{Field: "name", Err: ErrBlankName}
	}
	if len(e.items) == 0 {
		return liststore.ValidationError{Field: "items", Err: ErrNoItems}
	}

	e.state = StateSaving
	var err error
	if e.base != nil {
		updated := e.base.Clone()
		updated.Name = name
		updated.Items = append([]model.ShoppingItem(nil), e.items...)
		err = c.UpdateList(updated)
	} else {
		_, err = c.CreateList(name, model.ShoppingList{Items: e.items}.Drafts())
	}
	if err != nil {
		e.state = StateOpen
		return err
	}

	e.reset()
	return nil
}

// Cancel discards the staged state.
func (e *Editor) Cancel() {
	e.reset()
}

func (e *Editor) reset() {
	e.state = StateClosed
	e.base = nil
	e.name = ""
	e.items = nil
}
