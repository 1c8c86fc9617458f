package liststore

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"shoplist-cli/internal/model"

	"github.com/google/go-cmp/cmp"
)

func seqIDs() IDGenerator {
	n := 0
	return func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	base := []Option{
		WithClock(func() time.Time { return now }),
		WithIDGenerator(seqIDs()),
	}
	return New(append(base, opts...)...)
}

func weekly() []model.ItemDraft {
	return []model.ItemDraft{
		{Name: "Milk", Category: model.CategoryDairy},
		{Name: "Bread", Category: model.CategoryBakery},
	}
}

func TestCreateList_PrependsNewestFirst(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	first, err := s.CreateList("Weekly", weekly())
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 list; got %d", s.Len())
	}
	if got := s.Progress(first); got != 0 {
		t.Fatalf("expected progress 0; got %d", got)
	}
	for _, it := range first.Items {
		if it.Completed {
			t.Fatalf("new items must start incomplete: %+v", it)
		}
	}

	second, err := s.CreateList("Party", []model.ItemDraft{{Name: "Soda", Category: model.CategoryBeverages}})
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	lists := s.Lists()
	if len(lists) != 2 || lists[0].ID != second.ID || lists[1].ID != first.ID {
		t.Fatalf("expected newest-first order; got %+v", lists)
	}
}

func TestCreateList_ValidationAddsNothing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		list   string
		drafts []model.ItemDraft
		want   error
	}{
		{name: "blank name", list: "   ", drafts: weekly(), want: ErrBlankName},
		{name: "no items", list: "Weekly", drafts: nil, want: ErrNoItems},
		{name: "blank item", list: "Weekly", drafts: []model.ItemDraft{{Name: " ", Category: model.CategoryDairy}}, want: ErrBlankItemName},
		{name: "unknown category", list: "Weekly", drafts: []model.ItemDraft{{Name: "TV", Category: "electronics"}}, want: ErrUnknownCategory},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newTestStore(t)
			_, err := s.CreateList(tt.list, tt.drafts)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v; got %v", tt.want, err)
			}
			if !IsValidation(err) {
				t.Fatalf("expected validation error; got %T", err)
			}
			if s.Len() != 0 {
				t.Fatalf("store must stay empty; got %d lists", s.Len())
			}
		})
	}
}

func TestToggleItem_ProgressAndIdempotence(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	l, err := s.CreateList("Weekly", weekly())
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	milk := l.Items[0].ID

	if !s.ToggleItem(l.ID, milk) {
		t.Fatalf("expected toggle to find milk")
	}
	got, _ := s.Get(l.ID)
	if p := s.Progress(got); p != 50 {
		t.Fatalf("expected progress 50; got %d", p)
	}

	if !s.ToggleItem(l.ID, milk) {
		t.Fatalf("expected second toggle to find milk")
	}
	got, _ = s.Get(l.ID)
	if diff := cmp.Diff(l, got); diff != "" {
		t.Fatalf("double toggle should restore the list (-want +got):\n%s", diff)
	}
}

func TestToggleItem_UnknownIDsAreNoOps(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	l, _ := s.CreateList("Weekly", weekly())
	before := s.Lists()

	if s.ToggleItem("list-missing", l.Items[0].ID) {
		t.Fatalf("expected false for unknown list")
	}
	if s.ToggleItem(l.ID, "item-missing") {
		t.Fatalf("expected false for unknown item")
	}
	if diff := cmp.Diff(before, s.Lists()); diff != "" {
		t.Fatalf("store changed (-before +after):\n%s", diff)
	}
}

func TestDeleteList_Idempotent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	a, _ := s.CreateList("A", weekly())
	b, _ := s.CreateList("B", weekly())

	if !s.DeleteList(a.ID) {
		t.Fatalf("expected first delete to remove")
	}
	after := s.Lists()
	if s.DeleteList(a.ID) {
		t.Fatalf("expected second delete to be a no-op")
	}
	if diff := cmp.Diff(after, s.Lists()); diff != "" {
		t.Fatalf("second delete changed the store:\n%s", diff)
	}
	if len(after) != 1 || after[0].ID != b.ID {
		t.Fatalf("unexpected remaining lists: %+v", after)
	}
}

func TestUpdateList_ReplacesInPlace(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	older, _ := s.CreateList("Older", weekly())
	newer, _ := s.CreateList("Newer", weekly())

	edit := older.Clone()
	edit.Name = "  Renamed  "
	edit.Items = append(edit.Items, model.ShoppingItem{Name: "Apples", Category: model.CategoryFruits})
	if err := s.UpdateList(edit); err != nil {
		t.Fatalf("UpdateList: %v", err)
	}

	lists := s.Lists()
	if lists[0].ID != newer.ID || lists[1].ID != older.ID {
		t.Fatalf("update must keep position; got %s, %s", lists[0].ID, lists[1].ID)
	}
	if diff := cmp.Diff(newer, lists[0]); diff != "" {
		t.Fatalf("other list changed:\n%s", diff)
	}
	got := lists[1]
	if got.Name != "Renamed" {
		t.Fatalf("expected trimmed name; got %q", got.Name)
	}
	if len(got.Items) != 3 || got.Items[2].ID == "" {
		t.Fatalf("expected new item with generated id; got %+v", got.Items)
	}
	if !got.CreatedAt.Equal(older.CreatedAt) {
		t.Fatalf("createdAt must survive update")
	}
}

func TestUpdateList_Errors(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	l, _ := s.CreateList("Weekly", weekly())
	before := s.Lists()

	missing := l.Clone()
	missing.ID = "list-nope"
	var nf NotFoundError
	if err := s.UpdateList(missing); !errors.As(err, &nf) || nf.Kind != "list" {
		t.Fatalf("expected NotFoundError; got %v", err)
	}

	dup := l.Clone()
	dup.Items[1].ID = dup.Items[0].ID
	if err := s.UpdateList(dup); !errors.Is(err, ErrDuplicateItemID) {
		t.Fatalf("expected duplicate id error; got %v", err)
	}

	empty := l.Clone()
	empty.Items = nil
	if err := s.UpdateList(empty); !errors.Is(err, ErrNoItems) {
		t.Fatalf("expected ErrNoItems; got %v", err)
	}

	if diff := cmp.Diff(before, s.Lists()); diff != "" {
		t.Fatalf("failed updates changed the store:\n%s", diff)
	}
}

func TestReads_ReturnClones(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	l, _ := s.CreateList("Weekly", weekly())

	got, _ := s.Get(l.ID)
	got.Items[0].Completed = true
	got.Name = "mutated"
	all := s.Lists()
	all[0].Items[1].Name = "mutated"

	again, _ := s.Get(l.ID)
	if diff := cmp.Diff(l, again); diff != "" {
		t.Fatalf("caller mutation leaked into the store:\n%s", diff)
	}
}

func TestOnChange_FiresAfterMutations(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	var calls []int
	s.OnChange(func(ls []model.ShoppingList) { calls = append(calls, len(ls)) })

	l, _ := s.CreateList("Weekly", weekly())
	s.ToggleItem(l.ID, l.Items[0].ID)
	s.ToggleItem(l.ID, "item-missing")
	s.DeleteList(l.ID)
	s.DeleteList(l.ID)

	want := []int{1, 1, 0}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Fatalf("unexpected listener calls (-want +got):\n%s", diff)
	}
}

func TestWithLists_SeedsAndRestore(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	seed := SampleLists(now)
	s := New(WithLists(seed))
	if s.Len() != 2 {
		t.Fatalf("expected 2 seeded lists; got %d", s.Len())
	}
	seed[0].Name = "changed after seeding"
	if got, _ := s.Get("list-weekly"); got.Name != "Weekly groceries" {
		t.Fatalf("seed slice must be copied; got %q", got.Name)
	}

	s.Restore(nil)
	if s.Len() != 0 {
		t.Fatalf("expected empty store after Restore(nil); got %d", s.Len())
	}
}

func TestNewRandomID_Format(t *testing.T) {
	t.Parallel()

	id := NewRandomID("list")
	if len(id) != len("list-")+10 || id[:5] != "list-" {
		t.Fatalf("unexpected id %q", id)
	}
	if NewRandomID("item") == NewRandomID("item") {
		t.Fatalf("expected distinct ids")
	}
}
