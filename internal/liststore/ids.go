package liststore

import (
	"strings"

	"github.com/google/uuid"
)

// IDGenerator returns prefix-<suffix>. Uniqueness within a collection is
// enforced by the store, which re-draws on collision.
type IDGenerator func(prefix string) string

// NewRandomID returns prefix-<10 hex chars> taken from a random UUID (~40 bits).
func NewRandomID(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + hex[:10]
}

func (s *Store) newListID() string {
	for {
		id := s.ids("list")
		if s.indexOf(id) < 0 {
			return id
		}
	}
}

func newItemID(gen IDGenerator, taken map[string]bool) string {
	for {
		id := gen("item")
		if !taken[id] {
			taken[id] = true
			return id
		}
	}
}
