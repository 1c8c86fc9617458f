package model

import (
	"math"
	"strings"
	"time"
)

type Category string

const (
	CategoryDairy      Category = "dairy"
	CategoryBakery     Category = "bakery"
	CategoryMeats      Category = "meats"
	CategoryVegetables Category = "vegetables"
	CategoryFruits     Category = "fruits"
	CategoryBeverages  Category = "beverages"
	CategoryHygiene    Category = "hygiene"
	CategoryCleaning   Category = "cleaning"
	CategorySnacks     Category = "snacks"
	CategoryFrozen     Category = "frozen"
	CategoryOther      Category = "other"
)

var categories = []Category{
	CategoryDairy,
	CategoryBakery,
	CategoryMeats,
	CategoryVegetables,
	CategoryFruits,
	CategoryBeverages,
	CategoryHygiene,
	CategoryCleaning,
	CategorySnacks,
	CategoryFrozen,
	CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryDairy:      "Dairy",
	CategoryBakery:     "Bakery",
	CategoryMeats:      "Meats",
	CategoryVegetables: "Vegetables",
	CategoryFruits:     "Fruits",
	CategoryBeverages:  "Beverages",
	CategoryHygiene:    "Hygiene",
	CategoryCleaning:   "Cleaning",
	CategorySnacks:     "Snacks",
	CategoryFrozen:     "Frozen",
	CategoryOther:      "Other",
}

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// ParseCategory matches s against category values and labels, ignoring case.
func ParseCategory(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	for _, c := range categories {
		if string(c) == s || strings.EqualFold(categoryLabels[c], s) {
			return c, true
		}
	}
	return "", false
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c Category) Label() string {
	if lbl, ok := categoryLabels[c]; ok {
		return lbl
	}
	return string(c)
}

type ShoppingItem struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	Completed bool     `json:"completed"`
}

// ItemDraft is the payload used to create a list's items.
type ItemDraft struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

type ShoppingList struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Items     []ShoppingItem `json:"items"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Clone returns a deep copy; the item slice is never shared.
func (l ShoppingList) Clone() ShoppingList {
	out := l
	if l.Items != nil {
		out.Items = make([]ShoppingItem, len(l.Items))
		copy(out.Items, l.Items)
	}
	return out
}

func (l ShoppingList) CompletedCount() int {
	n := 0
	for _, it := range l.Items {
		if it.Completed {
			n++
		}
	}
	return n
}

// Progress is the rounded completion percentage (0..100); an empty list is 0.
func (l ShoppingList) Progress() int {
	total := len(l.Items)
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(l.CompletedCount()) * 100 / float64(total)))
}

// Preview returns the first n items and how many were left out.
func (l ShoppingList) Preview(n int) ([]ShoppingItem, int) {
	if n < 0 {
		n = 0
	}
	if len(l.Items) <= n {
		return l.Items, 0
	}
	return l.Items[:n], len(l.Items) - n
}

func (l ShoppingList) FindItem(id string) (ShoppingItem, bool) {
	for _, it := range l.Items {
		if it.ID == id {
			return it, true
		}
	}
	return ShoppingItem{}, false
}

// Drafts strips ids and completion, keeping name and category in order.
func (l ShoppingList) Drafts() []ItemDraft {
	out := make([]ItemDraft, 0, len(l.Items))
	for _, it := range l.Items {
		out = append(out, ItemDraft{Name: it.Name, Category: it.Category})
	}
	return out
}

// CloneLists deep-copies a slice of lists.
func CloneLists(ls []ShoppingList) []ShoppingList {
	out := make([]ShoppingList, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.Clone())
	}
	return out
}
