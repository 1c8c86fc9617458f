package liststore

import (
	"time"

	"shoplist-cli/internal/model"
)

// SampleLists returns the demo lists shown on a fresh dashboard with --demo.
func SampleLists(now time.Time) []model.ShoppingList {
	return []model.ShoppingList{
		{
			ID:   "list-weekly",
			Name: "Weekly groceries",
			Items: []model.ShoppingItem{
				{ID: "item-milk", Name: "Milk", Category: model.CategoryDairy},
				{ID: "item-bread", Name: "Bread", Category: model.CategoryBakery, Completed: true},
				{ID: "item-eggs", Name: "Eggs", Category: model.CategoryDairy},
			},
			CreatedAt: now.Add(-24 * time.Hour),
		},
		{
			ID:   "list-party",
			Name: "Birthday party",
			Items: []model.ShoppingItem{
				{ID: "item-soda", Name: "Soda", Category: model.CategoryBeverages},
				{ID: "item-chips", Name: "Chips", Category: model.CategorySnacks},
			},
			CreatedAt: now.Add(-48 * time.Hour),
		},
	}
}
