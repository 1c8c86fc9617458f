package cli

import (
	"strings"

	"shoplist-cli/internal/liststore"
	"shoplist-cli/internal/model"

	"github.com/spf13/cobra"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Item commands",
	}
	cmd.AddCommand(newItemsAddCmd(app))
	cmd.AddCommand(newItemsRmCmd(app))
	cmd.AddCommand(newItemsToggleCmd(app))
	return cmd
}

func newItemsAddCmd(app *App) *cobra.Command {
	var name string
	var category string

	cmd := &cobra.Command{
		Use:   "add <list-id>",
		Short: "Add an item to a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ok := model.ParseCategory(category)
			if !ok {
				return writeErr(cmd, usageError{flag: "--category", reason: "unknown category (run `shoplist categories`)"})
			}

			var added model.ShoppingItem
			err := app.mutate(cmd.Context(), func(ls *liststore.Store) error {
				l, ok := ls.Get(args[0])
				if !ok {
					return errNotFound("list", args[0])
				}
				// UpdateList assigns the id.
				l.Items = append(l.Items, model.ShoppingItem{Name: name, Category: c})
				if err := ls.UpdateList(l); err != nil {
					return err
				}
				saved, _ := ls.Get(l.ID)
				added = saved.Items[len(saved.Items)-1]
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(app, added))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&category, "category", "", "Item category (see `shoplist categories`)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newItemsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <list-id> <item-id>",
		Short: "Remove an item from a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, itemID := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
			err := app.mutate(cmd.Context(), func(ls *liststore.Store) error {
				l, ok := ls.Get(listID)
				if !ok {
					return errNotFound("list", listID)
				}
				kept := make([]model.ShoppingItem, 0, len(l.Items))
				for _, it := range l.Items {
					if it.ID != itemID {
						kept = append(kept, it)
					}
				}
				if len(kept) == len(l.Items) {
					return errNotFound("item", itemID)
				}
				l.Items = kept
				return ls.UpdateList(l)
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(app, map[string]any{"listId": listID, "id": itemID, "removed": true}))
		},
	}
}

func newItemsToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <list-id> <item-id>",
		Short: "Flip an item between open and completed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, itemID := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
			var toggled model.ShoppingItem
			var progress int
			err := app.mutate(cmd.Context(), func(ls *liststore.Store) error {
				if !ls.ToggleItem(listID, itemID) {
					if _, ok := ls.Get(listID); !ok {
						return errNotFound("list", listID)
					}
					return errNotFound("item", itemID)
				}
				l, _ := ls.Get(listID)
				toggled, _ = l.FindItem(itemID)
				progress = ls.Progress(l)
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(app, map[string]any{
				"listId":   listID,
				"item":     toggled,
				"progress": progress,
			}))
		},
	}
}
