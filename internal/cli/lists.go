package cli

import (
	"strconv"
	"strings"

	"shoplist-cli/internal/liststore"
	"shoplist-cli/internal/model"
	"shoplist-cli/internal/publish"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lists",
		Aliases: []string{"list"},
		Short:   "Shopping list commands",
	}
	cmd.AddCommand(newListsLsCmd(app))
	cmd.AddCommand(newListsShowCmd(app))
	cmd.AddCommand(newListsCreateCmd(app))
	cmd.AddCommand(newListsRenameCmd(app))
	cmd.AddCommand(newListsDeleteCmd(app))
	cmd.AddCommand(newListsProgressCmd(app))
	cmd.AddCommand(newListsExportCmd(app))
	return cmd
}

func newListsLsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List shopping lists (newest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ls, err := app.loadLists(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			out := listSummaries{}
			for _, l := range ls.Lists() {
				out = append(out, summarize(l))
			}
			return writeOut(cmd, app, envelope(app, out))
		},
	}
}

func newListsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <list-id>",
		Short: "Show a list with its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ls, err := app.loadLists(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			l, ok := ls.Get(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("list", args[0]))
			}
			return writeOut(cmd, app, envelope(app, listDetail{ShoppingList: l, Progress: ls.Progress(l)}))
		},
	}
}

func newListsCreateCmd(app *App) *cobra.Command {
	var name string
	var itemSpecs []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a list",
		Example: strings.TrimSpace(`
  shoplist lists create --name "Weekly groceries" --item "Milk:Dairy" --item "Bread:Bakery"
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts := make([]model.ItemDraft, 0, len(itemSpecs))
			for _, spec := range itemSpecs {
				d, err := parseItemSpec(spec)
				if err != nil {
					return writeErr(cmd, err)
				}
				drafts = append(drafts, d)
			}

			var created model.ShoppingList
			err := app.mutate(cmd.Context(), func(ls *liststore.Store) error {
				l, err := ls.CreateList(name, drafts)
				created = l
				return err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(app, listDetail{ShoppingList: created, Progress: created.Progress()}))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "List name")
	cmd.Flags().StringArrayVar(&itemSpecs, "item", nil, `Item as "Name:Category" (repeatable)`)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newListsRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <list-id>",
		Short: "Rename a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var renamed model.ShoppingList
			err := app.mutate(cmd.Context(), func(ls *liststore.Store) error {
				l, ok := ls.Get(args[0])
				if !ok {
					return errNotFound("list", args[0])
				}
				l.Name = name
				if err := ls.UpdateList(l); err != nil {
					return err
				}
				renamed, _ = ls.Get(l.ID)
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(app, summarize(renamed)))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New list name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newListsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <list-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a list",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			err := app.mutate(cmd.Context(), func(ls *liststore.Store) error {
				// The store treats unknown ids as a no-op; scripts get an error.
				if !ls.DeleteList(id) {
					return errNotFound("list", id)
				}
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(app, map[string]any{"id": id, "deleted": true}))
		},
	}
}

func newListsProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <list-id>",
		Short: "Show completion progress of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ls, err := app.loadLists(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			l, ok := ls.Get(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("list", args[0]))
			}
			return writeOut(cmd, app, envelope(app, progressView{
				ID:       l.ID,
				Name:     l.Name,
				Done:     l.CompletedCount(),
				Total:    len(l.Items),
				Progress: ls.Progress(l),
			}))
		},
	}
}

func newListsExportCmd(app *App) *cobra.Command {
	var toDir string
	var openOnly bool
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "export [<list-id>]",
		Short: "Write lists as markdown checklists (all lists plus an index when no id is given)",
		Example: strings.TrimSpace(`
  shoplist lists export --to ./lists-md
  shoplist lists export list-3f2a9c01bd --to ./lists-md --open-only --overwrite
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ls, err := app.loadLists(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			opt := publish.WriteOptions{OpenOnly: openOnly, Overwrite: overwrite}

			var res publish.WriteResult
			if len(args) == 1 {
				l, ok := ls.Get(args[0])
				if !ok {
					return writeErr(cmd, errNotFound("list", args[0]))
				}
				res, err = publish.WriteList(l, toDir, opt)
			} else {
				res, err = publish.WriteAll(ls.Lists(), toDir, opt)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			app.logger().Info("exported lists", zap.String("to", toDir), zap.Int("files", len(res.Written)))
			return writeOut(cmd, app, envelope(app, res))
		},
	}

	cmd.Flags().StringVar(&toDir, "to", "", "Output directory")
	cmd.Flags().BoolVar(&openOnly, "open-only", false, "Leave completed items out")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// parseItemSpec parses "Name:Category". The last colon separates the category
// so item names may contain colons.
func parseItemSpec(spec string) (model.ItemDraft, error) {
	i := strings.LastIndex(spec, ":")
	if i < 0 {
		return model.ItemDraft{}, usageError{flag: "--item", reason: `expected "Name:Category", got ` + strconv.Quote(spec)}
	}
	name := strings.TrimSpace(spec[:i])
	c, ok := model.ParseCategory(spec[i+1:])
	if !ok {
		return model.ItemDraft{}, usageError{flag: "--item", reason: "unknown category " + strconv.Quote(strings.TrimSpace(spec[i+1:])) + " (run `shoplist categories`)"}
	}
	return model.ItemDraft{Name: name, Category: c}, nil
}
