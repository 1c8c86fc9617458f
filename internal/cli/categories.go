package cli

import (
	"shoplist-cli/internal/model"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List item categories with their open item counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := app.snapshot().CategoryCounts(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			out := make(categoryViews, 0, len(model.Categories()))
			for _, c := range model.Categories() {
				out = append(out, categoryView{ID: c, Label: c.Label(), Open: counts[c]})
			}
			return writeOut(cmd, app, envelope(app, out))
		},
	}
}
