package cli

import (
	"fmt"
	"strings"

	"shoplist-cli/internal/docs"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show on-demand documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, envelope(app, map[string]any{"topics": docs.Topics()}))
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `shoplist docs` to list topics)", topic))
			}

			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			if strings.EqualFold(strings.TrimSpace(app.Format), "text") {
				out, err := renderDocs(body)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, out)
			}

			return writeOut(cmd, app, envelope(app, map[string]any{"topic": topic, "markdown": body}))
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no JSON envelope)")

	return cmd
}

// renderDocs renders markdown for a terminal. The notty style keeps output free
// of escape sequences so it can be piped.
func renderDocs(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
