package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"navcard-cli/internal/nav"
)

func newSetCmd(app *App) *cobra.Command {
	var label string
	var title string
	var url string

	cmd := &cobra.Command{
		Use:   "set <node-id>",
		Short: "Set an entry's label, page title, or URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := updateFieldsFromFlags(cmd, label, title, url)
			if fields.Label == nil && fields.PageTitle == nil && fields.URL == nil {
				return writeErr(cmd, errors.New("provide at least one of --label, --title, --url"))
			}

			s, card, f, err := loadForest(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			if _, ok := f.Find(id); !ok {
				return writeChanged(cmd, app, nil, false, "node not found: "+id)
			}

			res, err := nav.Update(f, id, fields)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !res.Changed {
				return writeChanged(cmd, app, res.Node, false, "nothing to change")
			}

			_ = s.AppendEvent(cmd.Context(), card.ID, "node.update", id, res.EventPayload)
			return writeChanged(cmd, app, res.Node, true, "")
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Entry label (empty clears)")
	cmd.Flags().StringVar(&title, "title", "", "Page title (empty clears)")
	cmd.Flags().StringVar(&url, "url", "", "URL (empty clears)")
	return cmd
}
