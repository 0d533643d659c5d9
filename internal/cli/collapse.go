package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"navcard-cli/internal/nav"
)

func newCollapseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collapse <node-id>",
		Short: "Toggle an entry's collapsed state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, card, f, err := loadForest(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			res, err := nav.ToggleCollapsed(f, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !res.Changed {
				return writeChanged(cmd, app, nil, false, "node not found: "+id)
			}

			_ = s.AppendEvent(cmd.Context(), card.ID, "node.collapse", id, res.EventPayload)
			return writeChanged(cmd, app, res.Node, true, "")
		},
	}
	return cmd
}
