package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"navcard-cli/internal/nav"
	"navcard-cli/internal/store"
)

func newDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <node-id>",
		Short: "Delete an entry and everything under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, card, f, err := loadForest(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			res, err := nav.DeleteItem(f, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !res.Changed {
				return writeChanged(cmd, app, nil, false, "node not found: "+id)
			}

			clearDeadTUISelection(s, res.Removed)
			_ = s.AppendEvent(cmd.Context(), card.ID, "node.delete", id, res.EventPayload)
			return writeChanged(cmd, app, map[string]any{
				"id":      id,
				"removed": res.Removed,
			}, true, "")
		},
	}
	return cmd
}

// clearDeadTUISelection drops a persisted TUI selection that points into the
// removed set, so the next TUI launch does not restore a dead node.
func clearDeadTUISelection(s store.Store, removed []string) {
	st, err := s.LoadTUIState()
	if err != nil || st.SelectedID == "" {
		return
	}
	for _, id := range removed {
		if st.SelectedID == id {
			st.SelectedID = ""
			_ = s.SaveTUIState(st)
			return
		}
	}
}
