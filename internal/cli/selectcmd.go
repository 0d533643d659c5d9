package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

// Selection is screen state, so the CLI edits the same persisted TUI state
// the interactive view restores from.
func newSelectCmd(app *App) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "select [node-id]",
		Short: "Select an entry for the next TUI session (or --clear)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if clear && len(args) == 1 {
				return writeErr(cmd, errors.New("pass a node id or --clear, not both"))
			}
			if !clear && len(args) == 0 {
				return writeErr(cmd, errors.New("pass a node id or --clear"))
			}

			s, _, f, err := loadForest(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := s.LoadTUIState()
			if err != nil {
				return writeErr(cmd, err)
			}

			if clear {
				changed := st.SelectedID != ""
				st.SelectedID = ""
				if err := s.SaveTUIState(st); err != nil {
					return writeErr(cmd, err)
				}
				return writeChanged(cmd, app, map[string]any{"selected": ""}, changed, "")
			}

			id := strings.TrimSpace(args[0])
			if _, ok := f.Find(id); !ok {
				return writeChanged(cmd, app, nil, false, "node not found: "+id)
			}
			changed := st.SelectedID != id
			st.SelectedID = id
			if err := s.SaveTUIState(st); err != nil {
				return writeErr(cmd, err)
			}
			return writeChanged(cmd, app, map[string]any{"selected": id}, changed, "")
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Clear the selection")
	return cmd
}
