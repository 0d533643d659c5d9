package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"navcard-cli/internal/nav"
)

func newMoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Reorder an entry among its siblings",
	}
	cmd.AddCommand(newMoveDirCmd(app, "up"))
	cmd.AddCommand(newMoveDirCmd(app, "down"))
	return cmd
}

func newMoveDirCmd(app *App, dir string) *cobra.Command {
	short := "Move an entry (with its subtree) before the previous sibling"
	if dir == "down" {
		short = "Move an entry (with its subtree) after the next sibling"
	}

	cmd := &cobra.Command{
		Use:   dir + " <node-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, card, f, err := loadForest(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			n, ok := f.Find(id)
			if !ok {
				return writeChanged(cmd, app, nil, false, "node not found: "+id)
			}

			var res nav.MoveResult
			if dir == "up" {
				res, err = nav.MoveUp(f, id)
			} else {
				res, err = nav.MoveDown(f, id)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			if !res.Changed {
				return writeChanged(cmd, app, n, false, "no sibling to move "+dir+" past")
			}

			_ = s.AppendEvent(cmd.Context(), card.ID, "node.move", id, res.EventPayload)
			return writeChanged(cmd, app, n, true, "")
		},
	}
	return cmd
}
