package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <node-id>",
		Short: "Show one entry with its place in the outline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, card, f, err := loadForest(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			n, ok := f.Find(id)
			if !ok {
				return writeChanged(cmd, app, nil, false, "node not found: "+id)
			}

			children := f.Children(id)
			childIDs := make([]string, 0, len(children))
			for _, ch := range children {
				childIDs = append(childIDs, ch.ID)
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"node":        n,
					"cardId":      card.ID,
					"children":    childIDs,
					"descendants": len(f.Descendants(id)),
					"hidden":      f.IsHidden(id),
					"canMoveUp":   f.CanMoveUp(id),
					"canMoveDown": f.CanMoveDown(id),
				},
			})
		},
	}
	return cmd
}
