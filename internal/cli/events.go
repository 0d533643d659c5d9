package cli

import (
	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	var limit int
	var tail int
	var allCards bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect the mutation history",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List events (oldest-first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			cardID := ""
			if !allCards {
				_, _, card, err := loadCard(app)
				if err != nil {
					return writeErr(cmd, err)
				}
				cardID = card.ID
			}

			if tail > 0 {
				evs, err := s.ReadEventsTail(cmd.Context(), cardID, tail)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": evs})
			}
			evs, err := s.ReadEvents(cmd.Context(), cardID, limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": evs})
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 200, "Max events to return (0 = all)")
	listCmd.Flags().IntVar(&tail, "tail", 0, "Return only the last N events")
	listCmd.Flags().BoolVar(&allCards, "all-cards", false, "Read events across every card")

	cmd.AddCommand(listCmd)
	return cmd
}
