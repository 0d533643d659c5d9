package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var errDoctorIssuesFound = errors.New("doctor: issues found")

func newDoctorCmd(app *App) *cobra.Command {
	var repair bool
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check a card's sequence against its records",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, card, err := loadCard(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			report, err := s.Doctor(card.ID, repair)
			if err != nil {
				return writeErr(cmd, err)
			}

			if err := writeOut(cmd, app, map[string]any{
				"data": report,
				"meta": map[string]any{"clean": report.Clean() || report.Repaired},
			}); err != nil {
				return err
			}

			if fail && !report.Clean() && !report.Repaired {
				return errDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&repair, "repair", false, "Repair the mismatches instead of only reporting them")
	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if issues are found")
	return cmd
}
