package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"navcard-cli/internal/export"
	"navcard-cli/internal/nav"
)

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the card's outline as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, card, f, err := loadForest(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := export.Marshal(card, f)
			if err != nil {
				return writeErr(cmd, err)
			}

			if strings.TrimSpace(out) == "" {
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"path": out, "bytes": len(b), "entries": f.Len()},
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to a file instead of stdout")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replay a YAML outline into the card",
		Long: strings.TrimSpace(`
Replay a YAML outline into the card. Imported entries are appended after the
existing ones; --replace clears the card first.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, err := export.Unmarshal(b)
			if err != nil {
				return writeErr(cmd, err)
			}
			// Validated before --replace clears anything; a rejected
			// document leaves the outline untouched.
			if err := export.Validate(doc); err != nil {
				return writeErr(cmd, err)
			}

			s, card, f, err := loadForest(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var removedIDs []string
			if replace {
				for _, root := range f.Roots() {
					res, err := nav.DeleteItem(f, root.ID)
					if err != nil {
						return writeErr(cmd, err)
					}
					removedIDs = append(removedIDs, res.Removed...)
				}
			}
			removed := len(removedIDs)

			before := f.Len()
			if err := export.Apply(doc, f); err != nil {
				return writeErr(cmd, err)
			}
			added := f.Len() - before

			if removed > 0 {
				clearDeadTUISelection(s, removedIDs)
			}
			_ = s.AppendEvent(cmd.Context(), card.ID, "card.import", card.ID, map[string]any{
				"added":    added,
				"removed":  removed,
				"replaced": replace,
			})
			return writeChanged(cmd, app, map[string]any{
				"added":   added,
				"removed": removed,
				"total":   f.Len(),
			}, added > 0 || removed > 0, "")
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Clear the card before importing")
	return cmd
}
