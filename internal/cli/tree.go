package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"navcard-cli/internal/nav"
)

func newTreeCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the card's outline, indented",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, card, f, err := loadForest(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", card.Name, card.Kind)
			ids := f.VisibleOrder()
			if all {
				ids = f.Order()
			}
			for _, id := range ids {
				n, ok := f.Find(id)
				if !ok {
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), treeLine(f, n.ID, all))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include entries hidden by collapsed parents")
	return cmd
}

func treeLine(f *nav.Forest, id string, all bool) string {
	n, _ := f.Find(id)

	var b strings.Builder
	fmt.Fprintf(&b, "%-14s", n.ID)
	b.WriteString(strings.Repeat("  ", nav.IndentLevel(n)))
	b.WriteString("- ")

	label := strings.TrimSpace(n.Label)
	if label == "" {
		label = "(untitled)"
	}
	b.WriteString(label)

	if n.Collapsed && !all {
		if hidden := len(f.Descendants(id)); hidden > 0 {
			fmt.Fprintf(&b, " (+%d)", hidden)
		}
	}
	if u := strings.TrimSpace(n.URL); u != "" {
		b.WriteString("  ")
		b.WriteString(u)
	}
	return b.String()
}
