package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"navcard-cli/internal/publish"
)

func newPublishCmd(app *App) *cobra.Command {
	var toDir string
	var visibleOnly bool
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write derived Markdown handoff pages (not canonical)",
	}

	cardCmd := &cobra.Command{
		Use:   "card [card-id-or-name]",
		Short: "Publish a single card as Markdown",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			reg, err := s.LoadRegistry()
			if err != nil {
				return writeErr(cmd, err)
			}
			ref := app.Card
			if len(args) == 1 {
				ref = args[0]
			}
			c, ok := reg.ResolveCard(ref)
			if !ok {
				if strings.TrimSpace(ref) != "" {
					return writeErr(cmd, fmt.Errorf("card not found: %s", strings.TrimSpace(ref)))
				}
				return writeErr(cmd, errors.New("no current card; run `navcard card new --name ...` first (or pass --card)"))
			}
			res, err := publish.WriteCard(s, *c, toDir, publish.WriteOptions{
				VisibleOnly: visibleOnly,
				Overwrite:   overwrite,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}
	allCmd := &cobra.Command{
		Use:   "all",
		Short: "Publish every card plus a catalog index",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			reg, err := s.LoadRegistry()
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := publish.WriteAll(s, reg, toDir, publish.WriteOptions{
				VisibleOnly: visibleOnly,
				Overwrite:   overwrite,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.PersistentFlags().StringVar(&toDir, "to", "", "Output directory")
	_ = cmd.MarkPersistentFlagRequired("to")
	cmd.PersistentFlags().BoolVar(&visibleOnly, "visible-only", false, "Skip entries hidden under collapsed parents")
	cmd.PersistentFlags().BoolVar(&overwrite, "overwrite", true, "Overwrite existing files")

	cmd.AddCommand(cardCmd)
	cmd.AddCommand(allCmd)
	return cmd
}
