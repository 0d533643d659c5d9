// Package cli wires the navcard command tree. Commands speak JSON on stdout
// (an envelope with a "data" key) so scripts can consume them; the TUI is the
// human surface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"navcard-cli/internal/format"
	"navcard-cli/internal/model"
	"navcard-cli/internal/nav"
	"navcard-cli/internal/store"
	"navcard-cli/internal/tui"
)

type App struct {
	Dir        string
	Card       string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "navcard",
		Short:        "Navigation cards for design handoff (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  navcard

  # Scriptable commands
  navcard card new --name "Main nav" --kind pages
  navcard add --label Home
  navcard tree

  # Direct node lookup (shortcut for: navcard show <node-id>)
  navcard nav-k2fe3a9q
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("NAVCARD_DIR", ""), "Path to store dir (overrides config and discovery)")
	cmd.PersistentFlags().StringVar(&app.Card, "card", envOr("NAVCARD_CARD", ""), "Card id or name (default: the current card)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("NAVCARD_FORMAT", "json"), "Output format (json|yaml)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newCardCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newTreeCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newCollapseCmd(app))
	cmd.AddCommand(newSetCmd(app))
	cmd.AddCommand(newDeleteCmd(app))
	cmd.AddCommand(newSelectCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newUICmd(app))

	return cmd
}

func runTUI(app *App) error {
	s, err := openStore(app)
	if err != nil {
		return err
	}
	return tui.Run(s, app.Card)
}

// openStore resolves the store directory:
// 1) --dir / NAVCARD_DIR
// 2) currentStore from the global config
// 3) nearest .navcard above the working dir, else .navcard in it
func openStore(app *App) (store.Store, error) {
	dir := app.Dir
	if dir == "" {
		if cfg, err := store.LoadGlobalConfig(); err == nil && cfg.CurrentStore != "" {
			dir = cfg.CurrentStore
		}
	}
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
	}
	app.Dir = dir
	return store.Store{Dir: dir}, nil
}

func loadCard(app *App) (store.Store, *store.Registry, model.Card, error) {
	s, err := openStore(app)
	if err != nil {
		return store.Store{}, nil, model.Card{}, err
	}
	reg, err := s.LoadRegistry()
	if err != nil {
		return s, nil, model.Card{}, err
	}
	c, ok := reg.ResolveCard(app.Card)
	if !ok {
		if strings.TrimSpace(app.Card) != "" {
			return s, reg, model.Card{}, fmt.Errorf("card not found: %s", strings.TrimSpace(app.Card))
		}
		return s, reg, model.Card{}, fmt.Errorf("no current card; run `navcard card new --name ...` first (or pass --card)")
	}
	return s, reg, *c, nil
}

func loadForest(app *App) (store.Store, model.Card, *nav.Forest, error) {
	s, _, card, err := loadCard(app)
	if err != nil {
		return s, model.Card{}, nil, err
	}
	f, err := nav.Load(s.CardRecords(card.ID), s.CardSequence(card.ID), &store.NodeIDs{})
	if err != nil {
		return s, card, nil, err
	}
	return s, card, f, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

// writeChanged is the envelope for mutations: the domain object under "data"
// plus whether anything was applied. Tolerant no-ops go through here with
// changed=false and a notice, and exit 0.
func writeChanged(cmd *cobra.Command, app *App, data any, changed bool, notice string) error {
	meta := map[string]any{"changed": changed}
	if notice != "" {
		meta["notice"] = notice
	}
	return writeOut(cmd, app, map[string]any{"data": data, "meta": meta})
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
