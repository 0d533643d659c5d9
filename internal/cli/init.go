package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"navcard-cli/internal/store"
)

func newInitCmd(app *App) *cobra.Command {
	var use bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a store directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Ensure(); err != nil {
				return writeErr(cmd, err)
			}
			reg, err := s.LoadRegistry()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.SaveRegistry(reg); err != nil {
				return writeErr(cmd, err)
			}

			// Record the store in the global config so later invocations from
			// anywhere find it. First store wins; --use overrides.
			if cfg, err := store.LoadGlobalConfig(); err == nil {
				if cfg.CurrentStore == "" || use {
					cfg.CurrentStore = app.Dir
					_ = store.SaveGlobalConfig(cfg)
				}
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":        app.Dir,
					"cardsPath":  filepath.Join(app.Dir, "cards.json"),
					"eventsPath": filepath.Join(app.Dir, "events.sqlite"),
					"cards":      len(reg.Cards),
				},
			})
		},
	}

	cmd.Flags().BoolVar(&use, "use", false, "Make this the current store even if one is already set")
	return cmd
}
