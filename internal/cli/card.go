package cli

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"navcard-cli/internal/model"
)

func newCardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Card commands",
	}
	cmd.AddCommand(newCardNewCmd(app))
	cmd.AddCommand(newCardListCmd(app))
	cmd.AddCommand(newCardUseCmd(app))
	cmd.AddCommand(newCardRenameCmd(app))
	cmd.AddCommand(newCardDeleteCmd(app))
	return cmd
}

func newCardNewCmd(app *App) *cobra.Command {
	var name string
	var kind string
	var use bool

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a card",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			reg, err := s.LoadRegistry()
			if err != nil {
				return writeErr(cmd, err)
			}

			c, err := s.AddCard(reg, name, model.CardKind(strings.TrimSpace(kind)), time.Now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if use {
				if _, err := s.SetCurrentCard(reg, c.ID); err != nil {
					return writeErr(cmd, err)
				}
			}

			_ = s.AppendEvent(cmd.Context(), c.ID, "card.new", c.ID, map[string]any{"name": c.Name, "kind": c.Kind})
			return writeOut(cmd, app, map[string]any{"data": c})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Card name")
	cmd.Flags().StringVar(&kind, "kind", string(model.CardKindBasic), "Card kind (basic|pages)")
	cmd.Flags().BoolVar(&use, "use", false, "Make this the current card")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newCardListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cards (newest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			reg, err := s.LoadRegistry()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": reg.SortedCards(),
				"meta": map[string]any{"current": reg.CurrentCardID},
			})
		},
	}
	return cmd
}

func newCardUseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <card-id-or-name>",
		Short: "Make a card the current one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			reg, err := s.LoadRegistry()
			if err != nil {
				return writeErr(cmd, err)
			}
			c, ok := reg.ResolveCard(args[0])
			if !ok {
				return writeChanged(cmd, app, nil, false, "card not found: "+strings.TrimSpace(args[0]))
			}
			changed, err := s.SetCurrentCard(reg, c.ID)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeChanged(cmd, app, c, changed, "")
		},
	}
	return cmd
}

func newCardRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <card-id-or-name>",
		Short: "Rename a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				return writeErr(cmd, errors.New("missing --name"))
			}
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			reg, err := s.LoadRegistry()
			if err != nil {
				return writeErr(cmd, err)
			}
			c, ok := reg.ResolveCard(args[0])
			if !ok {
				return writeChanged(cmd, app, nil, false, "card not found: "+strings.TrimSpace(args[0]))
			}
			changed, err := s.RenameCard(reg, c.ID, name)
			if err != nil {
				return writeErr(cmd, err)
			}
			if changed {
				_ = s.AppendEvent(cmd.Context(), c.ID, "card.rename", c.ID, map[string]any{"name": c.Name})
			}
			return writeChanged(cmd, app, c, changed, "")
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New card name")
	return cmd
}

func newCardDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <card-id-or-name>",
		Short: "Delete a card and its outline (events are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			reg, err := s.LoadRegistry()
			if err != nil {
				return writeErr(cmd, err)
			}
			c, ok := reg.ResolveCard(args[0])
			if !ok {
				return writeChanged(cmd, app, nil, false, "card not found: "+strings.TrimSpace(args[0]))
			}
			id, name := c.ID, c.Name
			changed, err := s.RemoveCard(reg, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if changed {
				_ = s.AppendEvent(cmd.Context(), id, "card.delete", id, map[string]any{"name": name})
			}
			return writeChanged(cmd, app, map[string]any{"id": id}, changed, "")
		},
	}
	return cmd
}
