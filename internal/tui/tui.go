// Package tui is the interactive tree editor for a navigation card.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"navcard-cli/internal/debug"
	"navcard-cli/internal/nav"
	"navcard-cli/internal/store"
)

// Run opens the editor on one card. cardRef may be a card ID, a name, or
// empty for the current card.
func Run(s store.Store, cardRef string) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()

	reg, err := s.LoadRegistry()
	if err != nil {
		return err
	}
	card, ok := reg.ResolveCard(cardRef)
	if !ok {
		if strings.TrimSpace(cardRef) != "" {
			return fmt.Errorf("card not found: %s", strings.TrimSpace(cardRef))
		}
		return fmt.Errorf("no current card; run `navcard card new --name ...` first")
	}

	f, err := nav.Load(s.CardRecords(card.ID), s.CardSequence(card.ID), &store.NodeIDs{})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watch, err := s.Watch(ctx)
	if err != nil {
		// The editor still works without live reload.
		debug.Logf("tui: watch disabled: %v", err)
		watch = nil
	}

	m := newAppModel(s, *card, f, watch)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
