// Package publish renders cards as derived Markdown handoff pages. The
// pages are artifacts for sharing with a team, never read back; the store
// stays canonical.
package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"navcard-cli/internal/model"
	"navcard-cli/internal/nav"
	"navcard-cli/internal/store"
)

type WriteOptions struct {
	VisibleOnly bool
	Overwrite   bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteCard renders one card to <to>/cards/<card-id>.md.
func WriteCard(s store.Store, card model.Card, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	f, err := loadCardForest(s, card.ID)
	if err != nil {
		return WriteResult{}, err
	}
	md, err := RenderCardMarkdown(card, f, RenderOptions{VisibleOnly: opt.VisibleOnly})
	if err != nil {
		return WriteResult{}, err
	}

	outDir := filepath.Join(toDir, "cards")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	outPath := filepath.Join(outDir, card.ID+".md")
	if err := writeFile(outPath, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{outPath}}, nil
}

// WriteAll renders the catalog index plus one page per card. It stops on the
// first error, which can leave earlier pages already written.
func WriteAll(s store.Store, reg *store.Registry, toDir string, opt WriteOptions) (WriteResult, error) {
	if reg == nil {
		return WriteResult{}, errors.New("missing registry")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	cardsDir := filepath.Join(toDir, "cards")
	if err := os.MkdirAll(cardsDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	written := make([]string, 0, len(reg.Cards)+1)
	entries := make([]IndexEntry, 0, len(reg.Cards))
	for _, card := range reg.SortedCards() {
		f, err := loadCardForest(s, card.ID)
		if err != nil {
			return WriteResult{}, err
		}
		md, err := RenderCardMarkdown(card, f, RenderOptions{VisibleOnly: opt.VisibleOnly})
		if err != nil {
			return WriteResult{}, err
		}
		p := filepath.Join(cardsDir, card.ID+".md")
		if err := writeFile(p, []byte(md), opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, p)
		entries = append(entries, IndexEntry{Card: card, Entries: f.Len()})
	}

	indexMD, err := RenderIndexMarkdown(entries)
	if err != nil {
		return WriteResult{}, err
	}
	indexPath := filepath.Join(toDir, "index.md")
	if err := writeFile(indexPath, []byte(indexMD), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	written = append(written, indexPath)

	return WriteResult{Written: written}, nil
}

func loadCardForest(s store.Store, cardID string) (*nav.Forest, error) {
	return nav.Load(s.CardRecords(cardID), s.CardSequence(cardID), &store.NodeIDs{})
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
