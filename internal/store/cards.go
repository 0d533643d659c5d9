package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"navcard-cli/internal/model"
)

const cardsFileName = "cards.json"

// Registry is the card catalog for a store directory, including which card
// commands act on by default.
type Registry struct {
	Version       int          `json:"version"`
	CurrentCardID string       `json:"currentCardId,omitempty"`
	Cards         []model.Card `json:"cards"`
}

func (s Store) cardsPath() string {
	return filepath.Join(s.Dir, cardsFileName)
}

func (s Store) LoadRegistry() (*Registry, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.cardsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Registry{Version: 1, Cards: []model.Card{}}, nil
		}
		return nil, err
	}
	var reg Registry
	if err := json.Unmarshal(b, &reg); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", cardsFileName, err)
	}
	if reg.Version == 0 {
		reg.Version = 1
	}
	if reg.Cards == nil {
		reg.Cards = []model.Card{}
	}
	return &reg, nil
}

func (s Store) SaveRegistry(reg *Registry) error {
	if reg == nil {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if reg.Version == 0 {
		reg.Version = 1
	}
	b, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.cardsPath(), b)
}

func (reg *Registry) FindCard(id string) (*model.Card, bool) {
	id = strings.TrimSpace(id)
	for i := range reg.Cards {
		if reg.Cards[i].ID == id {
			return &reg.Cards[i], true
		}
	}
	return nil, false
}

// FindCardByName matches on exact name, case-insensitively.
func (reg *Registry) FindCardByName(name string) (*model.Card, bool) {
	name = strings.TrimSpace(name)
	for i := range reg.Cards {
		if strings.EqualFold(reg.Cards[i].Name, name) {
			return &reg.Cards[i], true
		}
	}
	return nil, false
}

// ResolveCard accepts a card ID or name; an empty ref resolves to the
// current card.
func (reg *Registry) ResolveCard(ref string) (*model.Card, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		if reg.CurrentCardID == "" {
			return nil, false
		}
		return reg.FindCard(reg.CurrentCardID)
	}
	if c, ok := reg.FindCard(ref); ok {
		return c, true
	}
	return reg.FindCardByName(ref)
}

// AddCard registers a new card and makes it current when it is the first
// one. Name collisions are allowed; the ID disambiguates.
func (s Store) AddCard(reg *Registry, name string, kind model.CardKind, now time.Time) (model.Card, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Card{}, errors.New("store: card name is empty")
	}
	switch kind {
	case model.CardKindBasic, model.CardKindPages:
	default:
		return model.Card{}, fmt.Errorf("store: invalid card kind: %q", kind)
	}

	c := model.Card{
		ID:        s.nextCardID(reg),
		Name:      name,
		Kind:      kind,
		CreatedAt: now.UTC(),
	}
	reg.Cards = append(reg.Cards, c)
	if reg.CurrentCardID == "" {
		reg.CurrentCardID = c.ID
	}
	return c, s.SaveRegistry(reg)
}

func (s Store) RenameCard(reg *Registry, id, name string) (bool, error) {
	name = strings.TrimSpace(name)
	c, ok := reg.FindCard(id)
	if !ok || name == "" || c.Name == name {
		return false, nil
	}
	c.Name = name
	return true, s.SaveRegistry(reg)
}

// RemoveCard drops the card from the registry and erases its data. Removing
// an unknown card is a no-op.
func (s Store) RemoveCard(reg *Registry, id string) (bool, error) {
	id = strings.TrimSpace(id)
	at := -1
	for i := range reg.Cards {
		if reg.Cards[i].ID == id {
			at = i
			break
		}
	}
	if at < 0 {
		return false, nil
	}
	reg.Cards = append(reg.Cards[:at], reg.Cards[at+1:]...)
	if reg.CurrentCardID == id {
		reg.CurrentCardID = ""
		if len(reg.Cards) > 0 {
			reg.CurrentCardID = reg.Cards[0].ID
		}
	}
	if err := s.SaveRegistry(reg); err != nil {
		return false, err
	}
	return true, s.DropCardData(id)
}

func (s Store) SetCurrentCard(reg *Registry, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if _, ok := reg.FindCard(id); !ok {
		return false, nil
	}
	if reg.CurrentCardID == id {
		return false, nil
	}
	reg.CurrentCardID = id
	return true, s.SaveRegistry(reg)
}

// SortedCards returns the cards newest-first for listings.
func (reg *Registry) SortedCards() []model.Card {
	out := append([]model.Card(nil), reg.Cards...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
