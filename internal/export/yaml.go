// Package export reads and writes the YAML form of a card: the nested
// entries shape that site generators and design handoff docs consume.
package export

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"navcard-cli/internal/model"
	"navcard-cli/internal/nav"
)

type Document struct {
	Card    CardMeta `yaml:"card"`
	Entries []Entry  `yaml:"entries"`
}

type CardMeta struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

type Entry struct {
	Label     string  `yaml:"label"`
	Title     string  `yaml:"title,omitempty"`
	URL       string  `yaml:"url,omitempty"`
	Collapsed bool    `yaml:"collapsed,omitempty"`
	Children  []Entry `yaml:"children,omitempty"`
}

// Marshal renders the card's outline as YAML. Children appear nested, in
// sequence order, so the document round-trips the outline exactly.
func Marshal(card model.Card, f *nav.Forest) ([]byte, error) {
	doc := Document{
		Card:    CardMeta{Name: card.Name, Kind: string(card.Kind)},
		Entries: entriesUnder(f, ""),
	}
	return yaml.Marshal(doc)
}

func entriesUnder(f *nav.Forest, parentID string) []Entry {
	var out []Entry
	for _, n := range f.Children(parentID) {
		out = append(out, Entry{
			Label:     n.Label,
			Title:     n.PageTitle,
			URL:       n.URL,
			Collapsed: n.Collapsed,
			Children:  entriesUnder(f, n.ID),
		})
	}
	return out
}

func Unmarshal(b []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return Document{}, fmt.Errorf("export: parse document: %w", err)
	}
	return doc, nil
}

// Validate rejects documents the outline cannot hold, currently entries
// nested deeper than three levels.
func Validate(doc Document) error {
	return checkDepth(doc.Entries, 1)
}

// Apply replays the document's entries into the forest, preserving document
// order. Entries nested deeper than the outline allows are rejected before
// anything is written.
func Apply(doc Document, f *nav.Forest) error {
	if err := Validate(doc); err != nil {
		return err
	}
	return applyEntries(f, doc.Entries, model.LevelPrimary, "")
}

func checkDepth(entries []Entry, depth int) error {
	if len(entries) == 0 {
		return nil
	}
	if depth > 3 {
		return fmt.Errorf("export: entries nested %d deep, outline allows 3", depth)
	}
	for _, e := range entries {
		if err := checkDepth(e.Children, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func applyEntries(f *nav.Forest, entries []Entry, level model.Level, parentID string) error {
	for _, e := range entries {
		res, err := nav.AddItem(f, level, parentID)
		if err != nil {
			return err
		}
		if !res.Changed {
			return fmt.Errorf("export: add %s entry under %q failed", level, parentID)
		}
		id := res.Node.ID

		fields := nav.UpdateFields{}
		if strings.TrimSpace(e.Label) != "" {
			label := e.Label
			fields.Label = &label
		}
		if strings.TrimSpace(e.Title) != "" {
			title := e.Title
			fields.PageTitle = &title
		}
		if strings.TrimSpace(e.URL) != "" {
			url := e.URL
			fields.URL = &url
		}
		if fields.Label != nil || fields.PageTitle != nil || fields.URL != nil {
			if _, err := nav.Update(f, id, fields); err != nil {
				return err
			}
		}
		if e.Collapsed {
			if _, err := nav.ToggleCollapsed(f, id); err != nil {
				return err
			}
		}

		if len(e.Children) > 0 {
			child, ok := level.ChildLevel()
			if !ok {
				return fmt.Errorf("export: %s entries cannot have children", level)
			}
			if err := applyEntries(f, e.Children, child, id); err != nil {
				return err
			}
		}
	}
	return nil
}
