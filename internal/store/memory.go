package store

import (
	"strings"

	"navcard-cli/internal/model"
)

// MemRecords is an in-memory nav.Records, for tests and scratch rebuilds.
type MemRecords struct {
	Nodes map[string]model.Node
}

func NewMemRecords() *MemRecords {
	return &MemRecords{Nodes: map[string]model.Node{}}
}

func (m *MemRecords) Get(id string) (model.Node, bool) {
	n, ok := m.Nodes[strings.TrimSpace(id)]
	return n, ok
}

func (m *MemRecords) Set(n model.Node) error {
	m.Nodes[strings.TrimSpace(n.ID)] = n
	return nil
}

func (m *MemRecords) Delete(id string) error {
	delete(m.Nodes, strings.TrimSpace(id))
	return nil
}

// MemSequence is an in-memory nav.Sequence.
type MemSequence struct {
	IDs []string
}

func (m *MemSequence) Get() ([]string, error) {
	return append([]string(nil), m.IDs...), nil
}

func (m *MemSequence) Replace(ids []string) error {
	m.IDs = append([]string(nil), ids...)
	return nil
}
