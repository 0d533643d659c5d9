// Package nav implements the ordered outline engine behind a navigation card.
//
// A card's outline is a forest of at most three levels (primary, secondary,
// tertiary) stored in two collaborator-backed structures: a flat, totally
// ordered sequence of node IDs and a keyed record store mapping ID to node.
// The sequence is always a depth-first pre-order traversal of the forest, so
// every node's descendants occupy a contiguous run immediately after it and
// subtree moves are plain splices.
package nav

import (
	"strings"

	"navcard-cli/internal/model"
)

// Records is the keyed node store collaborator.
type Records interface {
	Get(id string) (model.Node, bool)
	Set(n model.Node) error
	Delete(id string) error
}

// Sequence is the ordered-ID-list collaborator. Replace swaps the whole
// sequence; partial updates are never written.
type Sequence interface {
	Get() ([]string, error)
	Replace(ids []string) error
}

// IDSource supplies candidate node IDs. The forest checks candidates against
// live IDs and keeps asking until it gets a fresh one.
type IDSource interface {
	NextID() string
}

// Forest owns one card's outline. All operations run to completion
// synchronously and leave the sequence and record store mutually consistent;
// the in-memory mirror only advances after the collaborators accepted the
// write, so a failed write leaves the observable state unchanged.
//
// Forest is not safe for concurrent use. Callers serialize access (the TUI
// event loop and one-shot CLI commands both do naturally).
type Forest struct {
	records Records
	seq     Sequence
	ids     IDSource

	order    []string
	nodes    map[string]model.Node
	selected string
}

// Load reads the sequence and resolves every entry against the record store.
// Entries without a record and duplicate entries are dropped from the mirror
// rather than failing the load; the next successful mutation persists the
// cleaned sequence.
func Load(records Records, seq Sequence, ids IDSource) (*Forest, error) {
	f := &Forest{
		records: records,
		seq:     seq,
		ids:     ids,
		nodes:   map[string]model.Node{},
	}

	raw, err := seq.Get()
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		n, ok := records.Get(id)
		if !ok {
			continue
		}
		seen[id] = true
		f.order = append(f.order, id)
		f.nodes[id] = n
	}
	return f, nil
}

// Find returns a copy of the node, so callers never alias stored records.
func (f *Forest) Find(id string) (model.Node, bool) {
	if f == nil {
		return model.Node{}, false
	}
	n, ok := f.nodes[strings.TrimSpace(id)]
	return n, ok
}

// Order returns a copy of the full ID sequence, hidden nodes included.
func (f *Forest) Order() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.order...)
}

func (f *Forest) Len() int {
	if f == nil {
		return 0
	}
	return len(f.order)
}

// Children returns the live nodes whose parent is parentID, in sequence
// order. parentID == "" selects the roots. Plain O(n) scan; outlines in a
// card stay small.
func (f *Forest) Children(parentID string) []model.Node {
	if f == nil {
		return nil
	}
	parentID = strings.TrimSpace(parentID)
	var out []model.Node
	for _, id := range f.order {
		n := f.nodes[id]
		if parentKey(n.ParentID) != parentID {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Roots returns the primary nodes in sequence order.
func (f *Forest) Roots() []model.Node {
	return f.Children("")
}

// Descendants returns everything below id in pre-order, not including id
// itself. It terminates even when stored parent links form a cycle.
func (f *Forest) Descendants(id string) []model.Node {
	ids := f.collectSubtree(id)
	if len(ids) <= 1 {
		return nil
	}
	out := make([]model.Node, 0, len(ids)-1)
	for _, did := range ids[1:] {
		out = append(out, f.nodes[did])
	}
	return out
}

// collectSubtree returns id plus all descendants in pre-order. The seen map
// guards against cycles in corrupted stored data.
func (f *Forest) collectSubtree(rootID string) []string {
	rootID = strings.TrimSpace(rootID)
	if f == nil || rootID == "" {
		return nil
	}
	if _, ok := f.nodes[rootID]; !ok {
		return nil
	}
	out := []string{}
	seen := map[string]bool{}
	var walk func(id string)
	walk = func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		out = append(out, id)
		for _, ch := range f.Children(id) {
			walk(ch.ID)
		}
	}
	walk(rootID)
	return out
}

func (f *Forest) indexOf(id string) int {
	for i, oid := range f.order {
		if oid == id {
			return i
		}
	}
	return -1
}

// blockRange returns the half-open sequence range holding id's subtree
// block. Membership is checked against the subtree set, so a store with a
// broken contiguity guarantee still yields a well-formed (if partial) range.
func (f *Forest) blockRange(id string) (int, int, bool) {
	start := f.indexOf(id)
	if start < 0 {
		return 0, 0, false
	}
	in := map[string]bool{}
	for _, sid := range f.collectSubtree(id) {
		in[sid] = true
	}
	end := start + 1
	for end < len(f.order) && in[f.order[end]] {
		end++
	}
	return start, end, true
}

func parentKey(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func sameParent(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return strings.TrimSpace(*a) == strings.TrimSpace(*b)
}
