package nav

import (
	"fmt"
	"strings"

	"navcard-cli/internal/model"
)

type AddResult struct {
	Node         model.Node
	Changed      bool
	EventPayload map[string]any
}

// AddItem creates a node at the given level under parentID and returns it.
// parentID == "" adds a root, which must be primary; otherwise the parent
// must exist and sit exactly one level above. A call that violates either
// rule changes nothing and reports Changed=false.
//
// Roots are appended at the end of the whole sequence. A child is inserted
// directly after its parent's current subtree block, making it the parent's
// last child.
func AddItem(f *Forest, level model.Level, parentID string) (AddResult, error) {
	parentID = strings.TrimSpace(parentID)
	if f == nil {
		return AddResult{}, nil
	}

	var parent *string
	insertAt := len(f.order)
	if parentID == "" {
		if level != model.LevelPrimary {
			return AddResult{}, nil
		}
	} else {
		p, ok := f.nodes[parentID]
		if !ok {
			return AddResult{}, nil
		}
		want, ok := level.ParentLevel()
		if !ok || p.Level != want {
			return AddResult{}, nil
		}
		pid := parentID
		parent = &pid
		_, end, ok := f.blockRange(parentID)
		if !ok {
			return AddResult{}, nil
		}
		insertAt = end
	}

	n := model.Node{
		ID:       f.freshID(),
		Level:    level,
		ParentID: parent,
	}

	next := make([]string, 0, len(f.order)+1)
	next = append(next, f.order[:insertAt]...)
	next = append(next, n.ID)
	next = append(next, f.order[insertAt:]...)

	// Record first, then sequence: the sequence must never reference a
	// record that is not durably there.
	if err := f.records.Set(n); err != nil {
		return AddResult{}, err
	}
	if err := f.seq.Replace(next); err != nil {
		return AddResult{}, err
	}
	f.order = next
	f.nodes[n.ID] = n

	payload := map[string]any{"level": string(level)}
	if parent != nil {
		payload["parentId"] = *parent
	}
	return AddResult{Node: n, Changed: true, EventPayload: payload}, nil
}

// freshID asks the ID source for candidates until one is unused. A source
// that keeps colliding is escaped by suffixing the last candidate, so the
// loop always terminates.
func (f *Forest) freshID() string {
	const maxAttempts = 64
	last := ""
	for i := 0; i < maxAttempts; i++ {
		id := strings.TrimSpace(f.ids.NextID())
		if id == "" {
			continue
		}
		last = id
		if _, exists := f.nodes[id]; !exists {
			return id
		}
	}
	if last == "" {
		last = "node"
	}
	for i := 2; ; i++ {
		id := fmt.Sprintf("%s-%d", last, i)
		if _, exists := f.nodes[id]; !exists {
			return id
		}
	}
}
