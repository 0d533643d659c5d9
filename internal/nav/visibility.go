package nav

import (
	"strings"

	"navcard-cli/internal/model"
)

// IsHidden reports whether any ancestor of id is collapsed. The walk follows
// parent links upward and stops at the first collapsed ancestor; a parent
// reference that does not resolve ends the walk as not-hidden from that
// point. Nothing is cached, and a cyclic parent chain terminates.
func (f *Forest) IsHidden(id string) bool {
	if f == nil {
		return false
	}
	n, ok := f.nodes[strings.TrimSpace(id)]
	if !ok {
		return false
	}

	seen := map[string]bool{n.ID: true}
	for {
		pid := parentKey(n.ParentID)
		if pid == "" || seen[pid] {
			return false
		}
		parent, ok := f.nodes[pid]
		if !ok {
			return false
		}
		if parent.Collapsed {
			return true
		}
		seen[pid] = true
		n = parent
	}
}

// IndentLevel returns the indent depth for a node, straight off its level.
func IndentLevel(n model.Node) int {
	return n.Level.Depth()
}

// VisibleOrder returns the sequence with every hidden node filtered out.
// This is the row source for rendering: collapsed nodes stay visible
// themselves, their descendants do not.
func (f *Forest) VisibleOrder() []string {
	if f == nil {
		return nil
	}
	out := make([]string, 0, len(f.order))
	for _, id := range f.order {
		if f.IsHidden(id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// HasChildren reports whether id has at least one direct child. Rendering
// uses it to decide whether a collapse marker makes sense.
func (f *Forest) HasChildren(id string) bool {
	if f == nil {
		return false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	for _, n := range f.nodes {
		if parentKey(n.ParentID) == id {
			return true
		}
	}
	return false
}
