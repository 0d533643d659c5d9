package nav

import (
	"strings"

	"navcard-cli/internal/model"
)

type MoveResult struct {
	Changed      bool
	EventPayload map[string]any
}

// MoveUp swaps id's subtree block with the preceding sibling's block. Both
// blocks stay internally untouched. Calling it on the first sibling, or on
// an unknown ID, changes nothing.
func MoveUp(f *Forest, id string) (MoveResult, error) {
	id = strings.TrimSpace(id)
	if f == nil || !f.CanMoveUp(id) {
		return MoveResult{}, nil
	}

	n := f.nodes[id]
	siblings := f.siblingIDs(n)
	at := indexOfID(siblings, id)
	prev := siblings[at-1]

	bStart, bEnd, ok := f.blockRange(id)
	if !ok {
		return MoveResult{}, nil
	}
	pStart, _, ok := f.blockRange(prev)
	if !ok {
		return MoveResult{}, nil
	}

	// prev's block ends before ours starts, so removing ours leaves pStart
	// in place and the block lands right before it.
	next := spliceBlock(f.order, bStart, bEnd, pStart)
	if err := f.seq.Replace(next); err != nil {
		return MoveResult{}, err
	}
	f.order = next
	return MoveResult{Changed: true, EventPayload: map[string]any{"direction": "up"}}, nil
}

// MoveDown is the mirror of MoveUp: id's block is reinserted directly after
// the next sibling's block.
func MoveDown(f *Forest, id string) (MoveResult, error) {
	id = strings.TrimSpace(id)
	if f == nil || !f.CanMoveDown(id) {
		return MoveResult{}, nil
	}

	n := f.nodes[id]
	siblings := f.siblingIDs(n)
	at := indexOfID(siblings, id)
	nextSib := siblings[at+1]

	bStart, bEnd, ok := f.blockRange(id)
	if !ok {
		return MoveResult{}, nil
	}
	_, qEnd, ok := f.blockRange(nextSib)
	if !ok {
		return MoveResult{}, nil
	}

	// After our block is spliced out everything behind it shifts left by
	// the block length, so the target slot is qEnd minus that.
	next := spliceBlock(f.order, bStart, bEnd, qEnd-(bEnd-bStart))
	if err := f.seq.Replace(next); err != nil {
		return MoveResult{}, err
	}
	f.order = next
	return MoveResult{Changed: true, EventPayload: map[string]any{"direction": "down"}}, nil
}

// CanMoveUp reports whether id has a sibling block before it. It agrees
// exactly with MoveUp actually changing the sequence.
func (f *Forest) CanMoveUp(id string) bool {
	if f == nil {
		return false
	}
	n, ok := f.nodes[strings.TrimSpace(id)]
	if !ok {
		return false
	}
	at := indexOfID(f.siblingIDs(n), n.ID)
	return at > 0
}

// CanMoveDown reports whether id has a sibling block after it, mirroring
// MoveDown the same way.
func (f *Forest) CanMoveDown(id string) bool {
	if f == nil {
		return false
	}
	n, ok := f.nodes[strings.TrimSpace(id)]
	if !ok {
		return false
	}
	siblings := f.siblingIDs(n)
	at := indexOfID(siblings, n.ID)
	return at >= 0 && at < len(siblings)-1
}

// siblingIDs returns the IDs sharing n's parent, in sequence order. The
// level must match too; stored data that breaks the level rule must never
// let blocks from different depths swap.
func (f *Forest) siblingIDs(n model.Node) []string {
	var out []string
	for _, id := range f.order {
		s := f.nodes[id]
		if s.Level != n.Level {
			continue
		}
		if !sameParent(s.ParentID, n.ParentID) {
			continue
		}
		out = append(out, id)
	}
	return out
}

func indexOfID(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// spliceBlock removes order[start:end] and reinserts it at insertAt, an
// index into the remaining slice.
func spliceBlock(order []string, start, end, insertAt int) []string {
	block := append([]string(nil), order[start:end]...)
	rest := make([]string, 0, len(order)-len(block))
	rest = append(rest, order[:start]...)
	rest = append(rest, order[end:]...)
	if insertAt < 0 {
		insertAt = 0
	}
	if insertAt > len(rest) {
		insertAt = len(rest)
	}
	next := make([]string, 0, len(order))
	next = append(next, rest[:insertAt]...)
	next = append(next, block...)
	next = append(next, rest[insertAt:]...)
	return next
}
