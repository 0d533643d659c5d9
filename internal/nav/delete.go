package nav

import "strings"

type DeleteResult struct {
	// Removed holds the deleted IDs in pre-order, the target first.
	Removed      []string
	Changed      bool
	EventPayload map[string]any
}

// DeleteItem removes id together with its whole descendant set from the
// sequence and the record store in one step. A selection pointing anywhere
// into the deleted set is cleared and never moved to a neighbor. Deleting an
// unknown ID is a no-op.
func DeleteItem(f *Forest, id string) (DeleteResult, error) {
	id = strings.TrimSpace(id)
	if f == nil || id == "" {
		return DeleteResult{}, nil
	}

	removed := f.collectSubtree(id)
	if len(removed) == 0 {
		return DeleteResult{}, nil
	}
	gone := map[string]bool{}
	for _, rid := range removed {
		gone[rid] = true
	}

	next := make([]string, 0, len(f.order))
	for _, oid := range f.order {
		if gone[oid] {
			continue
		}
		next = append(next, oid)
	}

	// Shrink the sequence first: liveness follows the sequence, so records
	// orphaned by a failed delete below are unreachable, not resurrected.
	if err := f.seq.Replace(next); err != nil {
		return DeleteResult{}, err
	}
	f.order = next
	for _, rid := range removed {
		delete(f.nodes, rid)
	}
	if gone[f.selected] {
		f.selected = ""
	}

	var firstErr error
	for _, rid := range removed {
		if err := f.records.Delete(rid); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return DeleteResult{
		Removed:      removed,
		Changed:      true,
		EventPayload: map[string]any{"removed": len(removed)},
	}, firstErr
}
