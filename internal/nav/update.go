package nav

import (
	"strings"

	"navcard-cli/internal/model"
)

type ToggleResult struct {
	Node         model.Node
	Changed      bool
	EventPayload map[string]any
}

// ToggleCollapsed flips the node's collapsed flag in place. The sequence is
// not touched; visibility queries pick the change up immediately.
func ToggleCollapsed(f *Forest, id string) (ToggleResult, error) {
	id = strings.TrimSpace(id)
	if f == nil || id == "" {
		return ToggleResult{}, nil
	}
	n, ok := f.nodes[id]
	if !ok {
		return ToggleResult{}, nil
	}

	n.Collapsed = !n.Collapsed
	if err := f.records.Set(n); err != nil {
		return ToggleResult{}, err
	}
	f.nodes[id] = n

	return ToggleResult{
		Node:         n,
		Changed:      true,
		EventPayload: map[string]any{"collapsed": n.Collapsed},
	}, nil
}

// UpdateFields carries payload changes. A nil field is left alone; a set
// field is assigned as-is. Identity, level, parent, collapsed state and
// position are never reachable from here.
type UpdateFields struct {
	Label     *string
	PageTitle *string
	URL       *string
}

type UpdateResult struct {
	Node         model.Node
	Changed      bool
	EventPayload map[string]any
}

// Update merges payload fields into the node record, field by field.
func Update(f *Forest, id string, fields UpdateFields) (UpdateResult, error) {
	id = strings.TrimSpace(id)
	if f == nil || id == "" {
		return UpdateResult{}, nil
	}
	n, ok := f.nodes[id]
	if !ok {
		return UpdateResult{}, nil
	}

	changed := false
	payload := map[string]any{}
	if fields.Label != nil && n.Label != *fields.Label {
		n.Label = *fields.Label
		payload["label"] = n.Label
		changed = true
	}
	if fields.PageTitle != nil && n.PageTitle != *fields.PageTitle {
		n.PageTitle = *fields.PageTitle
		payload["pageTitle"] = n.PageTitle
		changed = true
	}
	if fields.URL != nil && n.URL != *fields.URL {
		n.URL = *fields.URL
		payload["url"] = n.URL
		changed = true
	}
	if !changed {
		return UpdateResult{Node: n, Changed: false}, nil
	}

	if err := f.records.Set(n); err != nil {
		return UpdateResult{}, err
	}
	f.nodes[id] = n

	return UpdateResult{Node: n, Changed: true, EventPayload: payload}, nil
}
