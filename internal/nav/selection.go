package nav

import "strings"

// Select marks id as the selected node. Selecting an ID with no live record
// is ignored; the selection only ever references a live node.
func (f *Forest) Select(id string) {
	if f == nil {
		return
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	if _, ok := f.nodes[id]; !ok {
		return
	}
	f.selected = id
}

// Selected returns the selected ID, if any. Deletion clears the selection
// when it points into the deleted set; it never advances to a neighbor.
func (f *Forest) Selected() (string, bool) {
	if f == nil || f.selected == "" {
		return "", false
	}
	return f.selected, true
}

func (f *Forest) ClearSelection() {
	if f == nil {
		return
	}
	f.selected = ""
}
