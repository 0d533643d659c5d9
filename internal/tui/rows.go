package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"navcard-cli/internal/model"
	"navcard-cli/internal/nav"
)

// navRow is one visible line of the tree: a node plus the presentation
// facts the renderer needs.
type navRow struct {
	node        model.Node
	depth       int
	hasChildren bool
	collapsed   bool
}

// flattenRows projects the forest into the visible rows, top to bottom.
// Nodes under a collapsed ancestor never appear.
func flattenRows(f *nav.Forest) []navRow {
	var out []navRow
	for _, id := range f.VisibleOrder() {
		n, ok := f.Find(id)
		if !ok {
			continue
		}
		out = append(out, navRow{
			node:        n,
			depth:       nav.IndentLevel(n),
			hasChildren: f.HasChildren(id),
			collapsed:   n.Collapsed,
		})
	}
	return out
}

func rowIndexOf(rows []navRow, id string) int {
	for i, r := range rows {
		if r.node.ID == id {
			return i
		}
	}
	return -1
}

func (r navRow) twisty() string {
	if !r.hasChildren {
		return glyphBullet()
	}
	if r.collapsed {
		return glyphTwistyCollapsed()
	}
	return glyphTwistyExpanded()
}

// renderRow renders one line at exactly width cells. The focused row gets a
// full-width background highlight; the URL segment keeps its own style, so
// it is re-rendered on the highlight background rather than resetting it.
func renderRow(width int, r navRow, focused, showURLs bool) string {
	if width < 4 {
		return ""
	}

	indent := strings.Repeat("  ", r.depth)
	lead := indent + r.twisty() + " "
	label := displayLabel(r.node)

	urlTxt := ""
	if showURLs && strings.TrimSpace(r.node.URL) != "" {
		urlTxt = "  " + r.node.URL
	}

	if focused {
		base := styleSelectedRow()
		out := base.Render(lead+label) + styleURL().Background(colorSelectedBg).Render(urlTxt)
		return padOrCut(out, width, base)
	}

	out := lipgloss.NewStyle().Render(lead+label) + styleURL().Render(urlTxt)
	return padOrCut(out, width, lipgloss.NewStyle())
}

// padOrCut fills the line to width so a background highlight covers the
// whole row, or trims it when the content overflows.
func padOrCut(line string, width int, fill lipgloss.Style) string {
	w := xansi.StringWidth(line)
	if w < width {
		return line + fill.Render(strings.Repeat(" ", width-w))
	}
	if w > width {
		return xansi.Cut(line, 0, width)
	}
	return line
}
