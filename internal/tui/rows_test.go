package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"navcard-cli/internal/model"
	"navcard-cli/internal/nav"
	"navcard-cli/internal/store"
)

// buildForest seeds the shape used across the row tests:
//
//	Home
//	  Docs
//	    API
//	  Blog
//	About
func buildForest(t *testing.T) (*nav.Forest, map[string]string) {
	t.Helper()
	f, err := nav.Load(store.NewMemRecords(), &store.MemSequence{}, &store.NodeIDs{})
	if err != nil {
		t.Fatalf("load forest: %v", err)
	}

	ids := map[string]string{}
	add := func(name string, level model.Level, parent string) {
		res, err := nav.AddItem(f, level, parent)
		if err != nil || !res.Changed {
			t.Fatalf("add %s: changed=%v err=%v", name, res.Changed, err)
		}
		if _, err := nav.Update(f, res.Node.ID, nav.UpdateFields{Label: &name}); err != nil {
			t.Fatalf("label %s: %v", name, err)
		}
		ids[name] = res.Node.ID
	}

	add("Home", model.LevelPrimary, "")
	add("Docs", model.LevelSecondary, ids["Home"])
	add("API", model.LevelTertiary, ids["Docs"])
	add("Blog", model.LevelSecondary, ids["Home"])
	add("About", model.LevelPrimary, "")
	return f, ids
}

func rowLabels(rows []navRow) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r.node.Label)
	}
	return out
}

func TestFlattenRows_SkipsCollapsedSubtrees(t *testing.T) {
	f, ids := buildForest(t)

	rows := flattenRows(f)
	want := []string{"Home", "Docs", "API", "Blog", "About"}
	if got := rowLabels(rows); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	wantDepth := []int{0, 1, 2, 1, 0}
	for i, r := range rows {
		if r.depth != wantDepth[i] {
			t.Fatalf("depth[%d] = %d, want %d", i, r.depth, wantDepth[i])
		}
	}

	if _, err := nav.ToggleCollapsed(f, ids["Docs"]); err != nil {
		t.Fatalf("collapse Docs: %v", err)
	}
	rows = flattenRows(f)
	want = []string{"Home", "Docs", "Blog", "About"}
	if got := rowLabels(rows); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("rows after collapsing Docs = %v, want %v", got, want)
	}

	if _, err := nav.ToggleCollapsed(f, ids["Home"]); err != nil {
		t.Fatalf("collapse Home: %v", err)
	}
	rows = flattenRows(f)
	want = []string{"Home", "About"}
	if got := rowLabels(rows); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("rows after collapsing Home = %v, want %v", got, want)
	}
}

func TestNavRow_TwistyTracksChildrenAndCollapse(t *testing.T) {
	f, ids := buildForest(t)
	rows := flattenRows(f)

	if got := rows[rowIndexOf(rows, ids["Home"])].twisty(); got != glyphTwistyExpanded() {
		t.Fatalf("expanded parent twisty = %q", got)
	}
	if got := rows[rowIndexOf(rows, ids["API"])].twisty(); got != glyphBullet() {
		t.Fatalf("leaf twisty = %q", got)
	}

	if _, err := nav.ToggleCollapsed(f, ids["Docs"]); err != nil {
		t.Fatalf("collapse Docs: %v", err)
	}
	rows = flattenRows(f)
	if got := rows[rowIndexOf(rows, ids["Docs"])].twisty(); got != glyphTwistyCollapsed() {
		t.Fatalf("collapsed parent twisty = %q", got)
	}
}

func TestRenderRow_FixedWidthAndHighlight(t *testing.T) {
	old := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI256)
	t.Cleanup(func() { lipgloss.SetColorProfile(old) })

	r := navRow{
		node:  model.Node{ID: "nav-1", Level: model.LevelSecondary, Label: "Docs", URL: "https://example.com/docs"},
		depth: 1,
	}

	for _, focused := range []bool{false, true} {
		line := renderRow(30, r, focused, false)
		if got := xansi.StringWidth(line); got != 30 {
			t.Fatalf("focused=%v width = %d, want 30", focused, got)
		}
		if !strings.Contains(xansi.Strip(line), "Docs") {
			t.Fatalf("focused=%v row lost its label: %q", focused, line)
		}
	}

	plain := xansi.Strip(renderRow(60, r, false, true))
	if !strings.Contains(plain, "https://example.com/docs") {
		t.Fatalf("urls enabled but missing: %q", plain)
	}

	long := navRow{node: model.Node{ID: "nav-2", Level: model.LevelPrimary, Label: strings.Repeat("x", 80)}}
	if got := xansi.StringWidth(renderRow(20, long, true, false)); got != 20 {
		t.Fatalf("overflowing row width = %d, want 20", got)
	}
}
