package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"navcard-cli/internal/model"
	"navcard-cli/internal/nav"
	"navcard-cli/internal/store"
)

func newTestApp(t *testing.T) appModel {
	t.Helper()

	s := store.Store{Dir: t.TempDir()}
	card := model.Card{ID: "card-test", Name: "Main nav", Kind: model.CardKindPages}
	f, err := nav.Load(s.CardRecords(card.ID), s.CardSequence(card.ID), &store.NodeIDs{})
	if err != nil {
		t.Fatalf("load forest: %v", err)
	}

	m := newAppModel(s, card, f, nil)
	mAny, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return mAny.(appModel)
}

// seedOutline adds Home > (Docs > API, Blog) directly through the engine and
// refreshes the rows, as if the nodes were already on disk at launch.
func seedOutline(t *testing.T, m *appModel) map[string]string {
	t.Helper()
	ids := map[string]string{}
	add := func(name string, level model.Level, parent string) {
		res, err := nav.AddItem(m.forest, level, parent)
		if err != nil || !res.Changed {
			t.Fatalf("seed %s: changed=%v err=%v", name, res.Changed, err)
		}
		if _, err := nav.Update(m.forest, res.Node.ID, nav.UpdateFields{Label: &name}); err != nil {
			t.Fatalf("seed label %s: %v", name, err)
		}
		ids[name] = res.Node.ID
	}
	add("Home", model.LevelPrimary, "")
	add("Docs", model.LevelSecondary, ids["Home"])
	add("API", model.LevelTertiary, ids["Docs"])
	add("Blog", model.LevelSecondary, ids["Home"])
	m.refreshRows("")
	return ids
}

func press(t *testing.T, m appModel, keys ...string) appModel {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		mAny, _ := m.Update(msg)
		m = mAny.(appModel)
	}
	return m
}

func cursorID(t *testing.T, m appModel) string {
	t.Helper()
	r, ok := m.currentRow()
	if !ok {
		t.Fatalf("no row under cursor (cursor=%d rows=%d)", m.cursor, len(m.rows))
	}
	return r.node.ID
}

func moveCursorTo(t *testing.T, m appModel, id string) appModel {
	t.Helper()
	at := rowIndexOf(m.rows, id)
	if at < 0 {
		t.Fatalf("node %s not visible", id)
	}
	m.setCursor(at)
	return m
}

func TestKeys_AddRootOpensLabelInput(t *testing.T) {
	m := newTestApp(t)

	m = press(t, m, "a")
	if m.mode != modeInput || m.inputKind != inputLabel {
		t.Fatalf("expected label input after add, mode=%v kind=%v", m.mode, m.inputKind)
	}
	if m.forest.Len() != 1 {
		t.Fatalf("expected one node, got %d", m.forest.Len())
	}

	m = press(t, m, "Home", "enter")
	if m.mode != modeTree {
		t.Fatalf("enter should close the input, mode=%v", m.mode)
	}
	roots := m.forest.Roots()
	if len(roots) != 1 || roots[0].Label != "Home" {
		t.Fatalf("roots = %+v", roots)
	}

	// The new node also landed in the durable sequence.
	ids, err := m.store.CardSequence(m.card.ID).Get()
	if err != nil || len(ids) != 1 {
		t.Fatalf("persisted sequence = %v (err %v)", ids, err)
	}
}

func TestKeys_AddChildUnderCursor(t *testing.T) {
	m := newTestApp(t)
	ids := seedOutline(t, &m)

	m = moveCursorTo(t, m, ids["Blog"])
	m = press(t, m, "o", "Press", "enter")

	blogKids := m.forest.Children(ids["Blog"])
	if len(blogKids) != 1 || blogKids[0].Label != "Press" {
		t.Fatalf("children of Blog = %+v", blogKids)
	}
	if blogKids[0].Level != model.LevelTertiary {
		t.Fatalf("child level = %s, want tertiary", blogKids[0].Level)
	}

	// A third-level node refuses children.
	m = moveCursorTo(t, m, ids["API"])
	before := m.forest.Len()
	m = press(t, m, "o")
	if m.mode != modeTree || m.forest.Len() != before {
		t.Fatalf("third-level add should refuse; mode=%v len=%d", m.mode, m.forest.Len())
	}
	if m.minibuffer == "" {
		t.Fatalf("expected a refusal message")
	}
}

func TestKeys_MoveCarriesWholeBlock(t *testing.T) {
	m := newTestApp(t)
	ids := seedOutline(t, &m)

	m = moveCursorTo(t, m, ids["Docs"])
	m = press(t, m, "J")

	want := []string{ids["Home"], ids["Blog"], ids["Docs"], ids["API"]}
	if got := m.forest.Order(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("order after J = %v, want %v", got, want)
	}
	if got := cursorID(t, m); got != ids["Docs"] {
		t.Fatalf("cursor drifted to %s", got)
	}

	m = press(t, m, "K")
	want = []string{ids["Home"], ids["Docs"], ids["API"], ids["Blog"]}
	if got := m.forest.Order(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("order after K = %v, want %v", got, want)
	}

	// First sibling; K is a no-op.
	m = press(t, m, "K")
	if got := m.forest.Order(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("boundary K changed order: %v", got)
	}
}

func TestKeys_DeleteAsksAndCascades(t *testing.T) {
	m := newTestApp(t)
	ids := seedOutline(t, &m)

	m = moveCursorTo(t, m, ids["Docs"])
	m = press(t, m, "d")
	if m.mode != modeConfirmDelete || m.confirmDeleteCount != 2 {
		t.Fatalf("expected confirm for 2 items, mode=%v count=%d", m.mode, m.confirmDeleteCount)
	}

	m = press(t, m, "n")
	if m.mode != modeTree || m.forest.Len() != 4 {
		t.Fatalf("n should cancel; mode=%v len=%d", m.mode, m.forest.Len())
	}

	m = press(t, m, "d", "y")
	if m.forest.Len() != 2 {
		t.Fatalf("expected Docs subtree gone, len=%d", m.forest.Len())
	}
	if _, ok := m.forest.Find(ids["API"]); ok {
		t.Fatalf("descendant survived the cascade")
	}
	if _, ok := m.forest.Selected(); ok {
		t.Fatalf("selection should be cleared, not advanced")
	}
}

func TestKeys_CollapseTogglesVisibility(t *testing.T) {
	m := newTestApp(t)
	ids := seedOutline(t, &m)

	m = moveCursorTo(t, m, ids["Home"])
	m = press(t, m, "tab")
	if len(m.rows) != 1 {
		t.Fatalf("expected only the collapsed root visible, rows=%v", rowLabels(m.rows))
	}

	m = press(t, m, "tab")
	if len(m.rows) != 4 {
		t.Fatalf("expected the subtree back, rows=%v", rowLabels(m.rows))
	}

	// Leaves have nothing to fold.
	m = moveCursorTo(t, m, ids["API"])
	m = press(t, m, "tab")
	if len(m.rows) != 4 {
		t.Fatalf("leaf toggle changed rows: %v", rowLabels(m.rows))
	}
}

func TestKeys_EditURLOnPagesCard(t *testing.T) {
	m := newTestApp(t)
	ids := seedOutline(t, &m)

	m = moveCursorTo(t, m, ids["Blog"])
	m = press(t, m, "u", "https://example.com/blog", "enter")

	n, _ := m.forest.Find(ids["Blog"])
	if n.URL != "https://example.com/blog" {
		t.Fatalf("url = %q", n.URL)
	}

	// Esc abandons the edit.
	m = press(t, m, "u", "esc")
	n, _ = m.forest.Find(ids["Blog"])
	if n.URL != "https://example.com/blog" {
		t.Fatalf("esc should not touch the record, url = %q", n.URL)
	}
}

func TestKeys_QuitPersistsScreenState(t *testing.T) {
	m := newTestApp(t)
	ids := seedOutline(t, &m)

	m = moveCursorTo(t, m, ids["Blog"])
	m = press(t, m, "p", "q")
	if !m.quitting {
		t.Fatalf("q should quit")
	}

	st, err := m.store.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if st.SelectedID != ids["Blog"] || !st.ShowPreview {
		t.Fatalf("saved state = %#v", st)
	}
}

func TestReload_KeepsCursorOnSurvivingNode(t *testing.T) {
	m := newTestApp(t)
	ids := seedOutline(t, &m)
	m = moveCursorTo(t, m, ids["Blog"])

	// Another process rewrites the store: Docs' subtree is gone.
	outside, err := nav.Load(m.store.CardRecords(m.card.ID), m.store.CardSequence(m.card.ID), &store.NodeIDs{})
	if err != nil {
		t.Fatalf("outside load: %v", err)
	}
	if _, err := nav.DeleteItem(outside, ids["Docs"]); err != nil {
		t.Fatalf("outside delete: %v", err)
	}

	mAny, _ := m.Update(storeChangedMsg{})
	m = mAny.(appModel)

	if got := rowLabels(m.rows); strings.Join(got, ",") != "Home,Blog" {
		t.Fatalf("rows after reload = %v", got)
	}
	if got := cursorID(t, m); got != ids["Blog"] {
		t.Fatalf("cursor moved to %s", got)
	}
}
