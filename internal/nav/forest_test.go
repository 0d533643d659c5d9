package nav

import (
	"fmt"
	"testing"

	"navcard-cli/internal/model"
	"navcard-cli/internal/store"
)

// stubIDs hands out queued IDs first, then numbered ones. Queued IDs let
// tests force collisions deterministically.
type stubIDs struct {
	n     int
	queue []string
}

func (s *stubIDs) NextID() string {
	if len(s.queue) > 0 {
		id := s.queue[0]
		s.queue = s.queue[1:]
		return id
	}
	s.n++
	return fmt.Sprintf("n%d", s.n)
}

type env struct {
	records *store.MemRecords
	seq     *store.MemSequence
	ids     *stubIDs
	f       *Forest
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		records: store.NewMemRecords(),
		seq:     &store.MemSequence{},
		ids:     &stubIDs{},
	}
	f, err := Load(e.records, e.seq, e.ids)
	if err != nil {
		t.Fatalf("load empty forest: %v", err)
	}
	e.f = f
	return e
}

func mustAdd(t *testing.T, f *Forest, level model.Level, parentID string) string {
	t.Helper()
	res, err := AddItem(f, level, parentID)
	if err != nil {
		t.Fatalf("add %s under %q: %v", level, parentID, err)
	}
	if !res.Changed {
		t.Fatalf("add %s under %q: unexpectedly refused", level, parentID)
	}
	return res.Node.ID
}

// seedScenario builds the canonical outline:
//
//	P1
//	  S1
//	    T1
//	  S2
//
// whose sequence is [P1 S1 T1 S2].
func seedScenario(t *testing.T) (e *env, p1, s1, s2, t1 string) {
	t.Helper()
	e = newEnv(t)
	p1 = mustAdd(t, e.f, model.LevelPrimary, "")
	s1 = mustAdd(t, e.f, model.LevelSecondary, p1)
	s2 = mustAdd(t, e.f, model.LevelSecondary, p1)
	t1 = mustAdd(t, e.f, model.LevelTertiary, s1)
	wantOrder(t, e, p1, s1, t1, s2)
	return e, p1, s1, s2, t1
}

func wantOrder(t *testing.T, e *env, want ...string) {
	t.Helper()
	got := e.f.Order()
	if len(got) != len(want) {
		t.Fatalf("order length: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: got %v, want %v", got, want)
		}
	}
	persisted, err := e.seq.Get()
	if err != nil {
		t.Fatalf("read persisted sequence: %v", err)
	}
	if len(persisted) != len(want) {
		t.Fatalf("persisted order length: got %v, want %v", persisted, want)
	}
	for i := range want {
		if persisted[i] != want[i] {
			t.Fatalf("persisted order: got %v, want %v", persisted, want)
		}
	}
}

type failer interface {
	Fatalf(format string, args ...any)
}

// checkInvariants re-derives the structural guarantees from scratch: the
// sequence is a permutation of the stored record keys, every subtree is a
// contiguous run right after its root, and parent links are one level up.
func checkInvariants(t failer, e *env) {
	order, err := e.seq.Get()
	if err != nil {
		t.Fatalf("read sequence: %v", err)
	}

	mirror := e.f.Order()
	if len(mirror) != len(order) {
		t.Fatalf("mirror %v out of sync with persisted %v", mirror, order)
	}
	for i := range order {
		if mirror[i] != order[i] {
			t.Fatalf("mirror %v out of sync with persisted %v", mirror, order)
		}
	}

	pos := map[string]int{}
	for i, id := range order {
		if _, dup := pos[id]; dup {
			t.Fatalf("sequence has duplicate entry %q: %v", id, order)
		}
		pos[id] = i
	}
	if len(pos) != len(e.records.Nodes) {
		t.Fatalf("sequence has %d entries, record store has %d", len(pos), len(e.records.Nodes))
	}
	for id := range e.records.Nodes {
		if _, ok := pos[id]; !ok {
			t.Fatalf("record %q missing from sequence %v", id, order)
		}
	}

	children := map[string][]string{}
	for _, id := range order {
		n := e.records.Nodes[id]
		if n.ParentID == nil {
			if n.Level != model.LevelPrimary {
				t.Fatalf("root %q has level %q", id, n.Level)
			}
			continue
		}
		p, ok := e.records.Nodes[*n.ParentID]
		if !ok {
			t.Fatalf("node %q has dead parent %q", id, *n.ParentID)
		}
		want, _ := n.Level.ParentLevel()
		if p.Level != want {
			t.Fatalf("node %q (level %s) hangs under %q (level %s)", id, n.Level, p.ID, p.Level)
		}
		children[p.ID] = append(children[p.ID], id)
	}

	var subtreeSize func(id string, seen map[string]bool) int
	subtreeSize = func(id string, seen map[string]bool) int {
		if seen[id] {
			return 0
		}
		seen[id] = true
		size := 1
		for _, ch := range children[id] {
			size += subtreeSize(ch, seen)
		}
		return size
	}
	inSubtree := func(root, id string) bool {
		cur := id
		seen := map[string]bool{}
		for {
			if cur == root {
				return true
			}
			n, ok := e.records.Nodes[cur]
			if !ok || n.ParentID == nil || seen[cur] {
				return false
			}
			seen[cur] = true
			cur = *n.ParentID
		}
	}

	for _, id := range order {
		size := subtreeSize(id, map[string]bool{})
		start := pos[id]
		if start+size > len(order) {
			t.Fatalf("subtree of %q (size %d) runs past the sequence end", id, size)
		}
		for i := start; i < start+size; i++ {
			if !inSubtree(id, order[i]) {
				t.Fatalf("sequence entry %q sits inside %q's block: %v", order[i], id, order)
			}
		}
	}
}

func TestLoad_DropsGhostAndDuplicateEntries(t *testing.T) {
	t.Parallel()

	rec := store.NewMemRecords()
	if err := rec.Set(model.Node{ID: "p1", Level: model.LevelPrimary, Label: "Home"}); err != nil {
		t.Fatalf("seed record: %v", err)
	}
	seq := &store.MemSequence{IDs: []string{"p1", "ghost", "p1", " ", ""}}

	f, err := Load(rec, seq, &stubIDs{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := f.Order()
	if len(got) != 1 || got[0] != "p1" {
		t.Fatalf("expected order [p1], got %v", got)
	}
	if _, ok := f.Find("ghost"); ok {
		t.Fatalf("ghost entry should not resolve to a node")
	}
}

func TestFind_ReturnsCopies(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	id := mustAdd(t, e.f, model.LevelPrimary, "")

	n, ok := e.f.Find(id)
	if !ok {
		t.Fatalf("find %s: not found", id)
	}
	n.Label = "scribbled"

	again, _ := e.f.Find(id)
	if again.Label != "" {
		t.Fatalf("mutating a returned node leaked into the forest: %q", again.Label)
	}
}

func TestChildren_OrderRelativeAndParentScoped(t *testing.T) {
	t.Parallel()

	e, p1, s1, s2, t1 := seedScenario(t)

	roots := e.f.Children("")
	if len(roots) != 1 || roots[0].ID != p1 {
		t.Fatalf("expected roots [%s], got %v", p1, roots)
	}

	ch := e.f.Children(p1)
	if len(ch) != 2 || ch[0].ID != s1 || ch[1].ID != s2 {
		t.Fatalf("expected children of %s = [%s %s], got %v", p1, s1, s2, ch)
	}

	if got := e.f.Children(t1); len(got) != 0 {
		t.Fatalf("leaf %s should have no children, got %v", t1, got)
	}
	if got := e.f.Children("nope"); len(got) != 0 {
		t.Fatalf("unknown parent should have no children, got %v", got)
	}
}

func TestDescendants_PreOrder(t *testing.T) {
	t.Parallel()

	e, p1, s1, s2, t1 := seedScenario(t)

	desc := e.f.Descendants(p1)
	got := make([]string, 0, len(desc))
	for _, n := range desc {
		got = append(got, n.ID)
	}
	want := []string{s1, t1, s2}
	if len(got) != len(want) {
		t.Fatalf("descendants of %s: got %v, want %v", p1, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("descendants of %s: got %v, want %v", p1, got, want)
		}
	}

	if d := e.f.Descendants(t1); len(d) != 0 {
		t.Fatalf("leaf should have no descendants, got %v", d)
	}
	if d := e.f.Descendants("nope"); len(d) != 0 {
		t.Fatalf("unknown id should have no descendants, got %v", d)
	}
}

func TestDescendants_TerminatesOnParentCycle(t *testing.T) {
	t.Parallel()

	// Hand-corrupted store: a and b point at each other.
	rec := store.NewMemRecords()
	a, b := "a", "b"
	rec.Nodes[a] = model.Node{ID: a, Level: model.LevelSecondary, ParentID: &b}
	rec.Nodes[b] = model.Node{ID: b, Level: model.LevelSecondary, ParentID: &a}
	seq := &store.MemSequence{IDs: []string{a, b}}

	f, err := Load(rec, seq, &stubIDs{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	desc := f.Descendants(a)
	if len(desc) != 1 || desc[0].ID != b {
		t.Fatalf("cycle walk should visit b once, got %v", desc)
	}
}

func TestScenario_EndToEnd(t *testing.T) {
	t.Parallel()

	// Build, move, and delete in one flow over a fresh store each step.
	e, p1, s1, s2, t1 := seedScenario(t)

	if res, err := MoveDown(e.f, s1); err != nil || !res.Changed {
		t.Fatalf("move down %s: changed=%v err=%v", s1, res.Changed, err)
	}
	wantOrder(t, e, p1, s2, s1, t1)
	checkInvariants(t, e)

	e2, p1, s1, s2, t1 := seedScenario(t)
	e2.f.Select(t1)
	res, err := DeleteItem(e2.f, s1)
	if err != nil {
		t.Fatalf("delete %s: %v", s1, err)
	}
	if !res.Changed {
		t.Fatalf("delete %s reported no change", s1)
	}
	wantOrder(t, e2, p1, s2)
	if _, ok := e2.records.Get(s1); ok {
		t.Fatalf("%s still in record store after delete", s1)
	}
	if _, ok := e2.records.Get(t1); ok {
		t.Fatalf("descendant %s still in record store after cascade", t1)
	}
	if sel, ok := e2.f.Selected(); ok {
		t.Fatalf("selection should be cleared, still %q", sel)
	}
	checkInvariants(t, e2)
}
