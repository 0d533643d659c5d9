package store

import (
	"strings"
	"testing"
)

func TestNewRandomID_ShapeAndCharset(t *testing.T) {
	t.Parallel()

	id, err := newRandomID("nav")
	if err != nil {
		t.Fatalf("newRandomID: %v", err)
	}
	if !strings.HasPrefix(id, "nav-") {
		t.Fatalf("expected nav prefix, got %q", id)
	}
	suffix := strings.TrimPrefix(id, "nav-")
	if got, want := len(suffix), 8; got != want {
		t.Fatalf("expected suffix len %d, got %d (%q)", want, got, suffix)
	}
	const alphabet = "abcdefghijklmnopqrstuvwxyz234567"
	for _, r := range suffix {
		if !strings.ContainsRune(alphabet, r) {
			t.Fatalf("suffix %q contains %q outside lowercase base32", suffix, r)
		}
	}
}

func TestNodeIDs_CandidatesAreFresh(t *testing.T) {
	t.Parallel()

	var g NodeIDs
	seen := map[string]bool{}
	for i := 0; i < 64; i++ {
		id := g.NextID()
		if !strings.HasPrefix(id, "nav-") {
			t.Fatalf("candidate %q lacks nav prefix", id)
		}
		if seen[id] {
			t.Fatalf("candidate %q repeated within 64 draws", id)
		}
		seen[id] = true
	}
}

func TestNextCardID_StaysOutOfTheRegistry(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}
	reg := &Registry{Version: 1}
	id := s.nextCardID(reg)
	if !strings.HasPrefix(id, "card-") {
		t.Fatalf("expected card prefix, got %q", id)
	}
	if _, exists := reg.FindCard(id); exists {
		t.Fatalf("fresh id %q already registered", id)
	}
}
