package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"navcard-cli/internal/model"
	"navcard-cli/internal/nav"
	"navcard-cli/internal/store"
)

func seedCard(t *testing.T, s store.Store, name string, kind model.CardKind, at time.Time) (model.Card, *nav.Forest) {
	t.Helper()
	reg, err := s.LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	card, err := s.AddCard(reg, name, kind, at)
	if err != nil {
		t.Fatalf("AddCard: %v", err)
	}
	f, err := nav.Load(s.CardRecords(card.ID), s.CardSequence(card.ID), &store.NodeIDs{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return card, f
}

func addEntry(t *testing.T, f *nav.Forest, level model.Level, parentID, label, url string) model.Node {
	t.Helper()
	res, err := nav.AddItem(f, level, parentID)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if !res.Changed {
		t.Fatalf("AddItem refused %s under %q", level, parentID)
	}
	upd, err := nav.Update(f, res.Node.ID, nav.UpdateFields{Label: &label, URL: &url})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	return upd.Node
}

func TestRenderCardMarkdown_NestsLinksByLevel(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	s := store.Store{Dir: t.TempDir()}
	card, f := seedCard(t, s, "Main nav", model.CardKindPages, now)

	home := addEntry(t, f, model.LevelPrimary, "", "Home", "/")
	docs := addEntry(t, f, model.LevelSecondary, home.ID, "Docs", "/docs")
	addEntry(t, f, model.LevelTertiary, docs.ID, "API", "/docs/api")
	title := "API reference"
	if _, err := nav.Update(f, docs.ID, nav.UpdateFields{PageTitle: &title}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	md, err := RenderCardMarkdown(card, f, RenderOptions{})
	if err != nil {
		t.Fatalf("RenderCardMarkdown: %v", err)
	}
	if !strings.Contains(md, "# Main nav") {
		t.Fatalf("expected card header, got:\n%s", md)
	}
	if !strings.Contains(md, "- Kind: pages") || !strings.Contains(md, "- Entries: 3") {
		t.Fatalf("expected meta section, got:\n%s", md)
	}
	for _, line := range []string{
		"- [Home](/)\n",
		"  - [Docs](/docs) (API reference)\n",
		"    - [API](/docs/api)\n",
	} {
		if !strings.Contains(md, line) {
			t.Fatalf("expected line %q, got:\n%s", line, md)
		}
	}
}

func TestRenderCardMarkdown_VisibleOnlySkipsCollapsedEntries(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	s := store.Store{Dir: t.TempDir()}
	card, f := seedCard(t, s, "Footer", model.CardKindBasic, now)

	top := addEntry(t, f, model.LevelPrimary, "", "Company", "")
	addEntry(t, f, model.LevelSecondary, top.ID, "Careers", "")
	if _, err := nav.ToggleCollapsed(f, top.ID); err != nil {
		t.Fatalf("ToggleCollapsed: %v", err)
	}

	full, err := RenderCardMarkdown(card, f, RenderOptions{})
	if err != nil {
		t.Fatalf("RenderCardMarkdown: %v", err)
	}
	if !strings.Contains(full, "Careers") {
		t.Fatalf("expected full render to keep collapsed children, got:\n%s", full)
	}

	visible, err := RenderCardMarkdown(card, f, RenderOptions{VisibleOnly: true})
	if err != nil {
		t.Fatalf("RenderCardMarkdown: %v", err)
	}
	if strings.Contains(visible, "Careers") {
		t.Fatalf("expected visible-only render to skip collapsed children, got:\n%s", visible)
	}
	if !strings.Contains(visible, "- Company") {
		t.Fatalf("expected collapsed entry itself to stay, got:\n%s", visible)
	}
}

func TestWriteAll_WritesIndexAndCardPages(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	s := store.Store{Dir: t.TempDir()}
	mainNav, f := seedCard(t, s, "Main nav", model.CardKindPages, now)
	addEntry(t, f, model.LevelPrimary, "", "Home", "/")
	footer, _ := seedCard(t, s, "Footer", model.CardKindBasic, now.Add(time.Hour))

	reg, err := s.LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	to := t.TempDir()
	res, err := WriteAll(s, reg, to, WriteOptions{Overwrite: true})
	if err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if len(res.Written) != 3 {
		t.Fatalf("expected 2 card pages + index; got %d (%v)", len(res.Written), res.Written)
	}

	b, err := os.ReadFile(filepath.Join(to, "index.md"))
	if err != nil {
		t.Fatalf("read index.md: %v", err)
	}
	index := string(b)
	if !strings.Contains(index, "[Main nav](cards/"+mainNav.ID+".md) (pages, 1 entry)") {
		t.Fatalf("expected main nav row in index, got:\n%s", index)
	}
	if !strings.Contains(index, "[Footer](cards/"+footer.ID+".md) (basic, 0 entries)") {
		t.Fatalf("expected footer row in index, got:\n%s", index)
	}
	for _, id := range []string{mainNav.ID, footer.ID} {
		if _, err := os.Stat(filepath.Join(to, "cards", id+".md")); err != nil {
			t.Fatalf("stat card page %s: %v", id, err)
		}
	}
}

func TestWriteCard_RefusesToClobberWithoutOverwrite(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	s := store.Store{Dir: t.TempDir()}
	card, _ := seedCard(t, s, "Main nav", model.CardKindPages, now)

	to := t.TempDir()
	if _, err := WriteCard(s, card, to, WriteOptions{}); err != nil {
		t.Fatalf("first WriteCard: %v", err)
	}
	_, err := WriteCard(s, card, to, WriteOptions{})
	if err == nil || !strings.Contains(err.Error(), "file exists") {
		t.Fatalf("expected clobber refusal, got %v", err)
	}
	if _, err := WriteCard(s, card, to, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite WriteCard: %v", err)
	}
}
