package publish

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"navcard-cli/internal/model"
	"navcard-cli/internal/nav"
)

type RenderOptions struct {
	// VisibleOnly skips everything hidden under a collapsed entry, so the
	// page matches what the outline looks like on screen.
	VisibleOnly bool
}

// RenderCardMarkdown renders one card's outline as a standalone handoff page.
func RenderCardMarkdown(card model.Card, f *nav.Forest, opt RenderOptions) (string, error) {
	if f == nil {
		return "", fmt.Errorf("missing forest")
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	name := strings.TrimSpace(card.Name)
	if name == "" {
		name = card.ID
	}
	writeLn("# " + name)
	writeLn("")

	writeLn("## Meta")
	writeLn("")
	writeLn("- ID: " + card.ID)
	writeLn("- Kind: " + string(card.Kind))
	writeLn("- Entries: " + strconv.Itoa(f.Len()))
	if !card.CreatedAt.IsZero() {
		writeLn("- Created: " + card.CreatedAt.UTC().Format(time.RFC3339))
	}

	if f.Len() > 0 {
		writeLn("")
		writeLn("## Outline")
		writeLn("")
		for _, root := range f.Roots() {
			renderEntryLine(&buf, f, root, opt)
		}
	}

	return buf.String(), nil
}

func renderEntryLine(buf *bytes.Buffer, f *nav.Forest, n model.Node, opt RenderOptions) {
	if buf == nil {
		return
	}
	prefix := strings.Repeat("  ", nav.IndentLevel(n))

	label := strings.TrimSpace(n.Label)
	if label == "" {
		label = "(untitled)"
	}
	suffix := ""
	if title := strings.TrimSpace(n.PageTitle); title != "" && !strings.EqualFold(title, label) {
		suffix = " (" + title + ")"
	}
	if url := strings.TrimSpace(n.URL); url != "" {
		fmt.Fprintf(buf, "%s- [%s](%s)%s\n", prefix, label, url, suffix)
	} else {
		fmt.Fprintf(buf, "%s- %s%s\n", prefix, label, suffix)
	}

	if opt.VisibleOnly && n.Collapsed {
		return
	}
	for _, ch := range f.Children(n.ID) {
		renderEntryLine(buf, f, ch, opt)
	}
}

// IndexEntry is one card row on the catalog page.
type IndexEntry struct {
	Card    model.Card
	Entries int
}

// RenderIndexMarkdown renders the catalog page linking every published card.
func RenderIndexMarkdown(entries []IndexEntry) (string, error) {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# Navigation cards")
	writeLn("")
	if len(entries) == 0 {
		writeLn("No cards yet.")
		return buf.String(), nil
	}

	writeLn("## Cards")
	writeLn("")
	for _, e := range entries {
		name := strings.TrimSpace(e.Card.Name)
		if name == "" {
			name = e.Card.ID
		}
		count := strconv.Itoa(e.Entries) + " entries"
		if e.Entries == 1 {
			count = "1 entry"
		}
		fmt.Fprintf(&buf, "- [%s](cards/%s.md) (%s, %s)\n", name, e.Card.ID, e.Card.Kind, count)
	}

	return buf.String(), nil
}
