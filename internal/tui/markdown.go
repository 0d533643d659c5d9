package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"navcard-cli/internal/model"
	"navcard-cli/internal/nav"
)

var (
	mdRendererMu sync.Mutex
	// Cache renderers by style + wrap width. Creating a renderer with
	// WithAutoStyle can trigger terminal queries that block on some
	// terminals, so we pick the style ourselves and reuse renderers.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

func markdownStyle() string {
	if lipgloss.ColorProfile() == termenv.Ascii {
		return "notty"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := markdownStyle()
	key := fmt.Sprintf("%s:%d", style, width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	mdRendererMu.Unlock()

	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// subtreeMarkdown builds the markdown source for the preview pane: the
// focused node as a heading, its subtree as a nested list, with page links
// for pages cards.
func subtreeMarkdown(f *nav.Forest, card model.Card, id string) string {
	n, ok := f.Find(id)
	if !ok {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", displayLabel(n))
	if card.Kind == model.CardKindPages && strings.TrimSpace(n.URL) != "" {
		fmt.Fprintf(&b, "\n[%s](%s)\n", linkText(n), n.URL)
	}

	children := f.Children(id)
	if len(children) > 0 {
		b.WriteString("\n")
		writeEntryList(&b, f, card, children, 0)
	}
	return b.String()
}

func writeEntryList(b *strings.Builder, f *nav.Forest, card model.Card, nodes []model.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		if card.Kind == model.CardKindPages && strings.TrimSpace(n.URL) != "" {
			fmt.Fprintf(b, "%s- [%s](%s)\n", indent, linkText(n), n.URL)
		} else {
			fmt.Fprintf(b, "%s- %s\n", indent, displayLabel(n))
		}
		writeEntryList(b, f, card, f.Children(n.ID), depth+1)
	}
}

func displayLabel(n model.Node) string {
	if s := strings.TrimSpace(n.Label); s != "" {
		return s
	}
	return "(untitled)"
}

func linkText(n model.Node) string {
	if s := strings.TrimSpace(n.PageTitle); s != "" {
		return s
	}
	return displayLabel(n)
}
