package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.seenWindowSize {
		return ""
	}

	width := m.width
	treeW := width
	preview := ""
	if m.showPreview && width >= minPreviewSplitW {
		treeW = width - previewPaneW - 1
		preview = m.renderPreview(previewPaneW)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader(width))
	b.WriteString("\n")

	tree := m.renderTree(treeW)
	if preview != "" {
		tree = lipgloss.JoinHorizontal(lipgloss.Top, tree, " ", preview)
	}
	b.WriteString(tree)
	b.WriteString("\n")
	b.WriteString(m.renderFooter(width))
	return b.String()
}

func (m appModel) renderHeader(width int) string {
	name := styleHeader().Render(m.card.Name)
	badge := styleBadge().Render(string(m.card.Kind))
	line := " " + name + " " + badge
	return padOrCut(line, width, lipgloss.NewStyle())
}

func (m appModel) renderTree(width int) string {
	if len(m.rows) == 0 {
		hint := styleMuted().Render("  empty card; press a to add an entry")
		lines := []string{hint}
		for len(lines) < m.listHeight() {
			lines = append(lines, "")
		}
		return strings.Join(lines, "\n")
	}

	visible := m.listHeight()
	end := m.scroll + visible
	if end > len(m.rows) {
		end = len(m.rows)
	}

	var lines []string
	for i := m.scroll; i < end; i++ {
		focused := i == m.cursor && m.mode != modeInput
		lines = append(lines, renderRow(width, m.rows[i], focused, m.showURLs))
	}
	for len(lines) < visible {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderPreview(width int) string {
	r, ok := m.currentRow()
	if !ok {
		return ""
	}
	return renderMarkdown(subtreeMarkdown(m.forest, m.card, r.node.ID), width)
}

func (m appModel) renderFooter(width int) string {
	switch m.mode {
	case modeInput:
		label := "label"
		switch m.inputKind {
		case inputPageTitle:
			label = "title"
		case inputURL:
			label = "url"
		}
		line := " " + styleMuted().Render(label+":") + " " + m.input.View()
		return padOrCut(line, width, lipgloss.NewStyle())

	case modeConfirmDelete:
		prompt := fmt.Sprintf(" delete %d item(s)? (y/n)", m.confirmDeleteCount)
		return padOrCut(styleError().Render(prompt), width, lipgloss.NewStyle())
	}

	if m.minibuffer != "" {
		return padOrCut(" "+m.minibuffer, width, lipgloss.NewStyle())
	}

	sep := " " + glyphSeparator() + " "
	help := strings.Join([]string{
		"a add", "o child", "d delete", "J/K move", "tab fold", "enter rename", "p preview", "q quit",
	}, sep)
	return padOrCut(styleMuted().Render(" "+help), width, lipgloss.NewStyle())
}
