package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"navcard-cli/internal/model"
	"navcard-cli/internal/nav"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.seenWindowSize = true
		m.clampScroll()
		return m, nil

	case storeChangedMsg:
		// Re-arm the watcher first so changes during reload are not lost.
		cmd := waitForStoreChange(m.watch)
		if m.mode == modeTree {
			m.reloadFromStore()
		}
		return m, cmd

	case tea.KeyMsg:
		switch m.mode {
		case modeInput:
			return m.updateInput(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateTree(msg)
		}
	}
	return m, nil
}

func (m appModel) updateTree(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.minibuffer = ""

	switch msg.String() {
	case "ctrl+c", "q":
		m.saveState()
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		m.setCursor(m.cursor + 1)
	case "k", "up":
		m.setCursor(m.cursor - 1)
	case "g", "home":
		m.setCursor(0)
	case "G", "end":
		m.setCursor(len(m.rows) - 1)

	case "a":
		res, err := nav.AddItem(m.forest, model.LevelPrimary, "")
		if err != nil {
			m.minibuffer = "add failed: " + err.Error()
			return m, nil
		}
		m.logEvent("node.add", res.Node.ID, res.EventPayload)
		m.refreshRows(res.Node.ID)
		m.setCursor(rowIndexOf(m.rows, res.Node.ID))
		return m.openInput(inputLabel, res.Node.ID), nil

	case "o":
		r, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		child, has := r.node.Level.ChildLevel()
		if !has {
			m.minibuffer = "third-level entries cannot have children"
			return m, nil
		}
		if r.node.Collapsed {
			// Expand first so the new child is visible where it lands.
			if _, err := nav.ToggleCollapsed(m.forest, r.node.ID); err != nil {
				m.minibuffer = "expand failed: " + err.Error()
				return m, nil
			}
		}
		res, err := nav.AddItem(m.forest, child, r.node.ID)
		if err != nil {
			m.minibuffer = "add failed: " + err.Error()
			return m, nil
		}
		m.logEvent("node.add", res.Node.ID, res.EventPayload)
		m.refreshRows(res.Node.ID)
		m.setCursor(rowIndexOf(m.rows, res.Node.ID))
		return m.openInput(inputLabel, res.Node.ID), nil

	case "d", "backspace":
		r, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.confirmDeleteID = r.node.ID
		m.confirmDeleteCount = len(m.forest.Descendants(r.node.ID)) + 1
		return m, nil

	case "K", "shift+up":
		r, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		res, err := nav.MoveUp(m.forest, r.node.ID)
		if err != nil {
			m.minibuffer = "move failed: " + err.Error()
			return m, nil
		}
		if res.Changed {
			m.logEvent("node.move", r.node.ID, res.EventPayload)
			m.refreshRows(r.node.ID)
		}

	case "J", "shift+down":
		r, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		res, err := nav.MoveDown(m.forest, r.node.ID)
		if err != nil {
			m.minibuffer = "move failed: " + err.Error()
			return m, nil
		}
		if res.Changed {
			m.logEvent("node.move", r.node.ID, res.EventPayload)
			m.refreshRows(r.node.ID)
		}

	case "tab", " ":
		r, ok := m.currentRow()
		if !ok || !r.hasChildren {
			return m, nil
		}
		res, err := nav.ToggleCollapsed(m.forest, r.node.ID)
		if err != nil {
			m.minibuffer = "toggle failed: " + err.Error()
			return m, nil
		}
		if res.Changed {
			m.logEvent("node.collapse", r.node.ID, res.EventPayload)
			m.refreshRows(r.node.ID)
		}

	case "enter", "r":
		if r, ok := m.currentRow(); ok {
			return m.openInput(inputLabel, r.node.ID), nil
		}

	case "t":
		if r, ok := m.currentRow(); ok && m.card.Kind == model.CardKindPages {
			return m.openInput(inputPageTitle, r.node.ID), nil
		}

	case "u":
		if r, ok := m.currentRow(); ok && m.card.Kind == model.CardKindPages {
			return m.openInput(inputURL, r.node.ID), nil
		}

	case "y":
		r, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		txt := strings.TrimSpace(r.node.URL)
		if txt == "" {
			txt = displayLabel(r.node)
		}
		if err := copyToClipboard(txt); err != nil {
			m.minibuffer = "copy failed: " + err.Error()
		} else {
			m.minibuffer = "copied: " + txt
		}

	case "p":
		m.showPreview = !m.showPreview

	case "U":
		m.showURLs = !m.showURLs
	}

	m.clampScroll()
	return m, nil
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		id := m.confirmDeleteID
		m.mode = modeTree
		m.confirmDeleteID = ""
		res, err := nav.DeleteItem(m.forest, id)
		if err != nil {
			m.minibuffer = "delete failed: " + err.Error()
			return m, nil
		}
		if res.Changed {
			m.logEvent("node.delete", id, res.EventPayload)
			m.minibuffer = fmt.Sprintf("deleted %d item(s)", len(res.Removed))
		}
		// Clamp only; the engine cleared the selection and nothing gets
		// auto-selected in its place.
		m.refreshRows("")
		m.clampScroll()
		return m, nil

	case "n", "esc", "q":
		m.mode = modeTree
		m.confirmDeleteID = ""
		return m, nil
	}
	return m, nil
}

func (m appModel) openInput(kind inputKind, id string) appModel {
	n, ok := m.forest.Find(id)
	if !ok {
		return m
	}
	m.mode = modeInput
	m.inputKind = kind
	m.inputForID = id
	switch kind {
	case inputPageTitle:
		m.input.Placeholder = "page title"
		m.input.SetValue(n.PageTitle)
	case inputURL:
		m.input.Placeholder = "https://"
		m.input.SetValue(n.URL)
	default:
		m.input.Placeholder = "label"
		m.input.SetValue(n.Label)
	}
	m.input.CursorEnd()
	m.input.Focus()
	return m
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeTree
		m.input.Blur()
		return m, nil

	case "enter":
		value := m.input.Value()
		id := m.inputForID
		m.mode = modeTree
		m.input.Blur()

		fields := nav.UpdateFields{}
		switch m.inputKind {
		case inputPageTitle:
			fields.PageTitle = &value
		case inputURL:
			fields.URL = &value
		default:
			fields.Label = &value
		}
		res, err := nav.Update(m.forest, id, fields)
		if err != nil {
			m.minibuffer = "update failed: " + err.Error()
			return m, nil
		}
		if res.Changed {
			m.logEvent("node.update", id, res.EventPayload)
			m.refreshRows(id)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// clampScroll keeps the cursor inside the visible window.
func (m *appModel) clampScroll() {
	visible := m.listHeight()
	if visible < 1 {
		visible = 1
	}
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+visible {
		m.scroll = m.cursor - visible + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m appModel) listHeight() int {
	h := m.height - chromeLines
	if h < 1 {
		h = 1
	}
	return h
}
