package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"navcard-cli/internal/debug"
	"navcard-cli/internal/model"
	"navcard-cli/internal/nav"
	"navcard-cli/internal/store"
)

type mode int

const (
	modeTree mode = iota
	modeInput
	modeConfirmDelete
)

type inputKind int

const (
	inputLabel inputKind = iota
	inputPageTitle
	inputURL
)

type appModel struct {
	store  store.Store
	card   model.Card
	forest *nav.Forest

	width  int
	height int
	// The very first WindowSizeMsg is initial sizing, not a user resize.
	seenWindowSize bool

	rows   []navRow
	cursor int
	scroll int

	mode       mode
	inputKind  inputKind
	inputForID string
	input      textinput.Model

	confirmDeleteID    string
	confirmDeleteCount int

	showPreview bool
	showURLs    bool

	minibuffer string

	watch <-chan struct{}

	quitting bool
}

const (
	minPreviewSplitW = 100
	previewPaneW     = 42
	chromeLines      = 3 // header + footer + minibuffer
)

func newAppModel(s store.Store, card model.Card, f *nav.Forest, watch <-chan struct{}) appModel {
	in := textinput.New()
	in.CharLimit = 200
	in.Width = 40

	m := appModel{
		store:  s,
		card:   card,
		forest: f,
		input:  in,
		watch:  watch,
	}
	m.rows = flattenRows(f)
	m.restoreState()
	return m
}

// restoreState re-applies the persisted screen state, dropping anything
// stale: the remembered selection may have been deleted by a CLI call.
func (m *appModel) restoreState() {
	st, err := m.store.LoadTUIState()
	if err != nil {
		debug.Logf("tui: load state: %v", err)
		return
	}
	m.showPreview = st.ShowPreview
	if id := strings.TrimSpace(st.SelectedID); id != "" {
		if at := rowIndexOf(m.rows, id); at >= 0 {
			m.cursor = at
			m.forest.Select(id)
		}
	}
	if cfg, err := store.LoadGlobalConfig(); err == nil && cfg.TUI != nil {
		m.showURLs = cfg.TUI.ShowURLs
	}
}

func (m *appModel) saveState() {
	st := &store.TUIState{Version: 1, ShowPreview: m.showPreview}
	if id, ok := m.forest.Selected(); ok {
		st.SelectedID = id
	}
	if err := m.store.SaveTUIState(st); err != nil {
		debug.Logf("tui: save state: %v", err)
	}
}

func (m appModel) Init() tea.Cmd {
	return waitForStoreChange(m.watch)
}

type storeChangedMsg struct{}

func waitForStoreChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

// currentRow returns the row under the cursor.
func (m *appModel) currentRow() (navRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return navRow{}, false
	}
	return m.rows[m.cursor], true
}

// refreshRows re-flattens the tree and keeps the cursor on the same node
// when it is still visible, clamping otherwise.
func (m *appModel) refreshRows(keepID string) {
	m.rows = flattenRows(m.forest)
	if keepID != "" {
		if at := rowIndexOf(m.rows, keepID); at >= 0 {
			m.cursor = at
			return
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// reloadFromStore rebuilds the forest from disk after an external change.
// The cursor stays on the same node when it survived.
func (m *appModel) reloadFromStore() {
	keep := ""
	if r, ok := m.currentRow(); ok {
		keep = r.node.ID
	}
	selected, hadSelection := m.forest.Selected()

	f, err := nav.Load(m.store.CardRecords(m.card.ID), m.store.CardSequence(m.card.ID), &store.NodeIDs{})
	if err != nil {
		debug.Logf("tui: reload: %v", err)
		return
	}
	m.forest = f
	if hadSelection {
		m.forest.Select(selected)
	}
	m.refreshRows(keep)
}

// setCursor moves the cursor and keeps the engine selection on the focused
// node. Deletions clear the selection; it only comes back when the user
// moves again.
func (m *appModel) setCursor(at int) {
	if len(m.rows) == 0 {
		m.cursor = 0
		return
	}
	if at < 0 {
		at = 0
	}
	if at > len(m.rows)-1 {
		at = len(m.rows) - 1
	}
	m.cursor = at
	m.forest.Select(m.rows[at].node.ID)
}

func (m *appModel) logEvent(typ, entityID string, payload map[string]any) {
	if err := m.store.AppendEvent(context.Background(), m.card.ID, typ, entityID, payload); err != nil {
		debug.Logf("tui: append event %s: %v", typ, err)
	}
}
