package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gustavkrist/bookmarks/internal/logging/events"
	"github.com/gustavkrist/bookmarks/internal/search"
	"github.com/gustavkrist/bookmarks/internal/tree"
	uistate "github.com/gustavkrist/bookmarks/internal/ui/state"
)

// beginSearch opens an overlay over the focused tree pane.
func (m *Model) beginSearch() tea.Cmd {
	pane := m.activePane()
	if pane == nil {
		return nil
	}
	from := m.focus.Active
	if !m.focus.BeginSearch() {
		return nil
	}
	events.UI.Focus(from.String(), m.focus.Active.String(), m.focus.Mode.String())
	m.overlay = search.Begin(pane.tree, m.ranker, m.searchOpts)
	m.query = uistate.Query{}
	m.filterCursorDirty = true
	m.overlayView = tree.Viewport{}
	m.layout()
	return nil
}

// refine narrows the results to the current query.
func (m *Model) refine() {
	if m.overlay == nil {
		return
	}
	m.overlay.Refine(m.query.Text)
	m.overlayView.Top = 0
}

// widen re-ranks the whole candidate pool after text was removed.
func (m *Model) widen() {
	if m.overlay == nil {
		return
	}
	m.overlay.Widen(m.query.Text)
	m.overlayView.Top = 0
}

func (m *Model) moveOverlayCursor(delta int) {
	if m.overlay == nil {
		return
	}
	step := 1
	move := m.overlay.CursorDown
	if delta < 0 {
		step = -1
		move = m.overlay.CursorUp
		delta = -delta
	}
	moved := false
	for i := 0; i < delta; i++ {
		if !move() {
			break
		}
		moved = true
		m.overlayView.Follow(m.overlay.Cursor(), m.overlay.Len(), step)
	}
	if moved {
		events.UI.Cursor(uistate.PaneSearch.String(), m.overlay.Cursor(), m.overlayView.Top)
	}
}

func (m *Model) suspendSearch() {
	if m.focus.Suspend() {
		events.UI.Focus(uistate.PaneSearch.String(), m.focus.Active.String(), m.focus.Mode.String())
	}
}

func (m *Model) resumeSearch() {
	from := m.focus.Active
	if m.focus.Resume() {
		m.filterCursorDirty = true
		events.UI.Focus(from.String(), m.focus.Active.String(), m.focus.Mode.String())
	}
}

// cancelSearch closes the overlay and leaves the searched tree as it was.
func (m *Model) cancelSearch() tea.Cmd {
	if m.overlay == nil {
		return nil
	}
	pane := m.paneFor(m.focus.SearchTarget)
	m.overlay.Cancel()
	m.closeSearch()
	m.center(pane)
	return m.flushDeferred()
}

// confirmSearch moves the searched tree's cursor to the selected result and
// acts on it as if enter had been pressed there.
func (m *Model) confirmSearch() tea.Cmd {
	if m.overlay == nil {
		return nil
	}
	target := m.focus.SearchTarget
	pane := m.paneFor(target)
	id := m.overlay.Confirm()
	m.closeSearch()
	var cmd tea.Cmd
	if pane != nil {
		m.center(pane)
		if id != tree.NoID {
			cmd = m.enter(pane, target)
		}
	}
	return tea.Batch(cmd, m.flushDeferred())
}

func (m *Model) closeSearch() {
	from := m.focus.Active
	m.overlay = nil
	m.query = uistate.Query{}
	m.overlayView = tree.Viewport{}
	if m.focus.EndSearch() {
		events.UI.Focus(from.String(), m.focus.Active.String(), m.focus.Mode.String())
	}
	m.layout()
	m.syncWatch()
}
