package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	uistate "github.com/gustavkrist/bookmarks/internal/ui/state"
)

func TestQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{key("q"), {Type: tea.KeyCtrlC}} {
		f := newFixture(t, 100, 30)
		cmd := f.model.handleKeyMsg(msg)
		if cmd == nil {
			t.Fatalf("expected quit command for %s", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("expected tea.QuitMsg for %s", msg)
		}
	}
}

func TestPaneSelectionKeys(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	send(m, key("2"))
	if m.focus.Active != uistate.PaneDirectory {
		t.Fatalf("expected directory focus, got %s", m.focus.Active)
	}
	send(m, tea.KeyMsg{Type: tea.KeyCtrlK})
	if m.focus.Active != uistate.PaneBookmarks {
		t.Fatalf("expected bookmark focus, got %s", m.focus.Active)
	}
	send(m, tea.KeyMsg{Type: tea.KeyCtrlJ})
	if m.focus.Active != uistate.PaneDirectory {
		t.Fatalf("expected ctrl+j to focus the directory, got %s", m.focus.Active)
	}
	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.focus.Active != uistate.PaneBookmarks {
		t.Fatalf("expected esc to focus bookmarks, got %s", m.focus.Active)
	}
}

func TestSelectDirectoryWithoutTreeIsIgnored(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	m.directory = nil
	m.selectPane(uistate.PaneDirectory)
	if m.focus.Active != uistate.PaneBookmarks {
		t.Fatalf("expected focus to stay on bookmarks, got %s", m.focus.Active)
	}
}

func TestTabTogglesPreviewFocus(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	send(m, key("2"), tea.KeyMsg{Type: tea.KeyTab})
	if m.focus.Active != uistate.PanePreview {
		t.Fatalf("expected preview focus, got %s", m.focus.Active)
	}
	send(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus.Active != uistate.PaneDirectory {
		t.Fatalf("expected tab to return to the directory, got %s", m.focus.Active)
	}
}

func TestCursorMovementClampsAtEdges(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	send(m, key("k"))
	if got := m.bookmarks.tree.CursorLine(); got != 0 {
		t.Fatalf("expected cursor to stay on the first line, got %d", got)
	}
	send(m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if got := m.bookmarks.tree.CursorLine(); got != 1 {
		t.Fatalf("expected ctrl+d to stop at the last bookmark, got %d", got)
	}
	send(m, tea.KeyMsg{Type: tea.KeyCtrlU})
	if got := m.bookmarks.tree.CursorLine(); got != 0 {
		t.Fatalf("expected ctrl+u to return to the top, got %d", got)
	}
}

func TestEnterOnDirectoryBookmarkFocusesItsTree(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	first := m.directory
	if cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatalf("expected no command when opening a directory bookmark")
	}
	if m.focus.Active != uistate.PaneDirectory {
		t.Fatalf("expected directory focus, got %s", m.focus.Active)
	}
	if m.directory != first {
		t.Fatalf("expected the cached tree to be reused")
	}
}

func TestEnterOnFileBookmarkLoadsPreview(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	send(m, key("j"))
	cmd := m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected preview command")
	}
	if m.preview.path != "/work/notes.txt" || !m.preview.loading {
		t.Fatalf("expected notes preview to be loading, got %+v", m.preview)
	}
	send(m, cmd())
	if m.preview.loading || m.preview.err != "" {
		t.Fatalf("expected preview loaded, got %+v", m.preview)
	}
	if m.focus.Active != uistate.PaneBookmarks {
		t.Fatalf("expected focus to stay on bookmarks, got %s", m.focus.Active)
	}
}

func TestDirectoryPaneIsCachedPerBookmark(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	send(m, key("2"), key("j"), tea.KeyMsg{Type: tea.KeyEnter})
	build := m.directory.tree.CursorNode()
	if build == nil || build.Label != "build" || !build.Expanded {
		t.Fatalf("expected build expanded, got %+v", build)
	}
	send(m, key("1"), tea.KeyMsg{Type: tea.KeyEnter})
	n := m.directory.tree.CursorNode()
	if n == nil || n.ID != build.ID || !n.Expanded {
		t.Fatalf("expected reopened tree to keep its cursor and expansion")
	}
}

func TestCursorNodeFollowsFocus(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	n, pane := m.cursorNode()
	if n == nil || n.Label != "proj" || pane != m.bookmarks {
		t.Fatalf("expected proj bookmark, got %+v", n)
	}
	send(m, key("2"))
	n, pane = m.cursorNode()
	if n == nil || n.Path != "/work/proj" || pane != m.directory {
		t.Fatalf("expected directory root, got %+v", n)
	}
	send(m, tea.KeyMsg{Type: tea.KeyTab})
	if n, _ := m.cursorNode(); n != nil {
		t.Fatalf("expected no node while the preview is focused")
	}
}
