package ui

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gustavkrist/bookmarks/internal/backend"
	"github.com/gustavkrist/bookmarks/internal/tree"
	"github.com/gustavkrist/bookmarks/internal/ui/command"
	uistate "github.com/gustavkrist/bookmarks/internal/ui/state"
)

func typeQuery(m *Model, text string) {
	for _, r := range text {
		m.handleKeyMsg(key(string(r)))
	}
}

func TestBeginSearchFocusesQuery(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	m.handleKeyMsg(key("s"))
	if m.overlay == nil {
		t.Fatalf("expected an overlay")
	}
	if m.focus.Mode != uistate.ModeSearch || m.focus.Active != uistate.PaneSearch {
		t.Fatalf("expected search focus, got %+v", m.focus)
	}
	if m.focus.SearchTarget != uistate.PaneBookmarks {
		t.Fatalf("expected the bookmark pane to be searched, got %s", m.focus.SearchTarget)
	}
	if m.overlay.Len() != 2 {
		t.Fatalf("expected both bookmarks before typing, got %d", m.overlay.Len())
	}
	if m.overlayView.Height != m.bookmarks.view.Height {
		t.Fatalf("expected overlay view sized like its pane")
	}
}

func TestSearchKeysAreTextWhileTyping(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	m.handleKeyMsg(key("s"))
	typeQuery(m, "q2")
	if m.query.Text != "q2" {
		t.Fatalf("expected keys to go into the query, got %q", m.query.Text)
	}
	if m.focus.Active != uistate.PaneSearch {
		t.Fatalf("expected focus to stay on the query, got %s", m.focus.Active)
	}
}

func TestRefineAndConfirmMovesBookmarkCursor(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	m.handleKeyMsg(key("s"))
	typeQuery(m, "no")
	if m.overlay.Len() != 1 {
		t.Fatalf("expected one match for %q, got %d", m.query.Text, m.overlay.Len())
	}

	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEnter})
	if m.focus.Mode != uistate.ModeSearchSuspended || m.focus.Active != uistate.PaneBookmarks {
		t.Fatalf("expected suspended search on bookmarks, got %+v", m.focus)
	}

	cmd := m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEnter})
	if m.overlay != nil {
		t.Fatalf("expected overlay closed after confirm")
	}
	if m.focus.Mode != uistate.ModeNone || m.focus.Active != uistate.PaneBookmarks {
		t.Fatalf("expected plain bookmark focus, got %+v", m.focus)
	}
	n := m.bookmarks.tree.CursorNode()
	if n == nil || n.Label != "notes" || !n.Highlighted {
		t.Fatalf("expected cursor on notes, got %+v", n)
	}
	if cmd == nil || m.preview.path != "/work/notes.txt" {
		t.Fatalf("expected confirming a file bookmark to preview it")
	}
}

func TestResumeSearchKeepsQuery(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	m.handleKeyMsg(key("s"))
	typeQuery(m, "pr")
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEnter})
	m.handleKeyMsg(key("s"))
	if m.focus.Mode != uistate.ModeSearch || m.focus.Active != uistate.PaneSearch {
		t.Fatalf("expected query focus again, got %+v", m.focus)
	}
	typeQuery(m, "o")
	if m.query.Text != "pro" {
		t.Fatalf("expected query to continue, got %q", m.query.Text)
	}
}

func TestCancelSearchRestoresDirectoryLabels(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	m.handleKeyMsg(key("2"))
	before := m.directory.tree.Cursor()
	m.handleKeyMsg(key("s"))
	typeQuery(m, "main")
	if m.overlay.Len() != 1 {
		t.Fatalf("expected one match, got %d", m.overlay.Len())
	}
	id := m.overlay.Results()[0].ID
	n, _ := m.directory.tree.Node(id)
	if n.Label != "src/main.go" {
		t.Fatalf("expected label relative to the bookmark, got %q", n.Label)
	}

	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEsc})
	if m.overlay != nil || m.focus.Mode != uistate.ModeNone {
		t.Fatalf("expected search to be closed")
	}
	if m.focus.Active != uistate.PaneDirectory {
		t.Fatalf("expected directory focus after cancel, got %s", m.focus.Active)
	}
	if n.Label != "main.go" {
		t.Fatalf("expected label restored, got %q", n.Label)
	}
	if m.directory.tree.Cursor() != before {
		t.Fatalf("expected cursor unchanged after cancel")
	}
}

func TestConfirmDirectoryResultExpandsAncestors(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	m.handleKeyMsg(key("2"))
	m.handleKeyMsg(key("s"))
	typeQuery(m, "main")
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEnter})
	cmd := m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEnter})

	n := m.directory.tree.CursorNode()
	if n == nil || n.Path != "/work/proj/src/main.go" {
		t.Fatalf("expected cursor on main.go, got %+v", n)
	}
	parent, _ := m.directory.tree.Node(n.Parent)
	if !parent.Expanded {
		t.Fatalf("expected src to be expanded")
	}
	if cmd == nil || m.preview.path != "/work/proj/src/main.go" {
		t.Fatalf("expected main.go to be previewed")
	}
}

func TestBackspaceWidensResults(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	m.handleKeyMsg(key("s"))
	typeQuery(m, "not")
	if m.overlay.Len() != 1 {
		t.Fatalf("expected one match, got %d", m.overlay.Len())
	}
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyCtrlU})
	if m.query.Text != "" {
		t.Fatalf("expected query cleared, got %q", m.query.Text)
	}
	if m.overlay.Len() != 2 {
		t.Fatalf("expected the whole pool again, got %d", m.overlay.Len())
	}
}

func TestOverlayCursorMovesWithinResults(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	m.handleKeyMsg(key("s"))
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyDown})
	if m.overlay.Cursor() != 1 {
		t.Fatalf("expected overlay cursor 1, got %d", m.overlay.Cursor())
	}
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyDown})
	if m.overlay.Cursor() != 1 {
		t.Fatalf("expected overlay cursor to clamp, got %d", m.overlay.Cursor())
	}
	if m.bookmarks.tree.CursorLine() != 0 {
		t.Fatalf("expected live cursor untouched while searching")
	}
}

func TestPaneKeysRefusedWhileSearching(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	m.handleKeyMsg(key("s"))
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEnter})
	m.handleKeyMsg(key("2"))
	if m.focus.Active != uistate.PaneBookmarks || m.focus.Mode != uistate.ModeSearchSuspended {
		t.Fatalf("expected pane switch to be ignored, got %+v", m.focus)
	}
}

func TestWatcherEventsWaitForSearchToClose(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	m.handleKeyMsg(key("s"))
	if err := f.store.Remove("notes"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	send(m, backendEventMsg{event: backend.Event{Kind: backend.KindBookmarks, Path: f.store.Path()}})
	if got := labels(m.bookmarks.tree, m.bookmarks.tree.Root()); len(got) != 2 {
		t.Fatalf("expected bookmarks untouched while searching, got %v", got)
	}
	if _, ok := m.deferred[backend.KindBookmarks]; !ok {
		t.Fatalf("expected the event to be deferred")
	}

	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEsc})
	if got := labels(m.bookmarks.tree, m.bookmarks.tree.Root()); len(got) != 1 || got[0] != "proj" {
		t.Fatalf("expected deferred removal applied after cancel, got %v", got)
	}
	if len(m.deferred) != 0 {
		t.Fatalf("expected deferred events flushed")
	}
}

func TestSearchOverEmptyDirectoryShowsNoMatches(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	m.handleKeyMsg(key("2"))
	m.handleKeyMsg(key("s"))
	typeQuery(m, "zzz")
	if m.overlay.Len() != 0 {
		t.Fatalf("expected no matches, got %d", m.overlay.Len())
	}
	if id, ok := m.overlay.Selected(); ok || id != tree.NoID {
		t.Fatalf("expected nothing selected")
	}
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd := m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatalf("expected confirm without selection to do nothing")
	}
	if m.focus.Mode != uistate.ModeNone {
		t.Fatalf("expected search closed")
	}
}

type nodeState struct {
	label  string
	parent tree.ID
}

func snapshot(t *tree.Tree) map[tree.ID]nodeState {
	out := make(map[tree.ID]nodeState)
	for _, id := range t.IDs() {
		n, _ := t.Node(id)
		out[id] = nodeState{label: n.Label, parent: n.Parent}
	}
	return out
}

func idByLabel(t *tree.Tree, label string) tree.ID {
	for _, id := range t.IDs() {
		if n, _ := t.Node(id); n.Label == label {
			return id
		}
	}
	return tree.NoID
}

func TestEditorReloadWaitsForSearchToClose(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	m.handleKeyMsg(key("2"))
	dir := m.directory.tree
	dir.Load(dir.Root(), 4)
	before := snapshot(dir)
	mainID := idByLabel(dir, "main.go")
	if mainID == tree.NoID {
		t.Fatalf("expected main.go to be loaded")
	}

	m.handleKeyMsg(key("s"))
	typeQuery(m, "main")
	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEnter})
	if m.focus.Mode != uistate.ModeSearchSuspended {
		t.Fatalf("expected suspended search, got %s", m.focus.Mode)
	}
	if n, _ := dir.Node(mainID); n.Label != "src/main.go" {
		t.Fatalf("expected relative label while searching, got %q", n.Label)
	}

	send(m, editorFinishedMsg{path: "/work/proj/README.md"})
	if !dir.Has(mainID) {
		t.Fatalf("expected main.go to survive the editor exiting mid-search")
	}
	if _, ok := m.deferred[backend.KindDirectory]; !ok {
		t.Fatalf("expected the directory reload to be deferred")
	}

	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEsc})
	if got := snapshot(dir); !reflect.DeepEqual(got, before) {
		t.Fatalf("expected ids, labels and parents unchanged, got %v want %v", got, before)
	}
	if len(m.deferred) != 0 {
		t.Fatalf("expected deferred reload flushed on cancel")
	}
}

func TestActionReloadWaitsForSearchToClose(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	m.handleKeyMsg(key("2"))
	dir := m.directory.tree
	dir.Load(dir.Root(), 4)
	before := snapshot(dir)

	m.handleKeyMsg(key("s"))
	send(m, command.Result{ID: actionIgnore, Label: "build", Info: "Ignoring build in proj"})
	if _, ok := m.deferred[backend.KindBookmarks]; !ok {
		t.Fatalf("expected the reload to be deferred")
	}
	if got := labels(m.bookmarks.tree, m.bookmarks.tree.Root()); len(got) != 2 {
		t.Fatalf("expected bookmarks untouched while searching, got %v", got)
	}

	m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEsc})
	if got := snapshot(dir); !reflect.DeepEqual(got, before) {
		t.Fatalf("expected directory tree unchanged after the deferred reload")
	}
	if len(m.deferred) != 0 {
		t.Fatalf("expected deferred reload flushed on cancel")
	}
}
