package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gustavkrist/bookmarks/internal/backend"
	"github.com/gustavkrist/bookmarks/internal/bookmarks"
	"github.com/gustavkrist/bookmarks/internal/logging"
	"github.com/gustavkrist/bookmarks/internal/logging/events"
	"github.com/gustavkrist/bookmarks/internal/tree"
	uistate "github.com/gustavkrist/bookmarks/internal/ui/state"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		waitCmd := waitForBackendEvent(m.backend)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	m.backendState[evt.Kind] = evt.Err
	if evt.Err != nil {
		m.backendLastErr = evt.Err.Error()
		return nil
	}
	events.Watch.Event(evt.Kind.String(), evt.Path)
	if m.focus.Searching() {
		// The overlay relabels nodes of the live tree; reconcile once it
		// has closed.
		m.deferred[evt.Kind] = evt
		return nil
	}
	cmd := m.dispatch(evt)
	if warn, _ := m.hasBackendIssue(); !warn {
		m.backendLastErr = ""
	}
	return cmd
}

// dispatch applies one watcher event to the trees.
func (m *Model) dispatch(evt backend.Event) tea.Cmd {
	res := m.dispatcher.Handle(evt)
	if res.Err != nil {
		m.setError(res.Err)
		return nil
	}
	if res.BookmarksUpdated {
		m.applyBookmarkFile(res.Bookmarks)
	}
	if res.BookmarksUpdated || res.DirectoryChanged {
		m.reloadDirectory()
	}
	m.syncWatch()
	return m.refreshPreview()
}

// flushDeferred applies reloads that were held back during a search.
func (m *Model) flushDeferred() tea.Cmd {
	var cmds []tea.Cmd
	for _, kind := range []backend.Kind{backend.KindBookmarks, backend.KindDirectory} {
		if evt, ok := m.deferred[kind]; ok {
			delete(m.deferred, kind)
			cmds = append(cmds, m.dispatch(evt))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) hasBackendIssue() (bool, string) {
	for _, err := range m.backendState {
		if err != nil {
			msg := m.backendLastErr
			if msg == "" {
				msg = err.Error()
			}
			return true, msg
		}
	}
	return false, ""
}

// syncWatch points the watcher at the directories visible in the directory
// pane.
func (m *Model) syncWatch() {
	if m.backend == nil {
		return
	}
	var dirs []string
	if m.directory != nil {
		dirs = m.directory.tree.ExpandedDirs()
	}
	m.backend.WatchDirs(dirs)
}

// reloadAll rereads the bookmark file and reconciles both panes.
func (m *Model) reloadAll() tea.Cmd {
	if m.store == nil {
		m.reloadDirectory()
		return m.refreshPreview()
	}
	if m.focus.Searching() {
		m.deferred[backend.KindBookmarks] = backend.Event{Kind: backend.KindBookmarks, Path: m.store.Path()}
		return nil
	}
	file, err := m.store.Load()
	if err != nil {
		m.setError(err)
		return nil
	}
	m.applyBookmarkFile(file)
	m.reloadDirectory()
	m.syncWatch()
	return m.refreshPreview()
}

// applyBookmarkFile reconciles the bookmark pane against file and drops
// cached directory trees whose bookmark is gone.
func (m *Model) applyBookmarkFile(file bookmarks.File) {
	m.file = file
	res := m.bookmarks.tree.ReconcileBookmarks(treeBookmarks(file))
	if res.CursorReset {
		m.center(m.bookmarks)
	} else {
		m.follow(m.bookmarks)
	}

	paths := make(map[string]string, len(file.Bookmarks))
	for _, e := range file.Entries() {
		paths[e.Name] = e.Path
	}
	for name, pane := range m.dirPanes {
		if path, ok := paths[name]; !ok || path != pane.tree.RootNode().Path {
			delete(m.dirPanes, name)
			if m.directory == pane {
				m.directory = nil
			}
			continue
		}
		pane.tree.SetIgnores(pane.tree.Root(), tree.NewIgnoreSet(file.IgnoresFor(name)...))
	}
	if m.directory == nil {
		if m.focus.Active == uistate.PaneDirectory {
			m.selectPane(uistate.PaneBookmarks)
		}
		if n := m.bookmarks.tree.CursorNode(); n != nil && n.Kind == tree.KindBookmark && n.Dir {
			m.openDirectory(n, false)
		}
	}
}

// reloadDirectory reconciles the tree shown in the directory pane. While a
// search is open the reload waits for the overlay to close, since the
// overlay has relabelled the nodes the reconcile matches against.
func (m *Model) reloadDirectory() {
	pane := m.directory
	if pane == nil {
		return
	}
	if m.focus.Searching() {
		m.deferred[backend.KindDirectory] = backend.Event{Kind: backend.KindDirectory, Path: pane.tree.RootNode().Path}
		return
	}
	res := pane.tree.Reload(pane.tree.Root())
	if res.CursorReset {
		m.center(pane)
		events.Tree.CursorReset(pane.tree.RootNode().Path, pane.tree.CursorLine())
	} else {
		m.follow(pane)
	}
}

func (m *Model) setError(err error) {
	if err == nil {
		return
	}
	logging.Error(err)
	m.errMsg = fmt.Sprint(err)
	m.forceClearInfo()
}
