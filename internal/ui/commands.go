package ui

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gustavkrist/bookmarks/internal/logging/events"
	"github.com/gustavkrist/bookmarks/internal/tree"
	"github.com/gustavkrist/bookmarks/internal/ui/command"
	uistate "github.com/gustavkrist/bookmarks/internal/ui/state"
)

const (
	actionRemove = "bookmark:remove"
	actionIgnore = "entry:ignore"
	actionCopy   = "path:copy"
)

var errNoStore = errors.New("no bookmark file is open")

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

type editorFinishedMsg struct {
	path string
	err  error
}

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	if result.Err != nil {
		m.setError(result.Err)
		events.Action.Error(result.Err)
		return nil
	}
	m.errMsg = ""
	if result.Info != "" {
		m.setInfo(result.Info)
	}
	events.Action.Success(result.Info)
	switch result.ID {
	case actionRemove, actionIgnore:
		return m.reloadAll()
	}
	return nil
}

// removeBookmark deletes the bookmark under the cursor from the file.
func (m *Model) removeBookmark() tea.Cmd {
	if m.focus.Active != uistate.PaneBookmarks {
		return nil
	}
	node := m.bookmarks.tree.CursorNode()
	if node == nil || node.Kind != tree.KindBookmark {
		return nil
	}
	store := m.store
	name := node.Label
	return m.bus.Execute(command.Request{
		ID:    actionRemove,
		Label: name,
		Handler: func() (string, error) {
			if store == nil {
				return "", errNoStore
			}
			if err := store.Remove(name); err != nil {
				return "", err
			}
			return fmt.Sprintf("Removed bookmark %s", name), nil
		},
	})
}

// ignoreEntry hides the entry under the directory cursor from this bookmark
// from now on.
func (m *Model) ignoreEntry() tea.Cmd {
	pane := m.directory
	if m.focus.Active != uistate.PaneDirectory || pane == nil {
		return nil
	}
	node := pane.tree.CursorNode()
	if node == nil || node.ID == pane.tree.Root() {
		return nil
	}
	store := m.store
	bookmark := pane.name
	entry := node.Label
	return m.bus.Execute(command.Request{
		ID:    actionIgnore,
		Label: entry,
		Handler: func() (string, error) {
			if store == nil {
				return "", errNoStore
			}
			if err := store.Ignore(bookmark, entry); err != nil {
				return "", err
			}
			return fmt.Sprintf("Ignoring %s in %s", entry, bookmark), nil
		},
	})
}

// copyPath puts the path under the cursor on the system clipboard.
func (m *Model) copyPath() tea.Cmd {
	node, _ := m.cursorNode()
	if node == nil || node.Path == "" {
		return nil
	}
	path := node.Path
	return m.bus.Execute(command.Request{
		ID:    actionCopy,
		Label: path,
		Handler: func() (string, error) {
			if err := clipboardWrite(path); err != nil {
				return "", fmt.Errorf("copy path: %w", err)
			}
			return fmt.Sprintf("Copied %s", path), nil
		},
	})
}

// openInEditor suspends the dashboard and opens the node under the cursor.
func (m *Model) openInEditor() tea.Cmd {
	node, _ := m.cursorNode()
	if node == nil || node.Path == "" {
		return nil
	}
	args := strings.Fields(m.editor)
	if len(args) == 0 {
		args = []string{"vi"}
	}
	path := node.Path
	c := exec.Command(args[0], append(args[1:], path)...)
	if node.Dir {
		c.Dir = path
	} else {
		c.Dir = filepath.Dir(path)
	}
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return editorFinishedMsg{path: path, err: err}
	})
}

func (m *Model) handleEditorFinishedMsg(msg tea.Msg) tea.Cmd {
	done, ok := msg.(editorFinishedMsg)
	if !ok {
		return nil
	}
	if done.err != nil {
		err := fmt.Errorf("editor: %w", done.err)
		m.setError(err)
		events.Action.Error(err)
		return nil
	}
	events.Action.Success(done.path)
	m.reloadDirectory()
	m.syncWatch()
	return m.refreshPreview()
}

// changeDirectory records the directory to switch to and quits. A file
// selects its parent directory.
func (m *Model) changeDirectory() tea.Cmd {
	node, _ := m.cursorNode()
	if node == nil || node.Path == "" {
		return nil
	}
	dir := node.Path
	if !node.Dir {
		dir = filepath.Dir(dir)
	}
	m.changeDir = dir
	if m.overlay != nil {
		m.overlay.Cancel()
		m.closeSearch()
	}
	events.Action.Success(dir)
	return tea.Quit
}

