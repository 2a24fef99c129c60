package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gustavkrist/bookmarks/internal/logging/events"
	"github.com/gustavkrist/bookmarks/internal/tree"
	uistate "github.com/gustavkrist/bookmarks/internal/ui/state"
)

// jumpLines is how far ctrl+d and ctrl+u move the cursor.
const jumpLines = 5

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	m.clearInfo()
	switch m.focus.Mode {
	case uistate.ModeSearch:
		return m.handleSearchKey(keyMsg)
	case uistate.ModeSearchSuspended:
		return m.handleSuspendedKey(keyMsg)
	}
	switch keyMsg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "1", "ctrl+k", "esc":
		m.selectPane(uistate.PaneBookmarks)
	case "2", "ctrl+j":
		m.selectPane(uistate.PaneDirectory)
	case "tab":
		m.togglePreview()
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "ctrl+d":
		m.moveCursor(jumpLines)
	case "ctrl+u":
		m.moveCursor(-jumpLines)
	case "enter":
		return m.handleEnterKey()
	case "r":
		return m.reloadAll()
	case "ctrl+x":
		return m.removeBookmark()
	case "ctrl+]":
		return m.ignoreEntry()
	case "e":
		return m.openInEditor()
	case "y":
		return m.copyPath()
	case "z":
		return m.changeDirectory()
	case "s", "/":
		return m.beginSearch()
	}
	return nil
}

func (m *Model) selectPane(p uistate.Pane) {
	from := m.focus.Active
	if p == uistate.PaneDirectory && m.directory == nil {
		return
	}
	if m.focus.Select(p) && from != p {
		events.UI.Focus(from.String(), p.String(), m.focus.Mode.String())
	}
}

func (m *Model) togglePreview() {
	from := m.focus.Active
	if m.focus.TogglePreview() {
		events.UI.Focus(from.String(), m.focus.Active.String(), m.focus.Mode.String())
	}
}

// paneFor returns the tree pane behind a focus target.
func (m *Model) paneFor(p uistate.Pane) *treePane {
	switch p {
	case uistate.PaneBookmarks:
		return m.bookmarks
	case uistate.PaneDirectory:
		return m.directory
	default:
		return nil
	}
}

// activePane returns the tree pane receiving keys, or nil when the preview
// or search bar is focused.
func (m *Model) activePane() *treePane {
	return m.paneFor(m.focus.Active)
}

func (m *Model) moveCursor(delta int) {
	if m.focus.Active == uistate.PanePreview {
		m.scrollPreview(delta)
		return
	}
	if m.overlay != nil {
		m.moveOverlayCursor(delta)
		return
	}
	pane := m.activePane()
	if pane == nil {
		return
	}
	t := pane.tree
	before := t.CursorLine()
	var moved int
	if delta > 0 {
		moved = t.CursorDownBy(delta)
	} else {
		moved = -t.CursorUpBy(-delta)
	}
	if moved == 0 {
		return
	}
	total := t.VisibleHeight()
	step := 1
	if moved < 0 {
		step = -1
	}
	for line := before + step; line != before+moved+step; line += step {
		pane.view.Follow(line, total, step)
	}
	events.UI.Cursor(m.focus.Active.String(), t.CursorLine(), pane.view.Top)
}

func (m *Model) handleEnterKey() tea.Cmd {
	pane := m.activePane()
	if pane == nil {
		return nil
	}
	return m.enter(pane, m.focus.Active)
}

// enter runs the kind-specific action for the cursor node of pane.
func (m *Model) enter(pane *treePane, p uistate.Pane) tea.Cmd {
	action, node := pane.tree.Enter()
	if node == nil {
		return nil
	}
	events.UI.Enter(p.String(), node.Label, node.Kind.String(), action.String())
	switch action {
	case tree.ActionToggled:
		m.follow(pane)
		m.syncWatch()
	case tree.ActionOpenTree:
		m.openDirectory(node, true)
	case tree.ActionPreview:
		return m.loadPreview(node)
	}
	return nil
}

// enterBookmark acts on the bookmark under the cursor without moving focus.
func (m *Model) enterBookmark(focus bool) tea.Cmd {
	node := m.bookmarks.tree.CursorNode()
	if node == nil || node.Kind != tree.KindBookmark {
		return nil
	}
	if node.Dir {
		m.openDirectory(node, focus)
		return nil
	}
	return m.loadPreview(node)
}

// openDirectory shows the directory tree of a bookmark, reusing the cached
// tree when the bookmark was opened before.
func (m *Model) openDirectory(node *tree.Node, focus bool) {
	name := node.Label
	ignores := tree.NewIgnoreSet(m.file.IgnoresFor(name)...)
	pane, ok := m.dirPanes[name]
	if ok && pane.tree.RootNode().Path == node.Path {
		root := pane.tree.Root()
		pane.tree.SetIgnores(root, ignores)
		pane.tree.Reload(root)
	} else {
		t := tree.New(node.Path, node.Path, tree.Options{
			Source:      m.source,
			EagerReload: true,
			Ignores:     ignores,
		})
		t.Load(t.Root(), 1)
		pane = &treePane{title: name, name: name, tree: t}
		m.dirPanes[name] = pane
	}
	m.directory = pane
	m.layout()
	m.center(pane)
	if focus {
		m.selectPane(uistate.PaneDirectory)
	}
	m.syncWatch()
}

// follow clamps the viewport of pane around its cursor.
func (m *Model) follow(pane *treePane) {
	if pane == nil {
		return
	}
	pane.view.Follow(pane.tree.CursorLine(), pane.tree.VisibleHeight(), 0)
}

// center recomputes the viewport of pane from its cursor line.
func (m *Model) center(pane *treePane) {
	if pane == nil {
		return
	}
	pane.view.Center(pane.tree.CursorLine(), pane.tree.VisibleHeight())
}

// cursorNode returns the node the user is pointing at: the overlay
// selection while searching, else the cursor of the focused tree pane.
func (m *Model) cursorNode() (*tree.Node, *treePane) {
	if m.overlay != nil {
		pane := m.paneFor(m.focus.SearchTarget)
		if pane == nil {
			return nil, nil
		}
		id, ok := m.overlay.Selected()
		if !ok {
			return nil, pane
		}
		n, _ := pane.tree.Node(id)
		return n, pane
	}
	pane := m.activePane()
	if pane == nil {
		return nil, nil
	}
	return pane.tree.CursorNode(), pane
}
