package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gustavkrist/bookmarks/internal/logging/events"
	uistate "github.com/gustavkrist/bookmarks/internal/ui/state"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(before int) {
	if before != m.query.Pos() {
		m.filterCursorDirty = true
	}
}

// handleSearchKey routes keys while the query has focus.
func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		return m.cancelSearch()
	case "enter":
		m.suspendSearch()
		return nil
	case "up", "ctrl+p":
		m.moveOverlayCursor(-1)
		return nil
	case "down", "ctrl+n":
		m.moveOverlayCursor(1)
		return nil
	}
	m.handleTextInput(msg)
	return nil
}

// handleSuspendedKey routes keys while the results have focus.
func (m *Model) handleSuspendedKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "esc":
		return m.cancelSearch()
	case "enter":
		return m.confirmSearch()
	case "s", "/":
		m.resumeSearch()
	case "j", "down":
		m.moveOverlayCursor(1)
	case "k", "up":
		m.moveOverlayCursor(-1)
	case "ctrl+d":
		m.moveOverlayCursor(jumpLines)
	case "ctrl+u":
		m.moveOverlayCursor(-jumpLines)
	case "e":
		return m.openInEditor()
	case "y":
		return m.copyPath()
	case "z":
		return m.changeDirectory()
	}
	return nil
}

func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	pane := m.focus.SearchTarget.String()
	switch msg.String() {
	case "ctrl+u":
		before := m.query.Pos()
		if !m.query.Clear() {
			return false
		}
		m.noteFilterCursorChange(before)
		m.errMsg = ""
		events.Query.Cleared(pane)
		m.widen()
		return true
	case "ctrl+w":
		before := m.query.Pos()
		if !m.query.DeleteWordBackward() {
			return false
		}
		m.noteFilterCursorChange(before)
		m.errMsg = ""
		events.Query.WordBackspace(pane, m.query.Text)
		m.widen()
		return true
	case "ctrl+a":
		return m.moveQueryCursor(m.query.MoveStart)
	case "ctrl+e":
		return m.moveQueryCursor(m.query.MoveEnd)
	case "alt+b":
		return m.moveQueryCursor(m.query.MoveWordBackward)
	case "alt+f":
		return m.moveQueryCursor(m.query.MoveWordForward)
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		before := m.query.Pos()
		if !m.query.DeleteRuneBackward() {
			return false
		}
		m.noteFilterCursorChange(before)
		m.errMsg = ""
		events.Query.Backspace(pane, m.query.Text)
		m.widen()
		return true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false
			}
		}
		return m.appendToQuery(string(msg.Runes))
	case tea.KeySpace:
		return m.appendToQuery(" ")
	case tea.KeyLeft:
		return m.moveQueryCursor(m.query.MoveRuneBackward)
	case tea.KeyRight:
		return m.moveQueryCursor(m.query.MoveRuneForward)
	}
	return false
}

func (m *Model) moveQueryCursor(move func() bool) bool {
	before := m.query.Pos()
	if !move() {
		return false
	}
	m.noteFilterCursorChange(before)
	events.Query.Cursor(m.focus.SearchTarget.String(), m.query.Pos())
	return true
}

func (m *Model) appendToQuery(text string) bool {
	before := m.query.Pos()
	if !m.query.Insert(text) {
		return false
	}
	m.noteFilterCursorChange(before)
	m.errMsg = ""
	events.Query.Append(m.focus.SearchTarget.String(), m.query.Text)
	m.refine()
	return true
}

func (m *Model) filterPrompt() string {
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := m.query.Text
	if text == "" {
		placeholder := "(type to search)"
		runes := []rune(placeholder)
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(runes[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(runes[1:]))
	}
	runes := []rune(text)
	pos := m.query.Pos()
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy()
	base = base.Inline(true)

	// The caret only shows while the query has focus.
	if m.filterCursor.Blink || m.focus.Active != uistate.PaneSearch {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
