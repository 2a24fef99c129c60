package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gustavkrist/bookmarks/internal/tree"
	uistate "github.com/gustavkrist/bookmarks/internal/ui/state"
	"github.com/muesli/reflow/truncate"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	searchBarRows = 3
	infoTimeout   = 5 * time.Second
)

const (
	footerText       = "1/2 pane  tab preview  enter open  s search  e edit  y copy  z cd  ctrl+x remove  ctrl+] ignore  q quit"
	footerSearchText = "enter results  esc cancel  ↑/↓ move  ctrl+u clear  ctrl+w word"
	footerResultText = "enter confirm  s edit query  esc cancel  j/k move  e edit  y copy  z cd"
)

// panelLayout holds the outer sizes of every panel.
type panelLayout struct {
	leftW      int
	rightW     int
	panelH     int
	searchH    int
	bookmarksH int
	directoryH int
}

func (m *Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (m *Model) bottomRows() int {
	if m.showFooter {
		return 2
	}
	return 1
}

// leftWidth is the width of the column holding the tree panes.
func (m *Model) leftWidth() int {
	w, _ := m.size()
	return w * 2 / 5
}

func (m *Model) computeLayout() panelLayout {
	w, h := m.size()
	l := panelLayout{leftW: m.leftWidth()}
	l.rightW = w - l.leftW
	l.panelH = max(h-m.bottomRows(), 2)
	if m.overlay != nil {
		l.searchH = searchBarRows
	}
	rest := max(l.panelH-l.searchH, 4)
	l.bookmarksH = rest / 2
	l.directoryH = rest - l.bookmarksH
	return l
}

// layout pushes the panel sizes into the viewports.
func (m *Model) layout() {
	l := m.computeLayout()
	m.bookmarks.view.Height = max(l.bookmarksH-2, 1)
	m.follow(m.bookmarks)
	if m.directory != nil {
		m.directory.view.Height = max(l.directoryH-2, 1)
		m.follow(m.directory)
	}
	if m.overlay != nil {
		if pane := m.paneFor(m.focus.SearchTarget); pane != nil {
			m.overlayView.Height = pane.view.Height
		}
	}
	m.previewView.Width = max(l.rightW-2, 1)
	m.previewView.Height = max(l.panelH-2, 1)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.layout()
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	l := m.computeLayout()
	left := make([]string, 0, 3)
	if m.overlay != nil {
		left = append(left, m.renderSearchBar(l.leftW))
	}
	left = append(left, m.renderTreePanel(m.bookmarks, uistate.PaneBookmarks, l.leftW, l.bookmarksH))
	left = append(left, m.renderTreePanel(m.directory, uistate.PaneDirectory, l.leftW, l.directoryH))
	leftStr := lipgloss.JoinVertical(lipgloss.Left, left...)
	rightStr := m.renderPreviewPanel(l.rightW, l.panelH)
	top := lipgloss.JoinHorizontal(lipgloss.Top, leftStr, rightStr)

	w, _ := m.size()
	bottom := []string{fitWidth(m.statusLine(), w)}
	if m.showFooter {
		bottom = append(bottom, fitWidth(render(styles.Footer, m.footer()), w))
	}
	return top + "\n" + strings.Join(bottom, "\n")
}

func (m *Model) statusLine() string {
	if m.errMsg != "" {
		return render(styles.Error, "Error: "+m.errMsg)
	}
	if info := m.currentInfo(); info != "" {
		return render(styles.Info, info)
	}
	if warn, msg := m.hasBackendIssue(); warn {
		return render(styles.Error, "Watcher: "+msg)
	}
	return ""
}

func (m *Model) footer() string {
	switch m.focus.Mode {
	case uistate.ModeSearch:
		return footerSearchText
	case uistate.ModeSearchSuspended:
		return footerResultText
	default:
		return footerText
	}
}

func (m *Model) renderSearchBar(width int) string {
	info := ""
	if m.overlay != nil {
		info = fmt.Sprintf("%d/%d", m.overlay.Len(), m.overlay.PoolSize())
	}
	focused := m.focus.Active == uistate.PaneSearch
	return renderPanel("Search", info, []string{m.filterPrompt()}, width, searchBarRows, focused)
}

func (m *Model) renderTreePanel(pane *treePane, p uistate.Pane, width, height int) string {
	focused := m.focus.Active == p
	if pane == nil {
		return renderPanel("Directory", "", []string{render(styles.Info, "(no directory open)")}, width, height, focused)
	}
	innerW := max(width-2, 1)
	innerH := max(height-2, 1)
	if m.overlay != nil && m.focus.SearchTarget == p {
		return renderPanel(pane.title, m.overlayInfo(), m.overlayLines(innerW, innerH), width, height, focused)
	}
	total := pane.tree.VisibleHeight()
	top, _ := pane.view.Window(total)
	rows := pane.tree.Rows(top, innerH)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, renderRow(row, innerW, nil))
	}
	if len(lines) == 0 {
		lines = append(lines, render(styles.Info, "(empty)"))
	}
	info := ""
	if total > 0 {
		info = fmt.Sprintf("%d/%d", pane.tree.CursorLine()+1, total)
	}
	return renderPanel(pane.title, info, lines, width, height, focused)
}

func (m *Model) overlayInfo() string {
	if m.overlay.Len() == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", m.overlay.Cursor()+1, m.overlay.Len())
}

func (m *Model) overlayLines(width, height int) []string {
	if m.overlay.Len() == 0 {
		msg := "(nothing to search)"
		if m.query.Text != "" {
			msg = fmt.Sprintf("No matches for %q", m.query.Text)
		}
		return []string{render(styles.Info, msg)}
	}
	top, end := m.overlayView.Window(m.overlay.Len())
	positions := make(map[tree.ID][]int, end-top)
	for i := top; i < end; i++ {
		positions[m.overlay.Results()[i].ID] = m.overlay.Positions(i)
	}
	rows := m.overlay.Rows(top, height)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, renderRow(row, width, positions[row.ID]))
	}
	return lines
}

// renderRow draws one tree row. positions are byte offsets into the label
// to mark as matched.
func renderRow(row tree.Row, width int, positions []int) string {
	base := labelStyle(row)
	match := styles.Match
	if row.Highlighted && styles.Selected != nil {
		base = styles.Selected
		selectedMatch := styles.Selected.Copy().Underline(true)
		match = &selectedMatch
	}
	guide := render(styles.Guide, row.Guide())
	label := row.Label
	if row.Dir && row.Kind != tree.KindRoot {
		label += "/"
	}
	if row.Highlighted {
		if pad := width - lipgloss.Width(row.Guide()) - lipgloss.Width(label); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
	}
	if len(positions) == 0 {
		return guide + render(base, label)
	}
	matched := make(map[int]bool, len(positions))
	for _, p := range positions {
		matched[p] = true
	}
	var b strings.Builder
	b.WriteString(guide)
	for i, r := range label {
		if matched[i] {
			b.WriteString(render(match, string(r)))
		} else {
			b.WriteString(render(base, string(r)))
		}
	}
	return b.String()
}

func labelStyle(row tree.Row) *lipgloss.Style {
	switch {
	case row.PermissionDenied:
		return styles.Denied
	case row.Kind == tree.KindBookmark:
		return styles.Bookmark
	case row.Dir:
		return styles.Directory
	default:
		return styles.File
	}
}

func (m *Model) renderPreviewPanel(width, height int) string {
	focused := m.focus.Active == uistate.PanePreview
	data := m.preview
	title := "Preview"
	if data.label != "" {
		title = "Preview: " + data.label
	}
	var lines []string
	info := ""
	switch {
	case data.path == "":
		lines = []string{render(styles.Info, "(nothing to preview)")}
	case data.loading:
		lines = []string{render(styles.Info, "Loading…")}
	case data.err != "":
		lines = []string{render(styles.PreviewError, data.err)}
	default:
		top := min(m.previewView.YOffset, max(len(data.lines)-1, 0))
		end := min(top+max(height-2, 1), len(data.lines))
		lines = data.lines[top:end]
		info = fmt.Sprintf("%d/%d", end, len(data.lines))
	}
	return renderPanel(title, info, lines, width, height, focused)
}

// renderPanel draws a rounded box of exactly width columns and height rows
// around lines. Lines may carry ANSI styling.
func renderPanel(title, info string, lines []string, width, height int, focused bool) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)
	border := styles.Border
	if focused {
		border = styles.BorderFocused
	}
	innerW := max(width-2, 1)
	innerH := max(height-2, 1)

	titleSeg := " " + title + " "
	infoSeg := ""
	if info != "" {
		infoSeg = " " + info + " "
	}
	dashes := width - 4 - lipgloss.Width(titleSeg) - lipgloss.Width(infoSeg)
	if dashes < 0 {
		infoSeg = ""
		dashes = width - 4 - lipgloss.Width(titleSeg)
	}
	if dashes < 0 {
		titleSeg = truncate.StringWithTail(titleSeg, uint(max(width-4, 1)), "…")
		dashes = max(width-4-lipgloss.Width(titleSeg), 0)
	}
	topLine := render(border, tlc+hz) +
		render(styles.PanelTitle, titleSeg) +
		render(border, strings.Repeat(hz, dashes)) +
		render(styles.PanelInfo, infoSeg) +
		render(border, hz+trc)
	bottomLine := render(border, blc+strings.Repeat(hz, innerW)+brc)

	rows := make([]string, 0, innerH+2)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		var content string
		if i < len(lines) {
			content = lines[i]
		}
		rows = append(rows, render(border, vt)+fitWidth(content, innerW)+render(border, vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}

// fitWidth truncates or pads s to exactly width visible columns.
func fitWidth(s string, width int) string {
	w := lipgloss.Width(s)
	if w > width {
		s = truncate.StringWithTail(s, uint(max(width-1, 0)), "…")
		w = lipgloss.Width(s)
	}
	if w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

func render(style *lipgloss.Style, s string) string {
	if style == nil || s == "" {
		return s
	}
	return style.Render(s)
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoTimeout)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
