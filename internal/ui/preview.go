package ui

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/gustavkrist/bookmarks/internal/logging/events"
	"github.com/gustavkrist/bookmarks/internal/tree"
	"github.com/spf13/afero"
)

const (
	// binaryProbe is how many leading bytes are checked for NUL.
	binaryProbe = 8000
	// maxPreviewBytes caps how much of a file is read for the preview.
	maxPreviewBytes = 1 << 20

	binaryNotice = "Cannot render binary file"
)

type previewData struct {
	path    string
	label   string
	seq     int
	loading bool
	stale   bool
	err     string
	lines   []string
}

type previewLoadedMsg struct {
	path    string
	seq     int
	content string
	err     error
}

var renderPreviewFn = renderPreview

// refreshPreview marks the shown preview stale after a reload and renders
// it again when the cursor still sits on that file.
func (m *Model) refreshPreview() tea.Cmd {
	if m.preview.path == "" {
		return nil
	}
	m.preview.stale = true
	node, _ := m.cursorNode()
	if node == nil || node.Path != m.preview.path {
		return nil
	}
	return m.loadPreview(node)
}

// loadPreview starts rendering the file behind node. Results for anything
// but the latest request are dropped on arrival.
func (m *Model) loadPreview(node *tree.Node) tea.Cmd {
	if node == nil || node.Path == "" || node.Dir {
		return nil
	}
	if m.preview.path == node.Path && !m.preview.loading && !m.preview.stale && m.preview.err == "" {
		return nil
	}
	m.previewSeq++
	seq := m.previewSeq
	m.preview = previewData{
		path:    node.Path,
		label:   filepath.Base(node.Path),
		seq:     seq,
		loading: true,
	}
	m.previewView.SetContent("")
	m.previewView.GotoTop()
	events.UI.Preview(node.Path, seq)

	fsys := m.fs
	path := node.Path
	style := m.previewStyle
	width := m.previewView.Width
	return func() tea.Msg {
		content, err := renderPreviewFn(fsys, path, style, width)
		return previewLoadedMsg{path: path, seq: seq, content: content, err: err}
	}
}

func (m *Model) handlePreviewLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(previewLoadedMsg)
	if !ok {
		return nil
	}
	if update.seq != m.preview.seq || update.path != m.preview.path {
		return nil
	}
	m.preview.loading = false
	if update.err != nil {
		m.preview.err = update.err.Error()
		m.preview.lines = nil
		m.previewView.SetContent("")
	} else {
		m.preview.err = ""
		m.preview.lines = strings.Split(update.content, "\n")
		m.previewView.SetContent(update.content)
	}
	m.previewView.GotoTop()
	return nil
}

func (m *Model) scrollPreview(delta int) {
	if delta > 0 {
		m.previewView.LineDown(delta)
	} else if delta < 0 {
		m.previewView.LineUp(-delta)
	}
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	delta := 0
	switch mouse.Button {
	case tea.MouseButtonWheelDown:
		delta = 1
	case tea.MouseButtonWheelUp:
		delta = -1
	default:
		return nil
	}
	if mouse.X >= m.leftWidth() && m.preview.path != "" {
		m.scrollPreview(delta * 3)
		return nil
	}
	m.moveCursor(delta)
	return nil
}

// renderPreview reads path and renders it for a pane width columns wide.
func renderPreview(fsys afero.Fs, path, style string, width int) (string, error) {
	data, err := readHead(fsys, path)
	if err != nil {
		return "", err
	}
	if isBinary(data) {
		return binaryNotice, nil
	}
	text := string(data)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		if out, err := renderMarkdown(text, width); err == nil {
			return out, nil
		}
	}
	return highlight(path, text, style)
}

func readHead(fsys afero.Fs, path string) ([]byte, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxPreviewBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func isBinary(data []byte) bool {
	if len(data) > binaryProbe {
		data = data[:binaryProbe]
	}
	return bytes.IndexByte(data, 0) >= 0
}

func renderMarkdown(text string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(text)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

// highlight colours text with the lexer matching path and numbers its
// lines.
func highlight(path, text, style string) (string, error) {
	text = strings.TrimRight(text, "\n")
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		lexer = lexers.Analyse(text)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return "", fmt.Errorf("highlight %s: %w", path, err)
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, chromastyles.Get(style), it); err != nil {
		return "", fmt.Errorf("highlight %s: %w", path, err)
	}
	return numberLines(buf.String(), strings.Count(text, "\n")+1), nil
}

// numberLines prefixes the first want lines of text with line numbers.
// Lexers may append a newline of their own, so extra lines are dropped.
func numberLines(text string, want int) string {
	lines := strings.Split(text, "\n")
	if len(lines) > want {
		lines = lines[:want]
	}
	digits := len(fmt.Sprint(len(lines)))
	for i, line := range lines {
		num := fmt.Sprintf("%*d ", digits, i+1)
		if styles.LineNumber != nil {
			num = styles.LineNumber.Render(num)
		}
		lines[i] = num + line
	}
	return strings.Join(lines, "\n")
}
