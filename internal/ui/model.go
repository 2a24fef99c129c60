package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gustavkrist/bookmarks/internal/backend"
	"github.com/gustavkrist/bookmarks/internal/bookmarks"
	"github.com/gustavkrist/bookmarks/internal/data/dispatcher"
	"github.com/gustavkrist/bookmarks/internal/search"
	"github.com/gustavkrist/bookmarks/internal/theme"
	"github.com/gustavkrist/bookmarks/internal/tree"
	"github.com/gustavkrist/bookmarks/internal/ui/command"
	uistate "github.com/gustavkrist/bookmarks/internal/ui/state"
	"github.com/spf13/afero"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options wires the model to its collaborators.
type Options struct {
	Store        *bookmarks.Store
	File         bookmarks.File
	Source       tree.Source
	FS           afero.Fs
	Watcher      *backend.Watcher
	Ranker       search.Ranker
	Search       search.Options
	Width        int
	Height       int
	ShowFooter   bool
	Editor       string
	PreviewStyle string
}

// Result is what the dashboard hands back to its caller on exit.
type Result struct {
	// ChangeDir is the directory picked with the change-dir key, if any.
	ChangeDir string
}

// treePane is a tree plus the scroll state of the panel showing it.
type treePane struct {
	title string
	name  string
	tree  *tree.Tree
	view  tree.Viewport
}

// Model implements the Bubble Tea model for the bookmark dashboard.
type Model struct {
	store  *bookmarks.Store
	source tree.Source
	fs     afero.Fs
	file   bookmarks.File

	bookmarks *treePane
	directory *treePane
	dirPanes  map[string]*treePane

	focus       uistate.Focus
	query       uistate.Query
	overlay     *search.Overlay
	overlayView tree.Viewport
	ranker      search.Ranker
	searchOpts  search.Options

	preview      previewData
	previewView  viewport.Model
	previewSeq   int
	previewStyle string

	editor    string
	changeDir string

	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	backend        *backend.Watcher
	backendState   map[backend.Kind]error
	backendLastErr string
	deferred       map[backend.Kind]backend.Event
	dispatcher     *dispatcher.Dispatcher
	bus            *command.Bus
	startup        tea.Cmd

	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the dashboard for the bookmarks in opts.File and opens the
// first bookmark.
func NewModel(opts Options) *Model {
	var loader dispatcher.Loader
	if opts.Store != nil {
		loader = opts.Store
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	ranker := opts.Ranker
	if ranker == nil {
		ranker = search.FuzzySearch{}
	}
	m := &Model{
		store:        opts.Store,
		source:       opts.Source,
		fs:           fsys,
		file:         opts.File,
		dirPanes:     make(map[string]*treePane),
		focus:        uistate.NewFocus(),
		ranker:       ranker,
		searchOpts:   opts.Search,
		previewView:  viewport.New(0, 0),
		previewStyle: opts.PreviewStyle,
		editor:       opts.Editor,
		showFooter:   opts.ShowFooter,
		backend:      opts.Watcher,
		backendState: map[backend.Kind]error{},
		deferred:     map[backend.Kind]backend.Event{},
		dispatcher:   dispatcher.New(loader),
		bus:          command.New(),
	}
	m.bookmarks = &treePane{
		title: "Bookmarks",
		tree:  tree.NewBookmarkTree(opts.Source, treeBookmarks(opts.File)),
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.layout()
	m.startup = m.enterBookmark(false)
	m.registerHandlers()
	return m
}

func treeBookmarks(f bookmarks.File) []tree.Bookmark {
	entries := f.Entries()
	out := make([]tree.Bookmark, len(entries))
	for i, e := range entries {
		out[i] = tree.Bookmark{Name: e.Name, Path: e.Path}
	}
	return out
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.startup != nil {
		cmds = append(cmds, m.startup)
		m.startup = nil
	}
	if m.backend != nil {
		m.syncWatch()
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

// Result reports how the dashboard was left.
func (m *Model) Result() Result {
	return Result{ChangeDir: m.changeDir}
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(previewLoadedMsg{}):  m.handlePreviewLoadedMsg,
		reflect.TypeOf(command.Result{}):    m.handleActionResultMsg,
		reflect.TypeOf(editorFinishedMsg{}): m.handleEditorFinishedMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
