package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gustavkrist/bookmarks/internal/backend"
	"github.com/gustavkrist/bookmarks/internal/bookmarks"
	"github.com/gustavkrist/bookmarks/internal/logging"
	"github.com/gustavkrist/bookmarks/internal/search"
	"github.com/gustavkrist/bookmarks/internal/tree"
	"github.com/gustavkrist/bookmarks/internal/ui"
	"github.com/spf13/afero"
	"golang.org/x/term"
)

// ErrNoBookmarks is returned when the dashboard would open on an empty file.
var ErrNoBookmarks = errors.New("no bookmarks yet; add one with `bookmarks add <name> <path>`")

// Config describes user-provided application options.
type Config struct {
	BookmarkFile string
	Width        int
	Height       int
	ShowFooter   bool
	SearchDepth  int
	SearchLimit  int
	Ranker       string
	Watch        bool
	Debounce     time.Duration
	Editor       string
	PreviewStyle string
}

// Result is what the dashboard reports once it exits.
type Result struct {
	// ChangeDir is the directory picked with the change-dir key.
	ChangeDir string
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) (Result, error) {
	fsys := afero.NewOsFs()
	store, err := bookmarks.NewStore(fsys, cfg.BookmarkFile)
	if err != nil {
		return Result{}, err
	}
	file, err := store.Load()
	if err != nil {
		return Result{}, err
	}
	if len(file.Bookmarks) == 0 {
		return Result{}, ErrNoBookmarks
	}
	ranker, err := search.RankerFor(cfg.Ranker)
	if err != nil {
		return Result{}, err
	}

	var watcher *backend.Watcher
	if cfg.Watch {
		watcher, err = backend.NewWatcher(store.Path(), cfg.Debounce)
		if err != nil {
			// The dashboard still works without live reloads.
			logging.Error(fmt.Errorf("start watcher: %w", err))
			watcher = nil
		} else {
			defer watcher.Stop()
		}
	}

	model := ui.NewModel(ui.Options{
		Store:        store,
		File:         file,
		Source:       tree.NewFSSource(fsys),
		FS:           fsys,
		Watcher:      watcher,
		Ranker:       ranker,
		Search:       search.Options{Depth: cfg.SearchDepth, Limit: cfg.SearchLimit},
		Width:        cfg.Width,
		Height:       cfg.Height,
		ShowFooter:   cfg.ShowFooter,
		Editor:       cfg.Editor,
		PreviewStyle: cfg.PreviewStyle,
	})
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		// stdout is captured by `cd "$(bookmarks)"`; draw on the terminal.
		opts = append(opts, tea.WithOutput(os.Stderr))
	}
	program := tea.NewProgram(model, opts...)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	if err != nil {
		return Result{}, err
	}
	return Result{ChangeDir: model.Result().ChangeDir}, nil
}
