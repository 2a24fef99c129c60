package dispatcher

import (
	"github.com/gustavkrist/bookmarks/internal/backend"
	"github.com/gustavkrist/bookmarks/internal/bookmarks"
)

// Loader reads the current bookmark document.
type Loader interface {
	Load() (bookmarks.File, error)
}

type Result struct {
	BookmarksUpdated bool
	Bookmarks        bookmarks.File
	DirectoryChanged bool
	Path             string
	Err              error
}

type Dispatcher struct {
	loader Loader
}

func New(loader Loader) *Dispatcher {
	return &Dispatcher{loader: loader}
}

// Handle turns a watcher event into the data the UI needs to reconcile.
// It runs on the UI goroutine so the bookmark file is read right before the
// trees are touched.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		res.Err = evt.Err
		return res
	}
	switch evt.Kind {
	case backend.KindBookmarks:
		if d.loader == nil {
			return res
		}
		file, err := d.loader.Load()
		if err != nil {
			res.Err = err
			return res
		}
		res.Bookmarks = file
		res.BookmarksUpdated = true
	case backend.KindDirectory:
		res.DirectoryChanged = true
		res.Path = evt.Path
	}
	return res
}
