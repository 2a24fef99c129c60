package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gustavkrist/bookmarks/internal/logging/events"
)

// Kind represents the type of change emitted by the watcher.
type Kind int

const (
	// KindBookmarks means the bookmark file was written, replaced or removed.
	KindBookmarks Kind = iota
	// KindDirectory means an entry appeared or vanished in a watched directory.
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindBookmarks:
		return "bookmarks"
	case KindDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// Event conveys a debounced change or a watcher error.
type Event struct {
	Kind Kind
	Path string
	Err  error
}

// Watcher observes the bookmark file and a replaceable set of directories
// and publishes debounced events.
type Watcher struct {
	bookmarkFile string
	fsw          *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	dirs map[string]struct{}
	base map[string]struct{}

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching bookmarkFile. Changes are reported once no
// further change arrived for debounce.
func NewWatcher(bookmarkFile string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		bookmarkFile: filepath.Clean(bookmarkFile),
		fsw:          fsw,
		ctx:          ctx,
		cancel:       cancel,
		dirs:         make(map[string]struct{}),
		base:         make(map[string]struct{}),
		events:       make(chan Event, 16),
	}
	// Editors usually replace the file, so watch its directory.
	parent := filepath.Dir(w.bookmarkFile)
	if err := fsw.Add(parent); err != nil {
		events.Watch.Error(err)
	} else {
		w.base[parent] = struct{}{}
	}

	w.wg.Add(1)
	go w.run(newDebouncer(debounce))

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of watcher events. It is closed after Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// WatchDirs replaces the set of observed directories.
func (w *Watcher) WatchDirs(paths []string) {
	want := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		want[filepath.Clean(p)] = struct{}{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for dir := range w.dirs {
		if _, keep := want[dir]; keep {
			continue
		}
		delete(w.dirs, dir)
		if _, shared := w.base[dir]; !shared {
			_ = w.fsw.Remove(dir)
		}
	}
	for dir := range want {
		if _, ok := w.dirs[dir]; ok {
			continue
		}
		if _, shared := w.base[dir]; !shared {
			if err := w.fsw.Add(dir); err != nil {
				events.Watch.Error(err)
				continue
			}
		}
		w.dirs[dir] = struct{}{}
	}
	events.Watch.Dirs(w.watchedDirs())
}

func (w *Watcher) watchedDirs() []string {
	out := make([]string, 0, len(w.dirs))
	for dir := range w.dirs {
		out = append(out, dir)
	}
	sort.Strings(out)
	return out
}

// Stop cancels the watcher and releases the fsnotify handle.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watch loop has exited and the events channel is
// closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run(d *debouncer) {
	defer w.wg.Done()
	defer w.fsw.Close()
	defer d.stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if evt, relevant := w.classify(ev); relevant {
				d.add(evt)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			events.Watch.Error(err)
			if !w.emit(Event{Err: err}) {
				return
			}
		case <-d.C():
			for _, evt := range d.flush() {
				events.Watch.Event(evt.Kind.String(), evt.Path)
				if !w.emit(evt) {
					return
				}
			}
		}
	}
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}

// classify maps a raw notification onto an event kind. Attribute-only
// changes are dropped.
func (w *Watcher) classify(ev fsnotify.Event) (Event, bool) {
	if ev.Op == fsnotify.Chmod {
		return Event{}, false
	}
	name := filepath.Clean(ev.Name)
	if name == w.bookmarkFile {
		return Event{Kind: KindBookmarks, Path: name}, true
	}
	dir := filepath.Dir(name)
	w.mu.Lock()
	_, watched := w.dirs[dir]
	w.mu.Unlock()
	if !watched {
		return Event{}, false
	}
	// Content edits do not change the listing.
	if ev.Op == fsnotify.Write {
		return Event{}, false
	}
	return Event{Kind: KindDirectory, Path: dir}, true
}
