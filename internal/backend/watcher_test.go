package backend

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestDebouncerKeepsLatestPerKind(t *testing.T) {
	d := newDebouncer(10 * time.Millisecond)
	if d.C() != nil {
		t.Fatalf("expected no timer before the first event")
	}
	d.add(Event{Kind: KindDirectory, Path: "/a"})
	d.add(Event{Kind: KindBookmarks, Path: "/marks"})
	d.add(Event{Kind: KindDirectory, Path: "/b"})

	select {
	case <-d.C():
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for the quiet period")
	}
	got := d.flush()
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Kind != KindBookmarks || got[1].Path != "/b" {
		t.Fatalf("unexpected events %+v", got)
	}
	if d.C() != nil {
		t.Fatalf("expected flush to clear pending events")
	}
}

func TestClassify(t *testing.T) {
	w := &Watcher{
		bookmarkFile: "/home/u/.bookmarks",
		dirs:         map[string]struct{}{"/src": {}},
	}
	cases := []struct {
		name string
		ev   fsnotify.Event
		kind Kind
		ok   bool
	}{
		{"bookmark write", fsnotify.Event{Name: "/home/u/.bookmarks", Op: fsnotify.Write}, KindBookmarks, true},
		{"bookmark rename", fsnotify.Event{Name: "/home/u/.bookmarks", Op: fsnotify.Create}, KindBookmarks, true},
		{"sibling of bookmark file", fsnotify.Event{Name: "/home/u/.bashrc", Op: fsnotify.Write}, 0, false},
		{"new entry", fsnotify.Event{Name: "/src/new.go", Op: fsnotify.Create}, KindDirectory, true},
		{"removed entry", fsnotify.Event{Name: "/src/old.go", Op: fsnotify.Remove}, KindDirectory, true},
		{"content edit", fsnotify.Event{Name: "/src/main.go", Op: fsnotify.Write}, 0, false},
		{"chmod", fsnotify.Event{Name: "/src/main.go", Op: fsnotify.Chmod}, 0, false},
		{"unwatched", fsnotify.Event{Name: "/elsewhere/x", Op: fsnotify.Create}, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			evt, ok := w.classify(tc.ev)
			if ok != tc.ok {
				t.Fatalf("expected relevant=%v, got %v", tc.ok, ok)
			}
			if ok && evt.Kind != tc.kind {
				t.Fatalf("expected kind %v, got %v", tc.kind, evt.Kind)
			}
		})
	}
}

func waitFor(t *testing.T, w *Watcher, kind Kind) Event {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case evt, ok := <-w.Events():
			if !ok {
				t.Fatalf("events channel closed")
			}
			if evt.Err == nil && evt.Kind == kind {
				return evt
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %v event", kind)
		}
	}
}

func TestWatcherReportsBookmarkAndDirectoryChanges(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "marks.json")
	if err := os.WriteFile(file, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	watched := filepath.Join(root, "project")
	if err := os.Mkdir(watched, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	w, err := NewWatcher(file, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()
	w.WatchDirs([]string{watched})

	if err := os.WriteFile(file, []byte(`{"bookmarks":{}}`), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	waitFor(t, w, KindBookmarks)

	if err := os.WriteFile(filepath.Join(watched, "new.txt"), nil, 0o644); err != nil {
		t.Fatalf("create: %v", err)
	}
	evt := waitFor(t, w, KindDirectory)
	if evt.Path != watched {
		t.Fatalf("expected event for %s, got %s", watched, evt.Path)
	}
}

func TestWatcherClosesEventsOnStop(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "marks.json"), 0)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	w.Stop()
	w.Wait()
	if _, ok := <-w.Events(); ok {
		t.Fatalf("expected closed channel after stop")
	}
}
