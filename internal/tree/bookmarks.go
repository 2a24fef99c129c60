package tree

import (
	"fmt"
	"sort"

	"github.com/gustavkrist/bookmarks/internal/logging"
	"github.com/gustavkrist/bookmarks/internal/logging/events"
)

// Bookmark is a named filesystem location shown at the top level of the
// bookmark tree.
type Bookmark struct {
	Name string
	Path string
}

// NewBookmarkTree returns a tree with a hidden root whose children are the
// given bookmarks, directory bookmarks first. The cursor starts on the first
// bookmark.
func NewBookmarkTree(source Source, bookmarks []Bookmark) *Tree {
	t := New("Bookmarks", "", Options{Source: source, HideRoot: true})
	t.RootNode().Processed = true
	t.ReconcileBookmarks(bookmarks)
	return t
}

// ReconcileBookmarks applies a fresh bookmark mapping to the root. Names
// that disappeared or now point somewhere else are removed; new names are
// inserted in sorted position. Bookmarks whose path cannot be resolved are
// skipped.
func (t *Tree) ReconcileBookmarks(bookmarks []Bookmark) ReloadResult {
	root := t.RootNode()
	want := make(map[string]Bookmark, len(bookmarks))
	entries := make(map[string]Entry, len(bookmarks))
	for _, b := range bookmarks {
		if t.source == nil {
			continue
		}
		e, err := t.source.Stat(b.Path)
		if err != nil {
			logging.Error(fmt.Errorf("bookmark %s: %w", b.Name, err))
			events.Tree.Skipped(b.Path, err)
			continue
		}
		want[b.Name] = b
		entries[b.Name] = e
	}

	var res ReloadResult
	have := make(map[string]bool, len(root.Children))
	for _, child := range append([]ID(nil), root.Children...) {
		c := t.nodes[child]
		b, ok := want[c.Label]
		if !ok || b.Path != c.Path || entries[c.Label].Dir != c.Dir {
			t.removeSubtree(child)
			res.Removed++
			continue
		}
		have[c.Label] = true
	}

	names := make([]string, 0, len(want))
	for name := range want {
		if !have[name] {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		di, dj := entries[names[i]].Dir, entries[names[j]].Dir
		if di != dj {
			return di
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		b := want[name]
		child := t.addChild(root, KindBookmark, b.Name, b.Path, entries[name].Dir)
		child.Processed = true
		res.Added++
	}

	res.CursorReset = t.ensureCursor()
	events.Bookmark.Reconcile(res.Added, res.Removed)
	return res
}
