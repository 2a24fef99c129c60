package tree

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/gustavkrist/bookmarks/internal/logging"
	"github.com/gustavkrist/bookmarks/internal/logging/events"
)

// Toggle flips the expansion of a directory, listing it first when it has
// never been loaded. Files, bookmarks and permission-denied directories are
// left alone.
func (t *Tree) Toggle(id ID) bool {
	n, ok := t.nodes[id]
	if !ok || !n.expandable() || n.PermissionDenied {
		return false
	}
	if !n.Processed {
		t.loadOne(n)
		if n.PermissionDenied {
			return false
		}
	}
	n.Expanded = !n.Expanded
	return true
}

// Expand opens a directory, listing it first when needed.
func (t *Tree) Expand(id ID) bool {
	n, ok := t.nodes[id]
	if !ok || !n.expandable() || n.PermissionDenied {
		return false
	}
	if !n.Processed {
		t.loadOne(n)
		if n.PermissionDenied {
			return false
		}
	}
	n.Expanded = true
	return true
}

// Collapse hides a node's children without discarding them.
func (t *Tree) Collapse(id ID) {
	if n, ok := t.nodes[id]; ok {
		n.Expanded = false
	}
}

// Load lists id and, while maxDepth allows, every directory below it that
// has not been listed yet. Already listed directories are walked through but
// not listed again.
func (t *Tree) Load(id ID, maxDepth int) {
	type item struct {
		id    ID
		depth int
	}
	work := []item{{id: id, depth: maxDepth}}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]
		n, ok := t.nodes[cur.id]
		if !ok || !n.Dir || n.PermissionDenied {
			continue
		}
		if !n.Processed {
			t.loadOne(n)
		}
		if cur.depth <= 0 || !n.Processed {
			continue
		}
		for _, child := range n.Children {
			if t.nodes[child].expandable() {
				work = append(work, item{id: child, depth: cur.depth - 1})
			}
		}
	}
}

// FullyProcessed reports whether every materialised directory at or below
// id has been listed or is permission denied.
func (t *Tree) FullyProcessed(id ID) bool {
	n, ok := t.nodes[id]
	if !ok {
		return false
	}
	check := func(n *Node) bool {
		return !n.expandable() || n.Processed || n.PermissionDenied
	}
	if !check(n) {
		return false
	}
	for _, d := range t.Descendants(id) {
		if !check(t.nodes[d]) {
			return false
		}
	}
	return true
}

// loadOne lists a single directory and creates its children.
func (t *Tree) loadOne(n *Node) {
	if t.source == nil || n.Path == "" {
		return
	}
	entries, err := t.listing(n)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			t.deny(n)
			return
		}
		logging.Error(fmt.Errorf("list %s: %w", n.Path, err))
		events.Tree.Skipped(n.Path, err)
		return
	}
	for _, e := range entries {
		t.addEntry(n, e)
	}
	n.Processed = true
	events.Tree.Load(n.Path, len(entries))
}

// listing returns the entries of n minus its ignores, directories first and
// each group sorted by name so ids are assigned deterministically.
func (t *Tree) listing(n *Node) ([]Entry, error) {
	raw, err := t.source.List(n.Path)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(raw))
	for _, e := range raw {
		if n.Ignores.Has(e.Name) {
			continue
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Dir != entries[j].Dir {
			return entries[i].Dir
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

func (t *Tree) addEntry(parent *Node, e Entry) *Node {
	kind := KindFile
	if e.Dir {
		kind = KindDirectory
	}
	return t.addChild(parent, kind, e.Name, filepath.Join(parent.Path, e.Name), e.Dir)
}

// deny marks n unreadable and drops anything that was listed below it.
func (t *Tree) deny(n *Node) {
	for _, child := range append([]ID(nil), n.Children...) {
		t.removeSubtree(child)
	}
	n.PermissionDenied = true
	n.Expanded = false
	events.Tree.Denied(n.Path)
}
