package tree

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/gustavkrist/bookmarks/internal/logging"
	"github.com/gustavkrist/bookmarks/internal/logging/events"
)

// ReloadResult summarises a reconciliation pass.
type ReloadResult struct {
	Added   int
	Removed int
	// CursorReset is set when the cursor node disappeared and the cursor
	// moved to the first visible node. Callers recenter their viewport.
	CursorReset bool
}

// Reload re-lists id and every listed directory below it, applying only the
// differences. Children that are still present keep their ids, expansion,
// highlight and subtrees. Ignore sets are pushed down from each reloaded
// directory to its children.
func (t *Tree) Reload(id ID) ReloadResult {
	var res ReloadResult
	stack := []ID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n, ok := t.nodes[cur]
		if !ok || !n.Dir || !n.Processed || n.PermissionDenied || n.Path == "" {
			continue
		}
		added, removed, fresh := t.reconcile(n)
		res.Added += added
		res.Removed += removed
		for _, child := range n.Children {
			c := t.nodes[child]
			c.Ignores = n.Ignores
			if !fresh[child] && c.Dir {
				stack = append(stack, child)
			}
		}
	}
	res.CursorReset = t.ensureCursor()
	if n, ok := t.nodes[id]; ok {
		events.Tree.Reload(n.Path, res.Added, res.Removed)
	}
	return res
}

// reconcile diffs one directory against a fresh listing and returns the
// counts plus the set of children created in this pass.
func (t *Tree) reconcile(n *Node) (int, int, map[ID]bool) {
	entries, err := t.listing(n)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			removed := len(n.Children)
			t.deny(n)
			return 0, removed, nil
		}
		logging.Error(fmt.Errorf("reload %s: %w", n.Path, err))
		events.Tree.Skipped(n.Path, err)
		return 0, 0, nil
	}

	want := make(map[string]Entry, len(entries))
	for _, e := range entries {
		want[e.Name] = e
	}
	have := make(map[string]bool, len(n.Children))
	removed := 0
	for _, child := range append([]ID(nil), n.Children...) {
		c := t.nodes[child]
		e, ok := want[c.Label]
		if !ok || e.Dir != c.Dir {
			t.removeSubtree(child)
			removed++
			continue
		}
		have[c.Label] = true
	}

	fresh := make(map[ID]bool)
	for _, e := range entries {
		if have[e.Name] {
			continue
		}
		child := t.addEntry(n, e)
		fresh[child.ID] = true
		if t.eager && child.Dir {
			t.loadOne(child)
		}
	}
	return len(fresh), removed, fresh
}

// removeSubtree detaches id from its parent and deletes it together with
// every descendant.
func (t *Tree) removeSubtree(id ID) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	if p, ok := t.nodes[n.Parent]; ok {
		if i := indexOf(p.Children, id); i >= 0 {
			p.Children = append(p.Children[:i:i], p.Children[i+1:]...)
		}
	}
	work := []ID{id}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]
		if node, ok := t.nodes[cur]; ok {
			work = append(work, node.Children...)
			delete(t.nodes, cur)
		}
	}
}

// ensureCursor moves the cursor to the first visible node when the cursor
// node no longer exists, or no longer is visible. It reports whether the
// cursor moved.
func (t *Tree) ensureCursor() bool {
	if _, ok := t.nodes[t.cursor]; ok && t.Line(t.cursor) >= 0 {
		return false
	}
	first := t.FirstVisible()
	if first == NoID {
		moved := t.cursor != NoID
		t.cursor = NoID
		return moved
	}
	t.SetCursor(first)
	events.Tree.CursorReset(t.RootNode().Path, int(first))
	return true
}
