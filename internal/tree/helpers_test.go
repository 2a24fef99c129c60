package tree

import (
	"testing"

	"github.com/spf13/afero"
)

func newDirTree(t *testing.T, fsys afero.Fs, root string) *Tree {
	t.Helper()
	tr := New(root, root, Options{Source: NewFSSource(fsys)})
	tr.Load(tr.Root(), 0)
	if !tr.RootNode().Processed {
		t.Fatalf("expected root %s to be listed", root)
	}
	return tr
}

func childLabels(tr *Tree, id ID) []string {
	n, ok := tr.Node(id)
	if !ok {
		return nil
	}
	labels := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		c, _ := tr.Node(child)
		labels = append(labels, c.Label)
	}
	return labels
}

func findPath(tr *Tree, path string) ID {
	for _, id := range tr.IDs() {
		if n, _ := tr.Node(id); n.Path == path {
			return id
		}
	}
	return NoID
}

func mustFind(t *testing.T, tr *Tree, path string) ID {
	t.Helper()
	id := findPath(tr, path)
	if id == NoID {
		t.Fatalf("expected node for %s", path)
	}
	return id
}

func visibleOrder(tr *Tree) []ID {
	var ids []ID
	for cur := tr.Root(); cur != NoID; cur = tr.Next(cur) {
		ids = append(ids, cur)
	}
	return ids
}

func highlightedCount(tr *Tree) int {
	count := 0
	for _, id := range tr.IDs() {
		if n, _ := tr.Node(id); n.Highlighted {
			count++
		}
	}
	return count
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
