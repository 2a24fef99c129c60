package tree

import (
	"testing"

	"github.com/gustavkrist/bookmarks/internal/testutil"
	"pgregory.net/rapid"
)

// randomTree builds an arbitrary shape with random expansion and denial.
func randomTree(rt *rapid.T, hideRoot bool) *Tree {
	tr := New("root", "/", Options{HideRoot: hideRoot})
	dirs := []*Node{tr.RootNode()}
	count := rapid.IntRange(0, 40).Draw(rt, "count")
	for i := 0; i < count; i++ {
		parent := dirs[rapid.IntRange(0, len(dirs)-1).Draw(rt, "parent")]
		dir := rapid.Bool().Draw(rt, "dir")
		kind := KindFile
		if dir {
			kind = KindDirectory
		}
		child := tr.addChild(parent, kind, rapid.StringMatching(`[a-e]`).Draw(rt, "label"), "", dir)
		if dir {
			child.Expanded = rapid.Bool().Draw(rt, "expanded")
			child.PermissionDenied = rapid.IntRange(0, 9).Draw(rt, "denied") == 0
			dirs = append(dirs, child)
		}
	}
	return tr
}

func visibleByAncestry(tr *Tree) map[ID]bool {
	visible := make(map[ID]bool)
	for _, id := range tr.IDs() {
		n, _ := tr.Node(id)
		ok := true
		for pid := n.Parent; pid != NoID; {
			p, _ := tr.Node(pid)
			if !p.Expanded || p.PermissionDenied {
				ok = false
				break
			}
			pid = p.Parent
		}
		visible[id] = ok
	}
	return visible
}

func TestTraversalTotality(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tr := randomTree(rt, false)
		order := visibleOrder(tr)
		seen := make(map[ID]bool)
		for _, id := range order {
			if seen[id] {
				rt.Fatalf("node %d visited twice", id)
			}
			seen[id] = true
		}
		for id, visible := range visibleByAncestry(tr) {
			if visible != seen[id] {
				rt.Fatalf("node %d: expected visible=%v, traversal says %v", id, visible, seen[id])
			}
		}
		if len(order) != tr.VisibleHeight() {
			rt.Fatalf("expected height %d, got %d", len(order), tr.VisibleHeight())
		}
	})
}

func TestTraversalInverse(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tr := randomTree(rt, false)
		order := visibleOrder(tr)
		for i, id := range order {
			if i > 0 && tr.Previous(id) != order[i-1] {
				rt.Fatalf("previous(%d) = %d, expected %d", id, tr.Previous(id), order[i-1])
			}
			if i+1 < len(order) && tr.Previous(tr.Next(id)) != id {
				rt.Fatalf("previous(next(%d)) != %d", id, id)
			}
			if line := tr.Line(id); line != i {
				rt.Fatalf("line(%d) = %d, expected %d", id, line, i)
			}
		}
		if tr.Previous(tr.Root()) != NoID {
			rt.Fatalf("expected root to have no predecessor")
		}
		if tr.Next(order[len(order)-1]) != NoID {
			rt.Fatalf("expected last node to have no successor")
		}
	})
}

func TestCursorMovementKeepsSingleHighlight(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		hide := rapid.Bool().Draw(rt, "hide")
		tr := randomTree(rt, hide)
		if hide {
			tr.SetCursor(tr.FirstVisible())
		}
		steps := rapid.SliceOf(rapid.IntRange(-3, 3)).Draw(rt, "steps")
		for _, step := range steps {
			if step >= 0 {
				tr.CursorDownBy(step)
			} else {
				tr.CursorUpBy(-step)
			}
			if tr.Cursor() == NoID {
				continue
			}
			if highlightedCount(tr) != 1 {
				rt.Fatalf("expected one highlighted node, got %d", highlightedCount(tr))
			}
			if hide && tr.Cursor() == tr.Root() {
				rt.Fatalf("cursor landed on hidden root")
			}
			line := tr.CursorLine()
			if line < 0 || line >= tr.VisibleHeight() {
				rt.Fatalf("cursor line %d outside [0,%d)", line, tr.VisibleHeight())
			}
		}
	})
}

func TestCursorMovementStopsAtEdges(t *testing.T) {
	fsys := testutil.MemFS(t, "/r/a/", "/r/b.txt")
	tr := newDirTree(t, fsys, "/r")

	if tr.CursorUp() {
		t.Fatalf("expected cursor up on root to be a no-op")
	}
	if moved := tr.CursorDownBy(10); moved != 2 {
		t.Fatalf("expected 2 steps, got %d", moved)
	}
	if n := tr.CursorNode(); n.Label != "b.txt" {
		t.Fatalf("expected cursor on b.txt, got %s", n.Label)
	}
	if tr.CursorDown() {
		t.Fatalf("expected cursor down on last node to be a no-op")
	}
}

func TestHiddenRootIsNotCounted(t *testing.T) {
	tr := New("Bookmarks", "", Options{HideRoot: true})
	if tr.VisibleHeight() != 0 {
		t.Fatalf("expected empty tree to have height 0, got %d", tr.VisibleHeight())
	}
	if tr.CursorDown() || tr.CursorUp() {
		t.Fatalf("expected movement on an empty tree to be a no-op")
	}
	root := tr.RootNode()
	first := tr.addChild(root, KindBookmark, "a", "/a", true)
	tr.addChild(root, KindBookmark, "b", "/b", true)
	tr.SetCursor(first.ID)

	if tr.VisibleHeight() != 2 {
		t.Fatalf("expected height 2, got %d", tr.VisibleHeight())
	}
	if tr.CursorLine() != 0 {
		t.Fatalf("expected first bookmark on line 0, got %d", tr.CursorLine())
	}
	if tr.CursorUp() {
		t.Fatalf("expected cursor up to stop before the hidden root")
	}
	if tr.SetCursor(tr.Root()) {
		t.Fatalf("expected hidden root to reject the cursor")
	}
}

func TestPermissionDeniedIsTraversedAsLeaf(t *testing.T) {
	tr := New("root", "/", Options{})
	root := tr.RootNode()
	denied := tr.addChild(root, KindDirectory, "denied", "/denied", true)
	tr.addChild(denied, KindFile, "ghost", "/denied/ghost", false)
	after := tr.addChild(root, KindFile, "z", "/z", false)
	denied.Expanded = true
	denied.PermissionDenied = true

	if next := tr.Next(denied.ID); next != after.ID {
		t.Fatalf("expected denied directory to behave as a leaf, got next %d", next)
	}
}
