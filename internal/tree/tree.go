package tree

import (
	"slices"
	"sort"
)

// Options configures a Tree.
type Options struct {
	// Source lists directories. Trees without a source never load children.
	Source Source
	// HideRoot keeps the root out of line numbers and cursor movement.
	HideRoot bool
	// EagerReload materialises one level below directories that appear
	// during Reload, matching what the initial load did for their siblings.
	EagerReload bool
	// Ignores is attached to the root and inherited by every loaded child.
	Ignores IgnoreSet
}

// Tree is an arena of nodes plus the single cursor of the pane showing it.
type Tree struct {
	nodes    map[ID]*Node
	root     ID
	cursor   ID
	nextID   ID
	source   Source
	hideRoot bool
	eager    bool
}

// New returns a tree holding only its root. The root starts expanded so the
// first load shows its children.
func New(label, path string, opts Options) *Tree {
	t := &Tree{
		nodes:    make(map[ID]*Node),
		cursor:   NoID,
		source:   opts.Source,
		hideRoot: opts.HideRoot,
		eager:    opts.EagerReload,
	}
	root := t.newNode(KindRoot, label, path, true)
	root.Parent = NoID
	root.Expanded = true
	root.Ignores = opts.Ignores
	t.root = root.ID
	if !t.hideRoot {
		t.SetCursor(root.ID)
	}
	return t
}

func (t *Tree) newNode(kind Kind, label, path string, dir bool) *Node {
	n := &Node{
		ID:     t.nextID,
		Kind:   kind,
		Label:  label,
		Path:   path,
		Dir:    dir,
		Parent: NoID,
	}
	t.nextID++
	t.nodes[n.ID] = n
	return n
}

// addChild creates a node and inserts it under parent in sorted position.
func (t *Tree) addChild(parent *Node, kind Kind, label, path string, dir bool) *Node {
	child := t.newNode(kind, label, path, dir)
	child.Ignores = parent.Ignores
	t.InsertSorted(parent.ID, child.ID)
	return child
}

// Root returns the root id.
func (t *Tree) Root() ID { return t.root }

// RootNode returns the root node.
func (t *Tree) RootNode() *Node { return t.nodes[t.root] }

// Node looks up a node by id.
func (t *Tree) Node(id ID) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Has reports whether id is still part of the tree.
func (t *Tree) Has(id ID) bool {
	_, ok := t.nodes[id]
	return ok
}

// Len returns the number of nodes including the root.
func (t *Tree) Len() int { return len(t.nodes) }

// IDs returns every id in ascending order.
func (t *Tree) IDs() []ID {
	ids := make([]ID, 0, len(t.nodes))
	for id := range t.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// HideRoot reports whether the root is excluded from the visible lines.
func (t *Tree) HideRoot() bool { return t.hideRoot }

// Cursor returns the highlighted node id, or NoID for an empty tree.
func (t *Tree) Cursor() ID { return t.cursor }

// CursorNode returns the highlighted node, or nil.
func (t *Tree) CursorNode() *Node { return t.nodes[t.cursor] }

// SetCursor moves the highlight to id. It reports false when id is unknown
// or is a hidden root.
func (t *Tree) SetCursor(id ID) bool {
	n, ok := t.nodes[id]
	if !ok || (t.hideRoot && id == t.root) {
		return false
	}
	if cur, ok := t.nodes[t.cursor]; ok {
		cur.Highlighted = false
	}
	n.Highlighted = true
	t.cursor = id
	return true
}

// ClearHighlight removes the highlight without forgetting the cursor.
func (t *Tree) ClearHighlight() {
	if cur, ok := t.nodes[t.cursor]; ok {
		cur.Highlighted = false
	}
}

// Highlight re-asserts the highlight on the cursor node.
func (t *Tree) Highlight() {
	if cur, ok := t.nodes[t.cursor]; ok {
		cur.Highlighted = true
	}
}

// SetIgnores replaces the ignore set of a node.
func (t *Tree) SetIgnores(id ID, ignores IgnoreSet) {
	if n, ok := t.nodes[id]; ok {
		n.Ignores = ignores
	}
}

// InsertSorted places child among parent's children: directories before
// files, each group ordered by label, equal labels after existing ones.
func (t *Tree) InsertSorted(parent, child ID) {
	p, ok := t.nodes[parent]
	if !ok {
		return
	}
	c, ok := t.nodes[child]
	if !ok {
		return
	}
	split := sort.Search(len(p.Children), func(i int) bool {
		return !t.nodes[p.Children[i]].Dir
	})
	lo, hi := split, len(p.Children)
	if c.Dir {
		lo, hi = 0, split
	}
	idx := lo + sort.Search(hi-lo, func(i int) bool {
		return t.nodes[p.Children[lo+i]].Label > c.Label
	})
	p.Children = slices.Insert(p.Children, idx, child)
	c.Parent = parent
}

// ExpandAncestors opens every ancestor of id so that it becomes visible.
func (t *Tree) ExpandAncestors(id ID) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	for pid := n.Parent; pid != NoID; {
		p := t.nodes[pid]
		p.Expanded = true
		pid = p.Parent
	}
}

// Descendants returns every materialised node below id in pre-order,
// regardless of expansion.
func (t *Tree) Descendants(id ID) []ID {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	var out []ID
	stack := reversed(n.Children)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, cur)
		stack = append(stack, reversed(t.nodes[cur].Children)...)
	}
	return out
}

// ExpandedDirs returns the paths of visible, expanded directories that have
// been listed. These are the directories whose changes affect the display.
func (t *Tree) ExpandedDirs() []string {
	var paths []string
	t.walk(func(n *Node, _ int, _ []bool) bool {
		if n.Path != "" && n.Dir && n.Expanded && n.Processed && !n.PermissionDenied {
			paths = append(paths, n.Path)
		}
		return true
	})
	return paths
}

func reversed(ids []ID) []ID {
	out := make([]ID, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}

func indexOf(ids []ID, id ID) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}
	return -1
}
