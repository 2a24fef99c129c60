package tree

// Next returns the node after id in pre-order over the expanded part of the
// tree, or NoID when id is the last visible node.
func (t *Tree) Next(id ID) ID {
	n, ok := t.nodes[id]
	if !ok {
		return NoID
	}
	if n.open() {
		return n.Children[0]
	}
	for cur := n; cur.Parent != NoID; {
		p := t.nodes[cur.Parent]
		if i := indexOf(p.Children, cur.ID); i >= 0 && i+1 < len(p.Children) {
			return p.Children[i+1]
		}
		cur = p
	}
	return NoID
}

// Previous returns the node before id in pre-order over the expanded part of
// the tree, or NoID for the root.
func (t *Tree) Previous(id ID) ID {
	n, ok := t.nodes[id]
	if !ok || n.Parent == NoID {
		return NoID
	}
	p := t.nodes[n.Parent]
	i := indexOf(p.Children, id)
	if i <= 0 {
		return p.ID
	}
	return t.lastVisible(p.Children[i-1])
}

// lastVisible descends through the last child of every open node.
func (t *Tree) lastVisible(id ID) ID {
	for {
		n := t.nodes[id]
		if !n.open() {
			return id
		}
		id = n.Children[len(n.Children)-1]
	}
}

// Line returns the zero-based visible line of id, or -1 when id is hidden
// behind a collapsed ancestor or is a hidden root.
func (t *Tree) Line(id ID) int {
	if _, ok := t.nodes[id]; !ok {
		return -1
	}
	line := 0
	for cur := t.root; cur != NoID; cur = t.Next(cur) {
		if cur == id {
			if t.hideRoot {
				return line - 1
			}
			return line
		}
		line++
	}
	return -1
}

// CursorLine returns the visible line of the cursor; 0 when there is none.
func (t *Tree) CursorLine() int {
	if line := t.Line(t.cursor); line >= 0 {
		return line
	}
	return 0
}

// VisibleHeight counts the visible nodes.
func (t *Tree) VisibleHeight() int {
	height := 0
	for cur := t.root; cur != NoID; cur = t.Next(cur) {
		height++
	}
	if t.hideRoot {
		height--
	}
	return height
}

// FirstVisible returns the first node the cursor may rest on.
func (t *Tree) FirstVisible() ID {
	if !t.hideRoot {
		return t.root
	}
	return t.Next(t.root)
}

// CursorDown moves the cursor to the next visible node. It is a no-op at the
// last node and on an empty tree.
func (t *Tree) CursorDown() bool {
	if _, ok := t.nodes[t.cursor]; !ok {
		return false
	}
	next := t.Next(t.cursor)
	if next == NoID {
		return false
	}
	return t.SetCursor(next)
}

// CursorUp moves the cursor to the previous visible node. It is a no-op at
// the first node and never lands on a hidden root.
func (t *Tree) CursorUp() bool {
	if _, ok := t.nodes[t.cursor]; !ok {
		return false
	}
	prev := t.Previous(t.cursor)
	if prev == NoID || (t.hideRoot && prev == t.root) {
		return false
	}
	return t.SetCursor(prev)
}

// CursorDownBy repeats CursorDown up to n times and returns the steps taken.
func (t *Tree) CursorDownBy(n int) int {
	moved := 0
	for moved < n && t.CursorDown() {
		moved++
	}
	return moved
}

// CursorUpBy repeats CursorUp up to n times and returns the steps taken.
func (t *Tree) CursorUpBy(n int) int {
	moved := 0
	for moved < n && t.CursorUp() {
		moved++
	}
	return moved
}

// walk visits visible nodes in pre-order with their depth and the chain of
// last-sibling flags from the root's children down to the node itself.
// Returning false stops the walk.
func (t *Tree) walk(fn func(n *Node, depth int, last []bool) bool) {
	type frame struct {
		id    ID
		depth int
		last  []bool
	}
	stack := []frame{{id: t.root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[f.id]
		if !fn(n, f.depth, f.last) {
			return
		}
		if !n.open() {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			chain := make([]bool, len(f.last), len(f.last)+1)
			copy(chain, f.last)
			stack = append(stack, frame{
				id:    n.Children[i],
				depth: f.depth + 1,
				last:  append(chain, i == len(n.Children)-1),
			})
		}
	}
}
