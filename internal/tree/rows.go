package tree

import "strings"

// Row is the rendering contract for one visible node.
type Row struct {
	ID               ID
	Label            string
	Path             string
	Kind             Kind
	Dir              bool
	Depth            int
	Expanded         bool
	Highlighted      bool
	PermissionDenied bool
	// Last holds, for every level from the outermost shown ancestor down to
	// the node, whether that node is the last of its siblings.
	Last []bool
}

// Rows returns the visible rows in [top, top+height).
func (t *Tree) Rows(top, height int) []Row {
	if height <= 0 {
		return nil
	}
	if top < 0 {
		top = 0
	}
	rows := make([]Row, 0, height)
	line := 0
	t.walk(func(n *Node, depth int, last []bool) bool {
		if t.hideRoot {
			if n.ID == t.root {
				return true
			}
			depth--
			last = last[1:]
		}
		if line >= top {
			rows = append(rows, Row{
				ID:               n.ID,
				Label:            n.Label,
				Path:             n.Path,
				Kind:             n.Kind,
				Dir:              n.Dir,
				Depth:            depth,
				Expanded:         n.Expanded,
				Highlighted:      n.Highlighted,
				PermissionDenied: n.PermissionDenied,
				Last:             last,
			})
		}
		line++
		return len(rows) < height
	})
	return rows
}

// Guide renders the box-drawing prefix for a row.
func (r Row) Guide() string {
	if len(r.Last) == 0 {
		return ""
	}
	var b strings.Builder
	for _, last := range r.Last[:len(r.Last)-1] {
		if last {
			b.WriteString("    ")
		} else {
			b.WriteString("│   ")
		}
	}
	if r.Last[len(r.Last)-1] {
		b.WriteString("└── ")
	} else {
		b.WriteString("├── ")
	}
	return b.String()
}
