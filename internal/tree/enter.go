package tree

// Action is what the pane showing a tree should do after Enter.
type Action int

const (
	ActionNone Action = iota
	// ActionToggled means a directory was expanded or collapsed in place.
	ActionToggled
	// ActionOpenTree asks the caller to show the directory behind a bookmark.
	ActionOpenTree
	// ActionPreview asks the caller to preview the node's file.
	ActionPreview
)

func (a Action) String() string {
	switch a {
	case ActionToggled:
		return "toggle"
	case ActionOpenTree:
		return "open-tree"
	case ActionPreview:
		return "preview"
	default:
		return "none"
	}
}

// Enter acts on the cursor node according to its kind.
func (t *Tree) Enter() (Action, *Node) {
	n, ok := t.nodes[t.cursor]
	if !ok {
		return ActionNone, nil
	}
	switch n.Kind {
	case KindRoot, KindDirectory:
		if t.Toggle(n.ID) {
			return ActionToggled, n
		}
		return ActionNone, n
	case KindBookmark:
		if n.Dir {
			return ActionOpenTree, n
		}
		return ActionPreview, n
	case KindFile:
		return ActionPreview, n
	default:
		return ActionNone, n
	}
}
