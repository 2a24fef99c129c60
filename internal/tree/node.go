package tree

import (
	"sort"
	"strconv"
)

// ID identifies a node inside a single Tree. IDs are handed out in increasing
// order and never reused while the tree is alive.
type ID int

// NoID is returned by traversal helpers when there is no such node.
const NoID ID = -1

func (id ID) String() string {
	return strconv.Itoa(int(id))
}

// Kind tells the tree how a node behaves when entered.
type Kind int

const (
	KindRoot Kind = iota
	KindBookmark
	KindDirectory
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindBookmark:
		return "bookmark"
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// IgnoreSet holds entry names hidden from directory listings. Sets are
// treated as immutable once attached to a node; replace them instead of
// editing in place because siblings share the same value.
type IgnoreSet map[string]struct{}

// NewIgnoreSet builds a set from the provided names.
func NewIgnoreSet(names ...string) IgnoreSet {
	set := make(IgnoreSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Has reports whether name is ignored. A nil set ignores nothing.
func (s IgnoreSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the ignored names in sorted order.
func (s IgnoreSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Node is a single displayed item. Children and Parent refer to other nodes
// of the same tree by ID; the tree's arena owns every node.
type Node struct {
	ID    ID
	Kind  Kind
	Label string
	// Path is empty for synthetic roots.
	Path string
	// Dir groups the node with directories when ordering siblings. Bookmarks
	// pointing at directories carry it too.
	Dir bool

	Parent   ID
	Children []ID

	Expanded         bool
	Processed        bool
	PermissionDenied bool
	Highlighted      bool

	Ignores IgnoreSet
}

// expandable reports whether Toggle may open the node.
func (n *Node) expandable() bool {
	return n.Dir && (n.Kind == KindDirectory || n.Kind == KindRoot)
}

// open reports whether the node's children take part in traversal.
func (n *Node) open() bool {
	return n.Expanded && !n.PermissionDenied && len(n.Children) > 0
}
