package search

import (
	"path/filepath"
	"strings"

	"github.com/gustavkrist/bookmarks/internal/logging/events"
	"github.com/gustavkrist/bookmarks/internal/tree"
	"github.com/mitchellh/go-homedir"
)

// MaxResults caps how many ranked candidates an overlay keeps.
const MaxResults = 500

// Options configures an overlay.
type Options struct {
	// Depth is how many levels below the focus root are listed before the
	// candidate pool is collected.
	Depth int
	// Limit caps the result list; zero means MaxResults.
	Limit int
	// Home is never preloaded; listing a whole home directory is too slow.
	// Empty means the current user's home directory.
	Home string
}

// Result is one entry of the overlay's ordered list.
type Result struct {
	ID        tree.ID
	Positions []int
}

// Overlay is a filtered, ranked view over the nodes below a tree's root. It
// shares node identity with the live tree and undoes its label changes when
// it closes.
type Overlay struct {
	tree   *tree.Tree
	ranker Ranker
	limit  int

	pool    []tree.ID
	results []Result
	query   string
	cursor  int
	closed  bool

	labels  map[tree.ID]string
	parents map[tree.ID]tree.ID
}

// Begin opens an overlay over the descendants of t's root.
func Begin(t *tree.Tree, ranker Ranker, opts Options) *Overlay {
	if ranker == nil {
		ranker = FuzzySearch{}
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = MaxResults
	}
	root := t.RootNode()
	home := opts.Home
	if home == "" {
		home, _ = homedir.Dir()
	}
	preloaded := false
	if root.Path != "" && root.Path != home && !t.FullyProcessed(root.ID) {
		t.Load(root.ID, opts.Depth)
		preloaded = true
	}

	o := &Overlay{
		tree:    t,
		ranker:  ranker,
		limit:   limit,
		pool:    t.Descendants(root.ID),
		labels:  make(map[tree.ID]string),
		parents: make(map[tree.ID]tree.ID),
	}
	for _, id := range o.pool {
		n, _ := t.Node(id)
		o.labels[id] = n.Label
		o.parents[id] = n.Parent
		n.Label = displayLabel(root, n)
	}
	t.ClearHighlight()
	o.setResults(o.fullPool())
	events.Search.Begin(root.Path, len(o.pool), preloaded)
	return o
}

// displayLabel shows directory entries relative to the focus root so that
// equally named files in different folders can be told apart.
func displayLabel(root, n *tree.Node) string {
	if root.Path == "" || n.Path == "" {
		return n.Label
	}
	rel, err := filepath.Rel(root.Path, n.Path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return n.Label
	}
	return rel
}

func (o *Overlay) fullPool() []Result {
	results := make([]Result, len(o.pool))
	for i, id := range o.pool {
		results[i] = Result{ID: id}
	}
	return results
}

// Query returns the query the current results were ranked for.
func (o *Overlay) Query() string { return o.query }

// Results returns the ranked list, best first.
func (o *Overlay) Results() []Result { return o.results }

// Len returns the number of results.
func (o *Overlay) Len() int { return len(o.results) }

// PoolSize returns the number of candidates the overlay started with.
func (o *Overlay) PoolSize() int { return len(o.pool) }

// Closed reports whether Confirm or Cancel already ran.
func (o *Overlay) Closed() bool { return o.closed }

// Tree returns the tree the overlay covers.
func (o *Overlay) Tree() *tree.Tree { return o.tree }

// Refine ranks query against the current results. Typing only ever
// narrows, so candidates dropped earlier are not reconsidered.
func (o *Overlay) Refine(query string) {
	from := make([]tree.ID, len(o.results))
	for i, r := range o.results {
		from[i] = r.ID
	}
	o.rank(query, from)
	events.Search.Refine(query, len(o.results))
}

// Widen ranks query against the full candidate pool. Deleting characters
// goes through here so earlier misses can come back.
func (o *Overlay) Widen(query string) {
	o.rank(query, o.pool)
	events.Search.Widen(query, len(o.results))
}

func (o *Overlay) rank(query string, from []tree.ID) {
	if o.closed {
		return
	}
	o.query = query
	if strings.TrimSpace(query) == "" {
		o.setResults(o.fullPool())
		return
	}
	labels := make([]string, len(from))
	for i, id := range from {
		n, _ := o.tree.Node(id)
		labels[i] = n.Label
	}
	matches := o.ranker.Rank(query, labels)
	if len(matches) > o.limit {
		matches = matches[:o.limit]
	}
	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		if m.Index < 0 || m.Index >= len(from) {
			continue
		}
		results = append(results, Result{ID: from[m.Index], Positions: m.Positions})
	}
	o.setResults(results)
}

func (o *Overlay) setResults(results []Result) {
	o.highlight(false)
	o.results = results
	o.cursor = 0
	o.highlight(true)
}

func (o *Overlay) highlight(on bool) {
	if id, ok := o.Selected(); ok {
		if n, ok := o.tree.Node(id); ok {
			n.Highlighted = on
		}
	}
}

// Cursor returns the index of the selected result.
func (o *Overlay) Cursor() int { return o.cursor }

// Selected returns the node under the overlay cursor.
func (o *Overlay) Selected() (tree.ID, bool) {
	if o.cursor < 0 || o.cursor >= len(o.results) {
		return tree.NoID, false
	}
	return o.results[o.cursor].ID, true
}

// CursorDown moves the overlay cursor one result down.
func (o *Overlay) CursorDown() bool { return o.moveCursor(1) }

// CursorUp moves the overlay cursor one result up.
func (o *Overlay) CursorUp() bool { return o.moveCursor(-1) }

func (o *Overlay) moveCursor(delta int) bool {
	next := o.cursor + delta
	if next < 0 || next >= len(o.results) {
		return false
	}
	o.highlight(false)
	o.cursor = next
	o.highlight(true)
	return true
}

// Rows returns the results in [top, top+height) in the tree's row format.
func (o *Overlay) Rows(top, height int) []tree.Row {
	if top < 0 {
		top = 0
	}
	end := min(top+height, len(o.results))
	var rows []tree.Row
	for i := top; i < end; i++ {
		n, ok := o.tree.Node(o.results[i].ID)
		if !ok {
			continue
		}
		rows = append(rows, tree.Row{
			ID:               n.ID,
			Label:            n.Label,
			Path:             n.Path,
			Kind:             n.Kind,
			Dir:              n.Dir,
			Expanded:         n.Expanded,
			Highlighted:      i == o.cursor,
			PermissionDenied: n.PermissionDenied,
		})
	}
	return rows
}

// Positions returns the matched offsets for the result at index i.
func (o *Overlay) Positions(i int) []int {
	if i < 0 || i >= len(o.results) {
		return nil
	}
	return o.results[i].Positions
}

// restore puts back every label and parent recorded at Begin.
func (o *Overlay) restore() {
	o.highlight(false)
	for id, label := range o.labels {
		if n, ok := o.tree.Node(id); ok {
			n.Label = label
			n.Parent = o.parents[id]
		}
	}
	o.closed = true
}

// Cancel closes the overlay and leaves the live tree as it was.
func (o *Overlay) Cancel() {
	if o.closed {
		return
	}
	o.restore()
	o.tree.Highlight()
	events.Search.Cancel(o.query)
}

// Confirm closes the overlay and moves the live cursor to the selected
// result, expanding its ancestors. It returns NoID and behaves like Cancel
// when nothing is selected.
func (o *Overlay) Confirm() tree.ID {
	if o.closed {
		return tree.NoID
	}
	id, ok := o.Selected()
	o.restore()
	if !ok || !o.tree.Has(id) {
		o.tree.Highlight()
		events.Search.Cancel(o.query)
		return tree.NoID
	}
	o.tree.ExpandAncestors(id)
	o.tree.SetCursor(id)
	n, _ := o.tree.Node(id)
	events.Search.Confirm(n.Label)
	return id
}
