package tree

import (
	"testing"

	"github.com/gustavkrist/bookmarks/internal/testutil"
)

func TestRowsWindowAndGuides(t *testing.T) {
	fsys := testutil.MemFS(t, "/r/a/x.txt", "/r/a/y.txt", "/r/b.txt")
	tr := newDirTree(t, fsys, "/r")
	tr.Expand(mustFind(t, tr, "/r/a"))

	rows := tr.Rows(0, 10)
	var got []string
	for _, row := range rows {
		got = append(got, row.Guide()+row.Label)
	}
	want := []string{
		"/r",
		"├── a",
		"│   ├── x.txt",
		"│   └── y.txt",
		"└── b.txt",
	}
	if !equalStrings(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}

	window := tr.Rows(2, 2)
	if len(window) != 2 || window[0].Label != "x.txt" || window[1].Label != "y.txt" {
		t.Fatalf("unexpected window %+v", window)
	}
	if window[0].Depth != 2 {
		t.Fatalf("expected depth 2, got %d", window[0].Depth)
	}
}

func TestRowsHideRoot(t *testing.T) {
	fsys := testutil.MemFS(t, "/p/one/", "/p/two.txt")
	tr := NewBookmarkTree(NewFSSource(fsys), []Bookmark{
		{Name: "one", Path: "/p/one"},
		{Name: "two", Path: "/p/two.txt"},
	})
	rows := tr.Rows(0, 5)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Depth != 0 || rows[0].Guide() != "" || !rows[0].Highlighted {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
}

func TestExpandedDirs(t *testing.T) {
	fsys := testutil.MemFS(t, "/r/a/inner/", "/r/b/")
	tr := newDirTree(t, fsys, "/r")
	tr.Expand(mustFind(t, tr, "/r/a"))
	got := tr.ExpandedDirs()
	if !equalStrings(got, []string{"/r", "/r/a"}) {
		t.Fatalf("unexpected expanded dirs %v", got)
	}
}
