package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/gustavkrist/bookmarks/internal/tree"
)

func TestViewFillsTerminal(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	m.showFooter = true
	m.layout()
	lines := strings.Split(m.View(), "\n")
	if len(lines) != 30 {
		t.Fatalf("expected 30 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 100 {
			t.Fatalf("row %d: expected width 100, got %d: %q", i, w, stripANSI(line))
		}
	}
}

func TestViewShowsTreesAndTitles(t *testing.T) {
	f := newFixture(t, 100, 30)
	view := stripANSI(f.model.View())
	for _, want := range []string{"Bookmarks", "proj/", "notes", "proj", "├── build/", "└── README.md", "Preview"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestViewDuringSearch(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	m.handleKeyMsg(key("s"))
	typeQuery(m, "zz")
	view := stripANSI(m.View())
	if !strings.Contains(view, "Search") || !strings.Contains(view, "» zz") {
		t.Fatalf("expected search bar with the query:\n%s", view)
	}
	if !strings.Contains(view, `No matches for "zz"`) {
		t.Fatalf("expected empty result notice:\n%s", view)
	}
	if lines := strings.Split(m.View(), "\n"); len(lines) != 30 {
		t.Fatalf("expected 30 rows with the search bar, got %d", len(lines))
	}
}

func TestViewShowsRelativeSearchLabels(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	m.handleKeyMsg(key("2"))
	m.handleKeyMsg(key("s"))
	view := stripANSI(m.View())
	if !strings.Contains(view, "src/main.go") {
		t.Fatalf("expected relative labels in results:\n%s", view)
	}
}

func TestRenderRowMarksDirectories(t *testing.T) {
	row := tree.Row{Label: "src", Kind: tree.KindDirectory, Dir: true, Last: []bool{false}}
	if got := stripANSI(renderRow(row, 20, nil)); got != "├── src/" {
		t.Fatalf("unexpected row %q", got)
	}
	row = tree.Row{Label: "main.go", Kind: tree.KindFile, Last: []bool{true, true}, Highlighted: true}
	got := stripANSI(renderRow(row, 20, []int{0}))
	if lipgloss.Width(got) != 20 || !strings.HasPrefix(got, "    └── main.go") {
		t.Fatalf("expected padded highlighted row, got %q", got)
	}
}

func TestRenderPanelExactSize(t *testing.T) {
	out := renderPanel("A very long title that will not fit", "9/9", []string{"one", strings.Repeat("x", 50)}, 20, 5, true)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 20 {
			t.Fatalf("row %d: expected width 20, got %d: %q", i, w, line)
		}
	}
}

func TestFitWidth(t *testing.T) {
	if got := fitWidth("abc", 5); got != "abc  " {
		t.Fatalf("expected padding, got %q", got)
	}
	if got := lipgloss.Width(fitWidth("abcdefgh", 5)); got != 5 {
		t.Fatalf("expected truncation to 5 columns, got %d", got)
	}
}

func TestFooterFollowsMode(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	if m.footer() != footerText {
		t.Fatalf("expected navigation footer")
	}
	m.handleKeyMsg(key("s"))
	if m.footer() != footerSearchText {
		t.Fatalf("expected search footer")
	}
}

func TestInfoExpires(t *testing.T) {
	f := newFixture(t, 100, 30)
	m := f.model
	m.setInfo("saved")
	if m.currentInfo() != "saved" {
		t.Fatalf("expected info message")
	}
	m.infoExpire = m.infoExpire.Add(-2 * infoTimeout)
	if m.currentInfo() != "" {
		t.Fatalf("expected expired info to be cleared")
	}
}
