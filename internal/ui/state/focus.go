package state

// Pane identifies one of the dashboard's panels.
type Pane int

const (
	PaneBookmarks Pane = iota
	PaneDirectory
	PanePreview
	PaneSearch
)

func (p Pane) String() string {
	switch p {
	case PaneBookmarks:
		return "bookmarks"
	case PaneDirectory:
		return "directory"
	case PanePreview:
		return "preview"
	case PaneSearch:
		return "search"
	default:
		return "unknown"
	}
}

// Mode is the search state of the dashboard.
type Mode int

const (
	ModeNone Mode = iota
	// ModeSearch routes keys into the query.
	ModeSearch
	// ModeSearchSuspended keeps the overlay open while keys move through the
	// results.
	ModeSearchSuspended
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeSearchSuspended:
		return "suspended"
	default:
		return "none"
	}
}

// Focus records which pane receives keys, which pane tab returns to, and
// which pane a search overlay covers.
type Focus struct {
	Active          Pane
	PreviousPreview Pane
	SearchTarget    Pane
	Mode            Mode
}

// NewFocus starts on the bookmark pane.
func NewFocus() Focus {
	return Focus{
		Active:          PaneBookmarks,
		PreviousPreview: PanePreview,
		SearchTarget:    PaneBookmarks,
	}
}

// Searching reports whether an overlay is open.
func (f Focus) Searching() bool {
	return f.Mode != ModeNone
}

// Select activates one of the tree panes. It is refused while searching.
func (f *Focus) Select(p Pane) bool {
	if f.Searching() || (p != PaneBookmarks && p != PaneDirectory) {
		return false
	}
	f.Active = p
	f.PreviousPreview = PanePreview
	return true
}

// TogglePreview moves into the preview pane, or back to the pane it was
// entered from.
func (f *Focus) TogglePreview() bool {
	if f.Searching() {
		return false
	}
	if f.Active != PanePreview {
		f.PreviousPreview = f.Active
		f.Active = PanePreview
		return true
	}
	f.Active = f.PreviousPreview
	f.PreviousPreview = PanePreview
	return true
}

// BeginSearch opens a search over the active tree pane.
func (f *Focus) BeginSearch() bool {
	if f.Searching() || (f.Active != PaneBookmarks && f.Active != PaneDirectory) {
		return false
	}
	f.SearchTarget = f.Active
	f.Active = PaneSearch
	f.Mode = ModeSearch
	return true
}

// Suspend hands keys back to the searched pane while the overlay stays.
func (f *Focus) Suspend() bool {
	if f.Mode != ModeSearch {
		return false
	}
	f.Mode = ModeSearchSuspended
	f.Active = f.SearchTarget
	return true
}

// Resume returns to typing into the query.
func (f *Focus) Resume() bool {
	if f.Mode != ModeSearchSuspended {
		return false
	}
	f.Mode = ModeSearch
	f.Active = PaneSearch
	return true
}

// EndSearch closes the search and focuses the pane that was searched.
func (f *Focus) EndSearch() bool {
	if !f.Searching() {
		return false
	}
	f.Mode = ModeNone
	f.Active = f.SearchTarget
	return true
}
