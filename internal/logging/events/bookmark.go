package events

import "github.com/gustavkrist/bookmarks/internal/logging"

type BookmarkTracer struct{}

var Bookmark = BookmarkTracer{}

func (BookmarkTracer) Add(name, path string) {
	logging.Trace("bookmark.add", map[string]interface{}{"name": name, "path": path})
}

func (BookmarkTracer) Remove(name string) {
	logging.Trace("bookmark.remove", map[string]interface{}{"name": name})
}

func (BookmarkTracer) Ignore(bookmark, name string) {
	logging.Trace("bookmark.ignore", map[string]interface{}{"bookmark": bookmark, "name": name})
}

func (BookmarkTracer) Reset(path string) {
	logging.Trace("bookmark.reset", map[string]interface{}{"path": path})
}

func (BookmarkTracer) Reconcile(added, removed int) {
	logging.Trace("bookmark.reconcile", map[string]interface{}{"added": added, "removed": removed})
}
