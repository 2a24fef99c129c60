package events

import "github.com/gustavkrist/bookmarks/internal/logging"

type TreeTracer struct{}

var Tree = TreeTracer{}

func (TreeTracer) Load(path string, children int) {
	logging.Trace("tree.load", map[string]interface{}{"path": path, "children": children})
}

func (TreeTracer) Denied(path string) {
	logging.Trace("tree.denied", map[string]interface{}{"path": path})
}

func (TreeTracer) Skipped(path string, err error) {
	logging.Trace("tree.skipped", map[string]interface{}{"path": path, "error": err.Error()})
}

func (TreeTracer) Reload(path string, added, removed int) {
	logging.Trace("tree.reload", map[string]interface{}{"path": path, "added": added, "removed": removed})
}

func (TreeTracer) CursorReset(path string, cursor int) {
	logging.Trace("tree.cursor-reset", map[string]interface{}{"path": path, "cursor": cursor})
}
