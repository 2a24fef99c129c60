package events

import "github.com/gustavkrist/bookmarks/internal/logging"

type WatchTracer struct{}

var Watch = WatchTracer{}

func (WatchTracer) Dirs(paths []string) {
	logging.Trace("watch.dirs", map[string]interface{}{"paths": paths})
}

func (WatchTracer) Event(kind, path string) {
	logging.Trace("watch.event", map[string]interface{}{"kind": kind, "path": path})
}

func (WatchTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("watch.error", map[string]interface{}{"error": err.Error()})
}
