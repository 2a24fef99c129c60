package events

import "github.com/gustavkrist/bookmarks/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Exit(changeDir string, err error) {
	payload := map[string]interface{}{"change_dir": changeDir}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.exit", payload)
}
