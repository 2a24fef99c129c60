package events

import "github.com/gustavkrist/bookmarks/internal/logging"

type UITracer struct{}

type QueryTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Query   = QueryTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Focus(from, to, mode string) {
	logging.Trace("ui.focus", map[string]interface{}{"from": from, "to": to, "mode": mode})
}

func (UITracer) Enter(pane, label, kind, action string) {
	logging.Trace("ui.enter", map[string]interface{}{
		"pane":   pane,
		"label":  label,
		"kind":   kind,
		"action": action,
	})
}

func (UITracer) Cursor(pane string, line, top int) {
	logging.Trace("ui.cursor", map[string]interface{}{"pane": pane, "line": line, "top": top})
}

func (UITracer) Preview(path string, seq int) {
	logging.Trace("ui.preview", map[string]interface{}{"path": path, "seq": seq})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (QueryTracer) Cleared(pane string) {
	logging.Trace("query.clear", map[string]interface{}{"pane": pane})
}

func (QueryTracer) WordBackspace(pane, query string) {
	logging.Trace("query.word-backspace", map[string]interface{}{"pane": pane, "query": query})
}

func (QueryTracer) Cursor(pane string, pos int) {
	logging.Trace("query.cursor", map[string]interface{}{"pane": pane, "cursor": pos})
}

func (QueryTracer) Append(pane, query string) {
	logging.Trace("query.append", map[string]interface{}{"pane": pane, "query": query})
}

func (QueryTracer) Backspace(pane, query string) {
	logging.Trace("query.backspace", map[string]interface{}{"pane": pane, "query": query})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
