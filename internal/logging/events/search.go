package events

import "github.com/gustavkrist/bookmarks/internal/logging"

type SearchTracer struct{}

var Search = SearchTracer{}

func (SearchTracer) Begin(root string, pool int, preloaded bool) {
	logging.Trace("search.begin", map[string]interface{}{"root": root, "pool": pool, "preloaded": preloaded})
}

func (SearchTracer) Refine(query string, results int) {
	logging.Trace("search.refine", map[string]interface{}{"query": query, "results": results})
}

func (SearchTracer) Widen(query string, results int) {
	logging.Trace("search.widen", map[string]interface{}{"query": query, "results": results})
}

func (SearchTracer) Confirm(label string) {
	logging.Trace("search.confirm", map[string]interface{}{"label": label})
}

func (SearchTracer) Cancel(query string) {
	logging.Trace("search.cancel", map[string]interface{}{"query": query})
}
