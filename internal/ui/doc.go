// Package ui contains the Bubble Tea program behind the bookmark dashboard.
// Model focuses on message orchestration while dedicated files own
// navigation, search input, preview loading, actions and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, preview results, watcher events, action results).
//   - Keys are dispatched on the focus mode: plain navigation, query editing
//     while a search overlay has focus, or result browsing once the query was
//     submitted (internal/ui/input.go, internal/ui/search.go).
//
// State ownership:
//   - The bookmark list and every opened directory are internal/tree trees;
//     the UI only keeps a tree.Viewport per pane and never edits nodes
//     itself. Directory trees are cached per bookmark name.
//   - Focus and the query text live in internal/ui/state.
//   - Actions that touch the bookmark file or the clipboard run through the
//     internal/ui/command bus and report back as command.Result messages.
//
// Backend interactions:
//   - A backend.Watcher streams debounced filesystem events. Each one goes to
//     the dispatcher, which decides what to reload; reconciliation of the
//     trees happens here on the Update goroutine. Events arriving while a
//     search overlay is open are held back until it closes.
//   - Previews render on a tea.Cmd goroutine and carry a sequence number so
//     stale results are dropped.
package ui
