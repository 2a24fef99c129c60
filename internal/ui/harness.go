package ui

import tea "github.com/charmbracelet/bubbletea"

// harnessMaxSteps bounds how many follow-up messages one Send may produce.
const harnessMaxSteps = 64

var harnessKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"tab":       tea.KeyTab,
	"esc":       tea.KeyEsc,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"backspace": tea.KeyBackspace,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+d":    tea.KeyCtrlD,
	"ctrl+u":    tea.KeyCtrlU,
	"ctrl+w":    tea.KeyCtrlW,
	"ctrl+x":    tea.KeyCtrlX,
	"ctrl+]":    tea.KeyCtrlCloseBracket,
}

// Harness drives the dashboard model programmatically for integration tests.
// Commands returned by Update run synchronously, batches included, until the
// model goes quiet or asks to quit.
type Harness struct {
	model *Model
	quit  bool
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send routes messages through the model and executes any returned commands.
func (h *Harness) Send(msgs ...tea.Msg) {
	for _, msg := range msgs {
		if h.model == nil || h.quit {
			return
		}
		h.process(h.update(msg))
	}
}

// Keys sends key presses by name ("enter", "ctrl+x") or as typed runes.
func (h *Harness) Keys(keys ...string) {
	for _, k := range keys {
		if t, ok := harnessKeys[k]; ok {
			h.Send(tea.KeyMsg{Type: t})
			continue
		}
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
}

func (h *Harness) update(msg tea.Msg) tea.Cmd {
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	return cmd
}

func (h *Harness) process(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < harnessMaxSteps; steps++ {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.QuitMsg:
			h.quit = true
			return
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			queue = append(queue, h.update(msg))
		}
	}
}

// Quit reports whether the model returned tea.Quit.
func (h *Harness) Quit() bool {
	return h.quit
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
