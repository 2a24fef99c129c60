package backend

import (
	"sort"
	"time"
)

// debouncer collects events until no new one arrived for delay, keeping the
// latest event per kind.
type debouncer struct {
	delay   time.Duration
	timer   *time.Timer
	pending map[Kind]Event
}

func newDebouncer(delay time.Duration) *debouncer {
	if delay < 0 {
		delay = 0
	}
	return &debouncer{delay: delay, pending: make(map[Kind]Event)}
}

// add records evt and restarts the quiet period.
func (d *debouncer) add(evt Event) {
	d.pending[evt.Kind] = evt
	if d.timer == nil {
		d.timer = time.NewTimer(d.delay)
		return
	}
	if !d.timer.Stop() {
		select {
		case <-d.timer.C:
		default:
		}
	}
	d.timer.Reset(d.delay)
}

// C fires once the quiet period is over. It is nil while nothing is pending.
func (d *debouncer) C() <-chan time.Time {
	if d.timer == nil || len(d.pending) == 0 {
		return nil
	}
	return d.timer.C
}

// flush returns the pending events ordered by kind and clears them.
func (d *debouncer) flush() []Event {
	out := make([]Event, 0, len(d.pending))
	for _, evt := range d.pending {
		out = append(out, evt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	d.pending = make(map[Kind]Event)
	return out
}

func (d *debouncer) stop() {
	if d.timer != nil {
		d.timer.Stop()
	}
}
