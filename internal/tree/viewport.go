package tree

// scrollMargin keeps the cursor this many lines above the middle of the
// pane while scrolling down.
const scrollMargin = 3

// Viewport maps the cursor line of a pane onto a scroll offset.
type Viewport struct {
	Top    int
	Height int
}

func (v *Viewport) height() int {
	if v.Height < 1 {
		return 1
	}
	return v.Height
}

// lead is the line within the window the cursor settles on while scrolling.
func (v *Viewport) lead() int {
	if lead := v.height()/2 - scrollMargin; lead > 0 {
		return lead
	}
	return 0
}

// Follow adjusts Top after the cursor moved by one line. delta is positive
// for a downward step and negative for an upward one.
func (v *Viewport) Follow(line, total, delta int) {
	h := v.height()
	switch {
	case delta > 0:
		if line-v.Top > v.lead() && total-v.Top > h {
			v.Top++
		}
	case delta < 0:
		if line-v.Top < h/2 && v.Top > 0 {
			v.Top--
		}
	}
	v.clamp(line, total)
}

// Center recomputes Top from scratch, used after jumps and reloads.
func (v *Viewport) Center(line, total int) {
	h := v.height()
	switch {
	case total <= h || line < h:
		v.Top = min(max(0, line-v.lead()), max(0, total-h))
	case total-line <= h:
		v.Top = total - h
	default:
		v.Top = line - v.lead()
	}
	v.clamp(line, total)
}

// Window returns the half-open range of lines shown for total lines.
func (v *Viewport) Window(total int) (int, int) {
	end := min(v.Top+v.height(), total)
	if end < v.Top {
		return v.Top, v.Top
	}
	return v.Top, end
}

// clamp keeps Top non-negative, avoids scrolling past the end and keeps the
// cursor inside the window.
func (v *Viewport) clamp(line, total int) {
	if total <= 0 {
		v.Top = 0
		return
	}
	h := v.height()
	line = min(max(line, 0), total-1)
	v.Top = min(v.Top, max(0, total-h))
	v.Top = max(v.Top, 0)
	if line < v.Top {
		v.Top = line
	}
	if line >= v.Top+h {
		v.Top = line - h + 1
	}
}
