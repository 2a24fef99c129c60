package state

import "unicode"

// Query is the search bar's text and caret.
type Query struct {
	Text   string
	Cursor int
}

func (q *Query) set(text string, cursor int) {
	q.Text = text
	runes := []rune(text)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	q.Cursor = cursor
}

// Pos returns the rune offset of the caret.
func (q *Query) Pos() int {
	runes := []rune(q.Text)
	if q.Cursor < 0 {
		return 0
	}
	if q.Cursor > len(runes) {
		return len(runes)
	}
	return q.Cursor
}

// Insert inserts text at the caret.
func (q *Query) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(q.Text)
	pos := q.Pos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	q.set(string(updated), pos+len(insert))
	return true
}

// DeleteRuneBackward deletes the rune before the caret.
func (q *Query) DeleteRuneBackward() bool {
	runes := []rune(q.Text)
	pos := q.Pos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	q.set(string(updated), pos-1)
	return true
}

// DeleteWordBackward deletes the word before the caret.
func (q *Query) DeleteWordBackward() bool {
	runes := []rune(q.Text)
	pos := q.Pos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStart(runes, pos)
	updated := append(runes[:i], runes[pos:]...)
	q.set(string(updated), i)
	return true
}

// Clear empties the query.
func (q *Query) Clear() bool {
	if q.Text == "" {
		q.Cursor = 0
		return false
	}
	q.set("", 0)
	return true
}

// MoveStart moves the caret to the start.
func (q *Query) MoveStart() bool {
	if q.Pos() == 0 {
		return false
	}
	q.Cursor = 0
	return true
}

// MoveEnd moves the caret to the end.
func (q *Query) MoveEnd() bool {
	end := len([]rune(q.Text))
	if q.Pos() == end {
		return false
	}
	q.Cursor = end
	return true
}

// MoveWordBackward moves the caret to the start of the previous word.
func (q *Query) MoveWordBackward() bool {
	pos := q.Pos()
	if pos == 0 {
		return false
	}
	i := wordStart([]rune(q.Text), pos)
	if i == pos {
		return false
	}
	q.Cursor = i
	return true
}

// MoveWordForward moves the caret past the next word.
func (q *Query) MoveWordForward() bool {
	runes := []rune(q.Text)
	pos := q.Pos()
	if pos >= len(runes) {
		return false
	}
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	q.Cursor = i
	return true
}

// MoveRuneBackward moves the caret one rune left.
func (q *Query) MoveRuneBackward() bool {
	pos := q.Pos()
	if pos == 0 {
		return false
	}
	q.Cursor = pos - 1
	return true
}

// MoveRuneForward moves the caret one rune right.
func (q *Query) MoveRuneForward() bool {
	pos := q.Pos()
	if pos >= len([]rune(q.Text)) {
		return false
	}
	q.Cursor = pos + 1
	return true
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}
