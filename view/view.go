// Package view maps a logical cursor position in a line buffer onto the
// terminal screen: it clamps cursor movement against line boundaries,
// keeps the cursor inside the visible window, and composes full frames
// of VT100 output.
package view

import (
	"peruse/buffer"
	"peruse/term"
)

// Cursor is a 0-based logical position within the buffer. Row may equal
// the line count (one past the last line), matching the empty virtual
// row a viewer can rest on; Col never exceeds the current line length.
type Cursor struct {
	Col int
	Row int
}

// Offset is the top-left corner of the visible window, in the same
// coordinate space as Cursor.
type Offset struct {
	Row int
	Col int
}

// Scroll recomputes the row offset so the cursor row stays within the
// visible window of screenRows rows. Scrolling is vertical only.
func Scroll(cur Cursor, off Offset, screenRows int) Offset {
	if cur.Row < off.Row {
		off.Row = cur.Row
	}
	if cur.Row >= off.Row+screenRows {
		off.Row = cur.Row - screenRows + 1
	}
	return off
}

// Move applies one navigation key to the cursor and returns the new
// position. Left at the start of a line wraps to the end of the
// previous line, right at the end wraps to the start of the next.
// Vertical moves clamp the column to the new line's length; there is no
// sticky column memory. PageUp and PageDown repeat the vertical move
// screenRows times. Keys with no navigation meaning leave the cursor
// unchanged.
func Move(key term.Key, cur Cursor, b *buffer.Buffer, screenRows int) Cursor {
	switch key {
	case term.KeyArrowLeft:
		if cur.Col != 0 {
			cur.Col--
		} else if cur.Row > 0 {
			cur.Row--
			cur.Col = b.LineLen(cur.Row)
		}
	case term.KeyArrowRight:
		if cur.Row < b.Len() {
			if cur.Col < b.LineLen(cur.Row) {
				cur.Col++
			} else {
				cur.Row++
				cur.Col = 0
			}
		}
	case term.KeyArrowUp:
		if cur.Row != 0 {
			cur.Row--
		}
	case term.KeyArrowDown:
		if cur.Row < b.Len() {
			cur.Row++
		}
	case term.KeyHome:
		cur.Col = 0
	case term.KeyEnd:
		cur.Col = b.LineLen(cur.Row)
	case term.KeyPageUp:
		for i := 0; i < screenRows; i++ {
			cur = Move(term.KeyArrowUp, cur, b, screenRows)
		}
	case term.KeyPageDown:
		for i := 0; i < screenRows; i++ {
			cur = Move(term.KeyArrowDown, cur, b, screenRows)
		}
	}

	if limit := b.LineLen(cur.Row); cur.Col > limit {
		cur.Col = limit
	}
	return cur
}
