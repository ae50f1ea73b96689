package view

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"peruse/buffer"
	"peruse/term"
)

// Renderer composes one frame per call into a single buffer and flushes
// it with one write, so a redraw is never visible half-finished. The
// screen geometry is fixed for the renderer's lifetime.
type Renderer struct {
	rows    int
	cols    int
	welcome string
}

// NewRenderer creates a renderer for a screen of rows by cols cells.
// welcome is shown centered on an empty buffer; pass "" to disable it.
func NewRenderer(rows, cols int, welcome string) *Renderer {
	return &Renderer{rows: rows, cols: cols, welcome: welcome}
}

// Render composes a full frame for the given buffer and cursor state
// and writes it to w in exactly one Write call. The cursor is hidden
// while rows are drawn, repositioned, then shown again, in that order,
// so it never flickers across the screen mid-draw.
func (r *Renderer) Render(w io.Writer, b *buffer.Buffer, cur Cursor, off Offset) error {
	var fb bytes.Buffer
	fb.WriteString(term.CursorHide)
	fb.WriteString(term.CursorHome)

	for i := 0; i < r.rows; i++ {
		filerow := i + off.Row
		switch {
		case filerow < b.Len():
			fb.Write(visibleSlice(b.Line(filerow), off.Col, r.cols))
		case b.Len() == 0 && i == r.rows/3 && r.welcome != "":
			r.writeWelcome(&fb)
		default:
			fb.WriteByte('~')
		}
		fb.WriteString(term.EraseLine)
		if i < r.rows-1 {
			fb.WriteString("\r\n")
		}
	}

	fmt.Fprintf(&fb, "\033[%d;%dH", cur.Row-off.Row+1, cur.Col-off.Col+1)
	fb.WriteString(term.CursorShow)

	if _, err := w.Write(fb.Bytes()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// visibleSlice clips one line to the window columns [off, off+cols).
// A column offset past the end of the line yields an empty slice.
func visibleSlice(line []byte, off, cols int) []byte {
	if off >= len(line) {
		return nil
	}
	line = line[off:]
	if len(line) > cols {
		line = line[:cols]
	}
	return line
}

// writeWelcome centers the welcome banner, truncated to the screen
// width by display width so wide runes don't push it off the edge.
func (r *Renderer) writeWelcome(fb *bytes.Buffer) {
	msg := runewidth.Truncate(r.welcome, r.cols, "")
	padding := (r.cols - runewidth.StringWidth(msg)) / 2
	if padding > 0 {
		fb.WriteByte('~')
		padding--
	}
	for ; padding > 0; padding-- {
		fb.WriteByte(' ')
	}
	fb.WriteString(msg)
}
