// Package buffer holds the in-memory line model of the file being
// viewed. Lines are loaded once, newline-stripped, and never mutated
// afterwards.
package buffer

import (
	"bytes"
	"fmt"
	"os"
)

// Buffer is an append-only, randomly indexable sequence of lines in
// file order.
type Buffer struct {
	path  string
	lines [][]byte
}

// New returns an empty buffer with no backing file.
func New() *Buffer {
	return &Buffer{}
}

// Open reads the file at path into a buffer. BOM-marked UTF-8 and
// UTF-16 content is converted to plain UTF-8 before splitting; trailing
// newlines and carriage returns are stripped from each line.
func Open(path string) (*Buffer, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	b := &Buffer{path: path}
	data := []byte(NormalizeText(content))
	for len(data) > 0 {
		line := data
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line = data[:i]
			data = data[i+1:]
		} else {
			data = nil
		}
		for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
			line = line[:len(line)-1]
		}
		b.Append(line)
	}
	return b, nil
}

// Append adds one line to the end of the buffer, copying the bytes so
// the buffer owns its contents.
func (b *Buffer) Append(line []byte) {
	owned := make([]byte, len(line))
	copy(owned, line)
	b.lines = append(b.lines, owned)
}

// Len returns the number of lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Line returns the bytes of line i, or nil when i is out of range.
func (b *Buffer) Line(i int) []byte {
	if i < 0 || i >= len(b.lines) {
		return nil
	}
	return b.lines[i]
}

// LineLen returns the length of line i, treating rows at or past the
// end of the buffer as empty.
func (b *Buffer) LineLen(i int) int {
	if i < 0 || i >= len(b.lines) {
		return 0
	}
	return len(b.lines[i])
}

// Path returns the file the buffer was loaded from, if any.
func (b *Buffer) Path() string {
	return b.path
}
