// Package term handles raw mode, terminal geometry, and keyboard input
// decoding. It talks VT100 escape sequences directly rather than going
// through a terminfo layer.
package term

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
	xterm "golang.org/x/term"
)

// Terminal handles raw mode and screen control for a tty pair.
type Terminal struct {
	in       int
	out      *os.File
	original unix.Termios
	raw      bool
}

// New creates a terminal controller reading keys from in and drawing to out.
// The input file must be a tty.
func New(in, out *os.File) (*Terminal, error) {
	fd := int(in.Fd())
	if !xterm.IsTerminal(fd) {
		return nil, fmt.Errorf("input is not a terminal")
	}
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, fmt.Errorf("querying terminal mode: %w", err)
	}
	return &Terminal{in: fd, out: out, original: *termios}, nil
}

// EnterRawMode puts the terminal into raw mode for direct character input.
// Reads return after timeoutTenths tenths of a second when no input is
// available, so key reads never block indefinitely.
func (t *Terminal) EnterRawMode(timeoutTenths int) error {
	if timeoutTenths < 1 {
		timeoutTenths = 1
	}
	raw := t.original
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = uint8(timeoutTenths)
	if err := unix.IoctlSetTermios(t.in, ioctlSetTermios, &raw); err != nil {
		return fmt.Errorf("applying raw mode: %w", err)
	}
	t.raw = true
	return nil
}

// RestoreMode restores the original terminal mode captured by New.
func (t *Terminal) RestoreMode() error {
	if !t.raw {
		return nil
	}
	if err := unix.IoctlSetTermios(t.in, ioctlSetTermios, &t.original); err != nil {
		return fmt.Errorf("restoring terminal mode: %w", err)
	}
	t.raw = false
	return nil
}

// Input returns a reader over the terminal's input fd. With raw mode
// active, a read that times out returns 0 bytes and no error.
func (t *Terminal) Input() io.Reader {
	return fdReader(t.in)
}

// Output returns the file frames are written to.
func (t *Terminal) Output() *os.File {
	return t.out
}

type fdReader int

func (r fdReader) Read(p []byte) (int, error) {
	n, err := unix.Read(int(r), p)
	if n < 0 {
		n = 0
	}
	return n, err
}

// Escape sequences emitted by the viewer.
const (
	ClearScreen = "\033[2J"
	CursorHome  = "\033[H"
	CursorHide  = "\033[?25l"
	CursorShow  = "\033[?25h"
	EraseLine   = "\033[K"

	cursorToCorner = "\033[999C\033[999B"
	cursorReport   = "\033[6n"
)
