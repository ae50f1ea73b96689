package term

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/sys/unix"
)

// Key is one decoded key event. Values below 256 are literal bytes;
// special keys are given values outside the byte range so they cannot
// collide with ordinary keypresses.
type Key int

const (
	KeyArrowLeft Key = 1000 + iota
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

// KeyEscape is a bare escape keypress, and also the result of decoding
// any escape sequence the decoder does not recognize.
const KeyEscape Key = 0x1b

// Ctrl returns the key produced by holding CTRL with the given letter.
// The terminal strips the sixth and seventh bits, so CTRL-q is 0x11.
func Ctrl(b byte) Key {
	return Key(b & 0x1f)
}

// Decoder turns a raw terminal byte stream into key events. Escape
// sequences vary across terminal emulators and share prefixes, so the
// decoder uses bounded lookahead: each read past the escape byte gets
// one timeout interval to arrive, and a timeout resolves the input as a
// bare Escape rather than blocking on bytes that may never come.
type Decoder struct {
	r io.Reader
}

// NewDecoder creates a decoder over a raw input stream. A Read returning
// 0 bytes with a nil or io.EOF error is treated as a timed-out read.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// ReadKey blocks until one byte is available, then decodes and returns a
// single key event. Timed-out reads while waiting for the first byte are
// retried; any other read failure is returned.
func (d *Decoder) ReadKey() (Key, error) {
	var b [1]byte
	for {
		n, err := d.r.Read(b[:])
		if n == 1 {
			break
		}
		if err == nil || errors.Is(err, unix.EAGAIN) {
			continue
		}
		return 0, fmt.Errorf("reading key: %w", err)
	}
	if b[0] != byte(KeyEscape) {
		return Key(b[0]), nil
	}
	return d.readEscape()
}

// readEscape resolves the bytes following an escape. Each lookahead read
// gets one timeout interval; a timeout means the escape was a lone
// keypress.
func (d *Decoder) readEscape() (Key, error) {
	var seq [3]byte
	for i := 0; i < 2; i++ {
		c, ok, err := d.readByte()
		if err != nil {
			return 0, err
		}
		if !ok {
			return KeyEscape, nil
		}
		seq[i] = c
	}

	switch {
	case seq[0] == '[' && seq[1] >= '0' && seq[1] <= '9':
		c, ok, err := d.readByte()
		if err != nil {
			return 0, err
		}
		if !ok {
			return KeyEscape, nil
		}
		seq[2] = c
		if seq[2] != '~' {
			return KeyEscape, nil
		}
		switch seq[1] {
		case '1', '7':
			return KeyHome, nil
		case '3':
			return KeyDelete, nil
		case '4', '8':
			return KeyEnd, nil
		case '5':
			return KeyPageUp, nil
		case '6':
			return KeyPageDown, nil
		}
	case seq[0] == '[':
		switch seq[1] {
		case 'A':
			return KeyArrowUp, nil
		case 'B':
			return KeyArrowDown, nil
		case 'C':
			return KeyArrowRight, nil
		case 'D':
			return KeyArrowLeft, nil
		case 'H':
			return KeyHome, nil
		case 'F':
			return KeyEnd, nil
		}
	case seq[0] == 'O':
		switch seq[1] {
		case 'H':
			return KeyHome, nil
		case 'F':
			return KeyEnd, nil
		}
	}
	return KeyEscape, nil
}

// readByte attempts a single read of one byte. ok is false when the read
// timed out with nothing available.
func (d *Decoder) readByte() (c byte, ok bool, err error) {
	var b [1]byte
	n, err := d.r.Read(b[:])
	if n == 1 {
		return b[0], true, nil
	}
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, unix.EAGAIN) {
		return 0, false, nil
	}
	return 0, false, fmt.Errorf("reading escape sequence: %w", err)
}
