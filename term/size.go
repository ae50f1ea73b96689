package term

import (
	"fmt"
	"io"

	"golang.org/x/sys/unix"
)

// cursorReportMax bounds the device status report reply buffer.
const cursorReportMax = 32

// Size returns the terminal's row and column extent. It queries the
// kernel first and falls back to probing the cursor position when the
// ioctl fails or reports zero columns, which happens on some serial and
// container ttys. The fallback requires raw mode to be active so the
// terminal's reply is readable byte-by-byte without echo.
func (t *Terminal) Size() (rows, cols int, err error) {
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err == nil && ws.Col != 0 {
		return int(ws.Row), int(ws.Col), nil
	}
	return t.probeSize()
}

// probeSize forces the cursor to the bottom-right corner with large
// forward/down moves, which real screen edges clip, then asks the
// terminal where the cursor ended up.
func (t *Terminal) probeSize() (rows, cols int, err error) {
	if _, err := t.out.WriteString(cursorToCorner); err != nil {
		return 0, 0, fmt.Errorf("probing screen size: %w", err)
	}
	return queryCursorPosition(t.Input(), t.out)
}

// queryCursorPosition issues a device status report request and parses
// the terminal's `ESC [ rows ; cols R` reply from r.
func queryCursorPosition(r io.Reader, w io.Writer) (rows, cols int, err error) {
	if _, err := io.WriteString(w, cursorReport); err != nil {
		return 0, 0, fmt.Errorf("requesting cursor position: %w", err)
	}

	buf := make([]byte, 0, cursorReportMax)
	var b [1]byte
	for len(buf) < cursorReportMax-1 {
		n, _ := r.Read(b[:])
		if n != 1 || b[0] == 'R' {
			break
		}
		buf = append(buf, b[0])
	}
	return parseCursorReport(buf)
}

func parseCursorReport(buf []byte) (rows, cols int, err error) {
	if len(buf) < 2 || buf[0] != byte(KeyEscape) || buf[1] != '[' {
		return 0, 0, fmt.Errorf("malformed cursor position report %q", buf)
	}
	if _, err := fmt.Sscanf(string(buf[2:]), "%d;%d", &rows, &cols); err != nil {
		return 0, 0, fmt.Errorf("parsing cursor position report %q: %w", buf, err)
	}
	return rows, cols, nil
}
