package bufwriter

import (
	"errors"
	"fmt"
)

// ErrOverflow is returned when an append does not fit the remaining capacity.
var ErrOverflow = errors.New("bufwriter: buffer overflow")

// Writer appends to a fixed-size byte buffer. Every write either lands in
// full or is rejected with ErrOverflow, leaving the buffer position untouched.
type Writer struct {
	buf []byte
	pos int
}

// New wraps buf. The writer never grows or reallocates it.
func New(buf []byte) *Writer {
	return &Writer{buf: buf}
}

// Write implements io.Writer with all-or-nothing semantics.
func (w *Writer) Write(p []byte) (int, error) {
	if len(p) > w.Available() {
		return 0, ErrOverflow
	}
	n := copy(w.buf[w.pos:], p)
	w.pos += n
	return n, nil
}

// WriteString is Write for strings without the []byte conversion.
func (w *Writer) WriteString(s string) (int, error) {
	if len(s) > w.Available() {
		return 0, ErrOverflow
	}
	n := copy(w.buf[w.pos:], s)
	w.pos += n
	return n, nil
}

// Len reports the number of bytes written so far.
func (w *Writer) Len() int { return w.pos }

// Cap reports the size of the underlying buffer.
func (w *Writer) Cap() int { return len(w.buf) }

// Available reports how many more bytes fit.
func (w *Writer) Available() int { return len(w.buf) - w.pos }

// Bytes returns the written prefix of the buffer. It aliases the buffer.
func (w *Writer) Bytes() []byte { return w.buf[:w.pos] }

// Format formats into buf and returns the written prefix. fmt.Fprintf hands
// the whole formatted text to a single Write, so the result is either the
// complete text or ErrOverflow.
func Format(buf []byte, format string, args ...any) ([]byte, error) {
	w := New(buf)
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
