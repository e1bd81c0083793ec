package headers

import (
	"bytes"
	"errors"
)

// Slot is one header pair. Name and Value are views into the buffer the
// request was read into and are only valid until that buffer is reused.
type Slot struct {
	Name  []byte
	Value []byte
}

// Empty reports whether the slot has not been filled by a parse.
func (s Slot) Empty() bool {
	return s.Name == nil
}

var (
	ErrMissingColon     = errors.New("invalid header: missing colon")
	ErrSpaceBeforeColon = errors.New("invalid header: space before colon")
	ErrEmptyName        = errors.New("invalid header: empty name")
	ErrInvalidName      = errors.New("invalid header: invalid character in name")
	ErrInvalidValue     = errors.New("invalid header: control character in value")
)

var crlf = []byte("\r\n")

// ParseLine scans at most one header line from data into slot.
// It returns n (bytes consumed), done (true iff an empty line was found), and err.
//
//   - If no CRLF is found, returns (0, false, nil) and consumes nothing.
//   - If CRLF is at the start, returns (2, true, nil): end of the header block.
//   - Otherwise the line must be "name: value". Surrounding whitespace of the
//     value is trimmed; whitespace between name and colon is rejected, and so
//     is any control byte other than HTAB in the value.
func ParseLine(data []byte, slot *Slot) (n int, done bool, err error) {
	idx := bytes.Index(data, crlf)
	if idx == -1 {
		return 0, false, nil
	}
	if idx == 0 {
		return 2, true, nil
	}

	line := data[:idx]
	colon := bytes.IndexByte(line, ':')
	if colon == -1 {
		return 0, false, ErrMissingColon
	}
	if colon == 0 {
		return 0, false, ErrEmptyName
	}
	if prev := line[colon-1]; prev == ' ' || prev == '\t' {
		return 0, false, ErrSpaceBeforeColon
	}

	name := line[:colon]
	for _, c := range name {
		if !IsTokenChar(c) {
			return 0, false, ErrInvalidName
		}
	}

	value := line[colon+1:]
	for _, c := range value {
		if (c < ' ' && c != '\t') || c == 0x7f {
			return 0, false, ErrInvalidValue
		}
	}

	slot.Name = name
	slot.Value = trimOWS(value)
	return idx + 2, false, nil
}

// IsTokenChar reports whether c may appear in a header name or method token.
func IsTokenChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}

// Get returns the value of the first slot whose name matches, ignoring case.
func Get(slots []Slot, name string) ([]byte, bool) {
	for i := range slots {
		if equalFold(slots[i].Name, name) {
			return slots[i].Value, true
		}
	}
	return nil, false
}

// Clear resets every slot so stale views from a previous read are dropped.
func Clear(slots []Slot) {
	for i := range slots {
		slots[i] = Slot{}
	}
}

func trimOWS(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t') {
		b = b[1:]
	}
	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t') {
		b = b[:len(b)-1]
	}
	return b
}

func equalFold(b []byte, s string) bool {
	if len(b) != len(s) {
		return false
	}
	for i := 0; i < len(b); i++ {
		if lower(b[i]) != lower(s[i]) {
			return false
		}
	}
	return true
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
