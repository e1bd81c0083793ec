package request

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xaitan80/picohttp/internal/headers"
)

var (
	// ErrIncomplete means the buffer ends before the header block does.
	ErrIncomplete = errors.New("incomplete request")
	// ErrMalformed means the start line or a header line is not valid HTTP/1.x.
	ErrMalformed = errors.New("malformed request")
	// ErrTooManyHeaders means the message carries more headers than slots.
	ErrTooManyHeaders = errors.New("too many headers")
)

// StartLine is the scanned request line. Fields alias the scanned buffer.
type StartLine struct {
	Method  []byte
	Target  []byte
	Version byte // minor version: 0 or 1
}

// Scanner tokenizes raw bytes into a start line and header slots. It fills
// slots in order and returns how many it used along with the offset just past
// the blank line terminating the header block.
type Scanner interface {
	Scan(raw []byte, slots []headers.Slot) (line StartLine, nslots int, end int, err error)
}

// WireScanner is the default Scanner. It requires CRLF line endings.
type WireScanner struct{}

func (WireScanner) Scan(raw []byte, slots []headers.Slot) (StartLine, int, int, error) {
	consumed, sl, err := parseRequestLine(raw)
	if err != nil {
		return StartLine{}, 0, 0, err
	}
	if consumed == 0 {
		return StartLine{}, 0, 0, ErrIncomplete
	}

	off := consumed
	used := 0
	for {
		var slot headers.Slot
		n, done, err := headers.ParseLine(raw[off:], &slot)
		if err != nil {
			return StartLine{}, 0, 0, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		if n == 0 {
			return StartLine{}, 0, 0, ErrIncomplete
		}
		off += n
		if done {
			return sl, used, off, nil
		}
		if used == len(slots) {
			return StartLine{}, 0, 0, ErrTooManyHeaders
		}
		slots[used] = slot
		used++
	}
}

// parseRequestLine attempts to parse a request-line from the beginning of data.
// It returns the number of bytes consumed (including the trailing CRLF),
// the parsed StartLine, and an error. If no CRLF is found, it returns (0, _, nil).
func parseRequestLine(data []byte) (int, StartLine, error) {
	lf := bytes.IndexByte(data, '\n')
	if lf == -1 {
		return 0, StartLine{}, nil
	}
	if lf == 0 || data[lf-1] != '\r' {
		return 0, StartLine{}, fmt.Errorf("%w: request line must end with CRLF", ErrMalformed)
	}
	line := data[:lf-1]

	sp1 := bytes.IndexByte(line, ' ')
	if sp1 <= 0 {
		return 0, StartLine{}, fmt.Errorf("%w: missing method", ErrMalformed)
	}
	method := line[:sp1]
	for _, c := range method {
		if !headers.IsTokenChar(c) {
			return 0, StartLine{}, fmt.Errorf("%w: invalid method", ErrMalformed)
		}
	}

	rest := line[sp1+1:]
	sp2 := bytes.IndexByte(rest, ' ')
	if sp2 <= 0 {
		return 0, StartLine{}, fmt.Errorf("%w: want 3 parts", ErrMalformed)
	}
	target := rest[:sp2]
	for _, c := range target {
		if c <= ' ' || c == 0x7f {
			return 0, StartLine{}, fmt.Errorf("%w: invalid request target", ErrMalformed)
		}
	}

	version := rest[sp2+1:]
	const prefix = "HTTP/1."
	if len(version) != len(prefix)+1 || string(version[:len(prefix)]) != prefix {
		return 0, StartLine{}, fmt.Errorf("%w: invalid http version format", ErrMalformed)
	}
	minor := version[len(prefix)]
	if minor != '0' && minor != '1' {
		return 0, StartLine{}, fmt.Errorf("%w: unsupported http version", ErrMalformed)
	}

	return lf + 1, StartLine{Method: method, Target: target, Version: minor - '0'}, nil
}
