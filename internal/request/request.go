package request

import (
	"bytes"
	"unicode/utf8"

	"github.com/xaitan80/picohttp/internal/headers"
)

// Request is a parsed view of one message. Every byte slice aliases the
// buffer passed to Parse; none of it may be kept past the next read into
// that buffer.
type Request struct {
	Method      Method // MethodUnknown when the token is outside the vocabulary
	MethodToken []byte
	Path        []byte
	Version     byte
	Headers     []headers.Slot
	// Body is everything after the header block in this read, or empty when
	// those bytes are not valid UTF-8.
	Body []byte
}

// Header returns the first header value named name, ignoring case.
func (r *Request) Header(name string) ([]byte, bool) {
	return headers.Get(r.Headers, name)
}

var headerTerminator = []byte("\r\n\r\n")

// Parser turns raw request bytes into a Request using its Scanner.
type Parser struct {
	Scanner Scanner
}

// Parse parses raw with the default WireScanner.
func Parse(raw []byte, slots []headers.Slot) (Request, error) {
	return Parser{}.Parse(raw, slots)
}

// Parse scans raw into slots and builds the Request. Any error means the
// read did not hold a complete, well-formed message.
func (p Parser) Parse(raw []byte, slots []headers.Slot) (Request, error) {
	sc := p.Scanner
	if sc == nil {
		sc = WireScanner{}
	}
	line, n, _, err := sc.Scan(raw, slots)
	if err != nil {
		return Request{}, err
	}

	// The body boundary is located on its own, not taken from the scanner.
	boundary := bytes.Index(raw, headerTerminator)
	if boundary == -1 {
		return Request{}, ErrIncomplete
	}
	body := raw[boundary+len(headerTerminator):]
	if !utf8.Valid(body) {
		body = body[:0]
	}

	m, _ := LookupMethod(line.Method)
	return Request{
		Method:      m,
		MethodToken: line.Method,
		Path:        line.Target,
		Version:     line.Version,
		Headers:     slots[:n],
		Body:        body,
	}, nil
}
