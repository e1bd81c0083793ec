package response

import (
	"errors"
	"fmt"

	"github.com/xaitan80/picohttp/internal/bufwriter"
)

// MaxHeaders is the capacity of a Response's header list.
const MaxHeaders = 5

var (
	// ErrOverflow is returned by Write when the response does not fit.
	ErrOverflow = errors.New("response does not fit the output buffer")

	// ErrInvalidStatus is returned by Write for a code outside the vocabulary.
	ErrInvalidStatus = errors.New("response status is not supported")
)

// Header is a response header pair. Both halves are normally literals.
type Header struct {
	Name  string
	Value string
}

// Response is built by a handler and serialized once. Body is borrowed:
// it usually points into the handler's scratch buffer or at a literal.
type Response struct {
	Status  StatusCode
	Body    []byte
	headers [MaxHeaders]Header
	nhdr    int
}

const (
	statusPrefix = "HTTP/1.1 "
	// The status line keeps a space before CRLF; existing clients expect it.
	statusSuffix = " \r\n"
	headerSep    = ": "
	crlf         = "\r\n"
)

// New returns a response without headers.
func New(status StatusCode, body []byte) Response {
	return Response{Status: status, Body: body}
}

// HTML returns a response with Content-Type text/html.
func HTML(status StatusCode, body []byte) Response {
	r := New(status, body)
	r.AddHeader("Content-Type", "text/html")
	return r
}

// JSON returns a response with Content-Type application/json.
func JSON(status StatusCode, body []byte) Response {
	r := New(status, body)
	r.AddHeader("Content-Type", "application/json")
	return r
}

// AddHeader appends a header. Adding more than MaxHeaders is a programming
// error and panics.
func (r *Response) AddHeader(name, value string) {
	if r.nhdr == MaxHeaders {
		panic(fmt.Sprintf("response: more than %d headers", MaxHeaders))
	}
	r.headers[r.nhdr] = Header{Name: name, Value: value}
	r.nhdr++
}

// Headers returns the headers in insertion order.
func (r *Response) Headers() []Header {
	return r.headers[:r.nhdr]
}

// Len returns the exact number of bytes Write produces.
func (r *Response) Len() int {
	n := len(statusPrefix) + len(r.Status.Line()) + len(statusSuffix)
	for _, h := range r.Headers() {
		n += len(h.Name) + len(headerSep) + len(h.Value) + len(crlf)
	}
	return n + len(crlf) + len(r.Body)
}

// Write serializes the status line, headers, a blank line and the body into w.
// The status and size are checked up front, so on error nothing has been
// appended.
func (r *Response) Write(w *bufwriter.Writer) error {
	if !r.Status.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidStatus, int(r.Status))
	}
	if need := r.Len(); need > w.Available() {
		return fmt.Errorf("%w: need %d bytes, %d available", ErrOverflow, need, w.Available())
	}
	for _, s := range [...]string{statusPrefix, r.Status.Line(), statusSuffix} {
		if _, err := w.WriteString(s); err != nil {
			return err
		}
	}
	for _, h := range r.Headers() {
		for _, s := range [...]string{h.Name, headerSep, h.Value, crlf} {
			if _, err := w.WriteString(s); err != nil {
				return err
			}
		}
	}
	if _, err := w.WriteString(crlf); err != nil {
		return err
	}
	_, err := w.Write(r.Body)
	return err
}
