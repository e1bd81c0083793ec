package request

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaitan80/picohttp/internal/headers"
)

func parse(t *testing.T, raw string) (Request, error) {
	t.Helper()
	var slots [20]headers.Slot
	return Parse([]byte(raw), slots[:])
}

func Test_Good_Request_Line(t *testing.T) {
	r, err := parse(t, "GET / HTTP/1.1\r\nHost: localhost:42069\r\nUser-Agent: curl/7.81.0\r\nAccept: */*\r\n\r\n")
	require.NoError(t, err)
	assert.Equal(t, MethodGet, r.Method)
	assert.Equal(t, "GET", string(r.MethodToken))
	assert.Equal(t, "/", string(r.Path))
	assert.Equal(t, byte(1), r.Version)
	assert.Len(t, r.Headers, 3)
	assert.Empty(t, r.Body)
}

func Test_Good_Request_Line_With_Path(t *testing.T) {
	r, err := parse(t, "GET /coffee HTTP/1.0\r\nHost: localhost:42069\r\n\r\n")
	require.NoError(t, err)
	assert.Equal(t, "/coffee", string(r.Path))
	assert.Equal(t, byte(0), r.Version)
}

func Test_Body_After_Boundary(t *testing.T) {
	r, err := parse(t, "GET / HTTP/1.1\r\nHost: x\r\n\r\nHELLO")
	require.NoError(t, err)
	assert.Equal(t, MethodGet, r.Method)
	assert.Equal(t, "/", string(r.Path))
	assert.Equal(t, "HELLO", string(r.Body))

	v, ok := r.Header("host")
	require.True(t, ok)
	assert.Equal(t, "x", string(v))
}

func Test_Missing_Terminator_Is_Incomplete(t *testing.T) {
	_, err := parse(t, "GET / HTTP/1.1\r\nHost: xHELLO")
	assert.ErrorIs(t, err, ErrIncomplete)

	_, err = parse(t, "GET / HTTP/1.1\r\nHost: x\r\n")
	assert.ErrorIs(t, err, ErrIncomplete)

	_, err = parse(t, "GET / HTT")
	assert.ErrorIs(t, err, ErrIncomplete)

	_, err = parse(t, "")
	assert.ErrorIs(t, err, ErrIncomplete)
}

func Test_Body_Not_Bounded_By_Content_Length(t *testing.T) {
	r, err := parse(t, "POST /post_test HTTP/1.1\r\nContent-Length: 2\r\n\r\nabcdef")
	require.NoError(t, err)
	assert.Equal(t, MethodPost, r.Method)
	assert.Equal(t, "abcdef", string(r.Body))
}

func Test_Invalid_UTF8_Body_Is_Empty(t *testing.T) {
	r, err := parse(t, "POST / HTTP/1.1\r\nHost: x\r\n\r\n\xff\xfe\xfd")
	require.NoError(t, err)
	assert.NotNil(t, r.Body)
	assert.Len(t, r.Body, 0)
}

func Test_Unknown_Method_Is_Not_An_Error(t *testing.T) {
	r, err := parse(t, "BREW /pot HTTP/1.1\r\n\r\n")
	require.NoError(t, err)
	assert.Equal(t, MethodUnknown, r.Method)
	assert.Equal(t, "BREW", string(r.MethodToken))
	assert.Equal(t, "/pot", string(r.Path))
}

func Test_Lowercase_Method(t *testing.T) {
	r, err := parse(t, "post / HTTP/1.1\r\n\r\n")
	require.NoError(t, err)
	assert.Equal(t, MethodPost, r.Method)
}

func Test_Invalid_Request_Lines(t *testing.T) {
	for _, raw := range []string{
		"/coffee HTTP/1.1\r\nHost: localhost:42069\r\n\r\n",
		"GET /coffee HTTP/2.0\r\n\r\n",
		"GET /coffee HTTP/1.1 extra\r\n\r\n",
		"GET  / HTTP/1.1\r\n\r\n",
		"G(T / HTTP/1.1\r\n\r\n",
		"GET / HTTP/1.1\n\n",
		"NOT A REQUEST\r\n\r\n",
		"GET / HTTP/1.1\r\nHost localhost\r\n\r\n",
	} {
		_, err := parse(t, raw)
		assert.True(t, errors.Is(err, ErrMalformed), "%q: %v", raw, err)
	}
}

func Test_Control_Bytes_In_Header_Value(t *testing.T) {
	var slots [4]headers.Slot
	_, err := Parse([]byte("GET / HTTP/1.1\r\nX: a\x00b\nEvil: 1\r\n\r\n"), slots[:])
	assert.ErrorIs(t, err, ErrMalformed)
	assert.ErrorIs(t, err, headers.ErrInvalidValue)
	for _, s := range slots {
		assert.NotEqual(t, "Evil", string(s.Name))
	}

	r, err := Parse([]byte("GET / HTTP/1.1\r\nX: a\tb\r\n\r\n"), slots[:])
	require.NoError(t, err)
	assert.Equal(t, "a\tb", string(r.Headers[0].Value))
}

func Test_Too_Many_Headers(t *testing.T) {
	var slots [2]headers.Slot
	_, err := Parse([]byte("GET / HTTP/1.1\r\nA: 1\r\nB: 2\r\nC: 3\r\n\r\n"), slots[:])
	assert.ErrorIs(t, err, ErrTooManyHeaders)

	r, err := Parse([]byte("GET / HTTP/1.1\r\nA: 1\r\nB: 2\r\n\r\n"), slots[:])
	require.NoError(t, err)
	require.Len(t, r.Headers, 2)
	assert.Equal(t, "B", string(r.Headers[1].Name))
	assert.Equal(t, "2", string(r.Headers[1].Value))
}

func Test_Views_Alias_Input(t *testing.T) {
	raw := []byte("GET /abc HTTP/1.1\r\nHost: x\r\n\r\nbody")
	var slots [20]headers.Slot
	r, err := Parse(raw, slots[:])
	require.NoError(t, err)

	raw[5] = 'z'
	assert.Equal(t, "/zbc", string(r.Path))
	assert.Equal(t, "Host", string(slots[0].Name))
}

type stubScanner struct {
	line StartLine
	err  error
}

func (s stubScanner) Scan(raw []byte, slots []headers.Slot) (StartLine, int, int, error) {
	return s.line, 0, len(raw), s.err
}

func Test_Parser_Uses_Scanner(t *testing.T) {
	p := Parser{Scanner: stubScanner{err: ErrMalformed}}
	_, err := p.Parse([]byte("GET / HTTP/1.1\r\n\r\n"), nil)
	assert.ErrorIs(t, err, ErrMalformed)

	// A scanner that accepts bare LF endings still needs a CRLF boundary.
	p = Parser{Scanner: stubScanner{line: StartLine{Method: []byte("GET"), Target: []byte("/")}}}
	_, err = p.Parse([]byte("GET / HTTP/1.1\n\n"), nil)
	assert.ErrorIs(t, err, ErrIncomplete)
}
