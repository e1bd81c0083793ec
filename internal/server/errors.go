package server

import "fmt"

// Kind classifies why an exchange or connection ended early.
type Kind int

const (
	KindNone Kind = iota
	KindTransport
	KindParse
	KindHandler
	KindSerializeOverflow
	KindFallbackOverflow
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport error"
	case KindParse:
		return "parse failure"
	case KindHandler:
		return "handler failure"
	case KindSerializeOverflow:
		return "response overflow"
	case KindFallbackOverflow:
		return "fallback overflow"
	default:
		return "no error"
	}
}

// ExchangeError is the error type ServeConn reports.
type ExchangeError struct {
	Kind          Kind
	Message       string
	UnderlyingErr error
}

func (e *ExchangeError) Error() string {
	if e == nil {
		return "no error"
	}
	s := e.Kind.String()
	if e.Message != "" {
		s = fmt.Sprintf("%s: %s", s, e.Message)
	}
	if e.UnderlyingErr != nil {
		return fmt.Sprintf("%s (caused by: %v)", s, e.UnderlyingErr)
	}
	return s
}

func (e *ExchangeError) Unwrap() error {
	return e.UnderlyingErr
}

func newError(kind Kind, message string, underlying error) *ExchangeError {
	return &ExchangeError{Kind: kind, Message: message, UnderlyingErr: underlying}
}
