package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/xpwu/go-log/log"
	"github.com/xpwu/go-xnet/connid"
	"github.com/xpwu/go-xnet/xtcp"

	"github.com/xaitan80/picohttp/internal/bufwriter"
	"github.com/xaitan80/picohttp/internal/headers"
	"github.com/xaitan80/picohttp/internal/request"
	"github.com/xaitan80/picohttp/internal/response"
)

// Buffer sizes. Every exchange runs inside these and nothing grows.
const (
	RequestBufferSize  = 8192
	ResponseBufferSize = 8192
	ScratchBufferSize  = 8192
	FallbackBufferSize = 300
	MaxRequestHeaders  = 20
)

const (
	DefaultAddr        = ":80"
	DefaultIdleTimeout = 10 * time.Second
)

const fallbackBody = "Error writing response"

// fallbackResponse is sent when the handler's response does not fit
// ResponseBufferSize. It must always fit FallbackBufferSize.
func fallbackResponse() response.Response {
	return response.New(response.StatusInternalServerError, []byte(fallbackBody))
}

// Config holds the listener settings.
type Config struct {
	Addr string
	// IdleTimeout bounds every accept, read and write wait.
	IdleTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = DefaultIdleTimeout
	}
	return c
}

// Conn is the duplex stream one exchange runs over.
type Conn interface {
	io.ReadWriteCloser
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
}

// Listener hands out connections.
type Listener interface {
	Accept() (Conn, error)
	Close() error
	Addr() net.Addr
}

// Handler builds the response for one request. The request and everything it
// points at are only valid during the call. scratch may be used to hold the
// response body; the returned Response may point into it.
type Handler interface {
	HandleRequest(ctx context.Context, r *request.Request, scratch []byte) (response.Response, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, r *request.Request, scratch []byte) (response.Response, error)

func (f HandlerFunc) HandleRequest(ctx context.Context, r *request.Request, scratch []byte) (response.Response, error) {
	return f(ctx, r, scratch)
}

// Server serves one connection at a time. The buffers below are reused by
// every exchange, so a Server's memory use is fixed.
type Server struct {
	cfg    Config
	h      Handler
	parser request.Parser
	ln     Listener
	closed atomic.Bool

	reqBuf      [RequestBufferSize]byte
	respBuf     [ResponseBufferSize]byte
	scratch     [ScratchBufferSize]byte
	fallbackBuf [FallbackBufferSize]byte
	slots       [MaxRequestHeaders]headers.Slot
}

// New returns a Server that is not yet listening; use it with ServeConn or
// start it with Serve.
func New(cfg Config, h Handler) *Server {
	return &Server{cfg: cfg.withDefaults(), h: h}
}

// Serve starts a TCP listener on cfg.Addr and runs the accept loop in a
// background goroutine.
func Serve(ctx context.Context, cfg Config, h Handler) (*Server, error) {
	if h == nil {
		return nil, errors.New("server: nil handler")
	}
	s := New(cfg, h)
	ln, err := Listen(ctx, s.cfg.Addr, s.cfg.IdleTimeout)
	if err != nil {
		return nil, err
	}
	s.ln = ln
	go s.listen(ctx)
	return s, nil
}

// Addr returns the listening address, or nil if the server is not listening.
func (s *Server) Addr() net.Addr {
	if s == nil || s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Close stops the server and closes the underlying listener.
func (s *Server) Close() error {
	if s == nil {
		return nil
	}
	s.closed.Store(true)
	if s.ln != nil {
		return s.ln.Close()
	}
	return nil
}

// listen accepts connections until the server is closed and serves each one
// to completion before accepting the next.
func (s *Server) listen(ctx context.Context) {
	ctx, logger := log.WithCtx(ctx)
	logger.Debug("listening on ", s.ln.Addr().String())
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if s.closed.Load() || errors.Is(err, net.ErrClosed) {
				return
			}
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			logger.Warning(fmt.Sprintf("accept error: %v", err))
			continue
		}
		if err := s.ServeConn(ctx, conn); err != nil {
			logger.Debug(err.Error())
		}
	}
}

// ServeConn runs the read/parse/handle/respond loop on conn and closes it.
// Reads that do not parse are dropped and the connection is read again; the
// first parsed request is answered and ends the connection. A nil error
// means the request was answered or the peer closed first.
func (s *Server) ServeConn(ctx context.Context, conn Conn) error {
	defer conn.Close()

	ctx, logger := log.WithCtx(ctx)
	if c, ok := conn.(interface{ Id() connid.Id }); ok {
		logger.PushPrefix(fmt.Sprintf("conn(id=%s), ", c.Id().String()))
	}
	logger.Debug("received connection")

	for {
		if err := conn.SetReadDeadline(time.Now().Add(s.cfg.IdleTimeout)); err != nil {
			// in-memory pipes report a closed peer here instead of on Read
			if errors.Is(err, io.ErrClosedPipe) {
				logger.Debug("peer closed")
				return nil
			}
			logger.Warning(fmt.Sprintf("set read deadline: %v", err))
			return newError(KindTransport, "set read deadline", err)
		}
		n, rerr := conn.Read(s.reqBuf[:])
		if n == 0 {
			if rerr == nil || errors.Is(rerr, io.EOF) {
				logger.Debug("read EOF")
				return nil
			}
			logger.Warning(fmt.Sprintf("read error: %v", rerr))
			return newError(KindTransport, "read", rerr)
		}

		headers.Clear(s.slots[:])
		req, err := s.parser.Parse(s.reqBuf[:n], s.slots[:])
		if err != nil {
			perr := newError(KindParse, "was not a proper web request", err)
			logger.Warning(perr.Error())
			if rerr != nil {
				return newError(KindTransport, "read", rerr)
			}
			continue
		}
		return s.exchange(ctx, conn, &req)
	}
}

// exchange answers one parsed request. The caller closes the connection
// afterwards whatever the outcome.
func (s *Server) exchange(ctx context.Context, conn Conn, req *request.Request) error {
	_, logger := log.WithCtx(ctx)
	logger.Debug(fmt.Sprintf("%s %s", req.MethodToken, req.Path))

	resp, err := s.h.HandleRequest(ctx, req, s.scratch[:])
	if err != nil {
		logger.Warning(fmt.Sprintf("something went wrong with the request: %v", err))
		return newError(KindHandler, "", err)
	}

	w := bufwriter.New(s.respBuf[:])
	if werr := resp.Write(w); werr != nil {
		logger.Warning(fmt.Sprintf("error writing response: %v", werr))
		fallback := fallbackResponse()
		fw := bufwriter.New(s.fallbackBuf[:])
		if ferr := fallback.Write(fw); ferr != nil {
			logger.Error(fmt.Sprintf("error writing any response: %v", ferr))
			return newError(KindFallbackOverflow, "", ferr)
		}
		if err := s.send(conn, fw.Bytes()); err != nil {
			logger.Warning(fmt.Sprintf("write error: %v", err))
			return newError(KindTransport, "write fallback", err)
		}
		return newError(KindSerializeOverflow, "sent fallback response", werr)
	}

	if err := s.send(conn, w.Bytes()); err != nil {
		logger.Warning(fmt.Sprintf("write error: %v", err))
		return newError(KindTransport, "write", err)
	}
	return nil
}

func (s *Server) send(conn Conn, p []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(s.cfg.IdleTimeout)); err != nil {
		return err
	}
	for len(p) > 0 {
		n, err := conn.Write(p)
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}

type tcpListener struct {
	ctx  context.Context
	ln   *net.TCPListener
	idle time.Duration
}

// Listen opens a TCP listener whose Accept gives up after idle and wraps
// every accepted connection in an xtcp.Conn.
func Listen(ctx context.Context, addr string, idle time.Duration) (Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	tl, ok := ln.(*net.TCPListener)
	if !ok {
		_ = ln.Close()
		return nil, fmt.Errorf("listen %s: not a TCP listener", addr)
	}
	return &tcpListener{ctx: ctx, ln: tl, idle: idle}, nil
}

func (l *tcpListener) Accept() (Conn, error) {
	if l.idle > 0 {
		if err := l.ln.SetDeadline(time.Now().Add(l.idle)); err != nil {
			return nil, err
		}
	}
	c, err := l.ln.Accept()
	if err != nil {
		return nil, err
	}
	return xtcp.NewConn(l.ctx, c), nil
}

func (l *tcpListener) Close() error {
	return l.ln.Close()
}

func (l *tcpListener) Addr() net.Addr {
	return l.ln.Addr()
}
