package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/xpwu/go-log/log"

	"github.com/xaitan80/picohttp/internal/request"
	"github.com/xaitan80/picohttp/internal/response"
	"github.com/xaitan80/picohttp/internal/server"
)

// dump prints the parsed request and answers 204 so the client can tell it
// was understood.
func dump(_ context.Context, r *request.Request, _ []byte) (response.Response, error) {
	fmt.Println("Request line:")
	fmt.Printf("- Method: %s\n", r.MethodToken)
	fmt.Printf("- Target: %s\n", r.Path)
	fmt.Printf("- Version: 1.%d\n", r.Version)
	fmt.Println("Headers:")
	for _, h := range r.Headers {
		fmt.Printf("- %s: %s\n", h.Name, h.Value)
	}
	fmt.Println("Body:")
	fmt.Println(string(r.Body))
	return response.New(response.StatusNoContent, nil), nil
}

func main() {
	addr := flag.String("addr", ":42069", "listen address")
	flag.Parse()

	ctx, logger := log.WithCtx(context.Background())

	cfg := server.Config{Addr: *addr}
	srv := server.New(cfg, server.HandlerFunc(dump))
	ln, err := server.Listen(ctx, *addr, server.DefaultIdleTimeout)
	if err != nil {
		fmt.Println("listen error:", err)
		os.Exit(1)
	}
	defer ln.Close()

	for {
		conn, err := ln.Accept()
		if err != nil {
			continue
		}
		fmt.Println("accepted connection")
		if err := srv.ServeConn(ctx, conn); err != nil {
			logger.Warning(err.Error())
		}
		fmt.Println("closed connection")
	}
}
