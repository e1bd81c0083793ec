package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xpwu/go-log/log"

	"github.com/xaitan80/picohttp/internal/app"
	"github.com/xaitan80/picohttp/internal/light"
	"github.com/xaitan80/picohttp/internal/server"
)

func main() {
	addr := flag.String("addr", server.DefaultAddr, "listen address")
	idle := flag.Duration("idle-timeout", server.DefaultIdleTimeout, "accept/read/write idle timeout")
	pin := flag.String("pin", "gpio0", "name of the output driving the light")
	initial := flag.Bool("on", true, "initial light state")
	flag.Parse()

	ctx, logger := log.WithCtx(context.Background())

	state := light.NewState(light.LogPin{Name: *pin}, *initial)
	if err := state.Set(ctx, *initial); err != nil {
		logger.Error(err)
	}

	srv, err := server.Serve(ctx, server.Config{Addr: *addr, IdleTimeout: *idle}, app.NewHandler(state))
	if err != nil {
		logger.Error("error starting server: ", err)
		os.Exit(1)
	}
	defer srv.Close()
	logger.Debug("server started on ", srv.Addr().String(), ", idle timeout ", idle.Round(time.Millisecond).String())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Debug("server gracefully stopped")
}
