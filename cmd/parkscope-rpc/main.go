// parkscope-rpc serves the named operations over framed JSON-RPC on
// stdin/stdout, for harnesses that drive the gateway as a subprocess.
// Logs go to stderr so the protocol stream stays clean.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/parkscope/parkscope/internal/app"
	"github.com/parkscope/parkscope/internal/config"
	"github.com/parkscope/parkscope/internal/rpc"
)

func main() {
	log.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	deps := app.Build(cfg, httpClient)
	server := rpc.NewServer(deps.Registry(), os.Stdin, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Serve(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("rpc server stopped: %v", err)
	}
}
