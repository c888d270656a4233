package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	grunhttp "github.com/aretw0/grunberg/pkg/adapters/http"
	"github.com/aretw0/grunberg/pkg/adapters/mcp"
)

const shutdownTimeout = 5 * time.Second

// Serve exposes the game over HTTP until ctx is cancelled.
func Serve(ctx context.Context, rt *Runtime, w io.Writer, addr string) error {
	opts := []grunhttp.Option{grunhttp.WithLogger(rt.Logger)}
	if rt.Registry != nil {
		opts = append(opts, grunhttp.WithGatherer(rt.Registry))
	}
	handler := grunhttp.New(rt.Game, opts...)
	defer handler.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(w, "Grunberg server listening on %s", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		rt.Logger.Info("shutting down", "addr", addr)

		// websocket streams end when the handler closes, not on Shutdown
		handler.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			rt.Logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			return srv.Close()
		}
		printSystemMessage(w, "Server stopped gracefully")
		return nil
	}
}

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// ServeMCP runs the MCP server on the chosen transport.
func ServeMCP(ctx context.Context, rt *Runtime, transport, addr string) error {
	srv := mcp.NewServer(rt.Game, mcp.WithLogger(rt.Logger))
	switch transport {
	case TransportStdio, "":
		return srv.ServeStdio()
	case TransportSSE:
		rt.Logger.Info("starting MCP server", "transport", transport, "addr", addr)
		return srv.ServeSSE(ctx, addr)
	}
	return fmt.Errorf("unknown transport %q", transport)
}
