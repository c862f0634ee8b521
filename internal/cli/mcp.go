package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/stepwise/internal/logging"
	"github.com/aretw0/stepwise/pkg/adapters/mcp"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/observability"
)

// MCPOptions contains the configuration for the mcp command.
type MCPOptions struct {
	Transport string // "stdio" or "sse"
	Port      int    // sse only
	Sessions  SessionOptions
	Debug     bool
}

// RunMCP serves the MCP tools until the transport ends or ctx is cancelled.
// Logs always go to Stderr so they never corrupt JSON-RPC on Stdout.
func RunMCP(ctx context.Context, opts MCPOptions) error {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := logging.New(level)

	backend, err := openSessions(ctx, opts.Sessions)
	if err != nil {
		return err
	}
	defer backend.close()

	var hooks domain.LifecycleHooks
	if opts.Debug {
		hooks = observability.LogHooks(logger)
	}
	srv := mcp.NewServer(
		createEngine(logger, opts.Debug),
		newSessionManager(backend, logger, hooks),
		mcp.WithLogger(logger),
	)

	switch opts.Transport {
	case "stdio":
		logger.Info("Starting stepwise MCP Server (Stdio)")
		return srv.ServeStdio()
	case "sse":
		logger.Info("Starting stepwise MCP Server (SSE)", "port", opts.Port)
		if err := srv.ServeSSE(ctx, opts.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("MCP Server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport %q (supported: stdio, sse)", opts.Transport)
	}
}
