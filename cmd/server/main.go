package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/weiwei-tsao/zerobounce-mcp/internal/gateway"
	"github.com/weiwei-tsao/zerobounce-mcp/internal/platform/config"
	"github.com/weiwei-tsao/zerobounce-mcp/internal/platform/zerobounce"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stdout carries the MCP wire; all logging goes to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load", "error", err)
		os.Exit(1)
	}

	client := zerobounce.New(nil, zerobounce.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.APIBaseURL,
		BulkURL: cfg.BulkBaseURL,
		Timeout: cfg.HTTPTimeout,
	})

	mcpServer := server.NewMCPServer("zerobounce-mcp", version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	gateway.New(client, logger).Register(mcpServer)

	logger.Info("serving MCP over stdio", "version", version)

	stdio := server.NewStdioServer(mcpServer)
	stdio.SetErrorLogger(log.New(os.Stderr, "", log.LstdFlags))
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited")
}
