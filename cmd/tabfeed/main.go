// Package main provides the development feed server: it replays a
// scripted generation run over a websocket for tabwatch to consume.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/synthgrid/tabwatch/internal/config"
	"github.com/synthgrid/tabwatch/internal/feed"
)

func main() {
	loop := flag.Bool("loop", true, "repeat the scripted run until the client disconnects")
	flag.Parse()

	port := os.Getenv("TABFEED_PORT")
	if port == "" {
		port = "8585"
	}

	cfg := config.Load()
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()
	slog.SetDefault(logger)

	mux := http.NewServeMux()
	mux.Handle("/stream", feed.Handler(feed.SampleRun(), *loop, logger))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	httpServer := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 5 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		slog.Info("feed stream available", "url", fmt.Sprintf("ws://localhost:%s/stream", port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down feed server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
