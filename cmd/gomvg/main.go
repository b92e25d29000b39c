package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gomvg/internal/config"
	"gomvg/internal/mvg"
	"gomvg/internal/server"
	"gomvg/internal/storage"
	"gomvg/internal/ticker"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config", "error", err)
		os.Exit(1)
	}

	// CLI flags override file and environment
	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the SQLite database")
	flag.BoolVar(&cfg.TestMode, "test-mode", cfg.TestMode, "Enable test mode")
	flag.Parse()

	// Context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := storage.Open(cfg.DBPath, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	client := mvg.NewClient(logger)
	client.SetUserAgent(cfg.UserAgent)

	// Start the background disruption fetcher
	store := ticker.NewStore()
	fetcher := ticker.NewFetcher(client, store, time.Duration(cfg.MessageRefresh)*time.Second, logger)
	go fetcher.Start(ctx)

	srv := server.New(cfg, db, client, store, logger)

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		cancel()
		os.Exit(0)
	}()

	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
