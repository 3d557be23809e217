package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/storage/redis/v3"

	"asn2ip/internal/artifact"
	"asn2ip/internal/config"
	"asn2ip/internal/db"
	"asn2ip/internal/jobs"
	"asn2ip/internal/logging"
	"asn2ip/internal/lookup"
	"asn2ip/internal/metrics"
	"asn2ip/internal/pipeline"
	"asn2ip/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cfg := config.Load()
	logging.Init(cfg.LogFormat, logging.ParseLevel(cfg.LogLevel))
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	deps := server.Deps{}
	opts := []pipeline.Option{}

	// Initialize database (optional, enables run history)
	if cfg.HistoryEnabled() {
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations completed successfully")

		deps.History = database
		deps.Pinger = database
		opts = append(opts, pipeline.WithHistory(database))
		metrics.Init(database)

		pruner := jobs.NewHistoryPruner(database, time.Hour, cfg.HistoryRetention)
		go pruner.Start(ctx)
	} else {
		slog.Info("run history is disabled, set DATABASE_URL to enable")
		metrics.Init(nil)
	}

	// Shared storage for sessions and rate limiting (optional)
	var storage fiber.Storage
	if cfg.RedisURL != "" {
		storage = redis.New(redis.Config{URL: cfg.RedisURL})
		slog.Info("using redis for sessions and rate limiting")
	}

	client := lookup.NewClient(
		lookup.WithTimeout(cfg.LookupTimeout),
		lookup.WithUserAgent(cfg.UserAgent),
	)
	art := artifact.New(cfg.OutputFile)
	deps.Artifact = art
	deps.Runner = pipeline.New(
		lookup.NewResolver(client, cfg.BGPViewURL),
		lookup.NewCollector(client, cfg.RIPEStatURL),
		art,
		opts...,
	)

	srv := server.New(cfg, storage)
	if err := srv.RegisterRoutes(ctx, deps); err != nil {
		slog.Error("failed to register routes", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	cancel()
	done := make(chan error, 1)
	go func() { done <- srv.Shutdown() }()
	select {
	case err := <-done:
		if err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	case <-time.After(cfg.LookupTimeout + 5*time.Second):
		slog.Error("shutdown timed out")
	}
	slog.Info("server exited")
}
