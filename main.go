package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jhagedorn/dartliga/internal/config"
	"github.com/jhagedorn/dartliga/internal/database"
	server "github.com/jhagedorn/dartliga/internal/http"
	"github.com/jhagedorn/dartliga/internal/league"
	"github.com/jhagedorn/dartliga/internal/metrics"
	"github.com/jhagedorn/dartliga/internal/notifier"
	"github.com/jhagedorn/dartliga/internal/notifier/slack"
	"github.com/jhagedorn/dartliga/internal/provider"
	syncer "github.com/jhagedorn/dartliga/internal/sync"
)

func main() {
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	store := league.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	providerClient := provider.NewClient(cfg.Provider.BaseURL)

	var syncNotifier notifier.Notifier = notifier.Noop{}
	if cfg.Slack.Token != "" && cfg.Slack.ChannelID != "" {
		syncNotifier = slack.New(cfg.Slack.Token, cfg.Slack.ChannelID)
	} else {
		log.Info("Slack is not configured, sync notifications disabled")
	}

	orchestrator := syncer.New(store, providerClient, syncNotifier, metricsSvc, cfg.Season)

	s := server.NewServer(
		store,
		metricsSvc,
		metricsHandler,
		cfg,
		orchestrator,
	)

	metricsSvc.SetStartupTime(startTime)
	log.Info("Startup time recorded", "duration_ms", time.Since(startTime).Milliseconds())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port, "season", cfg.Season)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
