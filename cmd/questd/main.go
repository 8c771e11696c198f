package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wegmarke/wegmarke/internal/api"
	"github.com/wegmarke/wegmarke/internal/config"
	"github.com/wegmarke/wegmarke/internal/fixture"
	"github.com/wegmarke/wegmarke/internal/logger"
	"github.com/wegmarke/wegmarke/internal/quest"
)

func main() {
	// Parse command-line flags
	configFile := flag.String("config", "data/server.yaml", "Path to server config YAML file")
	fixtureFile := flag.String("fixture", "", "Path to fixture JSON (overrides config)")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	flag.Parse()

	// Initialize logger first (before any logging)
	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)

	logger.Info("Starting quest server")

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		logger.Warning("Failed to load server config, using defaults", "path", *configFile, "error", err)
	}
	if *fixtureFile != "" {
		cfg.Fixture.Path = *fixtureFile
	}

	snap, err := fixture.Load(cfg.Fixture.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading fixture: %v\n", err)
		os.Exit(1)
	}
	logger.Info("Loaded fixture", "path", cfg.Fixture.Path,
		"areas", len(snap.QuestAreas), "markers", len(snap.MapQuestMarkers))

	store := quest.NewStore(snap.QuestAreas)
	server := api.NewServer(store, cfg)

	httpServer := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "HTTP server error: %v\n", err)
			os.Exit(1)
		}
	}()

	logger.Info("Quest server running", "addr", cfg.HTTP.Addr)
	logger.Info("Press Ctrl+C to shutdown")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
