package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"weathersdk.app/api"
	"weathersdk.app/config"
	"weathersdk.app/sdk"
)

func main() {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found or error loading it")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	registry := sdk.NewRegistry(cfg)
	client, err := registry.GetClient(cfg.Weather.APIKey)
	if err != nil {
		slog.Error("Failed to create SDK client", "error", err)
		os.Exit(1)
	}

	server := api.NewServer(cfg, client)

	setupGracefulShutdown(server, registry)

	slog.Info("Starting weather SDK demo server", "port", cfg.Server.Port,
		"freshnessWindow", cfg.Cache.FreshnessWindow, "refreshPeriod", cfg.Scheduler.RefreshPeriod)
	if err := server.Start(); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}

func setupGracefulShutdown(server *api.Server, registry *sdk.Registry) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		slog.Info("Received shutdown signal...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Stop(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		registry.Close()
	}()
}
