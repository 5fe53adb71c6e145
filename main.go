package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/adapters/excel"
	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/internal"
	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/internal/config"
	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/internal/dataset"
	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/internal/session"
	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/ui"
)

func main() {
	// Load environment variables from .env file (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.DefaultLogger
	logger.Info("Data source: %s (sheet %q)", cfg.Data.FilePath, cfg.Data.SheetName)
	logger.Debug("Top-N makes: %d, session TTL: %s", cfg.Data.TopNMakes, cfg.Session.TTL)

	reader := excel.NewTableReader(cfg.Data.FilePath, cfg.Data.SheetName)
	store := dataset.NewStore(reader)
	sessions := session.NewManager(cfg.Session.TTL)

	server, err := ui.NewServer(cfg, store, sessions)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Warm the table cache up front so the first interaction is fast; a
	// failure here is surfaced per-request until a retry succeeds.
	go func() {
		if _, err := store.Table(context.Background()); err != nil {
			logger.Error("Initial data load failed: %v", err)
		}
	}()

	log.Fatal(server.Run(":" + cfg.Server.Port))
}
