package main

import (
	"log/slog"
	"os"

	"inventory-server/confs"
	"inventory-server/db"
	"inventory-server/pkg/logging"
	"inventory-server/server"
)

func main() {
	logging.Setup()

	cfg, err := confs.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	database, err := db.Connect(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	slog.Info("starting server", "addr", cfg.ListenAddr)
	if err := server.NewServer(database, cfg).Start(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
