package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/bakdaulet/kassa/internal/config"
	"github.com/bakdaulet/kassa/internal/devserver"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	server := devserver.New(devserver.NewStore(), cfg.DevServer.JWTSecret, cfg.DevServer.TokenTTL)

	port := fmt.Sprintf(":%d", cfg.DevServer.Port)
	slog.Info("starting development server", "port", port)

	if err := http.ListenAndServe(port, server.Router()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
