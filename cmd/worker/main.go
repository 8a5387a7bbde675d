package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go-digistore-api/internal/app"
	"go-digistore-api/internal/config"
	"go-digistore-api/internal/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunWorker(ctx, cfg, lg); err != nil {
		lg.Fatal("worker failed", zap.Error(err))
	}
}
