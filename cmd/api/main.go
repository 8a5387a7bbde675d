package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go-digistore-api/internal/app"
	"go-digistore-api/internal/bootstrap"
	"go-digistore-api/internal/config"
	"go-digistore-api/internal/pkg/logger"

	"github.com/gin-gonic/gin"
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

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// build dependency + routes
	infra, err := app.BuildApp(r, cfg, lg)
	if err != nil {
		lg.Fatal("failed to build app", zap.Error(err))
	}
	defer infra.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := bootstrap.StartHTTPServer(ctx, r, bootstrap.ServerConfig{
		Port:         cfg.App.Port,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, lg); err != nil {
		lg.Error("http server failed", zap.Error(err))
	}
}
