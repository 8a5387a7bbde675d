package main

import (
	"context"
	"log"
	"os"

	"go-digistore-api/internal/pkg/logger"
	"go-digistore-api/internal/shared/connection"
	"go-digistore-api/internal/shared/database/seed"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	lg, err := logger.New(os.Getenv("APP_ENV"), "info")
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	db, err := connection.ConnectDBWithRetry(os.Getenv("DB_URL"), 3, lg)
	if err != nil {
		lg.Fatal("cannot connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()

	if err := seed.SeedProducts(ctx, db, lg); err != nil {
		lg.Fatal("seed products", zap.Error(err))
	}

	if err := seed.SeedPromos(ctx, db, lg); err != nil {
		lg.Fatal("seed promos", zap.Error(err))
	}

	if err := seed.SeedAdmins(ctx, db, os.Getenv("SEED_ADMIN_PASSWORD"), lg); err != nil {
		lg.Fatal("seed admins", zap.Error(err))
	}
}
