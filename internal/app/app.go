package app

import (
	"database/sql"

	"go-digistore-api/internal/config"
	"go-digistore-api/internal/middleware"
	"go-digistore-api/internal/pkg/metrics"
	"go-digistore-api/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Infra holds the shared connections of one process.
type Infra struct {
	DB    *sql.DB
	Redis *redis.Client
}

func (i *Infra) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.DB != nil {
		_ = i.DB.Close()
	}
}

func connectInfra(cfg *config.Config, logger *zap.Logger) (*Infra, error) {
	db, err := connection.ConnectDBWithRetry(cfg.DB.URL, cfg.DB.MaxRetries, logger)
	if err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, cfg.DB.MaxRetries, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Infra{DB: db, Redis: rdb}, nil
}

// BuildApp connects infrastructure and mounts every module on router. The
// returned Infra must be closed by the caller.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (*Infra, error) {
	// 1. Setup Infrastructure
	infra, err := connectInfra(cfg, logger)
	if err != nil {
		return nil, err
	}

	// 2. Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.GET("/metrics", metrics.Handler())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// 3. Register Modules & Routes
	if err := registerModules(router, infra, cfg, logger); err != nil {
		infra.Close()
		return nil, err
	}

	return infra, nil
}
