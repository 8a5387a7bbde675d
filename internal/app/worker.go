package app

import (
	"context"
	"time"

	"go-digistore-api/internal/config"
	"go-digistore-api/internal/messaging/kafka/producer"
	"go-digistore-api/internal/outbox"
	"go-digistore-api/internal/shared/connection"
	"go-digistore-api/internal/shared/database/dbgen"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const deferredBatch = 50

// RunWorker runs the background loops until ctx is cancelled: the outbox
// relay, the expiry sweep and the deferred notification drain.
func RunWorker(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger = logger.Named("worker")

	// 1. Infrastructure
	infra, err := connectInfra(cfg, logger)
	if err != nil {
		return err
	}
	defer infra.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.Kafka.Topic, cfg.DB.MaxRetries, logger)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	// 2. Modules
	m, err := buildModules(infra, cfg, logger)
	if err != nil {
		return err
	}
	relay := producer.NewRelay(outbox.NewRepository(dbgen.New(infra.DB)), kafkaWriter, logger, cfg.Order.RelayInterval, 0)

	// 3. Loops
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return relay.Run(gctx)
	})

	g.Go(func() error {
		return runEvery(gctx, cfg.Order.SweepInterval, logger.Named("sweeper"), func(c context.Context) error {
			_, err := m.orderService.ExpireStale(c, int32(cfg.Order.SweepBatch))
			return err
		})
	})

	g.Go(func() error {
		return runEvery(gctx, cfg.Order.ReconcileInterval, logger.Named("reconciler"), func(c context.Context) error {
			_, err := m.orderService.ReconcileDeferred(c, deferredBatch)
			return err
		})
	})

	logger.Info("worker started")
	err = g.Wait()
	logger.Info("worker stopped")
	return err
}

// runEvery calls fn on every tick. A failed run is logged and retried on
// the next tick; only ctx ends the loop.
func runEvery(ctx context.Context, interval time.Duration, logger *zap.Logger, fn func(context.Context) error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := fn(ctx); err != nil && ctx.Err() == nil {
				logger.Error("periodic job failed", zap.Error(err))
			}
		}
	}
}
