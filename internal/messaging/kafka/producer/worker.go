package producer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-digistore-api/internal/outbox"
	"go-digistore-api/internal/pkg/metrics"

	"go.uber.org/zap"
)

const (
	defaultInterval  = 5 * time.Second
	defaultBatchSize = 10
)

// Relay moves committed outbox rows to Kafka. Delivery is at-least-once;
// consumers dedupe on what the order row already says.
type Relay struct {
	repo      outbox.Repository
	writer    Writer
	logger    *zap.Logger
	interval  time.Duration
	batchSize int32
}

func NewRelay(repo outbox.Repository, writer Writer, logger *zap.Logger, interval time.Duration, batchSize int32) *Relay {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = defaultInterval
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Relay{
		repo:      repo,
		writer:    writer,
		logger:    logger.Named("outbox.relay"),
		interval:  interval,
		batchSize: batchSize,
	}
}

func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started", zap.Duration("interval", r.interval))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return nil
		case <-ticker.C:
			if _, err := r.ProcessPending(ctx); err != nil {
				r.logger.Error("failed to process outbox events", zap.Error(err))
			}
		}
	}
}

// ProcessPending publishes one batch and reports how many were sent. A
// broker error stops the batch; the remaining rows stay PENDING for the
// next tick.
func (r *Relay) ProcessPending(ctx context.Context) (int, error) {
	defer r.reportBacklog(ctx)

	events, err := r.repo.Pending(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	r.logger.Debug("processing pending events", zap.Int("count", len(events)))

	sent := 0
	for _, event := range events {
		log := r.logger.With(
			zap.String("event_id", event.ID.String()),
			zap.String("event_type", event.EventType),
		)

		// never publishable, park it
		if !json.Valid(event.Payload) {
			log.Error("outbox payload is not valid JSON")
			metrics.OutboxPublished.WithLabelValues("poison").Inc()
			if err := r.repo.MarkFailed(ctx, event.ID); err != nil && !errors.Is(err, outbox.ErrEventNotPending) {
				log.Error("failed to mark event as FAILED", zap.Error(err))
			}
			continue
		}

		if err := publishEvent(ctx, r.writer, event); err != nil {
			log.Warn("failed to publish event", zap.Error(err))
			metrics.OutboxPublished.WithLabelValues("error").Inc()
			return sent, nil
		}

		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			if errors.Is(err, outbox.ErrEventNotPending) {
				// another relay got there first
				log.Debug("event already settled")
				continue
			}
			// republished next tick; consumers are idempotent
			log.Error("failed to mark event as SENT", zap.Error(err))
			continue
		}

		metrics.OutboxPublished.WithLabelValues("sent").Inc()
		sent++
	}

	return sent, nil
}

func (r *Relay) reportBacklog(ctx context.Context) {
	n, err := r.repo.Backlog(ctx)
	if err != nil {
		r.logger.Debug("failed to count outbox backlog", zap.Error(err))
		return
	}
	metrics.OutboxBacklog.Set(float64(n))
}
