package consumer

import (
	"context"
	"errors"
	"time"

	"go-digistore-api/internal/messaging/kafka/producer"
	"go-digistore-api/internal/outbox"
	"go-digistore-api/internal/pkg/metrics"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const maxHandleAttempts = 5

var retryBackoff = time.Second

// Reader is the part of *kafka.Reader the consumer needs.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// ConsumeMessages runs until ctx is cancelled. A message is committed once
// handled; a failing handler is retried in place so later commits cannot
// skip past it.
func ConsumeMessages(ctx context.Context, reader Reader, fulfiller OrderFulfiller, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("consumer")
	logger.Info("started consuming messages")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("consumer stopped")
				return
			}
			logger.Error("failed to fetch message", zap.Error(err))
			continue
		}

		eventType, eventID := eventMeta(msg)
		log := logger.With(
			zap.String("event_type", eventType),
			zap.String("event_id", eventID),
			zap.Int64("offset", msg.Offset),
		)

		result := "ok"
		if err := handleWithRetry(ctx, log, func() error {
			return dispatch(ctx, eventType, msg.Value, fulfiller, log)
		}); err != nil {
			if ctx.Err() != nil {
				return
			}
			result = "dropped"
			log.Error("giving up on message", zap.Error(err))
		}
		metrics.ConsumerProcessed.WithLabelValues(eventType, result).Inc()

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("failed to commit message", zap.Error(err))
		}
	}
}

// eventMeta reads the headers the outbox relay stamps on every message.
func eventMeta(msg kafka.Message) (eventType, eventID string) {
	for _, h := range msg.Headers {
		switch h.Key {
		case producer.HeaderEventType:
			eventType = string(h.Value)
		case producer.HeaderEventID:
			eventID = string(h.Value)
		}
	}
	return eventType, eventID
}

func dispatch(ctx context.Context, eventType string, payload []byte, fulfiller OrderFulfiller, log *zap.Logger) error {
	switch eventType {
	case outbox.EventOrderPaid:
		return handleOrderPaid(ctx, payload, fulfiller, log)
	case outbox.EventOrderReviewRequired:
		return handleReviewRequired(payload, log)
	default:
		// Skip unknown event types
		log.Debug("skipping unknown event type")
		return nil
	}
}

func handleWithRetry(ctx context.Context, log *zap.Logger, fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxHandleAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		var poison errPoison
		if errors.As(err, &poison) {
			return err
		}

		log.Warn("handler failed, retrying", zap.Int("attempt", attempt), zap.Error(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}
	return err
}
