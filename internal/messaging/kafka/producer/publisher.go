package producer

import (
	"context"

	"go-digistore-api/internal/shared/database/dbgen"

	"github.com/segmentio/kafka-go"
)

const (
	HeaderEventType     = "event_type"
	HeaderAggregateType = "aggregate_type"
	HeaderEventID       = "event_id"
)

// Writer is the part of *kafka.Writer the relay needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// toMessage keys by aggregate so every event of one order lands on the
// same partition, in order.
func toMessage(event dbgen.OutboxEvent) kafka.Message {
	return kafka.Message{
		Key:   []byte(event.AggregateID.String()),
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(event.EventType)},
			{Key: HeaderAggregateType, Value: []byte(event.AggregateType)},
			{Key: HeaderEventID, Value: []byte(event.ID.String())},
		},
	}
}

func publishEvent(ctx context.Context, writer Writer, event dbgen.OutboxEvent) error {
	return writer.WriteMessages(ctx, toMessage(event))
}
