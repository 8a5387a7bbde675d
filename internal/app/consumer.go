package app

import (
	"context"

	"go-digistore-api/internal/config"
	"go-digistore-api/internal/messaging/kafka/consumer"
	"go-digistore-api/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer fulfils paid orders from the event stream until ctx is
// cancelled.
func RunConsumer(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger = logger.Named("consumer")

	infra, err := connectInfra(cfg, logger)
	if err != nil {
		return err
	}
	defer infra.Close()

	m, err := buildModules(infra, cfg, logger)
	if err != nil {
		return err
	}

	reader := connection.NewKafkaReader(cfg.Kafka.Broker, cfg.Kafka.Topic, cfg.Kafka.Group)
	defer reader.Close()
	logger.Info("kafka reader initialized",
		zap.String("topic", cfg.Kafka.Topic),
		zap.String("group", cfg.Kafka.Group),
	)

	consumer.ConsumeMessages(ctx, reader, m.orderService, logger)
	return nil
}
