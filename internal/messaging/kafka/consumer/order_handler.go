package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-digistore-api/internal/outbox"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderFulfiller is the slice of the order service the consumer drives.
type OrderFulfiller interface {
	FulfillPaid(ctx context.Context, orderID uuid.UUID) error
}

// errPoison marks a message that will never succeed, so it is committed
// without retrying.
type errPoison struct{ err error }

func (e errPoison) Error() string { return "poison message: " + e.err.Error() }
func (e errPoison) Unwrap() error { return e.err }

func handleOrderPaid(ctx context.Context, payload []byte, fulfiller OrderFulfiller, logger *zap.Logger) error {
	var data outbox.OrderPaidPayload
	if err := json.Unmarshal(payload, &data); err != nil {
		return errPoison{err}
	}
	orderID, err := uuid.Parse(data.OrderID)
	if err != nil {
		return errPoison{fmt.Errorf("order_id: %w", err)}
	}

	logger.Info("fulfilling paid order", zap.String("order_number", data.OrderNumber))
	return fulfiller.FulfillPaid(ctx, orderID)
}

// handleReviewRequired only surfaces the case; a human resolves it via the
// admin override.
func handleReviewRequired(payload []byte, logger *zap.Logger) error {
	var data outbox.ReviewRequiredPayload
	if err := json.Unmarshal(payload, &data); err != nil {
		return errPoison{err}
	}

	logger.Warn("order needs manual review",
		zap.String("order_number", data.OrderNumber),
		zap.String("reason", data.Reason),
		zap.String("status", data.Status),
		zap.String("detail", data.Detail),
	)
	return nil
}
