package outbox

import (
	"encoding/json"
	"fmt"
	"time"

	"go-digistore-api/internal/shared/database/dbgen"

	"github.com/google/uuid"
)

const (
	AggregateOrder = "ORDER"

	EventOrderPaid           = "ORDER_PAID"
	EventOrderReviewRequired = "ORDER_REVIEW_REQUIRED"
)

// Review reasons carried by ORDER_REVIEW_REQUIRED.
const (
	ReasonPaidAfterExpiry   = "paid_after_expiry"
	ReasonPromoCapExhausted = "promo_cap_exhausted"
)

type OrderPaidPayload struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Total       int64     `json:"total"`
	PaidAt      time.Time `json:"paid_at"`
}

type ReviewRequiredPayload struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Reason      string `json:"reason"`
	Status      string `json:"status"`
	Detail      string `json:"detail,omitempty"`
}

// NewOrderEvent builds the insert params for an event about one order.
func NewOrderEvent(orderID uuid.UUID, eventType string, payload any) (dbgen.CreateOutboxEventParams, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return dbgen.CreateOutboxEventParams{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}

	return dbgen.CreateOutboxEventParams{
		ID:            uuid.New(),
		AggregateType: AggregateOrder,
		AggregateID:   orderID,
		EventType:     eventType,
		Payload:       raw,
	}, nil
}
