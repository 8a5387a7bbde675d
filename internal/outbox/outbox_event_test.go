package outbox_test

import (
	"encoding/json"
	"testing"

	"go-digistore-api/internal/outbox"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderEvent(t *testing.T) {
	orderID := uuid.New()

	ev, err := outbox.NewOrderEvent(orderID, outbox.EventOrderReviewRequired, outbox.ReviewRequiredPayload{
		OrderID:     orderID.String(),
		OrderNumber: "DG-1767225600000ABCD-54",
		Reason:      outbox.ReasonPaidAfterExpiry,
		Status:      "EXPIRED",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, ev.ID)
	assert.Equal(t, outbox.AggregateOrder, ev.AggregateType)
	assert.Equal(t, orderID, ev.AggregateID)
	assert.Equal(t, outbox.EventOrderReviewRequired, ev.EventType)

	var got outbox.ReviewRequiredPayload
	require.NoError(t, json.Unmarshal(ev.Payload, &got))
	assert.Equal(t, outbox.ReasonPaidAfterExpiry, got.Reason)
}

func TestNewOrderEvent_BadPayload(t *testing.T) {
	_, err := outbox.NewOrderEvent(uuid.New(), outbox.EventOrderPaid, make(chan int))
	assert.Error(t, err)
}
