package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go-digistore-api/internal/email"
	"go-digistore-api/internal/pkg/logger"
	"go-digistore-api/internal/shared/database/dbgen"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
	"go.uber.org/zap"
)

const licenseKeyPrefix = "DGK-"

type deliveredItem struct {
	ProductID string   `json:"product_id"`
	Title     string   `json:"title"`
	Keys      []string `json:"keys"`
}

// FulfillPaid delivers license keys for a paid order and sends the
// confirmation email. Both steps are guarded by what is already stored, so
// a redelivered ORDER_PAID event is harmless. A failed email does not undo
// the delivery.
func (s *service) FulfillPaid(ctx context.Context, orderID uuid.UUID) error {
	log := s.logger.With(zap.String("order_id", orderID.String()))

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		return ErrOrderFailed.Wrap(err)
	}
	log = log.With(zap.String("order_number", o.OrderNumber))

	if o.Status != StatusPaid {
		log.Info("skipping fulfillment, order is not paid", zap.String("status", o.Status))
		return nil
	}

	items, err := s.repo.GetItems(ctx, o.ID)
	if err != nil {
		return ErrOrderFailed.Wrap(err)
	}

	delivered, err := s.ensureDelivered(ctx, log, o, items)
	if err != nil {
		return err
	}

	if o.ConfirmationSentAt.Valid {
		return nil
	}

	data := email.OrderConfirmation{
		CustomerName: strings.TrimSpace(o.CustomerFirstName + " " + o.CustomerLastName),
		OrderNumber:  o.OrderNumber,
		Total:        o.Total,
	}
	for _, d := range delivered {
		qty := int32(len(d.Keys))
		data.Items = append(data.Items, email.ConfirmationItem{Title: d.Title, Quantity: qty, Keys: d.Keys})
	}

	if err := s.emailSvc.SendOrderConfirmation(ctx, o.CustomerEmail, data); err != nil {
		log.Warn("failed to send confirmation email",
			zap.String("email", logger.MaskEmail(o.CustomerEmail)),
			zap.Error(err),
		)
		return fmt.Errorf("send confirmation: %w", err)
	}

	if err := s.repo.MarkConfirmationSent(ctx, o.ID); err != nil {
		log.Error("failed to stamp confirmation_sent_at", zap.Error(err))
		return ErrOrderFailed.Wrap(err)
	}

	log.Info("order fulfilled", zap.Int("lines", len(delivered)))
	return nil
}

func (s *service) ensureDelivered(ctx context.Context, log *zap.Logger, o dbgen.Order, items []dbgen.OrderItem) ([]deliveredItem, error) {
	if stored, ok := decodeDelivered(o.DeliveredKeys); ok {
		return stored, nil
	}

	delivered := generateKeys(items)
	raw, err := json.Marshal(delivered)
	if err != nil {
		return nil, ErrOrderFailed.Wrap(err)
	}

	n, err := s.repo.SetDeliveredKeys(ctx, dbgen.SetOrderDeliveredKeysParams{ID: o.ID, DeliveredKeys: pqtype.NullRawMessage{RawMessage: raw, Valid: true}})
	if err != nil {
		log.Error("failed to store delivered keys", zap.Error(err))
		return nil, ErrOrderFailed.Wrap(err)
	}
	if n == 1 {
		return delivered, nil
	}

	// another consumer stored first; use theirs
	fresh, err := s.repo.GetByID(ctx, o.ID)
	if err != nil {
		return nil, ErrOrderFailed.Wrap(err)
	}
	stored, ok := decodeDelivered(fresh.DeliveredKeys)
	if !ok {
		return nil, ErrOrderFailed.Wrap(errors.New("delivered_keys missing after conflict"))
	}
	return stored, nil
}

func decodeDelivered(raw pqtype.NullRawMessage) ([]deliveredItem, bool) {
	if !raw.Valid || len(raw.RawMessage) == 0 || string(raw.RawMessage) == "null" {
		return nil, false
	}
	var out []deliveredItem
	if err := json.Unmarshal(raw.RawMessage, &out); err != nil {
		return nil, false
	}
	return out, true
}

// generateKeys issues one key per purchased unit, bonus items included.
func generateKeys(items []dbgen.OrderItem) []deliveredItem {
	out := make([]deliveredItem, 0, len(items))
	for _, it := range items {
		keys := make([]string, 0, it.Quantity)
		for i := int32(0); i < it.Quantity; i++ {
			keys = append(keys, licenseKeyPrefix+strings.ToUpper(uuid.NewString()))
		}
		out = append(out, deliveredItem{
			ProductID: it.ProductID.String(),
			Title:     it.Title,
			Keys:      keys,
		})
	}
	return out
}
