package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-digistore-api/internal/midtrans"
	"go-digistore-api/internal/outbox"
	"go-digistore-api/internal/pkg/logger"
	"go-digistore-api/internal/pkg/metrics"
	"go-digistore-api/internal/pkg/money"
	"go-digistore-api/internal/pkg/orderno"
	"go-digistore-api/internal/shared/database/dbgen"
	"go-digistore-api/internal/shared/database/helper"

	"go.uber.org/zap"
)

// Reasons reported in TransitionResult.
const (
	ReasonApplied         = "applied"
	ReasonAlreadyApplied  = "already_applied"
	ReasonIllegal         = "illegal_transition"
	ReasonPaidAfterExpiry = outbox.ReasonPaidAfterExpiry
	ReasonDeferred        = "deferred"
	reviewNotePrefix      = "review:" + outbox.ReasonPaidAfterExpiry
	midtransTimeLayout    = "2006-01-02 15:04:05"
	midtransTimeZone      = "Asia/Jakarta"
	overrideNotePrefix    = "override: "
	freePaymentType       = "free"
)

type transitionInput struct {
	OrderNumber   string
	Target        string
	Gross         int64
	HasGross      bool
	PaymentType   string
	TransactionID string
	PaidAt        time.Time
	Note          string
}

func (s *service) HandleNotification(ctx context.Context, req MidtransNotificationRequest) (TransitionResult, error) {
	log := s.logger.With(zap.String("order_number", req.OrderID))

	// 1. Bentuk payload
	target, err := validateNotification(req)
	if err != nil {
		metrics.WebhookTotal.WithLabelValues("invalid").Inc()
		log.Warn("invalid midtrans notification", zap.Error(err))
		return TransitionResult{}, err
	}

	// 2. Signature dulu, sebelum menyentuh state apa pun
	if !s.midtransSvc.VerifySignature(req.OrderID, req.StatusCode, req.GrossAmount, req.SignatureKey) {
		metrics.WebhookSignatureRejected.Inc()
		metrics.WebhookTotal.WithLabelValues("bad_signature").Inc()
		log.Warn("midtrans notification signature rejected",
			logger.SecurityEvent(),
			zap.String("signature", logger.ShortSig(req.SignatureKey)),
		)
		return TransitionResult{}, ErrInvalidNotificationSignature
	}

	// 3. Checksum nomor order
	if !orderno.Verify(req.OrderID) {
		metrics.WebhookTotal.WithLabelValues("stale").Inc()
		log.Warn("notification for malformed order number")
		return TransitionResult{}, ErrInvalidOrderNumber
	}

	gross, err := money.ParseAmount(req.GrossAmount)
	if err != nil {
		metrics.WebhookTotal.WithLabelValues("invalid").Inc()
		return TransitionResult{}, ErrInvalidNotification.Wrap(err)
	}

	in := transitionInput{
		OrderNumber:   req.OrderID,
		Target:        target,
		Gross:         gross,
		HasGross:      true,
		PaymentType:   req.PaymentType,
		TransactionID: req.TransactionID,
		PaidAt:        s.parseTransactionTime(req.TransactionTime),
	}

	res, err := s.applyWithLookupRetry(ctx, in)
	if errors.Is(err, ErrOrderNotFound) {
		return s.deferNotification(ctx, log, req.OrderID)
	}
	if errors.Is(err, ErrOrderFailed) {
		// storage trouble: let the poller retry instead of losing the update
		log.Error("failed to apply notification", zap.Error(err))
		return s.deferNotification(ctx, log, req.OrderID)
	}
	if err != nil {
		metrics.WebhookTotal.WithLabelValues("error").Inc()
		return res, err
	}

	metrics.WebhookTotal.WithLabelValues(res.Reason).Inc()
	log.Info("midtrans notification processed",
		zap.String("transaction_status", req.TransactionStatus),
		zap.String("from", res.From),
		zap.String("to", res.To),
		zap.String("reason", res.Reason),
	)
	return res, nil
}

func validateNotification(req MidtransNotificationRequest) (string, error) {
	if strings.TrimSpace(req.OrderID) == "" ||
		strings.TrimSpace(req.StatusCode) == "" ||
		strings.TrimSpace(req.GrossAmount) == "" ||
		strings.TrimSpace(req.SignatureKey) == "" ||
		strings.TrimSpace(req.TransactionStatus) == "" {
		return "", ErrInvalidNotification
	}

	target, ok := MapGatewayStatus(req.TransactionStatus, req.FraudStatus)
	if !ok {
		return "", ErrInvalidNotification.Wrap(fmt.Errorf("unknown transaction_status %q", req.TransactionStatus))
	}
	return target, nil
}

func (s *service) parseTransactionTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.now()
	}

	loc, err := time.LoadLocation(midtransTimeZone)
	if err != nil {
		loc = time.FixedZone("WIB", 7*60*60)
	}
	if t, err := time.ParseInLocation(midtransTimeLayout, raw, loc); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return s.now()
}

// applyWithLookupRetry covers the webhook beating the checkout commit.
func (s *service) applyWithLookupRetry(ctx context.Context, in transitionInput) (TransitionResult, error) {
	var (
		res TransitionResult
		err error
	)
	for attempt := 1; attempt <= s.lookupRetries; attempt++ {
		res, err = s.applyTransition(ctx, in, false)
		if !errors.Is(err, ErrOrderNotFound) || attempt == s.lookupRetries {
			return res, err
		}

		select {
		case <-ctx.Done():
			return res, ctx.Err()
		case <-time.After(s.lookupBackoff * time.Duration(attempt)):
		}
	}
	return res, err
}

func (s *service) deferNotification(ctx context.Context, log *zap.Logger, orderNumber string) (TransitionResult, error) {
	res := TransitionResult{OrderNumber: orderNumber, Reason: ReasonDeferred}
	if s.deferred == nil {
		log.Error("order not found for notification and no deferred queue configured")
		metrics.WebhookTotal.WithLabelValues("not_found").Inc()
		return res, nil
	}

	if err := s.deferred.Defer(ctx, orderNumber, s.now().Add(s.deferDelay)); err != nil {
		log.Error("failed to defer notification", zap.Error(err))
		metrics.WebhookTotal.WithLabelValues("not_found").Inc()
		return res, nil
	}

	metrics.WebhookTotal.WithLabelValues(ReasonDeferred).Inc()
	log.Warn("order not visible yet, notification deferred")
	return res, nil
}

// applyTransition is the single write path for payment status. It locks the
// order row, so concurrent deliveries for one order serialize here.
func (s *service) applyTransition(ctx context.Context, in transitionInput, override bool) (TransitionResult, error) {
	log := s.logger.With(zap.String("order_number", in.OrderNumber))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return TransitionResult{}, ErrOrderFailed.Wrap(err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	qtx := s.repo.WithTx(tx)

	o, err := qtx.GetByNumberForUpdate(ctx, in.OrderNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TransitionResult{}, ErrOrderNotFound
		}
		return TransitionResult{}, ErrOrderFailed.Wrap(err)
	}

	res := TransitionResult{OrderNumber: o.OrderNumber, From: o.Status, To: in.Target}

	// Idempotency guard: the persisted status is the source of truth.
	if o.Status == in.Target {
		res.Reason = ReasonAlreadyApplied
		return res, nil
	}

	if in.Target == StatusPaid && in.HasGross && in.Gross != o.Total {
		log.Warn("gross amount does not match order total",
			logger.SecurityEvent(),
			zap.Int64("gross_amount", in.Gross),
			zap.Int64("total", o.Total),
		)
		return res, ErrGrossAmountMismatch
	}

	// A capture landing after the payment window closed is not trusted to
	// revive the order, even when the sweep has not expired it yet.
	if in.Target == StatusPaid && !override && o.Status == StatusPending && s.now().After(o.ExpiresAt) {
		return s.flagPaidAfterExpiry(ctx, log, tx, qtx, o, in, &committed)
	}

	legal := CanTransition(o.Status, in.Target) || (override && canOverride(o.Status, in.Target))
	if !legal {
		if in.Target == StatusPaid && o.Status == StatusExpired {
			return s.flagPaidAfterExpiry(ctx, log, tx, qtx, o, in, &committed)
		}
		res.Reason = ReasonIllegal
		log.Info("ignoring illegal transition", zap.String("from", o.Status), zap.String("to", in.Target))
		return res, nil
	}

	params := dbgen.UpdateOrderPaymentStatusParams{
		ID:            o.ID,
		Status:        in.Target,
		PaymentType:   helper.RawStringToNull(in.PaymentType),
		TransactionID: helper.RawStringToNull(in.TransactionID),
		Note:          helper.RawStringToNull(in.Note),
	}
	if in.Target == StatusPaid {
		paidAt := in.PaidAt
		if paidAt.IsZero() {
			paidAt = s.now()
		}
		params.PaidAt = sql.NullTime{Time: paidAt, Valid: true}
		params.FulfillmentStatus = helper.RawStringToNull(FulfillmentPending)
	}

	updated, err := qtx.UpdatePaymentStatus(ctx, params)
	if err != nil {
		log.Error("failed to update payment status", zap.Error(err))
		return res, ErrOrderFailed.Wrap(err)
	}

	// Side effects of the first entry into PAID. The guard above makes
	// sure they run once per order.
	if in.Target == StatusPaid {
		if err := s.onPaid(ctx, log, tx, updated); err != nil {
			return res, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transition", zap.Error(err))
		return res, ErrOrderFailed.Wrap(err)
	}
	committed = true

	metrics.OrderTransitions.WithLabelValues(o.Status, in.Target).Inc()
	log.Info("order status changed", zap.String("from", o.Status), zap.String("to", in.Target), zap.Bool("override", override))

	res.Applied = true
	res.Reason = ReasonApplied
	return res, nil
}

func (s *service) onPaid(ctx context.Context, log *zap.Logger, tx *sql.Tx, o dbgen.Order) error {
	outboxTx := s.outboxRepo.WithTx(tx)

	if o.PromoCode.Valid && o.PromoCode.String != "" {
		ok, err := s.promoRepo.WithTx(tx).IncrementUsage(ctx, o.PromoCode.String)
		if err != nil {
			log.Error("failed to increment promo usage", zap.String("promo_code", o.PromoCode.String), zap.Error(err))
			return ErrOrderFailed.Wrap(err)
		}
		if !ok {
			// money is already captured; keep PAID and let a human decide
			log.Warn("promo usage cap reached at payment time", zap.String("promo_code", o.PromoCode.String))
			if err := s.writeEvent(ctx, outboxTx, o, outbox.EventOrderReviewRequired, outbox.ReviewRequiredPayload{
				OrderID:     o.ID.String(),
				OrderNumber: o.OrderNumber,
				Reason:      outbox.ReasonPromoCapExhausted,
				Status:      o.Status,
				Detail:      o.PromoCode.String,
			}); err != nil {
				return err
			}
		}
	}

	paidAt := o.PaidAt.Time
	return s.writeEvent(ctx, outboxTx, o, outbox.EventOrderPaid, outbox.OrderPaidPayload{
		OrderID:     o.ID.String(),
		OrderNumber: o.OrderNumber,
		Total:       o.Total,
		PaidAt:      paidAt,
	})
}

// flagPaidAfterExpiry records a capture on an order whose payment window has
// closed. The order is not revived: a PENDING one is moved to EXPIRED and the
// note marks it so replays do not re-emit.
func (s *service) flagPaidAfterExpiry(
	ctx context.Context,
	log *zap.Logger,
	tx *sql.Tx,
	qtx Repository,
	o dbgen.Order,
	in transitionInput,
	committed *bool,
) (TransitionResult, error) {
	res := TransitionResult{OrderNumber: o.OrderNumber, From: o.Status, To: in.Target, Reason: ReasonPaidAfterExpiry}

	if strings.HasPrefix(o.Note.String, reviewNotePrefix) {
		return res, nil
	}

	status := o.Status
	if status == StatusPending {
		status = StatusExpired
	}

	if _, err := qtx.UpdatePaymentStatus(ctx, dbgen.UpdateOrderPaymentStatusParams{
		ID:            o.ID,
		Status:        status,
		PaymentType:   helper.RawStringToNull(in.PaymentType),
		TransactionID: helper.RawStringToNull(in.TransactionID),
		Note:          helper.RawStringToNull(reviewNotePrefix),
	}); err != nil {
		return res, ErrOrderFailed.Wrap(err)
	}

	if err := s.writeEvent(ctx, s.outboxRepo.WithTx(tx), o, outbox.EventOrderReviewRequired, outbox.ReviewRequiredPayload{
		OrderID:     o.ID.String(),
		OrderNumber: o.OrderNumber,
		Reason:      outbox.ReasonPaidAfterExpiry,
		Status:      status,
		Detail:      in.TransactionID,
	}); err != nil {
		return res, err
	}

	if err := tx.Commit(); err != nil {
		return res, ErrOrderFailed.Wrap(err)
	}
	*committed = true

	if status != o.Status {
		metrics.OrderTransitions.WithLabelValues(o.Status, status).Inc()
	}
	log.Warn("payment captured for expired order, manual review required",
		zap.String("transaction_id", in.TransactionID),
	)
	return res, nil
}

func (s *service) writeEvent(ctx context.Context, repo outbox.Repository, o dbgen.Order, eventType string, payload any) error {
	ev, err := outbox.NewOrderEvent(o.ID, eventType, payload)
	if err != nil {
		return ErrOrderFailed.Wrap(err)
	}
	if err := repo.Append(ctx, ev); err != nil {
		s.logger.Error("failed to create outbox event", zap.String("event_type", eventType), zap.Error(err))
		return ErrOrderFailed.Wrap(err)
	}
	return nil
}

// ReconcileByStatus is the polling path. The status comes from an
// authenticated server-to-server call, so no notification signature applies.
func (s *service) ReconcileByStatus(ctx context.Context, orderNumber string) (TransitionResult, error) {
	if !orderno.Verify(orderNumber) {
		return TransitionResult{}, ErrInvalidOrderNumber
	}

	st, err := s.midtransSvc.GetStatus(ctx, orderNumber)
	if err != nil {
		return TransitionResult{}, err
	}

	return s.applyGatewayStatus(ctx, orderNumber, st)
}

func (s *service) applyGatewayStatus(ctx context.Context, orderNumber string, st *midtrans.TransactionStatus) (TransitionResult, error) {
	target, ok := MapGatewayStatus(st.TransactionStatus, st.FraudStatus)
	if !ok {
		return TransitionResult{}, ErrInvalidNotification.Wrap(fmt.Errorf("unknown transaction_status %q", st.TransactionStatus))
	}

	in := transitionInput{
		OrderNumber:   orderNumber,
		Target:        target,
		PaymentType:   st.PaymentType,
		TransactionID: st.TransactionID,
	}
	if st.GrossAmount != "" {
		gross, err := money.ParseAmount(st.GrossAmount)
		if err != nil {
			return TransitionResult{}, ErrInvalidNotification.Wrap(err)
		}
		in.Gross = gross
		in.HasGross = true
	} else if target == StatusPaid {
		return TransitionResult{}, ErrInvalidNotification.Wrap(errors.New("paid status without gross_amount"))
	}

	return s.applyTransition(ctx, in, false)
}

func (s *service) ReconcileDeferred(ctx context.Context, limit int64) (int, error) {
	if s.deferred == nil {
		return 0, nil
	}

	due, err := s.deferred.Due(ctx, s.now(), limit)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, number := range due {
		log := s.logger.With(zap.String("order_number", number))

		res, err := s.ReconcileByStatus(ctx, number)
		switch {
		case err == nil:
			if res.Applied {
				applied++
			}
			if err := s.deferred.Clear(ctx, number); err != nil {
				log.Warn("failed to clear deferred attempts", zap.Error(err))
			}
			log.Info("deferred notification reconciled", zap.String("reason", res.Reason))
		case errors.Is(err, ErrOrderNotFound):
			if err := s.deferred.Defer(ctx, number, s.now().Add(s.deferDelay)); err != nil {
				log.Error("giving up on deferred notification", zap.Error(err))
			}
		default:
			log.Error("failed to reconcile deferred notification", zap.Error(err))
			_ = s.deferred.Defer(ctx, number, s.now().Add(s.deferDelay))
		}
	}
	return applied, nil
}

func (s *service) OverridePaymentStatus(ctx context.Context, orderNumber string, target string, note string) (OrderResponse, error) {
	if !orderno.Verify(orderNumber) {
		return OrderResponse{}, ErrInvalidOrderNumber
	}
	target = strings.ToUpper(strings.TrimSpace(target))
	if target != StatusPaid && target != StatusRefunded {
		return OrderResponse{}, ErrInvalidStatusTransition
	}

	res, err := s.applyTransition(ctx, transitionInput{
		OrderNumber: orderNumber,
		Target:      target,
		Note:        overrideNotePrefix + strings.TrimSpace(note),
	}, true)
	if err != nil {
		return OrderResponse{}, err
	}
	if !res.Applied && res.Reason != ReasonAlreadyApplied {
		return OrderResponse{}, ErrInvalidStatusTransition
	}

	s.logger.Warn("payment status overridden by admin",
		zap.String("order_number", orderNumber),
		zap.String("from", res.From),
		zap.String("to", res.To),
	)

	o, err := s.repo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return OrderResponse{}, ErrOrderFailed.Wrap(err)
	}
	return mapOrderToResponse(o, nil), nil
}
