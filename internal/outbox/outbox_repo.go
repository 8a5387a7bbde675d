package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-digistore-api/internal/shared/database/dbgen"

	"github.com/google/uuid"
)

var (
	ErrUnknownEvent    = errors.New("unknown outbox event type")
	ErrInvalidPayload  = errors.New("outbox payload is not valid JSON")
	ErrEventNotPending = errors.New("outbox event is no longer pending")
)

var knownEvents = map[string]struct{}{
	EventOrderPaid:           {},
	EventOrderReviewRequired: {},
}

// Repository is the outbox table. Append runs inside the caller's order
// transaction; the relay side only ever moves a row out of PENDING once.
//
//go:generate mockgen -source=outbox_repo.go -destination=../mock/outbox/outbox_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx dbgen.DBTX) Repository
	Append(ctx context.Context, ev dbgen.CreateOutboxEventParams) error
	Pending(ctx context.Context, limit int32) ([]dbgen.OutboxEvent, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
	Backlog(ctx context.Context) (int64, error)
}

type repository struct {
	q *dbgen.Queries
}

func NewRepository(q *dbgen.Queries) Repository {
	return &repository{q: q}
}

func (r *repository) WithTx(tx dbgen.DBTX) Repository {
	return &repository{q: dbgen.New(tx)}
}

// Append refuses rows the relay could never publish, so a bad event fails
// the order transaction instead of being parked later.
func (r *repository) Append(ctx context.Context, ev dbgen.CreateOutboxEventParams) error {
	if _, ok := knownEvents[ev.EventType]; !ok {
		return fmt.Errorf("append %q: %w", ev.EventType, ErrUnknownEvent)
	}
	if !json.Valid(ev.Payload) {
		return fmt.Errorf("append %s: %w", ev.EventType, ErrInvalidPayload)
	}
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}

	if err := r.q.CreateOutboxEvent(ctx, ev); err != nil {
		return fmt.Errorf("append %s: %w", ev.EventType, err)
	}
	return nil
}

func (r *repository) Pending(ctx context.Context, limit int32) ([]dbgen.OutboxEvent, error) {
	return r.q.ListPendingOutbox(ctx, limit)
}

func (r *repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	return settled(r.q.MarkOutboxSent(ctx, id))
}

func (r *repository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	return settled(r.q.MarkOutboxFailed(ctx, id))
}

func settled(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEventNotPending
	}
	return nil
}

func (r *repository) Backlog(ctx context.Context) (int64, error) {
	return r.q.CountPendingOutbox(ctx)
}
