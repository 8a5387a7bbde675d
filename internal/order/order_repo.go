package order

import (
	"context"
	"database/sql"
	"go-digistore-api/internal/shared/database/dbgen"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=order_repo.go -destination=../mock/order/order_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx dbgen.DBTX) Repository

	CreateOrder(ctx context.Context, arg dbgen.CreateOrderParams) (dbgen.Order, error)
	CreateOrderItem(ctx context.Context, arg dbgen.CreateOrderItemParams) error

	GetByID(ctx context.Context, id uuid.UUID) (dbgen.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (dbgen.Order, error)
	GetByNumberForUpdate(ctx context.Context, orderNumber string) (dbgen.Order, error)
	GetItems(ctx context.Context, orderID uuid.UUID) ([]dbgen.OrderItem, error)

	ListByUser(ctx context.Context, arg dbgen.ListOrdersByUserParams) ([]dbgen.ListOrdersByUserRow, error)
	ListAdmin(ctx context.Context, arg dbgen.ListOrdersAdminParams) ([]dbgen.ListOrdersAdminRow, error)
	ListExpiredPending(ctx context.Context, before time.Time, limit int32) ([]string, error)

	UpdatePaymentStatus(ctx context.Context, arg dbgen.UpdateOrderPaymentStatusParams) (dbgen.Order, error)
	UpdateSnapToken(ctx context.Context, arg dbgen.UpdateOrderSnapTokenParams) (int64, error)
	SetDeliveredKeys(ctx context.Context, arg dbgen.SetOrderDeliveredKeysParams) (int64, error)
	MarkConfirmationSent(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	queries *dbgen.Queries
}

func NewRepository(q *dbgen.Queries) Repository {
	return &repository{queries: q}
}

func (r *repository) WithTx(tx dbgen.DBTX) Repository {
	if sqlTx, ok := tx.(*sql.Tx); ok {
		return &repository{
			queries: r.queries.WithTx(sqlTx),
		}
	}
	return r
}

func (r *repository) CreateOrder(ctx context.Context, arg dbgen.CreateOrderParams) (dbgen.Order, error) {
	return r.queries.CreateOrder(ctx, arg)
}

func (r *repository) CreateOrderItem(ctx context.Context, arg dbgen.CreateOrderItemParams) error {
	return r.queries.CreateOrderItem(ctx, arg)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (dbgen.Order, error) {
	return r.queries.GetOrderByID(ctx, id)
}

func (r *repository) GetByNumber(ctx context.Context, orderNumber string) (dbgen.Order, error) {
	return r.queries.GetOrderByNumber(ctx, orderNumber)
}

func (r *repository) GetByNumberForUpdate(ctx context.Context, orderNumber string) (dbgen.Order, error) {
	return r.queries.GetOrderByNumberForUpdate(ctx, orderNumber)
}

func (r *repository) GetItems(ctx context.Context, orderID uuid.UUID) ([]dbgen.OrderItem, error) {
	return r.queries.GetOrderItems(ctx, orderID)
}

func (r *repository) ListByUser(ctx context.Context, arg dbgen.ListOrdersByUserParams) ([]dbgen.ListOrdersByUserRow, error) {
	return r.queries.ListOrdersByUser(ctx, arg)
}

func (r *repository) ListAdmin(ctx context.Context, arg dbgen.ListOrdersAdminParams) ([]dbgen.ListOrdersAdminRow, error) {
	return r.queries.ListOrdersAdmin(ctx, arg)
}

func (r *repository) ListExpiredPending(ctx context.Context, before time.Time, limit int32) ([]string, error) {
	return r.queries.ListExpiredPendingOrders(ctx, dbgen.ListExpiredPendingOrdersParams{
		ExpiresAt: before,
		Limit:     limit,
	})
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, arg dbgen.UpdateOrderPaymentStatusParams) (dbgen.Order, error) {
	return r.queries.UpdateOrderPaymentStatus(ctx, arg)
}

func (r *repository) UpdateSnapToken(ctx context.Context, arg dbgen.UpdateOrderSnapTokenParams) (int64, error) {
	return r.queries.UpdateOrderSnapToken(ctx, arg)
}

func (r *repository) SetDeliveredKeys(ctx context.Context, arg dbgen.SetOrderDeliveredKeysParams) (int64, error) {
	return r.queries.SetOrderDeliveredKeys(ctx, arg)
}

func (r *repository) MarkConfirmationSent(ctx context.Context, id uuid.UUID) error {
	return r.queries.MarkOrderConfirmationSent(ctx, id)
}
