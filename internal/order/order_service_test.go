package order_test

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"go-digistore-api/internal/email"
	"go-digistore-api/internal/midtrans"
	midtransMock "go-digistore-api/internal/mock/midtrans"
	orderMock "go-digistore-api/internal/mock/order"
	outboxMock "go-digistore-api/internal/mock/outbox"
	productMock "go-digistore-api/internal/mock/product"
	promoMock "go-digistore-api/internal/mock/promo"
	"go-digistore-api/internal/order"
	"go-digistore-api/internal/outbox"
	"go-digistore-api/internal/pkg/orderno"
	"go-digistore-api/internal/promo"
	"go-digistore-api/internal/shared/database/dbgen"
	"go-digistore-api/internal/signature"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type serviceDeps struct {
	svc      order.Service
	sqlMock  sqlmock.Sqlmock
	repo     *orderMock.MockRepository
	outbox   *outboxMock.MockRepository
	promoRep *promoMock.MockRepository
	promoSvc *promoMock.MockService
	product  *productMock.MockService
	midtrans *midtransMock.MockService
	deferred *orderMock.MockDeferredQueue
	signer   *signature.Signer
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	ctrl := gomock.NewController(t)
	db, sm, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	signer, err := signature.NewSigner(strings.Repeat("s", 32))
	require.NoError(t, err)

	d := &serviceDeps{
		sqlMock:  sm,
		repo:     orderMock.NewMockRepository(ctrl),
		outbox:   outboxMock.NewMockRepository(ctrl),
		promoRep: promoMock.NewMockRepository(ctrl),
		promoSvc: promoMock.NewMockService(ctrl),
		product:  productMock.NewMockService(ctrl),
		midtrans: midtransMock.NewMockService(ctrl),
		deferred: orderMock.NewMockDeferredQueue(ctrl),
		signer:   signer,
	}

	d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo).AnyTimes()
	d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox).AnyTimes()
	d.promoRep.EXPECT().WithTx(gomock.Any()).Return(d.promoRep).AnyTimes()

	d.svc = order.NewService(order.Deps{
		DB:            db,
		Repo:          d.repo,
		OutboxRepo:    d.outbox,
		PromoRepo:     d.promoRep,
		PromoSvc:      d.promoSvc,
		ProductSvc:    d.product,
		MidtransSvc:   d.midtrans,
		Signer:        signer,
		Deferred:      d.deferred,
		Now:           func() time.Time { return fixedNow },
		LookupRetries: 3,
		LookupBackoff: time.Millisecond,
	})
	return d
}

func newOrderNumber(t *testing.T) string {
	t.Helper()
	n, err := orderno.Generate("DG", fixedNow.Add(-time.Minute))
	require.NoError(t, err)
	return n
}

func TestNewService_RejectsBadOrderPrefix(t *testing.T) {
	ctrl := gomock.NewController(t)
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	signer, err := signature.NewSigner(strings.Repeat("s", 32))
	require.NoError(t, err)

	deps := order.Deps{
		DB:          db,
		Repo:        orderMock.NewMockRepository(ctrl),
		OutboxRepo:  outboxMock.NewMockRepository(ctrl),
		PromoRepo:   promoMock.NewMockRepository(ctrl),
		PromoSvc:    promoMock.NewMockService(ctrl),
		ProductSvc:  productMock.NewMockService(ctrl),
		MidtransSvc: midtransMock.NewMockService(ctrl),
		Signer:      signer,
	}

	for _, prefix := range []string{"Shop", "DIGISTORE", "D", "DG1"} {
		deps.OrderPrefix = prefix
		assert.Panics(t, func() { order.NewService(deps) }, prefix)
	}

	deps.OrderPrefix = "SHOP"
	assert.NotPanics(t, func() { order.NewService(deps) })
}

func catalogProduct(price int64) dbgen.Product {
	return dbgen.Product{
		ID:       uuid.New(),
		Name:     "Voucher Game",
		Price:    price,
		Stock:    10,
		IsActive: true,
	}
}

// expectPersist wires the checkout insert transaction. The created order
// echoes the params back so the stored signature stays valid.
func (d *serviceDeps) expectPersist(items int, tamper func(o *dbgen.Order)) {
	d.sqlMock.ExpectBegin()
	d.repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg dbgen.CreateOrderParams) (dbgen.Order, error) {
			o := dbgen.Order{
				ID:                uuid.New(),
				OrderNumber:       arg.OrderNumber,
				UserID:            arg.UserID,
				CustomerFirstName: arg.CustomerFirstName,
				CustomerEmail:     arg.CustomerEmail,
				Subtotal:          arg.Subtotal,
				DiscountAmount:    arg.DiscountAmount,
				PromoCode:         arg.PromoCode,
				Total:             arg.Total,
				Status:            arg.Status,
				PaymentMethod:     arg.PaymentMethod,
				Signature:         arg.Signature,
				ExpiresAt:         arg.ExpiresAt,
				CreatedAt:         fixedNow,
			}
			if tamper != nil {
				tamper(&o)
			}
			return o, nil
		})
	d.repo.EXPECT().CreateOrderItem(gomock.Any(), gomock.Any()).Return(nil).Times(items)
	d.sqlMock.ExpectCommit()
}

func TestOrderService_Checkout(t *testing.T) {
	ctx := context.Background()

	baseReq := func(ids ...uuid.UUID) order.CheckoutRequest {
		req := order.CheckoutRequest{
			Customer:      order.CustomerRequest{FirstName: "Budi", Email: "budi@example.com"},
			PaymentMethod: "gopay",
		}
		for _, id := range ids {
			req.Items = append(req.Items, order.CheckoutItemRequest{ProductID: id.String(), Quantity: 1})
		}
		return req
	}

	t.Run("success_with_promo", func(t *testing.T) {
		d := setupServiceTest(t)
		p1 := catalogProduct(50000)
		p2 := catalogProduct(50000)

		req := baseReq(p1.ID, p2.ID)
		req.PromoCode = " diskon10 "
		clientPrice := int64(1)
		req.Items[0].Price = &clientPrice

		d.product.EXPECT().Catalog(ctx, gomock.Any()).
			Return(map[uuid.UUID]dbgen.Product{p1.ID: p1, p2.ID: p2}, nil)
		d.promoSvc.EXPECT().Validate(ctx, "DISKON10", int64(100000)).
			Return(promo.ValidateResult{Promo: dbgen.Promo{Code: "DISKON10", DiscountPercent: 10, IsActive: true}}, nil)
		d.expectPersist(2, nil)
		d.midtrans.EXPECT().CreateTransaction(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, r *midtrans.CreateTransactionRequest) (*midtrans.CreateTransactionResponse, error) {
				assert.Equal(t, int64(90000), r.GrossAmount)
				assert.Equal(t, int64(10000), r.Discount)
				assert.Equal(t, "DISKON10", r.PromoCode)
				assert.Len(t, r.Items, 2)
				return &midtrans.CreateTransactionResponse{Token: "snap-token", RedirectURL: "https://pay/x"}, nil
			})
		d.repo.EXPECT().UpdateSnapToken(ctx, gomock.Any()).Return(int64(1), nil)

		res, err := d.svc.Checkout(ctx, "user-1", req)

		require.NoError(t, err)
		assert.Equal(t, int64(100000), res.Order.Subtotal, "catalog price wins over client price")
		assert.Equal(t, int64(10000), res.Order.DiscountAmount)
		assert.Equal(t, int64(90000), res.Order.Total)
		assert.Equal(t, order.StatusPending, res.Order.Status)
		assert.Equal(t, "snap-token", res.Payment.SnapToken)
		assert.True(t, orderno.Verify(res.Order.OrderNumber))
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate_lines_are_merged", func(t *testing.T) {
		d := setupServiceTest(t)
		p := catalogProduct(20000)
		req := baseReq(p.ID, p.ID)

		d.product.EXPECT().Catalog(ctx, []uuid.UUID{p.ID}).
			Return(map[uuid.UUID]dbgen.Product{p.ID: p}, nil)
		d.expectPersist(1, nil)
		d.midtrans.EXPECT().CreateTransaction(ctx, gomock.Any()).
			Return(&midtrans.CreateTransactionResponse{Token: "tok"}, nil)
		d.repo.EXPECT().UpdateSnapToken(ctx, gomock.Any()).Return(int64(1), nil)

		res, err := d.svc.Checkout(ctx, "", req)

		require.NoError(t, err)
		require.Len(t, res.Order.Items, 1)
		assert.Equal(t, int32(2), res.Order.Items[0].Quantity)
		assert.Equal(t, int64(40000), res.Order.Total)
	})

	t.Run("empty_cart", func(t *testing.T) {
		d := setupServiceTest(t)
		_, err := d.svc.Checkout(ctx, "user-1", baseReq())
		assert.ErrorIs(t, err, order.ErrInvalidRequest)
	})

	t.Run("inactive_product", func(t *testing.T) {
		d := setupServiceTest(t)
		p := catalogProduct(20000)
		p.IsActive = false

		d.product.EXPECT().Catalog(ctx, gomock.Any()).
			Return(map[uuid.UUID]dbgen.Product{p.ID: p}, nil)

		_, err := d.svc.Checkout(ctx, "user-1", baseReq(p.ID))
		assert.ErrorIs(t, err, order.ErrItemUnavailable)
	})

	t.Run("unknown_product", func(t *testing.T) {
		d := setupServiceTest(t)
		d.product.EXPECT().Catalog(ctx, gomock.Any()).Return(map[uuid.UUID]dbgen.Product{}, nil)

		_, err := d.svc.Checkout(ctx, "user-1", baseReq(uuid.New()))
		assert.ErrorIs(t, err, order.ErrItemUnavailable)
	})

	t.Run("promo_rejected", func(t *testing.T) {
		d := setupServiceTest(t)
		p := catalogProduct(20000)
		req := baseReq(p.ID)
		req.PromoCode = "EXPIRED"

		d.product.EXPECT().Catalog(ctx, gomock.Any()).Return(map[uuid.UUID]dbgen.Product{p.ID: p}, nil)
		d.promoSvc.EXPECT().Validate(ctx, "EXPIRED", int64(20000)).Return(promo.ValidateResult{}, promo.ErrPromoExpired)

		_, err := d.svc.Checkout(ctx, "user-1", req)
		assert.ErrorIs(t, err, promo.ErrPromoExpired)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("gateway_failure_keeps_pending_order", func(t *testing.T) {
		d := setupServiceTest(t)
		p := catalogProduct(20000)

		d.product.EXPECT().Catalog(ctx, gomock.Any()).Return(map[uuid.UUID]dbgen.Product{p.ID: p}, nil)
		d.expectPersist(1, nil)
		d.midtrans.EXPECT().CreateTransaction(ctx, gomock.Any()).Return(nil, midtrans.ErrGateway)

		_, err := d.svc.Checkout(ctx, "user-1", baseReq(p.ID))
		assert.ErrorIs(t, err, order.ErrGatewayFailed)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("tampered_row_never_reaches_gateway", func(t *testing.T) {
		d := setupServiceTest(t)
		p := catalogProduct(20000)

		d.product.EXPECT().Catalog(ctx, gomock.Any()).Return(map[uuid.UUID]dbgen.Product{p.ID: p}, nil)
		d.expectPersist(1, func(o *dbgen.Order) { o.Total = 1000 })

		_, err := d.svc.Checkout(ctx, "user-1", baseReq(p.ID))
		assert.ErrorIs(t, err, order.ErrOrderTampered)
	})

	t.Run("create_order_fails_rolls_back", func(t *testing.T) {
		d := setupServiceTest(t)
		p := catalogProduct(20000)

		d.product.EXPECT().Catalog(ctx, gomock.Any()).Return(map[uuid.UUID]dbgen.Product{p.ID: p}, nil)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().CreateOrder(ctx, gomock.Any()).Return(dbgen.Order{}, errors.New("db down"))
		d.sqlMock.ExpectRollback()

		_, err := d.svc.Checkout(ctx, "user-1", baseReq(p.ID))
		assert.ErrorIs(t, err, order.ErrOrderFailed)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("zero_total_settles_immediately", func(t *testing.T) {
		d := setupServiceTest(t)
		bonus := catalogProduct(30000)
		bonus.IsBonus = true

		d.product.EXPECT().Catalog(ctx, gomock.Any()).Return(map[uuid.UUID]dbgen.Product{bonus.ID: bonus}, nil)

		var stored dbgen.Order
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().CreateOrder(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, arg dbgen.CreateOrderParams) (dbgen.Order, error) {
				stored = dbgen.Order{
					ID:            uuid.New(),
					OrderNumber:   arg.OrderNumber,
					UserID:        arg.UserID,
					Total:         arg.Total,
					Subtotal:      arg.Subtotal,
					Status:        arg.Status,
					PaymentMethod: arg.PaymentMethod,
					Signature:     arg.Signature,
					ExpiresAt:     arg.ExpiresAt,
				}
				return stored, nil
			})
		d.repo.EXPECT().CreateOrderItem(ctx, gomock.Any()).Return(nil)
		d.sqlMock.ExpectCommit()

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().GetByNumberForUpdate(ctx, gomock.Any()).DoAndReturn(
			func(context.Context, string) (dbgen.Order, error) { return stored, nil })
		d.repo.EXPECT().UpdatePaymentStatus(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, arg dbgen.UpdateOrderPaymentStatusParams) (dbgen.Order, error) {
				assert.Equal(t, order.StatusPaid, arg.Status)
				assert.Equal(t, "free", arg.PaymentType.String)
				paid := stored
				paid.Status = arg.Status
				paid.PaidAt = arg.PaidAt
				return paid, nil
			})
		d.outbox.EXPECT().Append(ctx, gomock.Any()).Return(nil)
		d.sqlMock.ExpectCommit()

		res, err := d.svc.Checkout(ctx, "user-1", baseReq(bonus.ID))

		require.NoError(t, err)
		assert.Equal(t, order.StatusPaid, res.Order.Status)
		assert.Equal(t, int64(0), res.Order.Total)
		assert.Empty(t, res.Payment.SnapToken)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})
}

// signedOrder builds a stored PENDING order whose signature verifies.
func signedOrder(t *testing.T, signer *signature.Signer, userID string) (dbgen.Order, []dbgen.OrderItem) {
	t.Helper()
	o := dbgen.Order{
		ID:            uuid.New(),
		OrderNumber:   newOrderNumber(t),
		UserID:        userID,
		CustomerEmail: "budi@example.com",
		Subtotal:      50000,
		Total:         50000,
		Status:        order.StatusPending,
		PaymentMethod: sql.NullString{String: "gopay", Valid: true},
		ExpiresAt:     fixedNow.Add(10 * time.Minute),
	}
	items := []dbgen.OrderItem{{
		OrderID:   o.ID,
		ProductID: uuid.New(),
		Title:     "Voucher Game",
		UnitPrice: 50000,
		Quantity:  1,
	}}
	o.Signature = signer.Sign(signature.Payload{
		OrderNumber:   o.OrderNumber,
		Items:         []signature.Item{{ProductID: items[0].ProductID.String(), UnitPrice: 50000, Quantity: 1}},
		Subtotal:      o.Subtotal,
		Total:         o.Total,
		PaymentMethod: "gopay",
		ExpiresAt:     o.ExpiresAt,
	})
	return o, items
}

func TestOrderService_ContinuePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("reuses_stored_token", func(t *testing.T) {
		d := setupServiceTest(t)
		o, items := signedOrder(t, d.signer, "user-1")
		o.SnapToken = sql.NullString{String: "existing", Valid: true}

		d.repo.EXPECT().GetByNumber(ctx, o.OrderNumber).Return(o, nil)
		d.repo.EXPECT().GetItems(ctx, o.ID).Return(items, nil)

		res, err := d.svc.ContinuePayment(ctx, o.OrderNumber, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "existing", res.SnapToken)
	})

	t.Run("creates_token_when_missing", func(t *testing.T) {
		d := setupServiceTest(t)
		o, items := signedOrder(t, d.signer, order.GuestUserID)

		d.repo.EXPECT().GetByNumber(ctx, o.OrderNumber).Return(o, nil)
		d.repo.EXPECT().GetItems(ctx, o.ID).Return(items, nil)
		gomock.InOrder(
			d.midtrans.EXPECT().GetStatus(ctx, o.OrderNumber).Return(nil, midtrans.ErrTransactionNotFound),
			d.midtrans.EXPECT().CreateTransaction(ctx, gomock.Any()).
				Return(&midtrans.CreateTransactionResponse{Token: "fresh"}, nil),
		)
		d.repo.EXPECT().UpdateSnapToken(ctx, gomock.Any()).Return(int64(1), nil)

		res, err := d.svc.ContinuePayment(ctx, o.OrderNumber, "anyone")
		require.NoError(t, err)
		assert.Equal(t, "fresh", res.SnapToken)
	})

	t.Run("processor_already_has_transaction", func(t *testing.T) {
		d := setupServiceTest(t)
		o, items := signedOrder(t, d.signer, "user-1")

		// the first CreateTransaction timed out locally but reached snap
		d.repo.EXPECT().GetByNumber(ctx, o.OrderNumber).Return(o, nil)
		d.repo.EXPECT().GetItems(ctx, o.ID).Return(items, nil)
		d.midtrans.EXPECT().GetStatus(ctx, o.OrderNumber).Return(&midtrans.TransactionStatus{
			OrderID:           o.OrderNumber,
			TransactionStatus: "pending",
		}, nil)
		d.midtrans.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Times(0)

		_, err := d.svc.ContinuePayment(ctx, o.OrderNumber, "user-1")
		assert.ErrorIs(t, err, order.ErrPaymentInProgress)
	})

	t.Run("processor_final_status_is_applied", func(t *testing.T) {
		d := setupServiceTest(t)
		o, items := signedOrder(t, d.signer, "user-1")

		d.repo.EXPECT().GetByNumber(ctx, o.OrderNumber).Return(o, nil)
		d.repo.EXPECT().GetItems(ctx, o.ID).Return(items, nil)
		d.midtrans.EXPECT().GetStatus(ctx, o.OrderNumber).Return(&midtrans.TransactionStatus{
			OrderID:           o.OrderNumber,
			TransactionStatus: "deny",
		}, nil)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().GetByNumberForUpdate(ctx, o.OrderNumber).Return(o, nil)
		d.repo.EXPECT().UpdatePaymentStatus(ctx, gomock.Any()).
			DoAndReturn(func(c context.Context, arg dbgen.UpdateOrderPaymentStatusParams) (dbgen.Order, error) {
				assert.Equal(t, order.StatusFailed, arg.Status)
				return echoUpdate(o)(c, arg)
			})
		d.sqlMock.ExpectCommit()

		_, err := d.svc.ContinuePayment(ctx, o.OrderNumber, "user-1")
		assert.ErrorIs(t, err, order.ErrOrderNotPending)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("status_check_failure_does_not_create", func(t *testing.T) {
		d := setupServiceTest(t)
		o, items := signedOrder(t, d.signer, "user-1")

		d.repo.EXPECT().GetByNumber(ctx, o.OrderNumber).Return(o, nil)
		d.repo.EXPECT().GetItems(ctx, o.ID).Return(items, nil)
		d.midtrans.EXPECT().GetStatus(ctx, o.OrderNumber).Return(nil, midtrans.ErrGatewayTimeout)

		_, err := d.svc.ContinuePayment(ctx, o.OrderNumber, "user-1")
		assert.ErrorIs(t, err, order.ErrGatewayFailed)
	})

	t.Run("other_users_order", func(t *testing.T) {
		d := setupServiceTest(t)
		o, _ := signedOrder(t, d.signer, "user-1")
		d.repo.EXPECT().GetByNumber(ctx, o.OrderNumber).Return(o, nil)

		_, err := d.svc.ContinuePayment(ctx, o.OrderNumber, "user-2")
		assert.ErrorIs(t, err, order.ErrForbidden)
	})

	t.Run("not_pending", func(t *testing.T) {
		d := setupServiceTest(t)
		o, _ := signedOrder(t, d.signer, "user-1")
		o.Status = order.StatusPaid
		d.repo.EXPECT().GetByNumber(ctx, o.OrderNumber).Return(o, nil)

		_, err := d.svc.ContinuePayment(ctx, o.OrderNumber, "user-1")
		assert.ErrorIs(t, err, order.ErrOrderNotPending)
	})

	t.Run("expired_signature_window", func(t *testing.T) {
		d := setupServiceTest(t)
		o, items := signedOrder(t, d.signer, "user-1")
		// re-sign with an expiry already in the past
		o.ExpiresAt = fixedNow.Add(-time.Minute)
		o.Signature = d.signer.Sign(signature.Payload{
			OrderNumber:   o.OrderNumber,
			Items:         []signature.Item{{ProductID: items[0].ProductID.String(), UnitPrice: 50000, Quantity: 1}},
			Subtotal:      o.Subtotal,
			Total:         o.Total,
			PaymentMethod: "gopay",
			ExpiresAt:     o.ExpiresAt,
		})

		d.repo.EXPECT().GetByNumber(ctx, o.OrderNumber).Return(o, nil)
		d.repo.EXPECT().GetItems(ctx, o.ID).Return(items, nil)

		_, err := d.svc.ContinuePayment(ctx, o.OrderNumber, "user-1")
		assert.ErrorIs(t, err, order.ErrOrderExpired)
	})

	t.Run("bad_checksum_skips_storage", func(t *testing.T) {
		d := setupServiceTest(t)
		_, err := d.svc.ContinuePayment(ctx, "DG-1767225600000ABCD-55", "user-1")
		assert.ErrorIs(t, err, order.ErrInvalidOrderNumber)
	})
}

func TestOrderService_Lookup(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		d := setupServiceTest(t)
		o, _ := signedOrder(t, d.signer, "user-1")
		d.repo.EXPECT().GetByNumber(ctx, o.OrderNumber).Return(o, nil)

		res, err := d.svc.Lookup(ctx, o.OrderNumber)
		require.NoError(t, err)
		assert.Equal(t, order.StatusPending, res.Status)
		assert.Equal(t, int64(50000), res.Total)
	})

	t.Run("not_found", func(t *testing.T) {
		d := setupServiceTest(t)
		number := newOrderNumber(t)
		d.repo.EXPECT().GetByNumber(ctx, number).Return(dbgen.Order{}, sql.ErrNoRows)

		_, err := d.svc.Lookup(ctx, number)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

func TestOrderService_ListByUser_GuestForbidden(t *testing.T) {
	d := setupServiceTest(t)
	_, _, err := d.svc.ListByUser(context.Background(), order.GuestUserID, 1, 10)
	assert.ErrorIs(t, err, order.ErrForbidden)
}

func notification(orderNumber, status string, gross string) order.MidtransNotificationRequest {
	return order.MidtransNotificationRequest{
		OrderID:           orderNumber,
		StatusCode:        "200",
		GrossAmount:       gross,
		SignatureKey:      "sig",
		TransactionStatus: status,
		TransactionID:     "trx-1",
		TransactionTime:   "2026-03-01 17:01:00",
		PaymentType:       "gopay",
	}
}

func pendingOrder(number string, total int64) dbgen.Order {
	return dbgen.Order{
		ID:          uuid.New(),
		OrderNumber: number,
		UserID:      "user-1",
		Total:       total,
		Status:      order.StatusPending,
		ExpiresAt:   fixedNow.Add(10 * time.Minute),
	}
}

// echoUpdate returns the locked row with the new status applied.
func echoUpdate(base dbgen.Order) func(context.Context, dbgen.UpdateOrderPaymentStatusParams) (dbgen.Order, error) {
	return func(_ context.Context, arg dbgen.UpdateOrderPaymentStatusParams) (dbgen.Order, error) {
		o := base
		o.Status = arg.Status
		o.PaidAt = arg.PaidAt
		o.Note = arg.Note
		return o, nil
	}
}

func TestOrderService_HandleNotification(t *testing.T) {
	ctx := context.Background()

	t.Run("settlement_marks_paid_and_writes_event", func(t *testing.T) {
		d := setupServiceTest(t)
		number := newOrderNumber(t)
		o := pendingOrder(number, 90000)
		o.PromoCode = sql.NullString{String: "DISKON10", Valid: true}

		d.midtrans.EXPECT().VerifySignature(number, "200", "90000.00", "sig").Return(true)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().GetByNumberForUpdate(ctx, number).Return(o, nil)
		d.repo.EXPECT().UpdatePaymentStatus(ctx, gomock.Any()).
			DoAndReturn(func(c context.Context, arg dbgen.UpdateOrderPaymentStatusParams) (dbgen.Order, error) {
				assert.True(t, arg.PaidAt.Valid)
				assert.Equal(t, order.FulfillmentPending, arg.FulfillmentStatus.String)
				assert.Equal(t, "trx-1", arg.TransactionID.String)
				return echoUpdate(o)(c, arg)
			})
		d.promoRep.EXPECT().IncrementUsage(ctx, "DISKON10").Return(true, nil)
		d.outbox.EXPECT().Append(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, ev dbgen.CreateOutboxEventParams) error {
				assert.Equal(t, outbox.EventOrderPaid, ev.EventType)
				assert.Equal(t, o.ID, ev.AggregateID)
				return nil
			})
		d.sqlMock.ExpectCommit()

		res, err := d.svc.HandleNotification(ctx, notification(number, "settlement", "90000.00"))

		require.NoError(t, err)
		assert.True(t, res.Applied)
		assert.Equal(t, order.StatusPending, res.From)
		assert.Equal(t, order.StatusPaid, res.To)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("replayed_notification_is_noop", func(t *testing.T) {
		d := setupServiceTest(t)
		number := newOrderNumber(t)
		o := pendingOrder(number, 90000)
		o.Status = order.StatusPaid

		d.midtrans.EXPECT().VerifySignature(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().GetByNumberForUpdate(ctx, number).Return(o, nil)
		d.sqlMock.ExpectRollback()

		res, err := d.svc.HandleNotification(ctx, notification(number, "settlement", "90000.00"))

		require.NoError(t, err)
		assert.False(t, res.Applied)
		assert.Equal(t, order.ReasonAlreadyApplied, res.Reason)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("bad_signature", func(t *testing.T) {
		d := setupServiceTest(t)
		number := newOrderNumber(t)
		d.midtrans.EXPECT().VerifySignature(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false)

		_, err := d.svc.HandleNotification(ctx, notification(number, "settlement", "90000.00"))
		assert.ErrorIs(t, err, order.ErrInvalidNotificationSignature)
	})

	t.Run("missing_fields", func(t *testing.T) {
		d := setupServiceTest(t)
		req := notification(newOrderNumber(t), "settlement", "90000.00")
		req.SignatureKey = ""

		_, err := d.svc.HandleNotification(ctx, req)
		assert.ErrorIs(t, err, order.ErrInvalidNotification)
	})

	t.Run("unknown_status", func(t *testing.T) {
		d := setupServiceTest(t)
		_, err := d.svc.HandleNotification(ctx, notification(newOrderNumber(t), "teleported", "1.00"))
		assert.ErrorIs(t, err, order.ErrInvalidNotification)
	})

	t.Run("bad_checksum", func(t *testing.T) {
		d := setupServiceTest(t)
		d.midtrans.EXPECT().VerifySignature(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true)

		_, err := d.svc.HandleNotification(ctx, notification("DG-1767225600000ABCD-55", "settlement", "1.00"))
		assert.ErrorIs(t, err, order.ErrInvalidOrderNumber)
	})

	t.Run("gross_mismatch", func(t *testing.T) {
		d := setupServiceTest(t)
		number := newOrderNumber(t)

		d.midtrans.EXPECT().VerifySignature(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().GetByNumberForUpdate(ctx, number).Return(pendingOrder(number, 90000), nil)
		d.sqlMock.ExpectRollback()

		_, err := d.svc.HandleNotification(ctx, notification(number, "settlement", "1000.00"))
		assert.ErrorIs(t, err, order.ErrGrossAmountMismatch)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("late_pending_after_paid_is_ignored", func(t *testing.T) {
		d := setupServiceTest(t)
		number := newOrderNumber(t)
		o := pendingOrder(number, 90000)
		o.Status = order.StatusPaid

		d.midtrans.EXPECT().VerifySignature(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().GetByNumberForUpdate(ctx, number).Return(o, nil)
		d.sqlMock.ExpectRollback()

		res, err := d.svc.HandleNotification(ctx, notification(number, "pending", "90000.00"))
		require.NoError(t, err)
		assert.Equal(t, order.ReasonIllegal, res.Reason)
		assert.False(t, res.Applied)
	})

	t.Run("paid_after_expiry_flags_review", func(t *testing.T) {
		d := setupServiceTest(t)
		number := newOrderNumber(t)
		o := pendingOrder(number, 90000)
		o.Status = order.StatusExpired

		d.midtrans.EXPECT().VerifySignature(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().GetByNumberForUpdate(ctx, number).Return(o, nil)
		d.repo.EXPECT().UpdatePaymentStatus(ctx, gomock.Any()).
			DoAndReturn(func(c context.Context, arg dbgen.UpdateOrderPaymentStatusParams) (dbgen.Order, error) {
				assert.Equal(t, order.StatusExpired, arg.Status, "expired order is not revived")
				assert.True(t, strings.HasPrefix(arg.Note.String, "review:"))
				return echoUpdate(o)(c, arg)
			})
		d.outbox.EXPECT().Append(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, ev dbgen.CreateOutboxEventParams) error {
				assert.Equal(t, outbox.EventOrderReviewRequired, ev.EventType)
				assert.Contains(t, string(ev.Payload), outbox.ReasonPaidAfterExpiry)
				return nil
			})
		d.sqlMock.ExpectCommit()

		res, err := d.svc.HandleNotification(ctx, notification(number, "settlement", "90000.00"))
		require.NoError(t, err)
		assert.Equal(t, order.ReasonPaidAfterExpiry, res.Reason)
		assert.False(t, res.Applied)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("settlement_past_window_on_pending_order_flags_review", func(t *testing.T) {
		d := setupServiceTest(t)
		number := newOrderNumber(t)
		o := pendingOrder(number, 90000)
		o.PromoCode = sql.NullString{String: "DISKON10", Valid: true}
		o.ExpiresAt = fixedNow.Add(-2 * time.Hour)

		d.midtrans.EXPECT().VerifySignature(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().GetByNumberForUpdate(ctx, number).Return(o, nil)
		d.repo.EXPECT().UpdatePaymentStatus(ctx, gomock.Any()).
			DoAndReturn(func(c context.Context, arg dbgen.UpdateOrderPaymentStatusParams) (dbgen.Order, error) {
				assert.Equal(t, order.StatusExpired, arg.Status)
				assert.False(t, arg.PaidAt.Valid)
				assert.Equal(t, "review:paid_after_expiry", arg.Note.String)
				return echoUpdate(o)(c, arg)
			})
		// no promo increment and no ORDER_PAID
		d.outbox.EXPECT().Append(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, ev dbgen.CreateOutboxEventParams) error {
				assert.Equal(t, outbox.EventOrderReviewRequired, ev.EventType)
				assert.Contains(t, string(ev.Payload), outbox.ReasonPaidAfterExpiry)
				return nil
			})
		d.sqlMock.ExpectCommit()

		res, err := d.svc.HandleNotification(ctx, notification(number, "settlement", "90000.00"))
		require.NoError(t, err)
		assert.Equal(t, order.ReasonPaidAfterExpiry, res.Reason)
		assert.Equal(t, order.StatusPending, res.From)
		assert.False(t, res.Applied)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("paid_after_expiry_replay_writes_nothing", func(t *testing.T) {
		d := setupServiceTest(t)
		number := newOrderNumber(t)
		o := pendingOrder(number, 90000)
		o.Status = order.StatusExpired
		o.Note = sql.NullString{String: "review:paid_after_expiry", Valid: true}

		d.midtrans.EXPECT().VerifySignature(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().GetByNumberForUpdate(ctx, number).Return(o, nil)
		d.sqlMock.ExpectRollback()

		res, err := d.svc.HandleNotification(ctx, notification(number, "settlement", "90000.00"))
		require.NoError(t, err)
		assert.Equal(t, order.ReasonPaidAfterExpiry, res.Reason)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("promo_cap_reached_keeps_paid", func(t *testing.T) {
		d := setupServiceTest(t)
		number := newOrderNumber(t)
		o := pendingOrder(number, 90000)
		o.PromoCode = sql.NullString{String: "LIMITED", Valid: true}

		d.midtrans.EXPECT().VerifySignature(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().GetByNumberForUpdate(ctx, number).Return(o, nil)
		d.repo.EXPECT().UpdatePaymentStatus(ctx, gomock.Any()).DoAndReturn(echoUpdate(o))
		d.promoRep.EXPECT().IncrementUsage(ctx, "LIMITED").Return(false, nil)

		var events []string
		d.outbox.EXPECT().Append(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, ev dbgen.CreateOutboxEventParams) error {
				events = append(events, ev.EventType)
				return nil
			}).Times(2)
		d.sqlMock.ExpectCommit()

		res, err := d.svc.HandleNotification(ctx, notification(number, "settlement", "90000.00"))
		require.NoError(t, err)
		assert.True(t, res.Applied)
		assert.Equal(t, []string{outbox.EventOrderReviewRequired, outbox.EventOrderPaid}, events)
	})

	t.Run("unknown_order_is_deferred", func(t *testing.T) {
		d := setupServiceTest(t)
		number := newOrderNumber(t)

		d.midtrans.EXPECT().VerifySignature(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true)
		for i := 0; i < 3; i++ {
			d.sqlMock.ExpectBegin()
			d.sqlMock.ExpectRollback()
		}
		d.repo.EXPECT().GetByNumberForUpdate(ctx, number).Return(dbgen.Order{}, sql.ErrNoRows).Times(3)
		d.deferred.EXPECT().Defer(ctx, number, fixedNow.Add(30*time.Second)).Return(nil)

		res, err := d.svc.HandleNotification(ctx, notification(number, "settlement", "90000.00"))
		require.NoError(t, err)
		assert.Equal(t, order.ReasonDeferred, res.Reason)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("storage_failure_is_deferred", func(t *testing.T) {
		d := setupServiceTest(t)
		number := newOrderNumber(t)

		d.midtrans.EXPECT().VerifySignature(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true)
		d.sqlMock.ExpectBegin().WillReturnError(errors.New("connection refused"))
		d.deferred.EXPECT().Defer(ctx, number, gomock.Any()).Return(nil)

		res, err := d.svc.HandleNotification(ctx, notification(number, "expire", "90000.00"))
		require.NoError(t, err)
		assert.Equal(t, order.ReasonDeferred, res.Reason)
	})
}

func TestOrderService_OverridePaymentStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("expired_to_paid", func(t *testing.T) {
		d := setupServiceTest(t)
		number := newOrderNumber(t)
		o := pendingOrder(number, 90000)
		o.Status = order.StatusExpired

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().GetByNumberForUpdate(ctx, number).Return(o, nil)
		d.repo.EXPECT().UpdatePaymentStatus(ctx, gomock.Any()).
			DoAndReturn(func(c context.Context, arg dbgen.UpdateOrderPaymentStatusParams) (dbgen.Order, error) {
				assert.Equal(t, "override: transfer manual", arg.Note.String)
				return echoUpdate(o)(c, arg)
			})
		d.outbox.EXPECT().Append(ctx, gomock.Any()).Return(nil)
		d.sqlMock.ExpectCommit()

		paid := o
		paid.Status = order.StatusPaid
		d.repo.EXPECT().GetByNumber(ctx, number).Return(paid, nil)

		res, err := d.svc.OverridePaymentStatus(ctx, number, "paid", " transfer manual ")
		require.NoError(t, err)
		assert.Equal(t, order.StatusPaid, res.Status)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("target_not_allowed", func(t *testing.T) {
		d := setupServiceTest(t)
		_, err := d.svc.OverridePaymentStatus(ctx, newOrderNumber(t), "FAILED", "x")
		assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)
	})

	t.Run("pending_to_refunded_refused", func(t *testing.T) {
		d := setupServiceTest(t)
		number := newOrderNumber(t)

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().GetByNumberForUpdate(ctx, number).Return(pendingOrder(number, 90000), nil)
		d.sqlMock.ExpectRollback()

		_, err := d.svc.OverridePaymentStatus(ctx, number, "REFUNDED", "x")
		assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)
	})
}

func TestOrderService_ExpireStale(t *testing.T) {
	ctx := context.Background()

	t.Run("expires_orders_unknown_to_processor", func(t *testing.T) {
		d := setupServiceTest(t)
		number := newOrderNumber(t)
		o := pendingOrder(number, 90000)

		d.repo.EXPECT().ListExpiredPending(ctx, fixedNow, int32(50)).Return([]string{number}, nil)
		d.midtrans.EXPECT().GetStatus(ctx, number).Return(nil, midtrans.ErrTransactionNotFound)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().GetByNumberForUpdate(ctx, number).Return(o, nil)
		d.repo.EXPECT().UpdatePaymentStatus(ctx, gomock.Any()).
			DoAndReturn(func(c context.Context, arg dbgen.UpdateOrderPaymentStatusParams) (dbgen.Order, error) {
				assert.Equal(t, order.StatusExpired, arg.Status)
				assert.False(t, arg.PaidAt.Valid)
				return echoUpdate(o)(c, arg)
			})
		d.sqlMock.ExpectCommit()

		n, err := d.svc.ExpireStale(ctx, 50)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("late_settlement_is_held_for_review", func(t *testing.T) {
		d := setupServiceTest(t)
		number := newOrderNumber(t)
		o := pendingOrder(number, 90000)
		o.ExpiresAt = fixedNow.Add(-time.Minute)

		d.repo.EXPECT().ListExpiredPending(ctx, fixedNow, int32(50)).Return([]string{number}, nil)
		d.midtrans.EXPECT().GetStatus(ctx, number).Return(&midtrans.TransactionStatus{
			OrderID:           number,
			TransactionStatus: "settlement",
			GrossAmount:       "90000.00",
		}, nil)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().GetByNumberForUpdate(ctx, number).Return(o, nil)
		d.repo.EXPECT().UpdatePaymentStatus(ctx, gomock.Any()).
			DoAndReturn(func(c context.Context, arg dbgen.UpdateOrderPaymentStatusParams) (dbgen.Order, error) {
				assert.Equal(t, order.StatusExpired, arg.Status)
				return echoUpdate(o)(c, arg)
			})
		d.outbox.EXPECT().Append(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, ev dbgen.CreateOutboxEventParams) error {
				assert.Equal(t, outbox.EventOrderReviewRequired, ev.EventType)
				return nil
			})
		d.sqlMock.ExpectCommit()

		n, err := d.svc.ExpireStale(ctx, 50)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("gateway_down_skips_order", func(t *testing.T) {
		d := setupServiceTest(t)
		number := newOrderNumber(t)

		d.repo.EXPECT().ListExpiredPending(ctx, fixedNow, int32(50)).Return([]string{number}, nil)
		d.midtrans.EXPECT().GetStatus(ctx, number).Return(nil, midtrans.ErrGatewayTimeout)

		n, err := d.svc.ExpireStale(ctx, 50)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})
}

func TestOrderService_ReconcileDeferred(t *testing.T) {
	ctx := context.Background()

	t.Run("applies_status_from_processor", func(t *testing.T) {
		d := setupServiceTest(t)
		number := newOrderNumber(t)
		o := pendingOrder(number, 90000)

		d.deferred.EXPECT().Due(ctx, fixedNow, int64(20)).Return([]string{number}, nil)
		d.midtrans.EXPECT().GetStatus(ctx, number).Return(&midtrans.TransactionStatus{
			TransactionStatus: "deny",
		}, nil)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().GetByNumberForUpdate(ctx, number).Return(o, nil)
		d.repo.EXPECT().UpdatePaymentStatus(ctx, gomock.Any()).DoAndReturn(echoUpdate(o))
		d.sqlMock.ExpectCommit()
		d.deferred.EXPECT().Clear(ctx, number).Return(nil)

		n, err := d.svc.ReconcileDeferred(ctx, 20)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("still_missing_is_requeued", func(t *testing.T) {
		d := setupServiceTest(t)
		number := newOrderNumber(t)

		d.deferred.EXPECT().Due(ctx, fixedNow, int64(20)).Return([]string{number}, nil)
		d.midtrans.EXPECT().GetStatus(ctx, number).Return(&midtrans.TransactionStatus{
			TransactionStatus: "expire",
		}, nil)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().GetByNumberForUpdate(ctx, number).Return(dbgen.Order{}, sql.ErrNoRows)
		d.sqlMock.ExpectRollback()
		d.deferred.EXPECT().Defer(ctx, number, gomock.Any()).Return(nil)

		n, err := d.svc.ReconcileDeferred(ctx, 20)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})
}

func TestOrderService_FulfillPaid(t *testing.T) {
	ctx := context.Background()

	paidOrder := func() (dbgen.Order, []dbgen.OrderItem) {
		o := pendingOrder(newOrderNumber(t), 90000)
		o.Status = order.StatusPaid
		o.CustomerFirstName = "Budi"
		o.CustomerEmail = "budi@example.com"
		items := []dbgen.OrderItem{{OrderID: o.ID, ProductID: uuid.New(), Title: "Voucher", UnitPrice: 45000, Quantity: 2}}
		return o, items
	}

	setupWithEmail := func(t *testing.T) (*serviceDeps, *emailStub) {
		d := setupServiceTest(t)
		stub := &emailStub{}
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		d.svc = order.NewService(order.Deps{
			DB:          db,
			Repo:        d.repo,
			OutboxRepo:  d.outbox,
			PromoRepo:   d.promoRep,
			PromoSvc:    d.promoSvc,
			ProductSvc:  d.product,
			MidtransSvc: d.midtrans,
			Signer:      d.signer,
			EmailSvc:    stub,
			Now:         func() time.Time { return fixedNow },
		})
		return d, stub
	}

	t.Run("delivers_keys_and_sends_email", func(t *testing.T) {
		d, mail := setupWithEmail(t)
		o, items := paidOrder()

		d.repo.EXPECT().GetByID(ctx, o.ID).Return(o, nil)
		d.repo.EXPECT().GetItems(ctx, o.ID).Return(items, nil)
		d.repo.EXPECT().SetDeliveredKeys(ctx, gomock.Any()).Return(int64(1), nil)
		d.repo.EXPECT().MarkConfirmationSent(ctx, o.ID).Return(nil)

		require.NoError(t, d.svc.FulfillPaid(ctx, o.ID))
		require.Len(t, mail.sent, 1)
		assert.Equal(t, "budi@example.com", mail.to)
		require.Len(t, mail.sent[0].Items, 1)
		assert.Len(t, mail.sent[0].Items[0].Keys, 2)
		assert.True(t, strings.HasPrefix(mail.sent[0].Items[0].Keys[0], "DGK-"))
	})

	t.Run("already_confirmed_is_noop", func(t *testing.T) {
		d, mail := setupWithEmail(t)
		o, items := paidOrder()
		o.DeliveredKeys = pqtype.NullRawMessage{
			RawMessage: []byte(`[{"product_id":"x","title":"Voucher","keys":["DGK-1"]}]`),
			Valid:      true,
		}
		o.ConfirmationSentAt = sql.NullTime{Time: fixedNow, Valid: true}

		d.repo.EXPECT().GetByID(ctx, o.ID).Return(o, nil)
		d.repo.EXPECT().GetItems(ctx, o.ID).Return(items, nil)

		require.NoError(t, d.svc.FulfillPaid(ctx, o.ID))
		assert.Empty(t, mail.sent)
	})

	t.Run("email_failure_is_retryable", func(t *testing.T) {
		d, mail := setupWithEmail(t)
		mail.err = errors.New("smtp down")
		o, items := paidOrder()

		d.repo.EXPECT().GetByID(ctx, o.ID).Return(o, nil)
		d.repo.EXPECT().GetItems(ctx, o.ID).Return(items, nil)
		d.repo.EXPECT().SetDeliveredKeys(ctx, gomock.Any()).Return(int64(1), nil)

		assert.Error(t, d.svc.FulfillPaid(ctx, o.ID))
	})

	t.Run("concurrent_delivery_uses_stored_keys", func(t *testing.T) {
		d, mail := setupWithEmail(t)
		o, items := paidOrder()
		stored := o
		stored.DeliveredKeys = pqtype.NullRawMessage{
			RawMessage: []byte(`[{"product_id":"x","title":"Voucher","keys":["DGK-FIRST"]}]`),
			Valid:      true,
		}

		d.repo.EXPECT().GetByID(ctx, o.ID).Return(o, nil)
		d.repo.EXPECT().GetItems(ctx, o.ID).Return(items, nil)
		d.repo.EXPECT().SetDeliveredKeys(ctx, gomock.Any()).Return(int64(0), nil)
		d.repo.EXPECT().GetByID(ctx, o.ID).Return(stored, nil)
		d.repo.EXPECT().MarkConfirmationSent(ctx, o.ID).Return(nil)

		require.NoError(t, d.svc.FulfillPaid(ctx, o.ID))
		require.Len(t, mail.sent, 1)
		assert.Equal(t, []string{"DGK-FIRST"}, mail.sent[0].Items[0].Keys)
	})

	t.Run("not_paid_is_skipped", func(t *testing.T) {
		d, mail := setupWithEmail(t)
		o, _ := paidOrder()
		o.Status = order.StatusRefunded

		d.repo.EXPECT().GetByID(ctx, o.ID).Return(o, nil)

		require.NoError(t, d.svc.FulfillPaid(ctx, o.ID))
		assert.Empty(t, mail.sent)
	})
}

type emailStub struct {
	to   string
	sent []email.OrderConfirmation
	err  error
}

func (e *emailStub) SendOrderConfirmation(_ context.Context, to string, data email.OrderConfirmation) error {
	if e.err != nil {
		return e.err
	}
	e.to = to
	e.sent = append(e.sent, data)
	return nil
}
