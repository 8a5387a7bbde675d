package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-digistore-api/internal/email"
	"go-digistore-api/internal/midtrans"
	"go-digistore-api/internal/outbox"
	"go-digistore-api/internal/pkg/logger"
	"go-digistore-api/internal/pkg/metrics"
	"go-digistore-api/internal/pkg/money"
	"go-digistore-api/internal/pkg/orderno"
	"go-digistore-api/internal/product"
	"go-digistore-api/internal/promo"
	"go-digistore-api/internal/shared/database/dbgen"
	"go-digistore-api/internal/shared/database/helper"
	"go-digistore-api/internal/signature"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// GuestUserID is stored on orders placed without a session.
	GuestUserID = "guest"

	defaultPrefix        = "DG"
	defaultTTL           = 15 * time.Minute
	defaultLookupRetries = 3
	defaultLookupBackoff = 200 * time.Millisecond
	defaultDeferDelay    = 30 * time.Second
)

//go:generate mockgen -source=order_service.go -destination=../mock/order/order_service_mock.go -package=mock
type Service interface {
	// Customer Actions
	Checkout(ctx context.Context, userID string, req CheckoutRequest) (CheckoutResponse, error)
	ContinuePayment(ctx context.Context, orderNumber string, userID string) (PaymentResponse, error)
	Lookup(ctx context.Context, orderNumber string) (OrderStatusResponse, error)
	Detail(ctx context.Context, orderNumber string, userID string) (OrderResponse, error)
	ListByUser(ctx context.Context, userID string, page, limit int) ([]OrderResponse, int64, error)

	// Payment reconciliation
	HandleNotification(ctx context.Context, req MidtransNotificationRequest) (TransitionResult, error)
	ReconcileByStatus(ctx context.Context, orderNumber string) (TransitionResult, error)
	ReconcileDeferred(ctx context.Context, limit int64) (int, error)
	ExpireStale(ctx context.Context, limit int32) (int, error)
	FulfillPaid(ctx context.Context, orderID uuid.UUID) error

	// Admin Actions
	ListAdmin(ctx context.Context, status string, page, limit int) ([]OrderAdminResponse, int64, error)
	OverridePaymentStatus(ctx context.Context, orderNumber string, target string, note string) (OrderResponse, error)
}

type Deps struct {
	DB          *sql.DB
	Repo        Repository
	OutboxRepo  outbox.Repository
	PromoRepo   promo.Repository
	PromoSvc    promo.Service
	ProductSvc  product.Service
	MidtransSvc midtrans.Service
	Signer      *signature.Signer
	Deferred    DeferredQueue
	EmailSvc    email.Service
	Logger      *zap.Logger
	Now         func() time.Time

	OrderPrefix   string
	TTL           time.Duration
	LookupRetries int
	LookupBackoff time.Duration
	DeferDelay    time.Duration
}

type service struct {
	db          *sql.DB
	repo        Repository
	outboxRepo  outbox.Repository
	promoRepo   promo.Repository
	promoSvc    promo.Service
	productSvc  product.Service
	midtransSvc midtrans.Service
	signer      *signature.Signer
	deferred    DeferredQueue
	emailSvc    email.Service
	logger      *zap.Logger
	now         func() time.Time

	prefix        string
	ttl           time.Duration
	lookupRetries int
	lookupBackoff time.Duration
	deferDelay    time.Duration
}

func NewService(deps Deps) Service {
	// 1. Validasi Dependencies
	if deps.DB == nil {
		panic("db cannot be nil")
	}
	if deps.Repo == nil {
		panic("order repository cannot be nil")
	}
	if deps.OutboxRepo == nil {
		panic("outbox repository cannot be nil")
	}
	if deps.PromoRepo == nil || deps.PromoSvc == nil {
		panic("promo dependencies cannot be nil")
	}
	if deps.ProductSvc == nil {
		panic("product service cannot be nil")
	}
	if deps.MidtransSvc == nil {
		panic("midtrans service cannot be nil")
	}
	if deps.Signer == nil {
		panic("order signer cannot be nil")
	}
	if deps.EmailSvc == nil {
		deps.EmailSvc = email.NewNoopService()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	// 2. Default tuning
	if deps.OrderPrefix == "" {
		deps.OrderPrefix = defaultPrefix
	}
	if !orderno.ValidPrefix(deps.OrderPrefix) {
		panic("order prefix must be 2-8 uppercase letters")
	}
	if deps.TTL <= 0 {
		deps.TTL = defaultTTL
	}
	if deps.LookupRetries <= 0 {
		deps.LookupRetries = defaultLookupRetries
	}
	if deps.LookupBackoff <= 0 {
		deps.LookupBackoff = defaultLookupBackoff
	}
	if deps.DeferDelay <= 0 {
		deps.DeferDelay = defaultDeferDelay
	}

	return &service{
		db:            deps.DB,
		repo:          deps.Repo,
		outboxRepo:    deps.OutboxRepo,
		promoRepo:     deps.PromoRepo,
		promoSvc:      deps.PromoSvc,
		productSvc:    deps.ProductSvc,
		midtransSvc:   deps.MidtransSvc,
		signer:        deps.Signer,
		deferred:      deps.Deferred,
		emailSvc:      deps.EmailSvc,
		logger:        deps.Logger,
		now:           deps.Now,
		prefix:        deps.OrderPrefix,
		ttl:           deps.TTL,
		lookupRetries: deps.LookupRetries,
		lookupBackoff: deps.LookupBackoff,
		deferDelay:    deps.DeferDelay,
	}
}

type pricedLine struct {
	productID uuid.UUID
	title     string
	unitPrice int64
	quantity  int32
	isFree    bool
}

func (s *service) Checkout(ctx context.Context, userID string, req CheckoutRequest) (CheckoutResponse, error) {
	if userID == "" {
		userID = GuestUserID
	}
	log := s.logger.With(zap.String("user_id", userID))

	// 1. Validasi input
	lines, err := mergeLines(req.Items)
	if err != nil {
		return CheckoutResponse{}, err
	}
	if req.Customer.Email == "" {
		return CheckoutResponse{}, ErrInvalidRequest
	}

	// 2. Harga dari katalog, bukan dari client
	priced, err := s.priceLines(ctx, log, lines)
	if err != nil {
		metrics.CheckoutTotal.WithLabelValues("rejected").Inc()
		return CheckoutResponse{}, err
	}

	moneyItems := make([]money.Item, 0, len(priced))
	for _, l := range priced {
		moneyItems = append(moneyItems, money.Item{UnitPrice: l.unitPrice, Quantity: l.quantity, IsFree: l.isFree})
	}

	// 3. Promo divalidasi ulang di server
	var (
		mp        *money.Promo
		promoCode string
	)
	if code := promo.NormalizeCode(req.PromoCode); code != "" {
		subtotal := money.Calculate(moneyItems, nil).Subtotal
		res, err := s.promoSvc.Validate(ctx, code, subtotal)
		if err != nil {
			metrics.CheckoutTotal.WithLabelValues("rejected").Inc()
			return CheckoutResponse{}, err
		}
		mp = promo.ToMoneyPromo(res.Promo)
		promoCode = res.Promo.Code
	}
	totals := money.Calculate(moneyItems, mp)

	// 4. Nomor order, expiry, signature
	now := s.now()
	orderNumber, err := orderno.Generate(s.prefix, now)
	if err != nil {
		log.Error("failed to generate order number", zap.Error(err))
		return CheckoutResponse{}, ErrOrderFailed.Wrap(err)
	}
	log = log.With(zap.String("order_number", orderNumber))
	expiresAt := now.Add(s.ttl)

	sigItems := make([]signature.Item, 0, len(priced))
	for _, l := range priced {
		sigItems = append(sigItems, signature.Item{
			ProductID: l.productID.String(),
			UnitPrice: l.unitPrice,
			Quantity:  l.quantity,
			IsFree:    l.isFree,
		})
	}
	sig := s.signer.Sign(signature.Payload{
		OrderNumber:    orderNumber,
		Items:          sigItems,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		PromoCode:      promoCode,
		Total:          totals.Total,
		PaymentMethod:  req.PaymentMethod,
		ExpiresAt:      expiresAt,
	})

	// 5. Persist PENDING sebelum menghubungi payment gateway
	order, items, err := s.persistOrder(ctx, log, dbgen.CreateOrderParams{
		OrderNumber:       orderNumber,
		UserID:            userID,
		CustomerFirstName: req.Customer.FirstName,
		CustomerLastName:  req.Customer.LastName,
		CustomerEmail:     req.Customer.Email,
		CustomerPhone:     req.Customer.Phone,
		Subtotal:          totals.Subtotal,
		DiscountAmount:    totals.DiscountAmount,
		PromoCode:         helper.RawStringToNull(promoCode),
		Total:             totals.Total,
		Status:            StatusPending,
		PaymentMethod:     helper.RawStringToNull(req.PaymentMethod),
		Signature:         sig,
		ExpiresAt:         expiresAt,
	}, priced)
	if err != nil {
		return CheckoutResponse{}, err
	}

	// 6. Verifikasi ulang dari data yang tersimpan
	if err := s.verifyStored(log, order, items); err != nil {
		metrics.CheckoutTotal.WithLabelValues("tampered").Inc()
		return CheckoutResponse{}, err
	}

	// Nothing to charge: settle right away.
	if order.Total == 0 {
		res, err := s.applyTransition(ctx, transitionInput{
			OrderNumber: order.OrderNumber,
			Target:      StatusPaid,
			Gross:       0,
			HasGross:    true,
			PaymentType: freePaymentType,
		}, false)
		if err != nil {
			return CheckoutResponse{}, err
		}
		log.Info("zero total order settled", zap.Bool("applied", res.Applied))
		metrics.CheckoutTotal.WithLabelValues("ok").Inc()
		order.Status = StatusPaid
		return CheckoutResponse{Order: mapOrderToResponse(order, items)}, nil
	}

	// 7. Payment gateway
	payment, err := s.createPayment(ctx, log, order, items)
	if err != nil {
		metrics.CheckoutTotal.WithLabelValues("gateway_error").Inc()
		return CheckoutResponse{}, err
	}

	order.SnapToken = helper.RawStringToNull(payment.SnapToken)
	order.SnapRedirectUrl = helper.RawStringToNull(payment.RedirectURL)

	metrics.CheckoutTotal.WithLabelValues("ok").Inc()
	log.Info("checkout success", zap.Int64("total", order.Total))

	return CheckoutResponse{
		Order:   mapOrderToResponse(order, items),
		Payment: payment,
	}, nil
}

// mergeLines validates the raw cart and folds repeated products into one
// line, keeping first-seen order.
func mergeLines(in []CheckoutItemRequest) ([]CheckoutItemRequest, error) {
	if len(in) == 0 {
		return nil, ErrInvalidRequest
	}

	out := make([]CheckoutItemRequest, 0, len(in))
	index := make(map[uuid.UUID]int, len(in))
	for _, it := range in {
		if it.Quantity <= 0 {
			return nil, ErrInvalidRequest
		}
		id, err := uuid.Parse(it.ProductID)
		if err != nil {
			return nil, ErrInvalidRequest
		}
		it.ProductID = id.String()

		if i, ok := index[id]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		index[id] = len(out)
		out = append(out, it)
	}
	return out, nil
}

func (s *service) priceLines(ctx context.Context, log *zap.Logger, lines []CheckoutItemRequest) ([]pricedLine, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, uuid.MustParse(l.ProductID))
	}

	catalog, err := s.productSvc.Catalog(ctx, ids)
	if err != nil {
		log.Error("failed to load catalog", zap.Error(err))
		return nil, ErrOrderFailed.Wrap(err)
	}

	out := make([]pricedLine, 0, len(lines))
	for i, l := range lines {
		p, ok := catalog[ids[i]]
		if !ok || !p.IsActive || p.Stock < l.Quantity {
			return nil, ErrItemUnavailable.Wrap(fmt.Errorf("product %s", l.ProductID))
		}

		unit := p.Price
		if p.IsBonus {
			unit = 0
		}
		if l.Price != nil && *l.Price != unit {
			log.Warn("client price differs from catalog",
				zap.String("product_id", l.ProductID),
				zap.Int64("client_price", *l.Price),
				zap.Int64("catalog_price", unit),
			)
		}

		out = append(out, pricedLine{
			productID: p.ID,
			title:     p.Name,
			unitPrice: unit,
			quantity:  l.Quantity,
			isFree:    p.IsBonus,
		})
	}
	return out, nil
}

func (s *service) persistOrder(ctx context.Context, log *zap.Logger, arg dbgen.CreateOrderParams, lines []pricedLine) (dbgen.Order, []dbgen.OrderItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return dbgen.Order{}, nil, ErrOrderFailed.Wrap(err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
			log.Warn("transaction rolled back")
		}
	}()

	qtx := s.repo.WithTx(tx)

	order, err := qtx.CreateOrder(ctx, arg)
	if err != nil {
		log.Error("failed to create order record", zap.Error(err))
		return dbgen.Order{}, nil, ErrOrderFailed.Wrap(err)
	}

	items := make([]dbgen.OrderItem, 0, len(lines))
	for i, l := range lines {
		p := dbgen.CreateOrderItemParams{
			OrderID:   order.ID,
			Position:  int32(i),
			ProductID: l.productID,
			Title:     l.title,
			UnitPrice: l.unitPrice,
			Quantity:  l.quantity,
			IsFree:    l.isFree,
		}
		if err := qtx.CreateOrderItem(ctx, p); err != nil {
			log.Error("failed to create order item", zap.String("product_id", l.productID.String()), zap.Error(err))
			return dbgen.Order{}, nil, ErrOrderFailed.Wrap(err)
		}
		items = append(items, dbgen.OrderItem{
			OrderID:   p.OrderID,
			Position:  p.Position,
			ProductID: p.ProductID,
			Title:     p.Title,
			UnitPrice: p.UnitPrice,
			Quantity:  p.Quantity,
			IsFree:    p.IsFree,
		})
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return dbgen.Order{}, nil, ErrOrderFailed.Wrap(err)
	}
	committed = true

	return order, items, nil
}

func signaturePayload(o dbgen.Order, items []dbgen.OrderItem) signature.Payload {
	sigItems := make([]signature.Item, 0, len(items))
	for _, it := range items {
		sigItems = append(sigItems, signature.Item{
			ProductID: it.ProductID.String(),
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			IsFree:    it.IsFree,
		})
	}
	return signature.Payload{
		OrderNumber:    o.OrderNumber,
		Items:          sigItems,
		Subtotal:       o.Subtotal,
		DiscountAmount: o.DiscountAmount,
		PromoCode:      o.PromoCode.String,
		Total:          o.Total,
		PaymentMethod:  o.PaymentMethod.String,
		ExpiresAt:      o.ExpiresAt,
	}
}

// verifyStored must pass before any processor transaction is created.
func (s *service) verifyStored(log *zap.Logger, o dbgen.Order, items []dbgen.OrderItem) error {
	err := s.signer.Verify(signaturePayload(o, items), o.Signature, s.now())
	switch {
	case err == nil:
		return nil
	case errors.Is(err, signature.ErrOrderExpired):
		return ErrOrderExpired
	default:
		log.Warn("order signature mismatch",
			logger.SecurityEvent(),
			zap.String("signature", logger.ShortSig(o.Signature)),
		)
		return ErrOrderTampered
	}
}

func toGatewayRequest(o dbgen.Order, items []dbgen.OrderItem) *midtrans.CreateTransactionRequest {
	lines := make([]midtrans.ItemDetail, 0, len(items))
	for _, it := range items {
		price := it.UnitPrice
		if it.IsFree {
			price = 0
		}
		lines = append(lines, midtrans.ItemDetail{
			ID:    it.ProductID.String(),
			Name:  it.Title,
			Price: price,
			Qty:   it.Quantity,
		})
	}

	return &midtrans.CreateTransactionRequest{
		OrderID:     o.OrderNumber,
		GrossAmount: o.Total,
		Discount:    o.DiscountAmount,
		PromoCode:   o.PromoCode.String,
		Items:       lines,
		Customer: &midtrans.CustomerDetails{
			FirstName: o.CustomerFirstName,
			LastName:  o.CustomerLastName,
			Email:     o.CustomerEmail,
			Phone:     o.CustomerPhone,
		},
		PaymentMethod: o.PaymentMethod.String,
		ExpiresAt:     o.ExpiresAt,
	}
}

// createPayment opens the processor transaction and stores its token. The
// order number is the processor's idempotency key, so this is never called
// for an order that already has a token.
func (s *service) createPayment(ctx context.Context, log *zap.Logger, o dbgen.Order, items []dbgen.OrderItem) (PaymentResponse, error) {
	resp, err := s.midtransSvc.CreateTransaction(ctx, toGatewayRequest(o, items))
	if err != nil {
		// order stays PENDING and expires on its own
		log.Error("failed to create midtrans transaction", zap.Error(err))
		return PaymentResponse{}, ErrGatewayFailed.Wrap(err)
	}

	n, err := s.repo.UpdateSnapToken(ctx, dbgen.UpdateOrderSnapTokenParams{
		ID:              o.ID,
		SnapToken:       helper.RawStringToNull(resp.Token),
		SnapRedirectUrl: helper.RawStringToNull(resp.RedirectURL),
	})
	if err != nil {
		log.Error("failed to store snap token", zap.Error(err))
		return PaymentResponse{}, ErrOrderFailed.Wrap(err)
	}
	if n == 0 {
		log.Warn("snap token already stored, keeping the first one")
	}

	return PaymentResponse{SnapToken: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

func (s *service) ContinuePayment(ctx context.Context, orderNumber string, userID string) (PaymentResponse, error) {
	o, err := s.loadOwned(ctx, orderNumber, userID)
	if err != nil {
		return PaymentResponse{}, err
	}
	log := s.logger.With(zap.String("order_number", o.OrderNumber), zap.String("user_id", userID))

	if o.Status != StatusPending {
		return PaymentResponse{}, ErrOrderNotPending
	}

	items, err := s.repo.GetItems(ctx, o.ID)
	if err != nil {
		return PaymentResponse{}, ErrOrderFailed.Wrap(err)
	}

	if err := s.verifyStored(log, o, items); err != nil {
		return PaymentResponse{}, err
	}

	if o.SnapToken.Valid && o.SnapToken.String != "" {
		return PaymentResponse{
			SnapToken:   o.SnapToken.String,
			RedirectURL: o.SnapRedirectUrl.String,
		}, nil
	}

	// An earlier CreateTransaction can time out on our side after the
	// processor accepted it. Only a confirmed miss opens a new one.
	st, err := s.midtransSvc.GetStatus(ctx, o.OrderNumber)
	switch {
	case errors.Is(err, midtrans.ErrTransactionNotFound):
		return s.createPayment(ctx, log, o, items)
	case err != nil:
		log.Error("failed to check midtrans transaction", zap.Error(err))
		return PaymentResponse{}, ErrGatewayFailed.Wrap(err)
	}

	if target, ok := MapGatewayStatus(st.TransactionStatus, st.FraudStatus); ok && target != StatusPending {
		res, err := s.applyGatewayStatus(ctx, o.OrderNumber, st)
		if err != nil {
			return PaymentResponse{}, err
		}
		log.Info("processor already settled the order", zap.String("to", res.To), zap.String("reason", res.Reason))
		return PaymentResponse{}, ErrOrderNotPending
	}

	log.Warn("processor holds a transaction but no snap token is stored",
		zap.String("transaction_status", st.TransactionStatus),
	)
	return PaymentResponse{}, ErrPaymentInProgress
}

func (s *service) Lookup(ctx context.Context, orderNumber string) (OrderStatusResponse, error) {
	o, err := s.loadByNumber(ctx, orderNumber)
	if err != nil {
		return OrderStatusResponse{}, err
	}

	return OrderStatusResponse{
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		Total:       o.Total,
		ExpiresAt:   o.ExpiresAt,
		PaidAt:      helper.NullTimeToPtr(o.PaidAt),
	}, nil
}

func (s *service) Detail(ctx context.Context, orderNumber string, userID string) (OrderResponse, error) {
	o, err := s.loadOwned(ctx, orderNumber, userID)
	if err != nil {
		return OrderResponse{}, err
	}

	items, err := s.repo.GetItems(ctx, o.ID)
	if err != nil {
		return OrderResponse{}, ErrOrderFailed.Wrap(err)
	}

	return mapOrderToResponse(o, items), nil
}

func (s *service) ListByUser(ctx context.Context, userID string, page, limit int) ([]OrderResponse, int64, error) {
	if userID == "" || userID == GuestUserID {
		return nil, 0, ErrForbidden
	}
	page, limit = normalizePage(page, limit)

	rows, err := s.repo.ListByUser(ctx, dbgen.ListOrdersByUserParams{
		UserID: userID,
		Limit:  int32(limit),
		Offset: int32((page - 1) * limit),
	})
	if err != nil {
		s.logger.Error("failed to list orders", zap.String("user_id", userID), zap.Error(err))
		return nil, 0, ErrOrderFailed.Wrap(err)
	}

	res := make([]OrderResponse, 0, len(rows))
	var total int64
	for _, r := range rows {
		total = r.TotalCount
		res = append(res, mapOrderToResponse(dbgen.Order{
			ID:                r.ID,
			OrderNumber:       r.OrderNumber,
			Subtotal:          r.Subtotal,
			DiscountAmount:    r.DiscountAmount,
			PromoCode:         r.PromoCode,
			Total:             r.Total,
			Status:            r.Status,
			PaymentMethod:     r.PaymentMethod,
			PaymentType:       r.PaymentType,
			FulfillmentStatus: r.FulfillmentStatus,
			ExpiresAt:         r.ExpiresAt,
			PaidAt:            r.PaidAt,
			CreatedAt:         r.CreatedAt,
		}, nil))
	}

	return res, total, nil
}

func (s *service) ListAdmin(ctx context.Context, status string, page, limit int) ([]OrderAdminResponse, int64, error) {
	page, limit = normalizePage(page, limit)

	var statusArg sql.NullString
	if status != "" && status != "ALL" {
		statusArg = sql.NullString{String: status, Valid: true}
	}

	rows, err := s.repo.ListAdmin(ctx, dbgen.ListOrdersAdminParams{
		Limit:  int32(limit),
		Offset: int32((page - 1) * limit),
		Status: statusArg,
	})
	if err != nil {
		s.logger.Error("failed to list admin orders", zap.Error(err))
		return nil, 0, ErrOrderFailed.Wrap(err)
	}

	res := make([]OrderAdminResponse, 0, len(rows))
	var total int64
	for _, r := range rows {
		total = r.TotalCount
		res = append(res, OrderAdminResponse{
			OrderResponse: mapOrderToResponse(dbgen.Order{
				ID:                r.ID,
				OrderNumber:       r.OrderNumber,
				Subtotal:          r.Subtotal,
				DiscountAmount:    r.DiscountAmount,
				PromoCode:         r.PromoCode,
				Total:             r.Total,
				Status:            r.Status,
				PaymentMethod:     r.PaymentMethod,
				PaymentType:       r.PaymentType,
				FulfillmentStatus: r.FulfillmentStatus,
				ExpiresAt:         r.ExpiresAt,
				PaidAt:            r.PaidAt,
				CreatedAt:         r.CreatedAt,
			}, nil),
			UserID:        r.UserID,
			CustomerEmail: r.CustomerEmail,
			TransactionID: r.TransactionID.String,
			Note:          r.Note.String,
		})
	}

	return res, total, nil
}

// loadByNumber rejects forged or mistyped numbers before touching storage.
func (s *service) loadByNumber(ctx context.Context, orderNumber string) (dbgen.Order, error) {
	if !orderno.Verify(orderNumber) {
		return dbgen.Order{}, ErrInvalidOrderNumber
	}

	o, err := s.repo.GetByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dbgen.Order{}, ErrOrderNotFound
		}
		return dbgen.Order{}, ErrOrderFailed.Wrap(err)
	}
	return o, nil
}

func (s *service) loadOwned(ctx context.Context, orderNumber string, userID string) (dbgen.Order, error) {
	o, err := s.loadByNumber(ctx, orderNumber)
	if err != nil {
		return dbgen.Order{}, err
	}
	// guest orders are reachable by whoever holds the order number
	if o.UserID != GuestUserID && o.UserID != userID {
		return dbgen.Order{}, ErrForbidden
	}
	return o, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

// Helper Mapper
func mapOrderToResponse(o dbgen.Order, items []dbgen.OrderItem) OrderResponse {
	res := OrderResponse{
		ID:                o.ID.String(),
		OrderNumber:       o.OrderNumber,
		Status:            o.Status,
		Subtotal:          o.Subtotal,
		DiscountAmount:    o.DiscountAmount,
		PromoCode:         helper.NullStringToPtr(o.PromoCode),
		Total:             o.Total,
		PaymentMethod:     helper.NullStringToPtr(o.PaymentMethod),
		PaymentType:       helper.NullStringToPtr(o.PaymentType),
		FulfillmentStatus: helper.NullStringToPtr(o.FulfillmentStatus),
		ExpiresAt:         o.ExpiresAt,
		PaidAt:            helper.NullTimeToPtr(o.PaidAt),
		CreatedAt:         o.CreatedAt,
		SnapToken:         helper.NullStringToPtr(o.SnapToken),
		SnapRedirectUrl:   helper.NullStringToPtr(o.SnapRedirectUrl),
	}

	for _, item := range items {
		sub := item.UnitPrice * int64(item.Quantity)
		if item.IsFree {
			sub = 0
		}
		res.Items = append(res.Items, OrderItemResponse{
			ProductID: item.ProductID.String(),
			Title:     item.Title,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			IsFree:    item.IsFree,
			Subtotal:  sub,
		})
	}
	return res
}
