package midtrans

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go-digistore-api/internal/pkg/metrics"

	midtransgo "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"go.uber.org/zap"
)

// Processor field limits.
const (
	maxItemNameLen     = 50
	maxItemIDLen       = 50
	maxCustomerNameLen = 255
	maxEmailLen        = 255
	maxPhoneLen        = 19

	discountItemID = "DISCOUNT"
	expiryLayout   = "2006-01-02 15:04:05 -0700"
)

//go:generate mockgen -source=midtrans_service.go -destination=../mock/midtrans/midtrans_service_mock.go -package=mock
type Service interface {
	CreateTransaction(ctx context.Context, req *CreateTransactionRequest) (*CreateTransactionResponse, error)
	GetStatus(ctx context.Context, orderID string) (*TransactionStatus, error)

	// VerifySignature checks the notification signature_key, which is
	// sha512(order_id + status_code + gross_amount + server_key).
	VerifySignature(orderID, statusCode, grossAmount, signatureKey string) bool
}

// SnapClient and CoreClient are the two SDK calls the adapter makes.
type SnapClient interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtransgo.Error)
}

type CoreClient interface {
	CheckTransaction(param string) (*coreapi.TransactionStatusResponse, *midtransgo.Error)
}

type Config struct {
	ServerKey    string
	IsProduction bool
	Timeout      time.Duration
	FinishURL    string
}

type service struct {
	snap      SnapClient
	core      CoreClient
	serverKey string
	timeout   time.Duration
	finishURL string
	logger    *zap.Logger
}

func NewService(cfg Config, logger *zap.Logger) Service {
	env := midtransgo.Sandbox
	if cfg.IsProduction {
		env = midtransgo.Production
	}

	sc := &snap.Client{}
	sc.New(cfg.ServerKey, env)

	cc := &coreapi.Client{}
	cc.New(cfg.ServerKey, env)

	return NewServiceWithClients(cfg, sc, cc, logger)
}

func NewServiceWithClients(cfg Config, sc SnapClient, cc CoreClient, logger *zap.Logger) Service {
	if sc == nil || cc == nil {
		panic("midtrans clients cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &service{
		snap:      sc,
		core:      cc,
		serverKey: cfg.ServerKey,
		timeout:   cfg.Timeout,
		finishURL: cfg.FinishURL,
		logger:    logger.Named("midtrans"),
	}
}

func (s *service) CreateTransaction(ctx context.Context, req *CreateTransactionRequest) (*CreateTransactionResponse, error) {
	snapReq, err := BuildSnapRequest(req, s.finishURL)
	if err != nil {
		return nil, err
	}

	var resp *snap.Response
	err = s.call(ctx, "create_transaction", func() error {
		r, mErr := s.snap.CreateTransaction(snapReq)
		if mErr != nil {
			return sdkError(mErr)
		}
		resp = r
		return nil
	})
	if err != nil {
		s.logger.Error("create transaction failed", zap.String("order_number", req.OrderID), zap.Error(err))
		return nil, err
	}
	if resp == nil || resp.Token == "" {
		return nil, ErrGateway.Wrap(fmt.Errorf("empty snap token"))
	}

	return &CreateTransactionResponse{
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}

func (s *service) GetStatus(ctx context.Context, orderID string) (*TransactionStatus, error) {
	var resp *coreapi.TransactionStatusResponse
	err := s.call(ctx, "get_status", func() error {
		r, mErr := s.core.CheckTransaction(orderID)
		if mErr != nil {
			if mErr.StatusCode == 404 {
				return ErrTransactionNotFound
			}
			return sdkError(mErr)
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, ErrGateway.Wrap(fmt.Errorf("empty status response"))
	}
	// the status API answers 404 inside a 200 body for unknown orders
	if resp.StatusCode == "404" {
		return nil, ErrTransactionNotFound
	}

	return &TransactionStatus{
		OrderID:           resp.OrderID,
		TransactionID:     resp.TransactionID,
		TransactionStatus: resp.TransactionStatus,
		FraudStatus:       resp.FraudStatus,
		PaymentType:       resp.PaymentType,
		StatusCode:        resp.StatusCode,
		GrossAmount:       resp.GrossAmount,
	}, nil
}

func (s *service) VerifySignature(orderID, statusCode, grossAmount, signatureKey string) bool {
	if s.serverKey == "" || signatureKey == "" {
		return false
	}
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + s.serverKey))
	expected := hex.EncodeToString(sum[:])
	got := strings.ToLower(strings.TrimSpace(signatureKey))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}

// call runs an SDK call under the configured timeout. The SDK itself is not
// context aware, so a timed out call is abandoned rather than cancelled.
func (s *service) call(ctx context.Context, op string, fn func() error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan error, 1)
	go func() { done <- fn() }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ErrGatewayTimeout.Wrap(ctx.Err())
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.GatewayLatency.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())
	return err
}

func sdkError(e *midtransgo.Error) error {
	return ErrGateway.Wrap(fmt.Errorf("midtrans %d: %s", e.StatusCode, e.Message))
}

// BuildSnapRequest maps an order onto the Snap payload. The discount goes in
// as a negative line so the processor's own item sum equals gross_amount.
func BuildSnapRequest(req *CreateTransactionRequest, finishURL string) (*snap.Request, error) {
	items := make([]midtransgo.ItemDetails, 0, len(req.Items)+1)
	var sum int64
	for _, it := range req.Items {
		items = append(items, midtransgo.ItemDetails{
			ID:    truncate(it.ID, maxItemIDLen),
			Name:  truncate(it.Name, maxItemNameLen),
			Price: it.Price,
			Qty:   it.Qty,
		})
		sum += it.Price * int64(it.Qty)
	}

	if req.Discount > 0 {
		name := "Diskon"
		if req.PromoCode != "" {
			name = "Diskon " + req.PromoCode
		}
		items = append(items, midtransgo.ItemDetails{
			ID:    discountItemID,
			Name:  truncate(name, maxItemNameLen),
			Price: -req.Discount,
			Qty:   1,
		})
		sum -= req.Discount
	}

	if sum != req.GrossAmount {
		return nil, ErrGrossMismatch.Wrap(fmt.Errorf("items sum %d, gross %d", sum, req.GrossAmount))
	}

	snapReq := &snap.Request{
		TransactionDetails: midtransgo.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.GrossAmount,
		},
		Items: &items,
	}

	if req.Customer != nil {
		snapReq.CustomerDetail = &midtransgo.CustomerDetails{
			FName: truncate(req.Customer.FirstName, maxCustomerNameLen),
			LName: truncate(req.Customer.LastName, maxCustomerNameLen),
			Email: truncate(req.Customer.Email, maxEmailLen),
			Phone: truncate(req.Customer.Phone, maxPhoneLen),
		}
	}

	if finishURL != "" {
		snapReq.Callbacks = &snap.Callbacks{Finish: finishURL}
	}

	if req.PaymentMethod != "" {
		snapReq.EnabledPayments = []snap.SnapPaymentType{snap.SnapPaymentType(req.PaymentMethod)}
	}

	if !req.ExpiresAt.IsZero() {
		minutes := int64(time.Until(req.ExpiresAt).Round(time.Minute) / time.Minute)
		if minutes < 1 {
			minutes = 1
		}
		snapReq.Expiry = &snap.ExpiryDetails{
			StartTime: time.Now().Format(expiryLayout),
			Unit:      "minute",
			Duration:  minutes,
		}
	}

	return snapReq, nil
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max])
}
