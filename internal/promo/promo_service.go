package promo

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-digistore-api/internal/pkg/apperror"
	"go-digistore-api/internal/pkg/money"
	"go-digistore-api/internal/shared/database/dbgen"
	"go-digistore-api/internal/shared/database/helper"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const pqUniqueViolation = "23505"

//go:generate mockgen -source=promo_service.go -destination=../mock/promo/promo_service_mock.go -package=mock
type Service interface {
	// Validate runs every promo rule against a cart subtotal. It never
	// touches used_count; usage is consumed only when an order is paid.
	Validate(ctx context.Context, code string, cartSubtotal int64) (ValidateResult, error)
	Apply(ctx context.Context, req ApplyPromoRequest) (ApplyPromoResponse, error)

	// Admin
	Create(ctx context.Context, req CreatePromoRequest) (PromoResponse, error)
	SetActive(ctx context.Context, code string, active bool) (PromoResponse, error)
	List(ctx context.Context, page int, limit int) ([]PromoResponse, error)
	GetByCode(ctx context.Context, code string) (PromoResponse, error)
}

type Deps struct {
	Repo   Repository
	Logger *zap.Logger
	Now    func() time.Time
}

type service struct {
	repo     Repository
	logger   *zap.Logger
	now      func() time.Time
	validate *validator.Validate
}

func NewService(deps Deps) Service {
	if deps.Repo == nil {
		panic("promo repository cannot be nil")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &service{
		repo:     deps.Repo,
		logger:   deps.Logger,
		now:      deps.Now,
		validate: validator.New(),
	}
}

// NormalizeCode is the single place codes are canonicalised; storage keeps
// them uppercase.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ToMoneyPromo adapts a stored promo to the calculator's input.
func ToMoneyPromo(p dbgen.Promo) *money.Promo {
	mp := &money.Promo{DiscountPercent: p.DiscountPercent}
	if p.MaxDiscount.Valid {
		v := p.MaxDiscount.Int64
		mp.MaxDiscount = &v
	}
	return mp
}

func (s *service) Validate(ctx context.Context, code string, cartSubtotal int64) (ValidateResult, error) {
	code = NormalizeCode(code)
	logger := s.logger.With(zap.String("promo_code", code))

	if code == "" {
		return ValidateResult{}, ErrPromoNotFound
	}

	p, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ValidateResult{}, ErrPromoNotFound
		}
		logger.Error("failed to load promo", zap.Error(err))
		return ValidateResult{}, ErrPromoFailed.Wrap(err)
	}

	if err := s.check(p, cartSubtotal); err != nil {
		logger.Info("promo rejected", zap.Error(err), zap.Int64("cart_subtotal", cartSubtotal))
		return ValidateResult{}, err
	}

	discount := money.Discount(cartSubtotal, ToMoneyPromo(p))
	return ValidateResult{
		Promo:          p,
		DiscountAmount: discount,
		FinalTotal:     money.Payable(cartSubtotal, discount),
	}, nil
}

// check applies the rejection rules in a fixed order so the caller always
// sees the same reason for the same promo state.
func (s *service) check(p dbgen.Promo, cartSubtotal int64) error {
	if !p.IsActive {
		return ErrPromoInactive
	}
	if p.ExpiresAt.Valid && s.now().After(p.ExpiresAt.Time) {
		return ErrPromoExpired
	}
	if p.MaxUsage > 0 && p.UsedCount >= p.MaxUsage {
		return ErrPromoUsageLimit
	}
	if cartSubtotal < p.MinPurchase {
		return ErrPromoMinPurchase
	}
	return nil
}

func (s *service) Apply(ctx context.Context, req ApplyPromoRequest) (ApplyPromoResponse, error) {
	res, err := s.Validate(ctx, req.Code, req.CartTotal)
	if err != nil {
		return ApplyPromoResponse{}, err
	}

	return ApplyPromoResponse{
		Valid:           true,
		PromoID:         res.Promo.ID.String(),
		Code:            res.Promo.Code,
		DiscountPercent: res.Promo.DiscountPercent,
		DiscountAmount:  res.DiscountAmount,
		FinalTotal:      res.FinalTotal,
	}, nil
}

func (s *service) Create(ctx context.Context, req CreatePromoRequest) (PromoResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return PromoResponse{}, apperror.MapValidationError(err)
	}

	isActive := helper.BoolPtrValue(req.IsActive, true)
	var expiresAt sql.NullTime
	if req.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *req.ExpiresAt, Valid: true}
	}

	p, err := s.repo.Create(ctx, dbgen.CreatePromoParams{
		Code:            NormalizeCode(req.Code),
		Description:     strings.TrimSpace(req.Description),
		DiscountPercent: req.DiscountPercent,
		MaxDiscount:     helper.Int64ToNull(req.MaxDiscount),
		MinPurchase:     req.MinPurchase,
		MaxUsage:        req.MaxUsage,
		ExpiresAt:       expiresAt,
		IsActive:        isActive,
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return PromoResponse{}, ErrPromoCodeTaken
		}
		s.logger.Error("failed to create promo", zap.String("promo_code", req.Code), zap.Error(err))
		return PromoResponse{}, ErrPromoFailed.Wrap(err)
	}

	s.logger.Info("promo created", zap.String("promo_code", p.Code))
	return toResponse(p), nil
}

func (s *service) SetActive(ctx context.Context, code string, active bool) (PromoResponse, error) {
	p, err := s.repo.SetActive(ctx, dbgen.SetPromoActiveParams{
		Code:     NormalizeCode(code),
		IsActive: active,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PromoResponse{}, ErrPromoNotFound
		}
		return PromoResponse{}, ErrPromoFailed.Wrap(err)
	}

	s.logger.Info("promo toggled", zap.String("promo_code", p.Code), zap.Bool("is_active", active))
	return toResponse(p), nil
}

func (s *service) List(ctx context.Context, page int, limit int) ([]PromoResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	rows, err := s.repo.List(ctx, dbgen.ListPromosParams{
		Limit:  int32(limit),
		Offset: int32((page - 1) * limit),
	})
	if err != nil {
		return nil, ErrPromoFailed.Wrap(err)
	}

	res := make([]PromoResponse, 0, len(rows))
	for _, p := range rows {
		res = append(res, toResponse(p))
	}
	return res, nil
}

func (s *service) GetByCode(ctx context.Context, code string) (PromoResponse, error) {
	p, err := s.repo.GetByCode(ctx, NormalizeCode(code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PromoResponse{}, ErrPromoNotFound
		}
		return PromoResponse{}, ErrPromoFailed.Wrap(err)
	}
	return toResponse(p), nil
}

func toResponse(p dbgen.Promo) PromoResponse {
	res := PromoResponse{
		ID:              p.ID.String(),
		Code:            p.Code,
		Description:     p.Description,
		DiscountPercent: p.DiscountPercent,
		MinPurchase:     p.MinPurchase,
		MaxUsage:        p.MaxUsage,
		UsedCount:       p.UsedCount,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
	}
	res.MaxDiscount = helper.NullInt64ToPtr(p.MaxDiscount)
	res.ExpiresAt = helper.NullTimeToPtr(p.ExpiresAt)
	return res
}
