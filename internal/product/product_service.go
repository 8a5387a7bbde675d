package product

import (
	"context"
	"database/sql"
	"errors"
	"go-digistore-api/internal/shared/database/dbgen"

	"github.com/google/uuid"
)

//go:generate mockgen -source=product_service.go -destination=../mock/product/product_service_mock.go -package=mock
type Service interface {
	ListPublic(ctx context.Context, page, limit int) ([]ProductResponse, int64, error)
	GetByID(ctx context.Context, id string) (ProductResponse, error)

	// Catalog returns the current catalog rows for ids keyed by id. Unknown
	// ids are simply absent from the map; callers decide what that means.
	Catalog(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]dbgen.Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	if repo == nil {
		panic("product repository cannot be nil")
	}
	return &service{repo: repo}
}

func (s *service) ListPublic(ctx context.Context, page, limit int) ([]ProductResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}

	rows, err := s.repo.ListActive(ctx, dbgen.ListActiveProductsParams{
		Limit:  int32(limit),
		Offset: int32((page - 1) * limit),
	})
	if err != nil {
		return nil, 0, err
	}

	res := make([]ProductResponse, 0, len(rows))
	var total int64
	for _, r := range rows {
		total = r.TotalCount
		res = append(res, ProductResponse{
			ID:      r.ID.String(),
			SKU:     r.Sku,
			Name:    r.Name,
			Price:   r.Price,
			Stock:   r.Stock,
			IsBonus: r.IsBonus,
		})
	}
	return res, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ProductResponse, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return ProductResponse{}, ErrInvalidProductID
	}

	p, err := s.repo.GetByID(ctx, pid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProductResponse{}, ErrProductNotFound
		}
		return ProductResponse{}, err
	}
	if !p.IsActive {
		return ProductResponse{}, ErrProductNotFound
	}

	return toResponse(p), nil
}

func (s *service) Catalog(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]dbgen.Product, error) {
	out := make(map[uuid.UUID]dbgen.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range rows {
		out[p.ID] = p
	}
	return out, nil
}

func toResponse(p dbgen.Product) ProductResponse {
	return ProductResponse{
		ID:      p.ID.String(),
		SKU:     p.Sku,
		Name:    p.Name,
		Price:   p.Price,
		Stock:   p.Stock,
		IsBonus: p.IsBonus,
	}
}
