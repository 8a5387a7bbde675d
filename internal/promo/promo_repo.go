package promo

import (
	"context"
	"database/sql"
	"go-digistore-api/internal/shared/database/dbgen"
)

//go:generate mockgen -source=promo_repo.go -destination=../mock/promo/promo_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx dbgen.DBTX) Repository
	GetByCode(ctx context.Context, code string) (dbgen.Promo, error)
	Create(ctx context.Context, arg dbgen.CreatePromoParams) (dbgen.Promo, error)
	List(ctx context.Context, arg dbgen.ListPromosParams) ([]dbgen.Promo, error)
	SetActive(ctx context.Context, arg dbgen.SetPromoActiveParams) (dbgen.Promo, error)

	// IncrementUsage bumps used_count only while the cap allows it and
	// reports whether a row was updated.
	IncrementUsage(ctx context.Context, code string) (bool, error)
}

type repository struct {
	queries *dbgen.Queries
}

func NewRepository(q *dbgen.Queries) Repository {
	return &repository{queries: q}
}

func (r *repository) WithTx(tx dbgen.DBTX) Repository {
	if sqlTx, ok := tx.(*sql.Tx); ok {
		return &repository{queries: r.queries.WithTx(sqlTx)}
	}
	return r
}

func (r *repository) GetByCode(ctx context.Context, code string) (dbgen.Promo, error) {
	return r.queries.GetPromoByCode(ctx, code)
}

func (r *repository) Create(ctx context.Context, arg dbgen.CreatePromoParams) (dbgen.Promo, error) {
	return r.queries.CreatePromo(ctx, arg)
}

func (r *repository) List(ctx context.Context, arg dbgen.ListPromosParams) ([]dbgen.Promo, error) {
	return r.queries.ListPromos(ctx, arg)
}

func (r *repository) SetActive(ctx context.Context, arg dbgen.SetPromoActiveParams) (dbgen.Promo, error) {
	return r.queries.SetPromoActive(ctx, arg)
}

func (r *repository) IncrementUsage(ctx context.Context, code string) (bool, error) {
	n, err := r.queries.IncrementPromoUsage(ctx, code)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
