package product

import (
	"context"
	"database/sql"
	"go-digistore-api/internal/shared/database/dbgen"

	"github.com/google/uuid"
)

//go:generate mockgen -source=product_repo.go -destination=../mock/product/product_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx dbgen.DBTX) Repository
	GetByID(ctx context.Context, id uuid.UUID) (dbgen.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]dbgen.Product, error)
	ListActive(ctx context.Context, arg dbgen.ListActiveProductsParams) ([]dbgen.ListActiveProductsRow, error)
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

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (dbgen.Product, error) {
	return r.queries.GetProductByID(ctx, id)
}

func (r *repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]dbgen.Product, error) {
	return r.queries.GetProductsByIDs(ctx, ids)
}

func (r *repository) ListActive(ctx context.Context, arg dbgen.ListActiveProductsParams) ([]dbgen.ListActiveProductsRow, error) {
	return r.queries.ListActiveProducts(ctx, arg)
}
