package product_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	productMock "go-digistore-api/internal/mock/product"
	"go-digistore-api/internal/product"
	"go-digistore-api/internal/shared/database/dbgen"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupServiceTest(t *testing.T) (product.Service, *productMock.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := productMock.NewMockRepository(ctrl)
	return product.NewService(repo), repo
}

func TestProductService_Catalog(t *testing.T) {
	ctx := context.Background()
	idA, idB := uuid.New(), uuid.New()

	t.Run("success_keyed_by_id", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		repo.EXPECT().
			GetByIDs(ctx, []uuid.UUID{idA, idB}).
			Return([]dbgen.Product{{ID: idA, Name: "Ebook Go", Price: 75000, IsActive: true}}, nil)

		got, err := svc.Catalog(ctx, []uuid.UUID{idA, idB})
		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, int64(75000), got[idA].Price)
		_, ok := got[idB]
		assert.False(t, ok)
	})

	t.Run("empty_ids_skips_repo", func(t *testing.T) {
		svc, _ := setupServiceTest(t)
		got, err := svc.Catalog(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("repo_error", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		repo.EXPECT().GetByIDs(ctx, gomock.Any()).Return(nil, errors.New("db down"))

		_, err := svc.Catalog(ctx, []uuid.UUID{idA})
		assert.Error(t, err)
	})
}

func TestProductService_GetByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		repo.EXPECT().GetByID(ctx, id).Return(dbgen.Product{ID: id, Sku: "EB-GO", Name: "Ebook Go", Price: 75000, IsActive: true}, nil)

		res, err := svc.GetByID(ctx, id.String())
		require.NoError(t, err)
		assert.Equal(t, "EB-GO", res.SKU)
	})

	t.Run("invalid_id", func(t *testing.T) {
		svc, _ := setupServiceTest(t)
		_, err := svc.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, product.ErrInvalidProductID)
	})

	t.Run("not_found", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		repo.EXPECT().GetByID(ctx, id).Return(dbgen.Product{}, sql.ErrNoRows)

		_, err := svc.GetByID(ctx, id.String())
		assert.ErrorIs(t, err, product.ErrProductNotFound)
	})

	t.Run("inactive_hidden", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		repo.EXPECT().GetByID(ctx, id).Return(dbgen.Product{ID: id, IsActive: false}, nil)

		_, err := svc.GetByID(ctx, id.String())
		assert.ErrorIs(t, err, product.ErrProductNotFound)
	})
}

func TestProductService_ListPublic(t *testing.T) {
	ctx := context.Background()
	svc, repo := setupServiceTest(t)

	repo.EXPECT().
		ListActive(ctx, dbgen.ListActiveProductsParams{Limit: 12, Offset: 12}).
		Return([]dbgen.ListActiveProductsRow{
			{ID: uuid.New(), Name: "A", Price: 1000, TotalCount: 14},
			{ID: uuid.New(), Name: "B", Price: 2000, TotalCount: 14},
		}, nil)

	res, total, err := svc.ListPublic(ctx, 2, 12)
	require.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Equal(t, int64(14), total)
}
