package seed

import (
	"context"
	"database/sql"
	"errors"

	"go-digistore-api/internal/shared/database/dbgen"

	"go.uber.org/zap"
)

var defaultPromos = []dbgen.CreatePromoParams{
	{
		Code:            "HEMAT10",
		Description:     "Diskon 10% tanpa minimum belanja",
		DiscountPercent: 10,
		MaxDiscount:     sql.NullInt64{Int64: 50000, Valid: true},
		IsActive:        true,
	},
	{
		Code:            "GAJIAN25",
		Description:     "Diskon 25% minimal belanja 200rb, kuota 100",
		DiscountPercent: 25,
		MaxDiscount:     sql.NullInt64{Int64: 100000, Valid: true},
		MinPurchase:     200000,
		MaxUsage:        100,
		IsActive:        true,
	},
	{
		Code:            "GRATIS",
		Description:     "Diskon penuh untuk uji coba internal",
		DiscountPercent: 100,
		MaxUsage:        10,
		IsActive:        false,
	},
}

// SeedPromos creates promos that don't exist yet. Existing codes are left
// untouched so used_count survives a re-seed.
func SeedPromos(ctx context.Context, db dbgen.DBTX, logger *zap.Logger) error {
	q := dbgen.New(db)

	for _, p := range defaultPromos {
		_, err := q.GetPromoByCode(ctx, p.Code)
		if err == nil {
			logger.Info("promo exists, skipped", zap.String("code", p.Code))
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		if _, err := q.CreatePromo(ctx, p); err != nil {
			return err
		}
		logger.Info("promo seeded", zap.String("code", p.Code))
	}
	return nil
}
