package seed

import (
	"context"

	"go-digistore-api/internal/shared/database/dbgen"

	"go.uber.org/zap"
)

var defaultProducts = []dbgen.UpsertProductBySKUParams{
	{Sku: "EBOOK-GO-101", Name: "E-book Belajar Go Dasar", Price: 149000, Stock: 1000, IsActive: true},
	{Sku: "COURSE-GIN-API", Name: "Kelas Online REST API dengan Gin", Price: 499000, Stock: 500, IsActive: true},
	{Sku: "TPL-INVOICE", Name: "Template Invoice UMKM", Price: 75000, Stock: 1000, IsActive: true},
	{Sku: "PRESET-LR-01", Name: "Preset Lightroom Tropis", Price: 59000, Stock: 1000, IsActive: true},
	{Sku: "BONUS-CHEATSHEET", Name: "Cheatsheet Go (bonus)", Price: 0, Stock: 5000, IsBonus: true, IsActive: true},
}

// SeedProducts upserts by SKU, so it is safe to run more than once.
func SeedProducts(ctx context.Context, db dbgen.DBTX, logger *zap.Logger) error {
	q := dbgen.New(db)

	for _, p := range defaultProducts {
		row, err := q.UpsertProductBySKU(ctx, p)
		if err != nil {
			return err
		}
		logger.Info("product seeded", zap.String("sku", row.Sku), zap.String("id", row.ID.String()))
	}
	return nil
}
