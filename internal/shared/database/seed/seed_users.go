package seed

import (
	"context"
	"database/sql"
	"errors"

	"go-digistore-api/internal/shared/database/dbgen"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	Email string
	Name  string
	Role  string
}

var defaultAdmins = []seedUser{
	{Email: "admin@digistore.id", Name: "Admin Toko", Role: "ADMIN"},
	{Email: "superadmin@digistore.id", Name: "Super Admin", Role: "SUPERADMIN"},
}

// SeedAdmins creates the back-office accounts with the given password.
// Existing accounts keep their current password.
func SeedAdmins(ctx context.Context, db dbgen.DBTX, password string, logger *zap.Logger) error {
	if password == "" {
		logger.Warn("SEED_ADMIN_PASSWORD not set, admin accounts skipped")
		return nil
	}

	q := dbgen.New(db)

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for _, u := range defaultAdmins {
		_, err := q.GetUserByEmail(ctx, u.Email)
		if err == nil {
			logger.Info("admin exists, skipped", zap.String("email", u.Email))
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		if _, err := q.CreateUser(ctx, dbgen.CreateUserParams{
			Email:    u.Email,
			Name:     u.Name,
			Password: string(hashed),
			Role:     u.Role,
		}); err != nil {
			return err
		}
		logger.Info("admin seeded", zap.String("email", u.Email), zap.String("role", u.Role))
	}
	return nil
}
