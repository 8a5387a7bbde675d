package config_test

import (
	"strings"
	"testing"
	"time"

	"go-digistore-api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/digistore?sslmode=disable")
	t.Setenv("MIDTRANS_SERVER_KEY", "SB-Mid-server-test")
	t.Setenv("ORDER_SIGNING_SECRET", strings.Repeat("s", 32))
	t.Setenv("JWT_SECRET", "jwt-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "DG", cfg.Order.Prefix)
	assert.Equal(t, 15*time.Minute, cfg.Order.TTL)
	assert.Equal(t, 15*time.Second, cfg.Midtrans.Timeout)
	assert.Equal(t, "order.events", cfg.Kafka.Topic)
	assert.False(t, cfg.Midtrans.IsProduction)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ORDER_TTL", "30m")
	t.Setenv("MIDTRANS_IS_PRODUCTION", "true")
	t.Setenv("APP_ENV", "production")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.Order.TTL)
	assert.True(t, cfg.Midtrans.IsProduction)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_ShortSigningSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ORDER_SIGNING_SECRET", "too-short")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ORDER_SIGNING_SECRET")
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_URL", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := &config.Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MIDTRANS_SERVER_KEY")
	assert.Contains(t, err.Error(), "ORDER_TTL")
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "ORDER_PREFIX")
}

func TestLoad_OrderPrefix(t *testing.T) {
	for _, prefix := range []string{"Shop", "DIGISTORE", "D", "DG1", "dg"} {
		t.Run(prefix, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv("ORDER_PREFIX", prefix)

			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "ORDER_PREFIX")
		})
	}

	setBaseEnv(t)
	t.Setenv("ORDER_PREFIX", "SHOP")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "SHOP", cfg.Order.Prefix)
}
