package config

import (
	"errors"
	"fmt"
	"time"

	"go-digistore-api/internal/pkg/orderno"

	"github.com/caarlos0/env/v10"
)

const minSigningSecretLen = 32

type Config struct {
	App      App
	DB       DB       `envPrefix:"DB_"`
	Redis    Redis    `envPrefix:"REDIS_"`
	Kafka    Kafka    `envPrefix:"KAFKA_"`
	Midtrans Midtrans `envPrefix:"MIDTRANS_"`
	Order    Order    `envPrefix:"ORDER_"`
	Email    Email
	JWT      JWT `envPrefix:"JWT_"`
}

type App struct {
	Env           string `env:"APP_ENV" envDefault:"development"`
	Port          string `env:"PORT" envDefault:"3000"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:3000"`
}

type DB struct {
	URL        string `env:"URL,required,notEmpty"`
	MaxRetries int    `env:"MAX_RETRIES" envDefault:"5"`
}

type Redis struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type Kafka struct {
	Broker string `env:"BROKER" envDefault:"localhost:9092"`
	Topic  string `env:"TOPIC" envDefault:"order.events"`
	Group  string `env:"GROUP" envDefault:"order-fulfillment-group"`
}

type Midtrans struct {
	ServerKey    string        `env:"SERVER_KEY"`
	IsProduction bool          `env:"IS_PRODUCTION" envDefault:"false"`
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"15s"`
	FinishURL    string        `env:"FINISH_URL"`
}

type Order struct {
	SigningSecret string        `env:"SIGNING_SECRET"`
	Prefix        string        `env:"PREFIX" envDefault:"DG"`
	TTL           time.Duration `env:"TTL" envDefault:"15m"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`
	SweepBatch    int           `env:"SWEEP_BATCH" envDefault:"100"`

	ReconcileInterval time.Duration `env:"RECONCILE_INTERVAL" envDefault:"15s"`
	RelayInterval     time.Duration `env:"RELAY_INTERVAL" envDefault:"5s"`
}

type Email struct {
	ResendAPIKey string `env:"RESEND_API_KEY"`
	From         string `env:"EMAIL_FROM" envDefault:"Digistore <no-reply@digistore.id>"`
}

type JWT struct {
	Secret string `env:"SECRET"`
}

// Load reads the process environment. Callers load .env beforehand.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if len(c.Order.SigningSecret) < minSigningSecretLen {
		errs = append(errs, fmt.Errorf("ORDER_SIGNING_SECRET must be at least %d bytes", minSigningSecretLen))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Midtrans.ServerKey == "" {
		errs = append(errs, errors.New("MIDTRANS_SERVER_KEY is required"))
	}
	if !orderno.ValidPrefix(c.Order.Prefix) {
		errs = append(errs, fmt.Errorf("ORDER_PREFIX %q must be 2-8 uppercase letters", c.Order.Prefix))
	}
	if c.Order.TTL <= 0 {
		errs = append(errs, errors.New("ORDER_TTL must be positive"))
	}
	if c.Order.SweepInterval <= 0 {
		errs = append(errs, errors.New("ORDER_SWEEP_INTERVAL must be positive"))
	}
	if c.Order.ReconcileInterval <= 0 || c.Order.RelayInterval <= 0 {
		errs = append(errs, errors.New("ORDER_RECONCILE_INTERVAL and ORDER_RELAY_INTERVAL must be positive"))
	}
	if c.Midtrans.Timeout <= 0 {
		errs = append(errs, errors.New("MIDTRANS_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
