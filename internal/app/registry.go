package app

import (
	"go-digistore-api/internal/auth"
	"go-digistore-api/internal/config"
	"go-digistore-api/internal/email"
	"go-digistore-api/internal/middleware"
	"go-digistore-api/internal/midtrans"
	"go-digistore-api/internal/order"
	"go-digistore-api/internal/outbox"
	"go-digistore-api/internal/product"
	"go-digistore-api/internal/promo"
	"go-digistore-api/internal/shared/database/dbgen"
	"go-digistore-api/internal/signature"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type modules struct {
	authService    auth.Service
	productService product.Service
	promoService   promo.Service
	orderService   order.Service
}

// buildModules wires repositories and services. Every process (api,
// worker, consumer) builds the same graph so they share one behaviour.
func buildModules(infra *Infra, cfg *config.Config, logger *zap.Logger) (*modules, error) {
	queries := dbgen.New(infra.DB)

	// --- Repositories ---
	authRepo := auth.NewRepository(queries)
	productRepo := product.NewRepository(queries)
	promoRepo := promo.NewRepository(queries)
	orderRepo := order.NewRepository(queries)
	outboxRepo := outbox.NewRepository(queries)

	// --- Third Party ---
	signer, err := signature.NewSigner(cfg.Order.SigningSecret)
	if err != nil {
		return nil, err
	}

	midtransService := midtrans.NewService(midtrans.Config{
		ServerKey:    cfg.Midtrans.ServerKey,
		IsProduction: cfg.Midtrans.IsProduction,
		Timeout:      cfg.Midtrans.Timeout,
		FinishURL:    cfg.Midtrans.FinishURL,
	}, logger.Named("midtrans"))

	emailService := email.NewNoopService()
	if cfg.Email.ResendAPIKey != "" {
		emailService, err = email.NewResendService(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warn("RESEND_API_KEY not set, confirmation emails are disabled")
	}

	// --- Services ---
	authService := auth.NewService(auth.Deps{
		Repo:   authRepo,
		Secret: cfg.JWT.Secret,
		Logger: logger.Named("auth"),
	})
	productService := product.NewService(productRepo)
	promoService := promo.NewService(promo.Deps{
		Repo:   promoRepo,
		Logger: logger.Named("promo"),
	})
	orderService := order.NewService(order.Deps{
		DB:          infra.DB,
		Repo:        orderRepo,
		OutboxRepo:  outboxRepo,
		PromoRepo:   promoRepo,
		PromoSvc:    promoService,
		ProductSvc:  productService,
		MidtransSvc: midtransService,
		Signer:      signer,
		Deferred:    order.NewRedisDeferredQueue(infra.Redis),
		EmailSvc:    emailService,
		Logger:      logger.Named("order"),
		OrderPrefix: cfg.Order.Prefix,
		TTL:         cfg.Order.TTL,
	})

	return &modules{
		authService:    authService,
		productService: productService,
		promoService:   promoService,
		orderService:   orderService,
	}, nil
}

func registerModules(router *gin.Engine, infra *Infra, cfg *config.Config, logger *zap.Logger) error {
	m, err := buildModules(infra, cfg, logger)
	if err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter(infra.Redis, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(m.authService, cfg.IsProduction(), logger)
	productHandler := product.NewHandler(m.productService)
	promoHandler := promo.NewHandler(m.promoService, logger)
	orderHandler := order.NewHandler(m.orderService, infra.Redis, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, limiter, cfg.JWT.Secret)
		product.RegisterRoutes(api, productHandler, limiter)
		promo.RegisterRoutes(api, promoHandler, limiter, cfg.JWT.Secret)
		order.RegisterRoutes(api, orderHandler, infra.Redis, limiter, cfg.JWT.Secret)
	}
	return nil
}
