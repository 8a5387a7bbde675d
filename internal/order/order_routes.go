package order

import (
	"go-digistore-api/internal/middleware"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client, limiter *middleware.RateLimiter, jwtSecret string) {
	// Group utama Order; guest checkout diperbolehkan
	orders := r.Group("/orders")
	orders.Use(middleware.OptionalAuthMiddleware(jwtSecret))
	{
		// Checkout sangat ketat: mencegah double order dan bot spam.
		orders.POST("/checkout",
			limiter.ByUser("checkout", 5, time.Minute),
			middleware.Idempotency(rdb),
			handler.Checkout,
		)

		orders.POST("/:orderNumber/pay",
			limiter.ByUser("continue_payment", 10, time.Minute),
			handler.ContinuePayment,
		)

		// Lookup publik; dibatasi per IP supaya nomor order tidak di-enumerate.
		orders.GET("/:orderNumber/status",
			limiter.ByIP("order_lookup", 30, time.Minute),
			handler.Lookup,
		)
		orders.GET("/:orderNumber", handler.Detail)
	}

	myOrders := r.Group("/me/orders")
	myOrders.Use(middleware.AuthMiddleware(jwtSecret))
	{
		myOrders.GET("", handler.List)
	}

	// Webhook dari Midtrans; autentikasi lewat signature_key
	payments := r.Group("/payments/midtrans")
	{
		payments.POST("/notification", handler.MidtransNotification)
		payments.GET("/notification", handler.MidtransNotificationHealth)
	}

	adminOrders := r.Group("/admin/orders")
	adminOrders.Use(middleware.AuthMiddleware(jwtSecret))
	adminOrders.Use(middleware.RoleMiddleware("ADMIN", "SUPERADMIN"))
	adminOrders.Use(limiter.ByIP("admin_orders", 120, time.Minute))
	{
		adminOrders.GET("", handler.ListAdmin)
		adminOrders.PATCH("/:orderNumber/payment-status", handler.OverridePaymentStatus)
		adminOrders.POST("/:orderNumber/reconcile", handler.Reconcile)
	}
}
