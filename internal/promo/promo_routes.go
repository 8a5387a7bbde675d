package promo

import (
	"go-digistore-api/internal/middleware"
	"time"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, limiter *middleware.RateLimiter, jwtSecret string) {
	promos := r.Group("/promos")
	promos.Use(middleware.OptionalAuthMiddleware(jwtSecret))
	{
		// Ketat supaya kode promo tidak bisa ditebak dengan brute force.
		promos.POST("/apply",
			limiter.ByUser("promo_apply", 10, time.Minute),
			handler.Apply,
		)
	}

	adminPromos := r.Group("/admin/promos")
	adminPromos.Use(middleware.AuthMiddleware(jwtSecret))
	adminPromos.Use(middleware.RoleMiddleware("ADMIN", "SUPERADMIN"))
	{
		adminPromos.GET("", handler.List)
		adminPromos.GET("/:code", handler.GetByCode)

		adminMutationLimit := limiter.ByUser("admin_promo_mutation", 30, time.Minute)
		adminPromos.POST("", adminMutationLimit, handler.Create)
		adminPromos.PATCH("/:code/active", adminMutationLimit, handler.SetActive)
	}
}
