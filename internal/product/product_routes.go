package product

import (
	"go-digistore-api/internal/middleware"
	"time"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, limiter *middleware.RateLimiter) {
	products := r.Group("/products")
	{
		// Cukup longgar agar user asli nyaman browsing, tapi mencegah scraping masif.
		products.GET("",
			limiter.ByIP("products_list", 120, time.Minute),
			handler.GetPublicList,
		)

		products.GET("/:id",
			limiter.ByIP("products_detail", 60, time.Minute),
			handler.GetByID,
		)
	}
}
