package auth

import (
	"go-digistore-api/internal/middleware"
	"time"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, limiter *middleware.RateLimiter, jwtSecret string) {
	auth := r.Group("/auth")
	{
		// Mencegah bot membuat ribuan akun palsu.
		auth.POST("/register",
			limiter.ByIP("auth_register", 3, time.Minute),
			handler.Register,
		)

		// Mencegah brute force password.
		auth.POST("/login",
			limiter.ByIP("auth_login", 6, time.Minute),
			handler.Login,
		)

		auth.POST("/refresh",
			limiter.ByIP("auth_refresh", 30, time.Minute),
			handler.RefreshToken,
		)

		authenticated := auth.Group("")
		authenticated.Use(middleware.AuthMiddleware(jwtSecret))
		{
			authenticated.GET("/me",
				limiter.ByUser("auth_me", 300, time.Minute),
				handler.Me,
			)
			authenticated.POST("/logout", handler.Logout)
		}
	}
}
