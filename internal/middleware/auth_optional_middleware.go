package middleware

import (
	"github.com/gin-gonic/gin"
)

// OptionalAuthMiddleware lets guests through. A valid token still
// identifies the user; a missing or broken one is treated as a guest.
func OptionalAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(accessTokenCookie)
		if err != nil || tokenString == "" {
			c.Next()
			return
		}

		claims, err := parseToken(tokenString, secret)
		if err != nil {
			// Token ada tapi invalid / expired → tetap lanjut (anggap guest)
			c.Next()
			return
		}

		if role, ok := claims["role"].(string); ok {
			c.Set(CtxRole, role)
		}
		if userID, ok := claims["user_id"].(string); ok && userID != "" {
			c.Set(CtxUserID, userID)
		}

		c.Next()
	}
}
