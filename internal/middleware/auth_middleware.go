package middleware

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenCookie = "access_token"
	refreshTokenType  = "refresh"

	CtxUserIDValidated = "user_id_validated"
	CtxUserID          = "user_id"
	CtxRole            = "role"
)

func parseToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	// Refresh token hanya untuk /auth/refresh, bukan untuk akses API.
	if typ, _ := claims["typ"].(string); typ == refreshTokenType {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get token
		tokenString, err := c.Cookie(accessTokenCookie)
		if err != nil || tokenString == "" {
			abortWithError(c, ErrUnauthorized)
			return
		}

		// 2. Parse & Validate
		claims, err := parseToken(tokenString, secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, ErrTokenExpired)
				return
			}
			abortWithError(c, ErrInvalidToken)
			return
		}

		// 3. Validate & Extract user_id
		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			abortWithError(c, ErrInvalidToken)
			return
		}

		role, _ := claims["role"].(string)

		c.Set(CtxUserIDValidated, userID)
		c.Set(CtxRole, role)

		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(CtxRole)
		if userRole == "" {
			abortWithError(c, ErrForbidden)
			return
		}

		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		abortWithError(c, ErrForbidden)
	}
}

// UserID returns the authenticated user id, or "" for guests.
func UserID(c *gin.Context) string {
	if uid := c.GetString(CtxUserIDValidated); uid != "" {
		return uid
	}
	return c.GetString(CtxUserID)
}
