package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-digistore-api/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "jwt-test-secret"

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return s
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doRequest(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== AUTH ====================

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()
	r.GET("/me", middleware.AuthMiddleware(testJWTSecret), func(c *gin.Context) {
		c.String(http.StatusOK, middleware.UserID(c))
	})

	t.Run("no_cookie", func(t *testing.T) {
		w := doRequest(r, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid_token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: signToken(t, jwt.MapClaims{
			"user_id": "user-1",
			"role":    "CUSTOMER",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})})
		w := doRequest(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", w.Body.String())
	})

	t.Run("expired_token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: signToken(t, jwt.MapClaims{
			"user_id": "user-1",
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})})
		w := doRequest(r, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "sesi telah berakhir")
	})

	t.Run("wrong_secret", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "u"}).SignedString([]byte("other"))
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: tok})
		w := doRequest(r, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh_token_rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: signToken(t, jwt.MapClaims{
			"user_id": "user-1",
			"typ":     "refresh",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})})
		w := doRequest(r, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRoleMiddleware(t *testing.T) {
	r := newRouter()
	r.GET("/admin",
		middleware.AuthMiddleware(testJWTSecret),
		middleware.RoleMiddleware("ADMIN"),
		func(c *gin.Context) { c.Status(http.StatusNoContent) },
	)

	for role, want := range map[string]int{"ADMIN": http.StatusNoContent, "CUSTOMER": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: signToken(t, jwt.MapClaims{"user_id": "u", "role": role})})
		assert.Equal(t, want, doRequest(r, req).Code, role)
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	r := newRouter()
	r.GET("/who", middleware.OptionalAuthMiddleware(testJWTSecret), func(c *gin.Context) {
		c.String(http.StatusOK, "["+middleware.UserID(c)+"]")
	})

	w := doRequest(r, httptest.NewRequest(http.MethodGet, "/who", nil))
	assert.Equal(t, "[]", w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "garbage"})
	w = doRequest(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/who", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: signToken(t, jwt.MapClaims{"user_id": "user-9"})})
	w = doRequest(r, req)
	assert.Equal(t, "[user-9]", w.Body.String())
}

// ==================== RATE LIMIT ====================

func TestRateLimiter_ByIP(t *testing.T) {
	_, rdb := setupRedis(t)
	limiter := middleware.NewRateLimiter(rdb, nil)

	r := newRouter()
	r.POST("/promos/apply", limiter.ByIP("promo_apply", 3, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := doRequest(r, httptest.NewRequest(http.MethodPost, "/promos/apply", nil))
		require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
	}

	w := doRequest(r, httptest.NewRequest(http.MethodPost, "/promos/apply", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}

func TestRateLimiter_ByUserSeparatesUsers(t *testing.T) {
	_, rdb := setupRedis(t)
	limiter := middleware.NewRateLimiter(rdb, nil)

	r := newRouter()
	r.POST("/checkout",
		func(c *gin.Context) { c.Set(middleware.CtxUserIDValidated, c.GetHeader("X-User")) },
		limiter.ByUser("checkout", 1, time.Minute),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	send := func(user string) int {
		req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
		req.Header.Set("X-User", user)
		return doRequest(r, req).Code
	}

	assert.Equal(t, http.StatusOK, send("a"))
	assert.Equal(t, http.StatusTooManyRequests, send("a"))
	assert.Equal(t, http.StatusOK, send("b"))
}

func TestRateLimiter_FailsOpenWhenRedisDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()
	limiter := middleware.NewRateLimiter(rdb, nil)

	r := newRouter()
	r.GET("/x", limiter.ByIP("x", 1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, doRequest(r, httptest.NewRequest(http.MethodGet, "/x", nil)).Code)
}

// ==================== IDEMPOTENCY ====================

func TestIdempotency(t *testing.T) {
	mr, rdb := setupRedis(t)

	r := newRouter()
	r.POST("/checkout", middleware.Idempotency(rdb), func(c *gin.Context) {
		lock := c.GetString(middleware.CtxIdempotencyLockKey)
		cache := c.GetString(middleware.CtxIdempotencyCacheKey)
		assert.NotEmpty(t, lock)
		assert.NotEmpty(t, cache)
		c.Status(http.StatusCreated)
	})

	t.Run("without_key_passes_through", func(t *testing.T) {
		r2 := newRouter()
		r2.POST("/checkout", middleware.Idempotency(rdb), func(c *gin.Context) {
			_, exists := c.Get(middleware.CtxIdempotencyLockKey)
			assert.False(t, exists)
			c.Status(http.StatusCreated)
		})
		w := doRequest(r2, httptest.NewRequest(http.MethodPost, "/checkout", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("in_flight_duplicate_is_refused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
		req.Header.Set(middleware.IdempotencyHeader, "k-1")
		assert.Equal(t, http.StatusCreated, doRequest(r, req).Code)

		// lock is still held because the handler never released it
		req = httptest.NewRequest(http.MethodPost, "/checkout", nil)
		req.Header.Set(middleware.IdempotencyHeader, "k-1")
		assert.Equal(t, http.StatusConflict, doRequest(r, req).Code)
	})

	t.Run("cached_response_is_replayed", func(t *testing.T) {
		require.NoError(t, mr.Set("idem:resp:192.0.2.1:k-2", `{"order":{"orderNumber":"DG-1"}}`))

		req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
		req.Header.Set(middleware.IdempotencyHeader, "k-2")
		w := doRequest(r, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.Contains(t, w.Body.String(), `"orderNumber":"DG-1"`)
	})
}

func TestRequestID(t *testing.T) {
	r := newRouter()
	r.GET("/x", middleware.RequestID(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middleware.RequestIDHeader))
	})

	w := doRequest(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	w = doRequest(r, req)
	assert.Equal(t, "abc-123", w.Body.String())
}
