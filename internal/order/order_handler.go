package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-digistore-api/internal/middleware"
	"go-digistore-api/internal/pkg/apperror"
	"go-digistore-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(svc Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("order.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("order.handler")
	}
	return &Handler{service: svc, rdb: rdb, logger: l}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// ==================== CUSTOMER ENDPOINTS ====================

// Checkout creates a PENDING order and opens the payment.
// POST /orders/checkout
func (h *Handler) Checkout(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		userID = GuestUserID
	}

	// Idempotency Lock Key
	if lockKey := c.GetString(middleware.CtxIdempotencyLockKey); lockKey != "" && h.rdb != nil {
		defer h.rdb.Del(c.Request.Context(), lockKey)
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http checkout validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Input tidak valid", err.Error())
		return
	}

	res, err := h.service.Checkout(c.Request.Context(), userID, req)
	if err != nil {
		h.logger.Warn("http checkout failed", zap.String("user_id", userID), zap.Error(err))
		h.writeError(c, err)
		return
	}

	// Simpan hasil ke cache Idempotency jika sukses
	if cacheKey := c.GetString(middleware.CtxIdempotencyCacheKey); cacheKey != "" && h.rdb != nil {
		if data, err := json.Marshal(res); err == nil {
			if err := h.rdb.Set(c.Request.Context(), cacheKey, data, middleware.IdempotencyCacheTTL).Err(); err != nil {
				h.logger.Warn("failed to cache idempotent response", zap.Error(err))
			}
		}
	}

	response.Success(c, http.StatusCreated, res, nil)
}

// POST /orders/:orderNumber/pay
func (h *Handler) ContinuePayment(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		userID = GuestUserID
	}

	res, err := h.service.ContinuePayment(c.Request.Context(), c.Param("orderNumber"), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

// GET /orders/:orderNumber/status
func (h *Handler) Lookup(c *gin.Context) {
	res, err := h.service.Lookup(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

// GET /orders/:orderNumber
func (h *Handler) Detail(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		userID = GuestUserID
	}

	res, err := h.service.Detail(c.Request.Context(), c.Param("orderNumber"), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

// GET /orders
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Query tidak valid", err.Error())
		return
	}

	orders, total, err := h.service.ListByUser(c.Request.Context(), middleware.UserID(c), q.Page, q.Limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, orders, response.NewPaginationMeta(total, q.Page, q.Limit))
}

// ==================== PAYMENT GATEWAY ====================

// MidtransNotification always acknowledges a verified notification, whatever
// the business outcome, so the processor does not retry-storm. Only an
// unreadable body or a bad signature is refused.
// POST /payments/midtrans/notification
func (h *Handler) MidtransNotification(c *gin.Context) {
	var payload MidtransNotificationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("unreadable midtrans notification", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid"})
		return
	}

	res, err := h.service.HandleNotification(c.Request.Context(), payload)
	if errors.Is(err, ErrInvalidNotificationSignature) {
		c.JSON(http.StatusForbidden, gin.H{"status": "forbidden"})
		return
	}
	if err != nil {
		h.logger.Warn("midtrans notification not applied",
			zap.String("order_number", payload.OrderID),
			zap.Error(err),
		)
	} else {
		h.logger.Debug("midtrans notification handled",
			zap.String("order_number", res.OrderNumber),
			zap.String("reason", res.Reason),
		)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /payments/midtrans/notification
func (h *Handler) MidtransNotificationHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "midtrans notification endpoint is reachable",
	})
}

// ==================== ADMIN ENDPOINTS ====================

// GET /admin/orders
func (h *Handler) ListAdmin(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Query tidak valid", err.Error())
		return
	}

	orders, total, err := h.service.ListAdmin(c.Request.Context(), q.Status, q.Page, q.Limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, orders, response.NewPaginationMeta(total, q.Page, q.Limit))
}

// PATCH /admin/orders/:orderNumber/payment-status
func (h *Handler) OverridePaymentStatus(c *gin.Context) {
	var req OverrideStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Input tidak valid", err.Error())
		return
	}

	res, err := h.service.OverridePaymentStatus(c.Request.Context(), c.Param("orderNumber"), req.Status, req.Note)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.logger.Info("admin payment override",
		zap.String("order_number", res.OrderNumber),
		zap.String("status", res.Status),
		zap.String("admin_id", middleware.UserID(c)),
	)
	response.Success(c, http.StatusOK, res, nil)
}

// POST /admin/orders/:orderNumber/reconcile
func (h *Handler) Reconcile(c *gin.Context) {
	res, err := h.service.ReconcileByStatus(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"orderNumber": res.OrderNumber,
		"from":        res.From,
		"to":          res.To,
		"applied":     res.Applied,
		"reason":      res.Reason,
	}, nil)
}
