package promo

import (
	"go-digistore-api/internal/pkg/apperror"
	"go-digistore-api/internal/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(svc Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("promo.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("promo.handler")
	}
	return &Handler{service: svc, logger: l}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// POST /promos/apply
func (h *Handler) Apply(c *gin.Context) {
	var req ApplyPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Input tidak valid", err.Error())
		return
	}

	res, err := h.service.Apply(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

// ==================== ADMIN ENDPOINTS ====================

// POST /admin/promos
func (h *Handler) Create(c *gin.Context) {
	var req CreatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Input tidak valid", err.Error())
		return
	}

	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, res, nil)
}

// GET /admin/promos
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Query tidak valid", err.Error())
		return
	}

	res, err := h.service.List(c.Request.Context(), q.Page, q.Limit)
	if err != nil {
		h.logger.Error("list promos failed", zap.Error(err))
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

// GET /admin/promos/:code
func (h *Handler) GetByCode(c *gin.Context) {
	res, err := h.service.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

// PATCH /admin/promos/:code/active
func (h *Handler) SetActive(c *gin.Context) {
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Input tidak valid", err.Error())
		return
	}

	res, err := h.service.SetActive(c.Request.Context(), c.Param("code"), *req.IsActive)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}
