package promo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-digistore-api/internal/promo"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakePromoService struct {
	applyFunc     func(ctx context.Context, req promo.ApplyPromoRequest) (promo.ApplyPromoResponse, error)
	createFunc    func(ctx context.Context, req promo.CreatePromoRequest) (promo.PromoResponse, error)
	setActiveFunc func(ctx context.Context, code string, active bool) (promo.PromoResponse, error)
}

func (f *fakePromoService) Validate(ctx context.Context, code string, cartSubtotal int64) (promo.ValidateResult, error) {
	return promo.ValidateResult{}, nil
}

func (f *fakePromoService) Apply(ctx context.Context, req promo.ApplyPromoRequest) (promo.ApplyPromoResponse, error) {
	if f.applyFunc != nil {
		return f.applyFunc(ctx, req)
	}
	return promo.ApplyPromoResponse{}, nil
}

func (f *fakePromoService) Create(ctx context.Context, req promo.CreatePromoRequest) (promo.PromoResponse, error) {
	if f.createFunc != nil {
		return f.createFunc(ctx, req)
	}
	return promo.PromoResponse{}, nil
}

func (f *fakePromoService) SetActive(ctx context.Context, code string, active bool) (promo.PromoResponse, error) {
	if f.setActiveFunc != nil {
		return f.setActiveFunc(ctx, code, active)
	}
	return promo.PromoResponse{}, nil
}

func (f *fakePromoService) List(ctx context.Context, page int, limit int) ([]promo.PromoResponse, error) {
	return []promo.PromoResponse{}, nil
}

func (f *fakePromoService) GetByCode(ctx context.Context, code string) (promo.PromoResponse, error) {
	return promo.PromoResponse{}, nil
}

func setupTestRouter(svc promo.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := promo.NewHandler(svc)
	r.POST("/promos/apply", h.Apply)
	r.POST("/admin/promos", h.Create)
	r.PATCH("/admin/promos/:code/active", h.SetActive)
	return r
}

func postJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPromoHandler_Apply(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakePromoService{
			applyFunc: func(ctx context.Context, req promo.ApplyPromoRequest) (promo.ApplyPromoResponse, error) {
				assert.Equal(t, "DISKON10", req.Code)
				assert.Equal(t, int64(100000), req.CartTotal)
				return promo.ApplyPromoResponse{Valid: true, Code: "DISKON10", DiscountAmount: 10000, FinalTotal: 90000}, nil
			},
		}

		w := postJSON(setupTestRouter(svc), http.MethodPost, "/promos/apply", `{"code":"DISKON10","cartTotal":100000}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"finalTotal":90000`)
	})

	t.Run("missing_code", func(t *testing.T) {
		w := postJSON(setupTestRouter(&fakePromoService{}), http.MethodPost, "/promos/apply", `{"cartTotal":100000}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejected_promo_carries_reason", func(t *testing.T) {
		svc := &fakePromoService{
			applyFunc: func(ctx context.Context, req promo.ApplyPromoRequest) (promo.ApplyPromoResponse, error) {
				return promo.ApplyPromoResponse{}, promo.ErrPromoExpired
			},
		}

		w := postJSON(setupTestRouter(svc), http.MethodPost, "/promos/apply", `{"code":"OLD","cartTotal":1}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "PROMO_REJECTED")
		assert.Contains(t, w.Body.String(), "promo_expired")
	})
}

func TestPromoHandler_Create(t *testing.T) {
	svc := &fakePromoService{
		createFunc: func(ctx context.Context, req promo.CreatePromoRequest) (promo.PromoResponse, error) {
			return promo.PromoResponse{Code: "HEMAT25", DiscountPercent: 25}, nil
		},
	}

	w := postJSON(setupTestRouter(svc), http.MethodPost, "/admin/promos", `{"code":"hemat25","discountPercent":25}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "HEMAT25")
}

func TestPromoHandler_SetActive(t *testing.T) {
	t.Run("requires_flag", func(t *testing.T) {
		w := postJSON(setupTestRouter(&fakePromoService{}), http.MethodPatch, "/admin/promos/X/active", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("disable", func(t *testing.T) {
		svc := &fakePromoService{
			setActiveFunc: func(ctx context.Context, code string, active bool) (promo.PromoResponse, error) {
				assert.Equal(t, "DISKON10", code)
				assert.False(t, active)
				return promo.PromoResponse{Code: code, IsActive: active}, nil
			},
		}
		w := postJSON(setupTestRouter(svc), http.MethodPatch, "/admin/promos/DISKON10/active", `{"isActive":false}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
