package promo

import (
	"go-digistore-api/internal/shared/database/dbgen"
	"time"
)

// ==================== REQUEST STRUCTS ====================

type ApplyPromoRequest struct {
	Code      string `json:"code" binding:"required"`
	CartTotal int64  `json:"cartTotal" binding:"min=0"`
}

type CreatePromoRequest struct {
	Code            string     `json:"code" validate:"required,alphanum,min=3,max=32"`
	Description     string     `json:"description" validate:"max=255"`
	DiscountPercent int32      `json:"discountPercent" validate:"min=1,max=100"`
	MaxDiscount     *int64     `json:"maxDiscount" validate:"omitempty,min=1"`
	MinPurchase     int64      `json:"minPurchase" validate:"min=0"`
	MaxUsage        int32      `json:"maxUsage" validate:"min=0"`
	ExpiresAt       *time.Time `json:"expiresAt"`
	IsActive        *bool      `json:"isActive"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type ListQuery struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=20" binding:"min=1,max=100"`
}

// ==================== RESPONSE STRUCTS ====================

type ApplyPromoResponse struct {
	Valid           bool   `json:"valid"`
	PromoID         string `json:"promoId"`
	Code            string `json:"code"`
	DiscountPercent int32  `json:"discountPercent"`
	DiscountAmount  int64  `json:"discountAmount"`
	FinalTotal      int64  `json:"finalTotal"`
}

type PromoResponse struct {
	ID              string     `json:"id"`
	Code            string     `json:"code"`
	Description     string     `json:"description"`
	DiscountPercent int32      `json:"discountPercent"`
	MaxDiscount     *int64     `json:"maxDiscount,omitempty"`
	MinPurchase     int64      `json:"minPurchase"`
	MaxUsage        int32      `json:"maxUsage"`
	UsedCount       int32      `json:"usedCount"`
	ExpiresAt       *time.Time `json:"expiresAt,omitempty"`
	IsActive        bool       `json:"isActive"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// ValidateResult is what checkout needs from a promo that passed every rule.
type ValidateResult struct {
	Promo          dbgen.Promo
	DiscountAmount int64
	FinalTotal     int64
}
