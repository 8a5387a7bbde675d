package promo

import (
	"go-digistore-api/internal/pkg/apperror"
	"net/http"
)

var (
	ErrPromoNotFound = apperror.NewWithReason(
		apperror.CodePromoRejected,
		"promo_not_found",
		"Kode promo tidak ditemukan",
		http.StatusNotFound,
	)

	ErrPromoInactive = apperror.NewWithReason(
		apperror.CodePromoRejected,
		"promo_inactive",
		"Kode promo sudah tidak aktif",
		http.StatusUnprocessableEntity,
	)

	ErrPromoExpired = apperror.NewWithReason(
		apperror.CodePromoRejected,
		"promo_expired",
		"Kode promo sudah kedaluwarsa",
		http.StatusUnprocessableEntity,
	)

	ErrPromoUsageLimit = apperror.NewWithReason(
		apperror.CodePromoRejected,
		"promo_usage_limit",
		"Kuota kode promo sudah habis",
		http.StatusUnprocessableEntity,
	)

	ErrPromoMinPurchase = apperror.NewWithReason(
		apperror.CodePromoRejected,
		"promo_min_purchase",
		"Total belanja belum memenuhi minimum untuk kode promo ini",
		http.StatusUnprocessableEntity,
	)

	ErrPromoCodeTaken = apperror.New(
		apperror.CodeConflict,
		"kode promo sudah digunakan",
		http.StatusConflict,
	)

	ErrPromoFailed = apperror.New(
		apperror.CodeInternalError,
		"gagal memproses promo",
		http.StatusInternalServerError,
	)
)
