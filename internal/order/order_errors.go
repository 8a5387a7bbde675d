package order

import (
	"go-digistore-api/internal/pkg/apperror"
	"net/http"
)

var (
	ErrInvalidRequest = apperror.New(
		apperror.CodeInvalidInput,
		"Keranjang kosong atau data pelanggan tidak lengkap",
		http.StatusBadRequest,
	)

	ErrItemUnavailable = apperror.NewWithReason(
		apperror.CodeInvalidInput,
		"item_unavailable",
		"Produk tidak tersedia",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidOrderNumber = apperror.NewWithReason(
		apperror.CodeStaleOrder,
		"invalid_checksum",
		"Nomor order tidak valid",
		http.StatusBadRequest,
	)

	ErrOrderExpired = apperror.NewWithReason(
		apperror.CodeStaleOrder,
		"order_expired",
		"Order sudah kedaluwarsa, silakan checkout ulang",
		http.StatusGone,
	)

	ErrOrderNotFound = apperror.New(
		apperror.CodeNotFound,
		"Order tidak ditemukan",
		http.StatusNotFound,
	)

	ErrOrderNotPending = apperror.New(
		apperror.CodeInvalidState,
		"Order tidak dalam status menunggu pembayaran",
		http.StatusConflict,
	)

	ErrPaymentInProgress = apperror.NewWithReason(
		apperror.CodeInvalidState,
		"payment_in_progress",
		"Pembayaran sedang diproses, silakan cek status order",
		http.StatusConflict,
	)

	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Perubahan status tidak diizinkan",
		http.StatusConflict,
	)

	// ErrOrderTampered is reported to clients with the generic payment
	// message; details stay in the security log.
	ErrOrderTampered = apperror.New(
		apperror.CodeSignatureMismatch,
		"Pembayaran gagal, silakan coba lagi",
		http.StatusConflict,
	)

	ErrGatewayFailed = apperror.New(
		apperror.CodeGatewayError,
		"Pembayaran gagal, silakan coba lagi",
		http.StatusBadGateway,
	)

	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"Order bukan milik Anda",
		http.StatusForbidden,
	)

	ErrOrderFailed = apperror.New(
		apperror.CodeInternalError,
		"Gagal memproses order",
		http.StatusInternalServerError,
	)

	// Webhook-side errors. The handler maps them to an acknowledgment,
	// except for a bad signature.
	ErrInvalidNotification = apperror.NewWithReason(
		apperror.CodeInvalidInput,
		"invalid_notification",
		"payload notifikasi tidak valid",
		http.StatusBadRequest,
	)

	ErrInvalidNotificationSignature = apperror.NewWithReason(
		apperror.CodeSignatureMismatch,
		"invalid_webhook_signature",
		"signature notifikasi tidak valid",
		http.StatusForbidden,
	)

	ErrGrossAmountMismatch = apperror.NewWithReason(
		apperror.CodeInvalidInput,
		"gross_amount_mismatch",
		"gross_amount tidak sesuai dengan total order",
		http.StatusUnprocessableEntity,
	)
)
