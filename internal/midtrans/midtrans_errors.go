package midtrans

import (
	"go-digistore-api/internal/pkg/apperror"
	"net/http"
)

var (
	// ErrGateway is what callers see for any processor-side failure. The
	// cause is kept in the chain for logs only.
	ErrGateway = apperror.New(
		apperror.CodeGatewayError,
		"Pembayaran gagal, silakan coba lagi",
		http.StatusBadGateway,
	)

	ErrGatewayTimeout = apperror.NewWithReason(
		apperror.CodeGatewayError,
		"gateway_timeout",
		"Pembayaran gagal, silakan coba lagi",
		http.StatusGatewayTimeout,
	)

	ErrGrossMismatch = apperror.NewWithReason(
		apperror.CodeInternalError,
		"gross_mismatch",
		"total pembayaran tidak sesuai dengan rincian item",
		http.StatusInternalServerError,
	)

	ErrTransactionNotFound = apperror.New(
		apperror.CodeNotFound,
		"transaksi tidak ditemukan di payment gateway",
		http.StatusNotFound,
	)
)
