package middleware

import (
	"go-digistore-api/internal/pkg/apperror"
	"go-digistore-api/internal/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrUnauthorized = apperror.New(
		apperror.CodeUnauthorized,
		"silakan login terlebih dahulu",
		http.StatusUnauthorized,
	)

	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"token tidak valid",
		http.StatusUnauthorized,
	)

	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"sesi telah berakhir, silakan login kembali",
		http.StatusUnauthorized,
	)

	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"akses ditolak",
		http.StatusForbidden,
	)

	ErrRateLimited = apperror.New(
		apperror.CodeRateLimited,
		"terlalu banyak permintaan, coba lagi sebentar lagi",
		http.StatusTooManyRequests,
	)

	ErrRequestInFlight = apperror.New(
		apperror.CodeConflict,
		"permintaan yang sama sedang diproses",
		http.StatusConflict,
	)
)

func abortWithError(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, nil)
	c.Abort()
}
