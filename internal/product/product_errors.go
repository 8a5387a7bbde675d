package product

import (
	"go-digistore-api/internal/pkg/apperror"
	"net/http"
)

var (
	ErrInvalidProductID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid product id format",
		http.StatusBadRequest,
	)

	ErrProductNotFound = apperror.New(
		apperror.CodeNotFound,
		"produk tidak ditemukan",
		http.StatusNotFound,
	)
)
