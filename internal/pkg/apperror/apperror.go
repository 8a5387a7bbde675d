package apperror

import (
	"errors"
	"fmt"
)

const (
	CodeInvalidInput      = "VALIDATION_ERROR"
	CodeInvalidState      = "INVALID_STATE"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeRateLimited       = "RATE_LIMITED"
	CodePromoRejected     = "PROMO_REJECTED"
	CodeSignatureMismatch = "SIGNATURE_MISMATCH"
	CodeGatewayError      = "GATEWAY_ERROR"
	CodeStaleOrder        = "STALE_ORDER"
	CodeInternalError     = "INTERNAL_ERROR"
)

// AppError is an error that knows how it should be rendered to an HTTP client.
// Reason is an optional finer-grained machine code (e.g. "promo_expired").
type AppError struct {
	Code       string
	Reason     string
	Message    string
	HTTPStatus int
	Err        error
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// NewWithReason is New plus a reason, used when one code covers several
// user-facing rejections.
func NewWithReason(code, reason, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Reason:     reason,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap returns a copy of e carrying err as its cause. errors.Is(result, e)
// still holds.
func (e *AppError) Wrap(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches two AppErrors by code, reason and message so wrapped copies
// compare equal to their sentinel.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Reason == t.Reason && e.Message == t.Message
}
