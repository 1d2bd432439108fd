package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mtlprog/treelife/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError maps domain errors to HTTP status codes and error codes.
// Anything unrecognised, including connection and query failures, becomes a
// generic 500 without internal detail.
func MapDomainError(err error) (status int, code string, message string) {
	message = err.Error()

	switch {
	// Person errors
	case errors.Is(err, domain.ErrPersonNotFound):
		return http.StatusNotFound, "PERSON_NOT_FOUND", message
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusConflict, "EMAIL_EXISTS", message
	case errors.Is(err, domain.ErrFirstNameRequired):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message

	// Tree errors
	case errors.Is(err, domain.ErrTreeNotFound):
		return http.StatusNotFound, "TREE_NOT_FOUND", message
	case errors.Is(err, domain.ErrTreeOutOfStock):
		return http.StatusConflict, "TREE_OUT_OF_STOCK", message

	// Order errors
	case errors.Is(err, domain.ErrAlreadyOrdered):
		return http.StatusConflict, "ALREADY_ORDERED", message
	case errors.Is(err, domain.ErrNoOrderToCancel):
		return http.StatusConflict, "NO_ORDER", message

	default:
		slog.Error("unmapped error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}
