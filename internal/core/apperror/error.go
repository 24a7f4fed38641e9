// Package apperror provides structured error handling following RFC 7807 Problem Details.
// All business errors must use AppError for consistent API responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Infrastructure errors (5xx)
	CodeInternal           = "INTERNAL_ERROR"
	CodeDatabase           = "DATABASE_ERROR"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeRenderFailure      = "RENDER_FAILURE"

	// Validation errors (400)
	CodeValidation = "VALIDATION_ERROR"

	// Business rule violations (422)
	CodeCurrencyMismatch       = "CURRENCY_MISMATCH"
	CodeMissingDocument        = "MISSING_DOCUMENT"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"

	// Conflict (409)
	CodeConflict  = "CONFLICT"
	CodeDuplicate = "DUPLICATE_ENTRY"
)

// AppError is the standard error type for the service.
// It implements the error interface and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field errors, currencies, paths, etc.)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error.
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions for common errors ---

// NewValidation creates a validation error (400).
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFound creates a not found error (404).
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewCurrencyMismatch is returned when an invoice price update carries a
// currency differing from the one the invoice was issued in.
func NewCurrencyMismatch(invoiceCurrency, orderCurrency string) *AppError {
	return &AppError{
		Code:       CodeCurrencyMismatch,
		Message:    "Order currency does not match the invoice currency",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"invoice_currency": invoiceCurrency,
			"order_currency":   orderCurrency,
		},
	}
}

// NewMissingDocument is returned when an invoice has no rendered document yet.
func NewMissingDocument(number string) *AppError {
	return &AppError{
		Code:       CodeMissingDocument,
		Message:    fmt.Sprintf("Document for invoice %q has not been rendered", number),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"number": number},
	}
}

// NewStorageUnavailable is returned when the document root is missing or unwritable.
// Fatal at construction time, not recoverable per-call.
func NewStorageUnavailable(root string, err error) *AppError {
	return &AppError{
		Code:       CodeStorageUnavailable,
		Message:    fmt.Sprintf("Document root %q is not available", root),
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"root": root},
		Err:        err,
	}
}

// NewRenderFailure wraps an error raised by the document renderer.
// Propagated unchanged, no retry.
func NewRenderFailure(number string, err error) *AppError {
	return &AppError{
		Code:       CodeRenderFailure,
		Message:    fmt.Sprintf("Rendering invoice %q failed", number),
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"number": number},
		Err:        err,
	}
}

// NewConcurrentModification creates an optimistic locking error.
func NewConcurrentModification(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeConcurrentModification,
		Message:    "Record was modified by another caller. Please refresh and try again.",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewInternal creates an internal server error (hides details from client).
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewConflict creates a conflict error (409).
func NewConflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewDuplicate creates a duplicate entry error (409).
func NewDuplicate(entity, field, value string) *AppError {
	return &AppError{
		Code:       CodeDuplicate,
		Message:    fmt.Sprintf("%s with this %s already exists", entity, field),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"entity": entity, "field": field, "value": value},
	}
}

// --- Helper functions ---

// AsAppError extracts AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns the appropriate HTTP status for any error.
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsNotFound checks if error carries CodeNotFound.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsCurrencyMismatch checks if error carries CodeCurrencyMismatch.
func IsCurrencyMismatch(err error) bool {
	return hasCode(err, CodeCurrencyMismatch)
}

// IsMissingDocument checks if error carries CodeMissingDocument.
func IsMissingDocument(err error) bool {
	return hasCode(err, CodeMissingDocument)
}

func hasCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}
