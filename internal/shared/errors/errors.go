// Package errors defines the application error envelope and the error kinds
// exposed to API clients. Domain packages keep their own sentinel errors; use
// cases translate them into AppError values so handlers can map them to HTTP
// status codes without string matching.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType is the machine-readable error kind carried in API responses.
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation_error"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeInternal     ErrorType = "internal_error"
	ErrorTypeBadRequest   ErrorType = "bad_request"

	// Booking and ledger specific kinds.
	ErrorTypeInsufficientCredits ErrorType = "insufficient_credits"
	ErrorTypeSlotAlreadyBooked   ErrorType = "slot_already_booked"
	ErrorTypeNotValidated        ErrorType = "not_validated"
)

// AppError carries an error kind, a human-readable message and the HTTP status
// used when the error reaches the API boundary.
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`

	cause error
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func newAppError(t ErrorType, code int, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{Type: t, Message: message, Code: code, Details: detail}
}

func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message, details)
}

func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details)
}

func NewForbiddenError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeForbidden, http.StatusForbidden, message, details)
}

func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

func NewBadRequestError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeBadRequest, http.StatusBadRequest, message, details)
}

// NewInsufficientCreditsError reports a rejected debit. The whole batch the
// debit belonged to is rolled back before this surfaces.
func NewInsufficientCreditsError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInsufficientCredits, http.StatusPaymentRequired, message, details)
}

// NewSlotAlreadyBookedError reports a (position, date) slot lost to another
// reservation, either in the pre-check or at commit time via the slot index
// uniqueness constraint.
func NewSlotAlreadyBookedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeSlotAlreadyBooked, http.StatusConflict, message, details)
}

// NewNotValidatedError reports an operation that requires an admin-approved
// reservation.
func NewNotValidatedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotValidated, http.StatusUnprocessableEntity, message, details)
}

// Unwrap exposes the underlying cause so errors.Is keeps matching domain
// sentinels after translation.
func (e *AppError) Unwrap() error {
	return e.cause
}

// Wrap attaches err as the cause of app and returns app.
func Wrap(app *AppError, err error) *AppError {
	app.cause = err
	return app
}

// GetAppError extracts an AppError from an error chain, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsAppError reports whether err carries an AppError.
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

func IsNotFoundError(err error) bool            { return isType(err, ErrorTypeNotFound) }
func IsConflictError(err error) bool            { return isType(err, ErrorTypeConflict) }
func IsValidationError(err error) bool          { return isType(err, ErrorTypeValidation) }
func IsInsufficientCreditsError(err error) bool { return isType(err, ErrorTypeInsufficientCredits) }
func IsSlotAlreadyBookedError(err error) bool   { return isType(err, ErrorTypeSlotAlreadyBooked) }
func IsNotValidatedError(err error) bool        { return isType(err, ErrorTypeNotValidated) }

// IsDuplicateError reports whether err is a database unique-key violation.
// Checked by string because gorm surfaces driver errors opaquely and the
// service runs against both MySQL and SQLite (tests).
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "Duplicate entry") ||
		strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "UNIQUE constraint failed") ||
		strings.Contains(s, "unique constraint")
}
