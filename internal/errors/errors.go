// Package errors provides the application error taxonomy.
//
// Services return *AppError values so that the HTTP layer can map every
// failure to a status code without inspecting database errors, and so that
// internal details never leak into responses.
package errors

import (
	stderrors "errors"
	"net/http"
)

// AppError is a structured application error with a stable code, a
// human-readable message, an HTTP status equivalent and an optional
// wrapped internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code. This makes
// errors.Is work for wrapped sentinels.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap returns a copy of sentinel that wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// Authentication and authorization.
var (
	ErrUnauthenticated    = &AppError{Code: "UNAUTHENTICATED", Message: "authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "you do not have access to this resource", StatusCode: http.StatusForbidden}
)

// General.
var (
	ErrInvalidInput = &AppError{Code: "INVALID_INPUT", Message: "invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound     = &AppError{Code: "NOT_FOUND", Message: "there is no resource for the ID you specified", StatusCode: http.StatusNotFound}
	ErrInternal     = &AppError{Code: "INTERNAL_ERROR", Message: "an error occurred on the server during your request", StatusCode: http.StatusInternalServerError}
)

// Budgets.
var (
	ErrBudgetNotFound      = &AppError{Code: "BUDGET_NOT_FOUND", Message: "there is no budget for the ID you specified", StatusCode: http.StatusNotFound}
	ErrBudgetSlotTaken     = &AppError{Code: "BUDGET_EXISTS", Message: "a budget for this period and category already exists", StatusCode: http.StatusConflict}
	ErrAmountNotPositive   = &AppError{Code: "AMOUNT_NOT_POSITIVE", Message: "the budget amount must be larger than zero", StatusCode: http.StatusBadRequest}
	ErrAmbiguousTarget     = &AppError{Code: "AMBIGUOUS_TARGET", Message: "a budget targets either a category or a subcategory, not both", StatusCode: http.StatusBadRequest}
	ErrMissingTarget       = &AppError{Code: "MISSING_TARGET", Message: "a budget needs a category or a subcategory", StatusCode: http.StatusBadRequest}
	ErrSubcategoryMismatch = &AppError{Code: "SUBCATEGORY_MISMATCH", Message: "the subcategory does not belong to the category you specified", StatusCode: http.StatusBadRequest}
)

// Users and households.
var (
	ErrUserNotFound      = &AppError{Code: "USER_NOT_FOUND", Message: "there is no user for the ID you specified", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail    = &AppError{Code: "DUPLICATE_EMAIL", Message: "a user with this email already exists", StatusCode: http.StatusConflict}
	ErrHouseholdNotFound = &AppError{Code: "HOUSEHOLD_NOT_FOUND", Message: "there is no household for the ID you specified", StatusCode: http.StatusNotFound}
	ErrInvalidCurrency   = &AppError{Code: "INVALID_CURRENCY", Message: "the currency must be a valid ISO 4217 code", StatusCode: http.StatusBadRequest}
)

// Categories and transactions.
var (
	ErrCategoryNotFound    = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "there is no category for the ID you specified", StatusCode: http.StatusNotFound}
	ErrSubcategoryNotFound = &AppError{Code: "SUBCATEGORY_NOT_FOUND", Message: "there is no subcategory for the ID you specified", StatusCode: http.StatusNotFound}
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "there is no transaction for the ID you specified", StatusCode: http.StatusNotFound}
	ErrInvalidType         = &AppError{Code: "INVALID_TYPE", Message: "the transaction type must be expense, income or transfer", StatusCode: http.StatusBadRequest}
)

// Status returns the HTTP status for an error. AppErrors carry their own
// status, everything else is a 500.
func Status(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.StatusCode
	}

	return http.StatusInternalServerError
}
