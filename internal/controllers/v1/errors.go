package v1

import (
	"errors"
	"net/http"

	apperrors "github.com/centsible/backend/internal/errors"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate HTTP status for an error. Service
// errors carry their own status, everything else is treated as a bad
// request since it comes from binding client input.
func status(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	return http.StatusBadRequest
}
