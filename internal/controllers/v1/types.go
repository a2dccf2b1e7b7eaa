package v1

import (
	ct_uuid "github.com/centsible/backend/internal/uuid"
)

type URIID struct {
	ID ct_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type QueryMonth struct {
	Month string `form:"month" example:"2025-03"` // Year and month in YYYY-MM format, defaults to the current month
}
