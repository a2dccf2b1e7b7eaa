package v1

import (
	"github.com/centsible/backend/internal/models"
	"github.com/google/uuid"
)

// HouseholdEditable represents all user configurable parameters of a
// household.
type HouseholdEditable struct {
	Name     string `json:"name" binding:"required" example:"The Does"`
	Currency string `json:"currency" example:"EUR" default:"EUR"` // ISO 4217 currency code
}

type HouseholdJoinEditable struct {
	HouseholdID uuid.UUID `json:"householdId" binding:"required" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
}

type HouseholdResponse struct {
	Data models.Household `json:"data"`
}
