package models

import (
	"errors"
	"strings"

	apperrors "github.com/centsible/backend/internal/errors"
	"github.com/google/uuid"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

// Household is a sharing scope. Budgets and transactions with a household
// set are visible to every member, regardless of which member created them.
type Household struct {
	DefaultModel
	Name     string `json:"name"`
	Currency string `json:"currency" example:"EUR"`
}

// BeforeSave validates the currency against ISO 4217.
func (h *Household) BeforeSave(_ *gorm.DB) error {
	h.Name = strings.TrimSpace(h.Name)

	if h.Currency == "" {
		h.Currency = "EUR"
	}

	unit, err := currency.ParseISO(h.Currency)
	if err != nil {
		return apperrors.ErrInvalidCurrency
	}
	h.Currency = unit.String()

	return nil
}

// HouseholdMember links a user to a household. A user has at most one
// active membership, which determines their active household.
type HouseholdMember struct {
	DefaultModel
	HouseholdID uuid.UUID `json:"householdId"`
	Household   Household `json:"-"`
	UserID      uuid.UUID `json:"userId"`
	User        User      `json:"-"`
	Active      bool      `json:"active"`
}

// ActiveHouseholdID resolves the active household for a user. It returns
// uuid.Nil and no error when the user has no active membership.
func ActiveHouseholdID(db *gorm.DB, userID uuid.UUID) (uuid.UUID, error) {
	var member HouseholdMember
	err := db.Where(&HouseholdMember{UserID: userID, Active: true}, "UserID", "Active").First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, err
	}

	return member.HouseholdID, nil
}
