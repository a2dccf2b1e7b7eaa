package models

import (
	"errors"
	"strings"

	apperrors "github.com/centsible/backend/internal/errors"
	"github.com/centsible/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a spending envelope for one calendar month, targeting either a
// category as a whole or one specific subcategory.
//
// A budget belongs either to a household (shared, visible to all members)
// or to a single user. The slot key makes the combination of month, target
// and owner scope unique at the storage layer, which is the correctness
// mechanism against concurrent creation of the same envelope.
type Budget struct {
	DefaultModel
	Month         types.Month     `json:"month" gorm:"uniqueIndex:budget_month_slot" example:"2025-03-01T00:00:00Z"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"500"`
	CategoryID    *uuid.UUID      `json:"categoryId,omitempty"`
	Category      *Category       `json:"-"`
	SubcategoryID *uuid.UUID      `json:"subcategoryId,omitempty"`
	Subcategory   *Subcategory    `json:"-"`
	UserID        uuid.UUID       `json:"userId"`
	User          User            `json:"-"`
	HouseholdID   *uuid.UUID      `json:"householdId,omitempty"`
	Household     *Household      `json:"-"`
	Recurring     bool            `json:"recurring"`
	Note          string          `json:"note,omitempty"`
	SlotKey       string          `json:"-" gorm:"uniqueIndex:budget_month_slot"`
}

// BeforeSave validates the budget and computes the slot key.
func (b *Budget) BeforeSave(tx *gorm.DB) error {
	b.Note = strings.TrimSpace(b.Note)

	if !b.Amount.IsPositive() {
		return apperrors.ErrAmountNotPositive
	}

	if b.CategoryID == nil && b.SubcategoryID == nil {
		return apperrors.ErrMissingTarget
	}

	// A subcategory budget may carry the parent category for display, but
	// the subcategory must actually belong to it.
	if b.CategoryID != nil && b.SubcategoryID != nil {
		var subcategory Subcategory
		err := tx.First(&subcategory, "id = ?", b.SubcategoryID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrSubcategoryNotFound
		}
		if err != nil {
			return err
		}

		if subcategory.CategoryID != *b.CategoryID {
			return apperrors.ErrSubcategoryMismatch
		}
	}

	b.SlotKey = BudgetSlotKey(b.CategoryID, b.SubcategoryID, b.UserID, b.HouseholdID)
	return nil
}

// BeforeDelete frees the slot before the row is soft-deleted. Without
// this, the unique index would keep blocking the slot because the deleted
// row still exists.
func (b *Budget) BeforeDelete(tx *gorm.DB) error {
	return tx.Model(&Budget{}).
		Where("id = ?", b.ID).
		UpdateColumn("slot_key", gorm.Expr("slot_key || ?", "/deleted:"+b.ID.String())).Error
}

// BudgetSlotKey builds the uniqueness key for a budget slot: the targeted
// subcategory (or category when no subcategory is set), scoped to the
// household when one is set and to the user otherwise.
func BudgetSlotKey(categoryID, subcategoryID *uuid.UUID, userID uuid.UUID, householdID *uuid.UUID) string {
	target := "cat:"
	if subcategoryID != nil {
		target = "sub:" + subcategoryID.String()
	} else if categoryID != nil {
		target += categoryID.String()
	}

	owner := "user:" + userID.String()
	if householdID != nil {
		owner = "hh:" + householdID.String()
	}

	return target + "/" + owner
}

// OwnerScope returns the cache scope the budget's spend data lives under.
func (b Budget) OwnerScope() string {
	if b.HouseholdID != nil {
		return "hh:" + b.HouseholdID.String()
	}

	return "user:" + b.UserID.String()
}

// BudgetsByMonth returns all non-deleted budgets for a month, without any
// ownership filter. Visibility is decided by the caller.
func BudgetsByMonth(db *gorm.DB, month types.Month) ([]Budget, error) {
	var budgets []Budget
	err := db.Where("month = ?", month).Order("created_at ASC").Find(&budgets).Error
	return budgets, err
}

// BudgetSlotTaken reports whether a non-deleted budget already occupies the
// slot for the given month, target and owner scope.
func BudgetSlotTaken(db *gorm.DB, month types.Month, categoryID, subcategoryID *uuid.UUID, userID uuid.UUID, householdID *uuid.UUID) (bool, error) {
	slotKey := BudgetSlotKey(categoryID, subcategoryID, userID, householdID)

	var count int64
	err := db.Model(&Budget{}).
		Where("month = ? AND slot_key = ?", month, slotKey).
		Count(&count).Error

	return count > 0, err
}
