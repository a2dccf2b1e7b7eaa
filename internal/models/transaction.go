package models

import (
	"strings"
	"time"

	apperrors "github.com/centsible/backend/internal/errors"
	"github.com/centsible/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction types. Only expenses participate in budget spend.
const (
	TransactionExpense  = "expense"
	TransactionIncome   = "income"
	TransactionTransfer = "transfer"
)

// Transaction is a posted ledger entry.
//
// Amounts are stored as signed decimals; spend calculations always consume
// the absolute value.
type Transaction struct {
	DefaultModel
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"-120.00"`
	Type          string          `json:"type" example:"expense"`
	CategoryID    *uuid.UUID      `json:"categoryId,omitempty"`
	Category      *Category       `json:"-"`
	SubcategoryID *uuid.UUID      `json:"subcategoryId,omitempty"`
	Subcategory   *Subcategory    `json:"-"`
	UserID        uuid.UUID       `json:"userId"`
	User          User            `json:"-"`
	HouseholdID   *uuid.UUID      `json:"householdId,omitempty"`
	Household     *Household      `json:"-"`
	Payee         string          `json:"payee,omitempty"`
	Note          string          `json:"note,omitempty"`
}

// BeforeSave validates the type and pins the date to UTC.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Payee = strings.TrimSpace(t.Payee)
	t.Note = strings.TrimSpace(t.Note)

	switch t.Type {
	case TransactionExpense, TransactionIncome, TransactionTransfer:
	default:
		return apperrors.ErrInvalidType
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

// AfterFind updates the date to use UTC as timezone, not +0000. We already
// store it in UTC, but reading it back returns +0000.
func (t *Transaction) AfterFind(_ *gorm.DB) error {
	t.Date = t.Date.In(time.UTC)
	return nil
}

// SpendProjection is the projection fetched by the fallback scan: just
// enough of a transaction to attribute its amount to spend maps.
type SpendProjection struct {
	CategoryID    *uuid.UUID
	SubcategoryID *uuid.UUID
	Amount        decimal.Decimal
}

// expenseScope scopes a query to categorized expenses within a month.
func expenseScope(db *gorm.DB, month types.Month, userID uuid.UUID, householdID *uuid.UUID) *gorm.DB {
	first, last := month.Bounds()

	q := db.Model(&Transaction{}).
		Where("type = ?", TransactionExpense).
		Where("category_id IS NOT NULL").
		Where("date BETWEEN ? AND ?", first, last)

	if householdID != nil {
		q = q.Where("household_id = ? OR user_id = ?", householdID, userID)
	} else {
		q = q.Where("user_id = ?", userID)
	}

	return q
}

// CountExpensesForMonth is the cheap existence probe for the fallback scan.
func CountExpensesForMonth(db *gorm.DB, month types.Month, userID uuid.UUID, householdID *uuid.UUID) (int64, error) {
	var count int64
	err := expenseScope(db, month, userID, householdID).Count(&count).Error
	return count, err
}

// ExpensesForMonth fetches the spend projections for the fallback scan.
func ExpensesForMonth(db *gorm.DB, month types.Month, userID uuid.UUID, householdID *uuid.UUID) ([]SpendProjection, error) {
	var projections []SpendProjection
	err := expenseScope(db, month, userID, householdID).
		Select("category_id", "subcategory_id", "amount").
		Scan(&projections).Error

	return projections, err
}
