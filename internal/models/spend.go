package models

import (
	"github.com/centsible/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthlyCategorySpend is the precomputed spend aggregate: the sum of
// absolute expense amounts per month, caller and category or subcategory.
//
// It is a performance optimization over scanning raw transactions. The
// budget engine only reads it and must produce the same numbers from the
// raw transactions when it is stale, empty or unavailable. It is refreshed
// out of band via RebuildMonthlySpend.
type MonthlyCategorySpend struct {
	Timestamps
	Month            types.Month     `json:"month" gorm:"primaryKey"`
	UserID           uuid.UUID       `json:"userId" gorm:"primaryKey"`
	Key              string          `json:"key" gorm:"primaryKey" example:"category:65392deb-5e92-4268-b114-297faad6cdce"`
	CategoryID       *uuid.UUID      `json:"categoryId,omitempty"`
	SubcategoryID    *uuid.UUID      `json:"subcategoryId,omitempty"`
	ActualSpend      decimal.Decimal `json:"actualSpend" gorm:"type:DECIMAL(20,8)"`
	TransactionCount int             `json:"transactionCount"`
}

// Aggregate row key prefixes.
const (
	SpendKeyCategory    = "category:"
	SpendKeySubcategory = "subcategory:"
)

// MonthlySpendRows returns the aggregate rows for one caller and month.
// Zero rows means the aggregate has not been materialized for this key and
// the caller must fall back to scanning transactions.
func MonthlySpendRows(db *gorm.DB, month types.Month, userID uuid.UUID) ([]MonthlyCategorySpend, error) {
	var rows []MonthlyCategorySpend
	err := db.Where("month = ? AND user_id = ?", month, userID).Find(&rows).Error
	return rows, err
}

// RebuildMonthlySpend recomputes the aggregate rows for one caller and
// month from the raw transactions. It is called by the out-of-band
// refresher, never by the read path.
func RebuildMonthlySpend(db *gorm.DB, month types.Month, userID uuid.UUID, householdID *uuid.UUID) error {
	projections, err := ExpensesForMonth(db, month, userID, householdID)
	if err != nil {
		return err
	}

	type bucket struct {
		spend decimal.Decimal
		count int
	}
	categories := make(map[uuid.UUID]*bucket)
	subcategories := make(map[uuid.UUID]*bucket)

	add := func(m map[uuid.UUID]*bucket, id uuid.UUID, amount decimal.Decimal) {
		b, ok := m[id]
		if !ok {
			b = &bucket{}
			m[id] = b
		}
		b.spend = b.spend.Add(amount.Abs())
		b.count++
	}

	for _, p := range projections {
		if p.CategoryID != nil {
			add(categories, *p.CategoryID, p.Amount)
		}
		if p.SubcategoryID != nil {
			add(subcategories, *p.SubcategoryID, p.Amount)
		}
	}

	rows := make([]MonthlyCategorySpend, 0, len(categories)+len(subcategories))
	for id, b := range categories {
		id := id
		rows = append(rows, MonthlyCategorySpend{
			Month:            month,
			UserID:           userID,
			Key:              SpendKeyCategory + id.String(),
			CategoryID:       &id,
			ActualSpend:      b.spend,
			TransactionCount: b.count,
		})
	}
	for id, b := range subcategories {
		id := id
		rows = append(rows, MonthlyCategorySpend{
			Month:            month,
			UserID:           userID,
			Key:              SpendKeySubcategory + id.String(),
			SubcategoryID:    &id,
			ActualSpend:      b.spend,
			TransactionCount: b.count,
		})
	}

	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Unscoped().
			Where("month = ? AND user_id = ?", month, userID).
			Delete(&MonthlyCategorySpend{}).Error
		if err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}

		return tx.Create(&rows).Error
	})
}
