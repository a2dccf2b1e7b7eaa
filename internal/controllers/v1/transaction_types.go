package v1

import (
	"time"

	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/services"
	"github.com/centsible/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionEditable represents all user configurable parameters of a
// transaction.
type TransactionEditable struct {
	Date          time.Time       `json:"date" example:"2025-03-14T00:00:00Z"`                       // Date the transaction happened
	Amount        decimal.Decimal `json:"amount" example:"-42.13"`                                   // Amount, negative for money leaving the account
	Type          string          `json:"type" example:"expense"`                                    // One of expense, income, transfer
	CategoryID    *uuid.UUID      `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the category
	SubcategoryID *uuid.UUID      `json:"subcategoryId"`                                             // ID of the subcategory
	Payee         string          `json:"payee" example:"Corner store" default:""`                   // Who money was paid to or received from
	Note          string          `json:"note" default:""`                                           // Notes about the transaction
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Date:          editable.Date,
		Amount:        editable.Amount,
		Type:          editable.Type,
		CategoryID:    editable.CategoryID,
		SubcategoryID: editable.SubcategoryID,
		Payee:         editable.Payee,
		Note:          editable.Note,
	}
}

// TransactionUpdateable are the fields that can be changed after
// creation. Nil fields are left untouched.
type TransactionUpdateable struct {
	Amount *decimal.Decimal `json:"amount"`
	Date   *time.Time       `json:"date"`
	Note   *string          `json:"note"`
}

type TransactionQueryFilter struct {
	Month    string `form:"month"`    // By year and month in YYYY-MM format
	Type     string `form:"type"`     // By type: expense, income or transfer
	Category string `form:"category"` // By category ID
	Search   string `form:"search"`   // Search in payee and note, supports * wildcards
}

func (f TransactionQueryFilter) filter() (services.TransactionFilter, error) {
	filter := services.TransactionFilter{
		Type:   f.Type,
		Search: f.Search,
	}

	if f.Month != "" {
		month, err := types.ParseMonth(f.Month)
		if err != nil {
			return services.TransactionFilter{}, httputil.ErrInvalidMonth
		}
		filter.Month = &month
	}

	categoryID, err := httputil.UUIDFromString(f.Category)
	if err != nil {
		return services.TransactionFilter{}, err
	}
	if categoryID != uuid.Nil {
		filter.CategoryID = &categoryID
	}

	return filter, nil
}

type TransactionListResponse struct {
	Data []models.Transaction `json:"data"`
}

type TransactionResponse struct {
	Data models.Transaction `json:"data"`
}
