package v1

import (
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/services"
	"github.com/centsible/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetEditable represents all user configurable parameters of a budget.
// Exactly one of CategoryID and SubcategoryID must be set.
type BudgetEditable struct {
	Month         types.Month     `json:"month" example:"2025-03"`                                      // Year and month the budget applies to
	Amount        decimal.Decimal `json:"amount" example:"500"`                                         // The budgeted amount, must be positive
	CategoryID    *uuid.UUID      `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`    // ID of the category the budget is for
	SubcategoryID *uuid.UUID      `json:"subcategoryId" example:"cf07ff4e-74bd-4f76-b364-1b15b0bbd1a7"` // ID of the subcategory the budget is for
	Recurring     bool            `json:"recurring" example:"true" default:"false"`                     // Copy this budget into future months?
	Note          string          `json:"note" example:"Cutting back on eating out" default:""`         // Notes about the budget
}

func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		Month:         editable.Month,
		Amount:        editable.Amount,
		CategoryID:    editable.CategoryID,
		SubcategoryID: editable.SubcategoryID,
		Recurring:     editable.Recurring,
		Note:          editable.Note,
	}
}

// BudgetUpdateable are the fields that can be changed after creation.
// Nil fields are left untouched.
type BudgetUpdateable struct {
	Amount *decimal.Decimal `json:"amount" example:"450"`
	Note   *string          `json:"note" example:"Adjusted mid-month"`
}

type BudgetCopyEditable struct {
	From types.Month `json:"from" example:"2025-02"` // Month to copy recurring budgets from
	To   types.Month `json:"to" example:"2025-03"`   // Month to copy them into
}

type BudgetListResponse struct {
	Data  []services.BudgetWithSpend `json:"data"`  // The budgets with their computed spend
	Month types.Month                `json:"month"` // The month the list is for
}

type BudgetResponse struct {
	Data services.BudgetWithSpend `json:"data"`
}

type BudgetCreateResponse struct {
	Data models.Budget `json:"data"`
}

type BudgetCopyResponse struct {
	Data []models.Budget `json:"data"` // The budgets created in the target month
}
