// Package services implements the business logic on top of the models.
//
// Services are interface-first so that handlers can be tested against
// fakes, and they receive their collaborators through their constructors.
package services

import (
	"time"

	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invalidator is the cache invalidation port. Services call it
// synchronously after every mutating operation.
type Invalidator interface {
	Invalidate(scope string)
}

// noopInvalidator is used when no cache is wired.
type noopInvalidator struct{}

func (noopInvalidator) Invalidate(string) {}

// BudgetWithSpend is a budget enriched with its computed actual spend and
// the resolved display category/subcategory. Percentage and over/under
// status are presentation-layer concerns and deliberately not included.
type BudgetWithSpend struct {
	models.Budget
	Category    *models.Category    `json:"category,omitempty"`
	Subcategory *models.Subcategory `json:"subcategory,omitempty"`
	ActualSpend decimal.Decimal     `json:"actualSpend"`
}

// BudgetServicer is the budget reconciliation engine.
type BudgetServicer interface {
	GetBudgets(userID uuid.UUID, month types.Month) ([]BudgetWithSpend, error)
	GetBudget(userID, budgetID uuid.UUID) (BudgetWithSpend, error)
	CreateBudget(userID uuid.UUID, budget models.Budget) (models.Budget, error)
	UpdateBudget(userID, budgetID uuid.UUID, amount *decimal.Decimal, note *string) (models.Budget, error)
	DeleteBudget(userID, budgetID uuid.UUID) error
	CopyRecurring(userID uuid.UUID, from, to types.Month) ([]models.Budget, error)
}

// UserServicer handles registration and credential checks.
type UserServicer interface {
	Register(email, password, name string) (models.User, error)
	AttemptLogin(email, password string) (models.User, error)
	GetByID(id uuid.UUID) (models.User, error)
}

// HouseholdServicer manages households and memberships.
type HouseholdServicer interface {
	Create(userID uuid.UUID, name, currency string) (models.Household, error)
	Join(userID, householdID uuid.UUID) error
	Leave(userID uuid.UUID) error
	ActiveHousehold(userID uuid.UUID) (*models.Household, error)
}

// CategoryServicer manages the classification tree.
type CategoryServicer interface {
	Categories(includeArchived bool) ([]models.Category, error)
	Subcategories(categoryID uuid.UUID, includeArchived bool) ([]models.Subcategory, error)
	CreateCategory(category models.Category) (models.Category, error)
	CreateSubcategory(subcategory models.Subcategory) (models.Subcategory, error)
}

// TransactionFilter holds optional filter parameters for listing
// transactions. Search matches the payee and note fields and supports *
// glob wildcards.
type TransactionFilter struct {
	Month      *types.Month
	Type       string
	CategoryID *uuid.UUID
	Search     string
}

// TransactionServicer manages ledger entries.
type TransactionServicer interface {
	Create(userID uuid.UUID, transaction models.Transaction) (models.Transaction, error)
	List(userID uuid.UUID, filter TransactionFilter) ([]models.Transaction, error)
	Update(userID, transactionID uuid.UUID, amount *decimal.Decimal, date *time.Time, note *string) (models.Transaction, error)
	Delete(userID, transactionID uuid.UUID) error
}
