package services

import (
	"errors"
	"strings"
	"time"

	apperrors "github.com/centsible/backend/internal/errors"
	"github.com/centsible/backend/internal/models"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type transactionService struct {
	db          *gorm.DB
	invalidator Invalidator
}

// NewTransactionService creates a TransactionServicer. Mutations
// invalidate cached spend data through the invalidator.
func NewTransactionService(db *gorm.DB, invalidator Invalidator) TransactionServicer {
	if invalidator == nil {
		invalidator = noopInvalidator{}
	}

	return &transactionService{db: db, invalidator: invalidator}
}

// Create records a transaction for the caller, scoped to their active
// household when they have one.
func (s *transactionService) Create(userID uuid.UUID, transaction models.Transaction) (models.Transaction, error) {
	if userID == uuid.Nil {
		return models.Transaction{}, apperrors.ErrUnauthenticated
	}

	transaction.UserID = userID

	householdID, err := models.ActiveHouseholdID(s.db, userID)
	if err != nil {
		return models.Transaction{}, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	transaction.HouseholdID = optionalID(householdID)

	err = s.db.Create(&transaction).Error
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return models.Transaction{}, appErr
		}

		return models.Transaction{}, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	s.invalidateSpend(transaction)
	return transaction, nil
}

// List returns the caller's transactions, including household-shared ones.
// The Search filter matches payee and note with * glob wildcards.
func (s *transactionService) List(userID uuid.UUID, filter TransactionFilter) ([]models.Transaction, error) {
	if userID == uuid.Nil {
		return []models.Transaction{}, nil
	}

	householdID, err := models.ActiveHouseholdID(s.db, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	q := s.db.Order("date DESC")
	if householdID != uuid.Nil {
		q = q.Where("household_id = ? OR user_id = ?", householdID, userID)
	} else {
		q = q.Where("user_id = ?", userID)
	}

	if filter.Month != nil {
		first, last := filter.Month.Bounds()
		q = q.Where("date BETWEEN ? AND ?", first, last)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", filter.CategoryID)
	}

	var transactions []models.Transaction
	err = q.Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	if filter.Search == "" {
		return transactions, nil
	}

	// Glob matching happens in memory, the pattern syntax is not
	// portable across database dialects.
	pattern := strings.ToLower(filter.Search)
	matched := make([]models.Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		if glob.Glob(pattern, strings.ToLower(transaction.Payee)) || glob.Glob(pattern, strings.ToLower(transaction.Note)) {
			matched = append(matched, transaction)
		}
	}

	return matched, nil
}

// Update changes the amount, date and/or note of the caller's transaction.
func (s *transactionService) Update(userID, transactionID uuid.UUID, amount *decimal.Decimal, date *time.Time, note *string) (models.Transaction, error) {
	transaction, err := s.requireOwnership(userID, transactionID)
	if err != nil {
		return models.Transaction{}, err
	}

	if amount != nil {
		transaction.Amount = *amount
	}
	if date != nil {
		transaction.Date = *date
	}
	if note != nil {
		transaction.Note = *note
	}

	err = s.db.Save(&transaction).Error
	if err != nil {
		return models.Transaction{}, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	s.invalidateSpend(transaction)
	return transaction, nil
}

// Delete soft-deletes the caller's transaction.
func (s *transactionService) Delete(userID, transactionID uuid.UUID) error {
	transaction, err := s.requireOwnership(userID, transactionID)
	if err != nil {
		return err
	}

	err = s.db.Delete(&transaction).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternal, err)
	}

	s.invalidateSpend(transaction)
	return nil
}

func (s *transactionService) requireOwnership(userID, transactionID uuid.UUID) (models.Transaction, error) {
	if userID == uuid.Nil {
		return models.Transaction{}, apperrors.ErrUnauthenticated
	}

	var transaction models.Transaction
	err := s.db.First(&transaction, "id = ?", transactionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return models.Transaction{}, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	if transaction.UserID != userID {
		return models.Transaction{}, apperrors.ErrForbidden
	}

	return transaction, nil
}

func (s *transactionService) invalidateSpend(transaction models.Transaction) {
	if transaction.HouseholdID != nil {
		s.invalidator.Invalidate("hh:" + transaction.HouseholdID.String())
	}
	s.invalidator.Invalidate("user:" + transaction.UserID.String())
}
