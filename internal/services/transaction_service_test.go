package services_test

import (
	"errors"

	apperrors "github.com/centsible/backend/internal/errors"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/services"
	"github.com/centsible/backend/internal/types"
	"github.com/shopspring/decimal"
)

func newTransactionService() services.TransactionServicer {
	return services.NewTransactionService(models.DB, nil)
}

func (suite *TestSuiteStandard) TestTransactionCreateScopesToHousehold() {
	alice := suite.createTestUser()
	household := suite.createTestHousehold(alice)
	groceries := suite.createTestCategory("Groceries")

	transaction, err := newTransactionService().Create(alice.ID, models.Transaction{
		Date:       date(2025, 3, 5),
		Amount:     decimal.NewFromInt(-25),
		Type:       models.TransactionExpense,
		CategoryID: &groceries.ID,
	})
	suite.Require().Nil(err)
	suite.Require().NotNil(transaction.HouseholdID)
	suite.Assert().Equal(household.ID, *transaction.HouseholdID)
}

func (suite *TestSuiteStandard) TestTransactionCreateInvalidType() {
	user := suite.createTestUser()

	_, err := newTransactionService().Create(user.ID, models.Transaction{
		Date:   date(2025, 3, 5),
		Amount: decimal.NewFromInt(-25),
		Type:   "withdrawal",
	})
	suite.Assert().True(errors.Is(err, apperrors.ErrInvalidType), "err is %v", err)
}

func (suite *TestSuiteStandard) TestTransactionListFilters() {
	user := suite.createTestUser()
	groceries := suite.createTestCategory("Groceries")
	service := newTransactionService()

	suite.createTestTransaction(models.Transaction{Date: date(2025, 3, 5), Amount: decimal.NewFromInt(-12), CategoryID: &groceries.ID, UserID: user.ID, Payee: "Corner Bakery"})
	suite.createTestTransaction(models.Transaction{Date: date(2025, 3, 7), Amount: decimal.NewFromInt(-30), CategoryID: &groceries.ID, UserID: user.ID, Payee: "Supermarket", Note: "weekly groceries"})
	suite.createTestTransaction(models.Transaction{Date: date(2025, 4, 2), Amount: decimal.NewFromInt(-8), CategoryID: &groceries.ID, UserID: user.ID, Payee: "Corner Bakery"})
	suite.createTestTransaction(models.Transaction{Date: date(2025, 3, 9), Amount: decimal.NewFromInt(2500), Type: models.TransactionIncome, UserID: user.ID, Payee: "Employer"})

	march := types.NewMonth(2025, 3)

	transactions, err := service.List(user.ID, services.TransactionFilter{Month: &march})
	suite.Require().Nil(err)
	suite.Assert().Len(transactions, 3)

	transactions, err = service.List(user.ID, services.TransactionFilter{Month: &march, Type: models.TransactionExpense})
	suite.Require().Nil(err)
	suite.Assert().Len(transactions, 2)

	// Glob search over payee and note, case insensitive
	transactions, err = service.List(user.ID, services.TransactionFilter{Search: "corner*"})
	suite.Require().Nil(err)
	suite.Assert().Len(transactions, 2)

	transactions, err = service.List(user.ID, services.TransactionFilter{Search: "*weekly*"})
	suite.Require().Nil(err)
	suite.Assert().Len(transactions, 1)
}

func (suite *TestSuiteStandard) TestTransactionOwnership() {
	owner := suite.createTestUser()
	intruder := suite.createTestUser()
	service := newTransactionService()

	transaction := suite.createTestTransaction(models.Transaction{
		Date:   date(2025, 3, 5),
		Amount: decimal.NewFromInt(-12),
		UserID: owner.ID,
	})

	err := service.Delete(intruder.ID, transaction.ID)
	suite.Assert().True(errors.Is(err, apperrors.ErrForbidden), "err is %v", err)

	newAmount := decimal.NewFromInt(-15)
	updated, err := service.Update(owner.ID, transaction.ID, &newAmount, nil, nil)
	suite.Require().Nil(err)
	suite.Assert().True(newAmount.Equal(updated.Amount))

	suite.Assert().Nil(service.Delete(owner.ID, transaction.ID))

	transactions, err := service.List(owner.ID, services.TransactionFilter{})
	suite.Require().Nil(err)
	suite.Assert().Empty(transactions)
}
