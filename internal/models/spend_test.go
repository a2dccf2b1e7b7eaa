package models_test

import (
	"time"

	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/types"
	"github.com/shopspring/decimal"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func (suite *TestSuiteStandard) TestRebuildMonthlySpend() {
	user := suite.createTestUser(models.User{})
	dining := suite.createTestCategory(models.Category{Name: "Dining"})
	coffee := suite.createTestSubcategory(models.Subcategory{CategoryID: dining.ID, Name: "Coffee"})
	month := types.NewMonth(2025, 3)

	// Two coffee expenses, one untagged dining expense, one income and one
	// next-month expense that must both be ignored.
	suite.createTestTransaction(models.Transaction{Date: date(2025, 3, 5), Amount: decimal.NewFromInt(-12), CategoryID: &dining.ID, SubcategoryID: &coffee.ID, UserID: user.ID})
	suite.createTestTransaction(models.Transaction{Date: date(2025, 3, 15), Amount: decimal.NewFromInt(-18), CategoryID: &dining.ID, SubcategoryID: &coffee.ID, UserID: user.ID})
	suite.createTestTransaction(models.Transaction{Date: date(2025, 3, 20), Amount: decimal.NewFromInt(-40), CategoryID: &dining.ID, UserID: user.ID})
	suite.createTestTransaction(models.Transaction{Date: date(2025, 3, 21), Amount: decimal.NewFromInt(2000), Type: models.TransactionIncome, CategoryID: &dining.ID, UserID: user.ID})
	suite.createTestTransaction(models.Transaction{Date: date(2025, 4, 1), Amount: decimal.NewFromInt(-99), CategoryID: &dining.ID, UserID: user.ID})

	suite.Assert().Nil(models.RebuildMonthlySpend(models.DB, month, user.ID, nil))

	rows, err := models.MonthlySpendRows(models.DB, month, user.ID)
	suite.Assert().Nil(err)
	suite.Assert().Len(rows, 2)

	byKey := make(map[string]models.MonthlyCategorySpend)
	for _, row := range rows {
		byKey[row.Key] = row
	}

	categoryRow := byKey[models.SpendKeyCategory+dining.ID.String()]
	suite.Assert().True(decimal.NewFromInt(70).Equal(categoryRow.ActualSpend), "category spend is %s", categoryRow.ActualSpend)
	suite.Assert().Equal(3, categoryRow.TransactionCount)

	subcategoryRow := byKey[models.SpendKeySubcategory+coffee.ID.String()]
	suite.Assert().True(decimal.NewFromInt(30).Equal(subcategoryRow.ActualSpend), "subcategory spend is %s", subcategoryRow.ActualSpend)
	suite.Assert().Equal(2, subcategoryRow.TransactionCount)
}

// TestRebuildMonthlySpendReplaces verifies that a rebuild is idempotent and
// replaces stale rows instead of accumulating.
func (suite *TestSuiteStandard) TestRebuildMonthlySpendReplaces() {
	user := suite.createTestUser(models.User{})
	groceries := suite.createTestCategory(models.Category{Name: "Groceries"})
	month := types.NewMonth(2025, 3)

	suite.createTestTransaction(models.Transaction{Date: date(2025, 3, 5), Amount: decimal.NewFromFloat(-120.00), CategoryID: &groceries.ID, UserID: user.ID})

	suite.Assert().Nil(models.RebuildMonthlySpend(models.DB, month, user.ID, nil))
	suite.Assert().Nil(models.RebuildMonthlySpend(models.DB, month, user.ID, nil))

	rows, err := models.MonthlySpendRows(models.DB, month, user.ID)
	suite.Assert().Nil(err)
	suite.Assert().Len(rows, 1)
	suite.Assert().True(decimal.NewFromInt(120).Equal(rows[0].ActualSpend))
}

func (suite *TestSuiteStandard) TestCountExpensesForMonth() {
	user := suite.createTestUser(models.User{})
	groceries := suite.createTestCategory(models.Category{Name: "Groceries"})
	month := types.NewMonth(2025, 3)

	count, err := models.CountExpensesForMonth(models.DB, month, user.ID, nil)
	suite.Assert().Nil(err)
	suite.Assert().Zero(count)

	// An uncategorized expense does not count
	suite.createTestTransaction(models.Transaction{Date: date(2025, 3, 5), Amount: decimal.NewFromInt(-10), UserID: user.ID})
	suite.createTestTransaction(models.Transaction{Date: date(2025, 3, 6), Amount: decimal.NewFromInt(-20), CategoryID: &groceries.ID, UserID: user.ID})

	count, err = models.CountExpensesForMonth(models.DB, month, user.ID, nil)
	suite.Assert().Nil(err)
	suite.Assert().Equal(int64(1), count)
}

// TestExpensesForMonthHousehold verifies that household members see all
// household expenses plus their own personal ones.
func (suite *TestSuiteStandard) TestExpensesForMonthHousehold() {
	alice := suite.createTestUser(models.User{})
	bob := suite.createTestUser(models.User{})
	household := suite.createTestHousehold(models.Household{Name: "Home"})
	groceries := suite.createTestCategory(models.Category{Name: "Groceries"})
	month := types.NewMonth(2025, 3)

	suite.createTestTransaction(models.Transaction{Date: date(2025, 3, 5), Amount: decimal.NewFromInt(-50), CategoryID: &groceries.ID, UserID: bob.ID, HouseholdID: &household.ID})
	suite.createTestTransaction(models.Transaction{Date: date(2025, 3, 6), Amount: decimal.NewFromInt(-30), CategoryID: &groceries.ID, UserID: alice.ID})
	suite.createTestTransaction(models.Transaction{Date: date(2025, 3, 7), Amount: decimal.NewFromInt(-20), CategoryID: &groceries.ID, UserID: bob.ID})

	projections, err := models.ExpensesForMonth(models.DB, month, alice.ID, &household.ID)
	suite.Assert().Nil(err)
	suite.Assert().Len(projections, 2, "alice sees the household expense and her own, not bob's personal one")
}
