package services_test

import (
	"errors"

	apperrors "github.com/centsible/backend/internal/errors"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/services"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestCategories() {
	service := services.NewCategoryService(models.DB)

	groceries, err := service.CreateCategory(models.Category{Name: "  Groceries "})
	suite.Require().Nil(err)
	suite.Assert().Equal("Groceries", groceries.Name, "name is not trimmed")

	_, err = service.CreateCategory(models.Category{Name: "Archived stuff", Archived: true})
	suite.Require().Nil(err)

	list, err := service.Categories(false)
	suite.Require().Nil(err)
	suite.Assert().Len(list, 1)

	list, err = service.Categories(true)
	suite.Require().Nil(err)
	suite.Assert().Len(list, 2)
}

func (suite *TestSuiteStandard) TestSubcategories() {
	service := services.NewCategoryService(models.DB)

	groceries, err := service.CreateCategory(models.Category{Name: "Groceries"})
	suite.Require().Nil(err)

	restaurants, err := service.CreateSubcategory(models.Subcategory{CategoryID: groceries.ID, Name: "Restaurants"})
	suite.Require().Nil(err)

	list, err := service.Subcategories(groceries.ID, false)
	suite.Require().Nil(err)
	suite.Require().Len(list, 1)
	suite.Assert().Equal(restaurants.ID, list[0].ID)

	// The parent category must exist
	_, err = service.CreateSubcategory(models.Subcategory{CategoryID: uuid.New(), Name: "Orphan"})
	suite.Assert().True(errors.Is(err, apperrors.ErrCategoryNotFound), "err is %v", err)

	_, err = service.Subcategories(uuid.New(), false)
	suite.Assert().True(errors.Is(err, apperrors.ErrCategoryNotFound), "err is %v", err)
}
