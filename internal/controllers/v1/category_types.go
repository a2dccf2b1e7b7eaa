package v1

import (
	"github.com/centsible/backend/internal/models"
	"github.com/google/uuid"
)

// CategoryEditable represents all user configurable parameters of a category.
type CategoryEditable struct {
	Name     string `json:"name" binding:"required" example:"Groceries"`        // Name of the category
	Note     string `json:"note" example:"Everything edible" default:""`        // Notes about the category
	Archived bool   `json:"archived" example:"false" default:"false"`           // Is the category archived?
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:     editable.Name,
		Note:     editable.Note,
		Archived: editable.Archived,
	}
}

// SubcategoryEditable represents all user configurable parameters of a
// subcategory. The parent category comes from the URI.
type SubcategoryEditable struct {
	Name     string `json:"name" binding:"required" example:"Restaurants"`
	Note     string `json:"note" default:""`
	Archived bool   `json:"archived" default:"false"`
}

func (editable SubcategoryEditable) model(categoryID uuid.UUID) models.Subcategory {
	return models.Subcategory{
		CategoryID: categoryID,
		Name:       editable.Name,
		Note:       editable.Note,
		Archived:   editable.Archived,
	}
}

type CategoryQueryFilter struct {
	Archived bool `form:"archived"` // Include archived entries?
}

type CategoryListResponse struct {
	Data []models.Category `json:"data"`
}

type CategoryResponse struct {
	Data models.Category `json:"data"`
}

type SubcategoryListResponse struct {
	Data []models.Subcategory `json:"data"`
}

type SubcategoryResponse struct {
	Data models.Subcategory `json:"data"`
}
