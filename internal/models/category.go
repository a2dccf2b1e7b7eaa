package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a classification node for transactions and budgets.
type Category struct {
	DefaultModel
	Name     string `json:"name"`
	Note     string `json:"note,omitempty"`
	Archived bool   `json:"archived"`
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	return nil
}

// Subcategory is a classification node below a category. It belongs to
// exactly one category.
type Subcategory struct {
	DefaultModel
	CategoryID uuid.UUID `json:"categoryId"`
	Category   Category  `json:"-"`
	Name       string    `json:"name"`
	Note       string    `json:"note,omitempty"`
	Archived   bool      `json:"archived"`
}

func (s *Subcategory) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	s.Note = strings.TrimSpace(s.Note)

	return nil
}

func (s *Subcategory) BeforeCreate(tx *gorm.DB) error {
	_ = s.DefaultModel.BeforeCreate(tx)

	return s.checkIntegrity(tx)
}

// checkIntegrity verifies that the parent category exists.
func (s *Subcategory) checkIntegrity(tx *gorm.DB) error {
	return tx.First(&Category{}, "id = ?", s.CategoryID).Error
}

// CategoriesByIDs returns the categories for a set of IDs with one query.
func CategoriesByIDs(db *gorm.DB, ids []uuid.UUID) ([]Category, error) {
	var categories []Category
	if len(ids) == 0 {
		return categories, nil
	}

	err := db.Where("id IN ?", ids).Find(&categories).Error
	return categories, err
}

// SubcategoriesByIDs returns the subcategories for a set of IDs with one query.
func SubcategoriesByIDs(db *gorm.DB, ids []uuid.UUID) ([]Subcategory, error) {
	var subcategories []Subcategory
	if len(ids) == 0 {
		return subcategories, nil
	}

	err := db.Where("id IN ?", ids).Find(&subcategories).Error
	return subcategories, err
}
