package services

import (
	"errors"

	apperrors "github.com/centsible/backend/internal/errors"
	"github.com/centsible/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

func (s *categoryService) Categories(includeArchived bool) ([]models.Category, error) {
	q := s.db.Order("name ASC")
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}

	var categories []models.Category
	err := q.Find(&categories).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	return categories, nil
}

func (s *categoryService) Subcategories(categoryID uuid.UUID, includeArchived bool) ([]models.Subcategory, error) {
	err := s.db.First(&models.Category{}, "id = ?", categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrCategoryNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	q := s.db.Where("category_id = ?", categoryID).Order("name ASC")
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}

	var subcategories []models.Subcategory
	err = q.Find(&subcategories).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	return subcategories, nil
}

func (s *categoryService) CreateCategory(category models.Category) (models.Category, error) {
	err := s.db.Create(&category).Error
	if err != nil {
		return models.Category{}, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	return category, nil
}

func (s *categoryService) CreateSubcategory(subcategory models.Subcategory) (models.Subcategory, error) {
	err := s.db.Create(&subcategory).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Subcategory{}, apperrors.ErrCategoryNotFound
	}
	if err != nil {
		return models.Subcategory{}, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	return subcategory, nil
}
