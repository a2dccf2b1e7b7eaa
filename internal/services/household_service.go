package services

import (
	"errors"

	apperrors "github.com/centsible/backend/internal/errors"
	"github.com/centsible/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type householdService struct {
	db *gorm.DB
}

// NewHouseholdService creates a HouseholdServicer.
func NewHouseholdService(db *gorm.DB) HouseholdServicer {
	return &householdService{db: db}
}

// Create creates a household and makes the creator an active member.
func (s *householdService) Create(userID uuid.UUID, name, currency string) (models.Household, error) {
	if userID == uuid.Nil {
		return models.Household{}, apperrors.ErrUnauthenticated
	}

	household := models.Household{Name: name, Currency: currency}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&household).Error; err != nil {
			return err
		}

		if err := s.deactivateMemberships(tx, userID); err != nil {
			return err
		}

		return tx.Create(&models.HouseholdMember{
			HouseholdID: household.ID,
			UserID:      userID,
			Active:      true,
		}).Error
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return models.Household{}, appErr
		}

		return models.Household{}, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	return household, nil
}

// Join makes the user an active member of an existing household. Any
// previous active membership is deactivated.
func (s *householdService) Join(userID, householdID uuid.UUID) error {
	if userID == uuid.Nil {
		return apperrors.ErrUnauthenticated
	}

	err := s.db.First(&models.Household{}, "id = ?", householdID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrHouseholdNotFound
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternal, err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.deactivateMemberships(tx, userID); err != nil {
			return err
		}

		return tx.Create(&models.HouseholdMember{
			HouseholdID: householdID,
			UserID:      userID,
			Active:      true,
		}).Error
	})
}

// Leave deactivates the user's active membership.
func (s *householdService) Leave(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return apperrors.ErrUnauthenticated
	}

	return s.deactivateMemberships(s.db, userID)
}

// ActiveHousehold returns the caller's active household, or nil without an
// error when there is none.
func (s *householdService) ActiveHousehold(userID uuid.UUID) (*models.Household, error) {
	householdID, err := models.ActiveHouseholdID(s.db, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	if householdID == uuid.Nil {
		return nil, nil
	}

	var household models.Household
	err = s.db.First(&household, "id = ?", householdID).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	return &household, nil
}

func (s *householdService) deactivateMemberships(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Model(&models.HouseholdMember{}).
		Where("user_id = ? AND active = ?", userID, true).
		Update("active", false).Error
}
