package services

import (
	"errors"
	"strings"

	apperrors "github.com/centsible/backend/internal/errors"
	"github.com/centsible/backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type userService struct {
	db *gorm.DB
}

// NewUserService creates a UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// Register creates a user with a bcrypt password hash.
func (s *userService) Register(email, password, name string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, apperrors.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
	}

	err = s.db.Create(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.User{}, apperrors.ErrDuplicateEmail
	}
	if err != nil {
		return models.User{}, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	return user, nil
}

// AttemptLogin verifies the credentials. The error is identical for an
// unknown email and a wrong password.
func (s *userService) AttemptLogin(email, password string) (models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

func (s *userService) GetByID(id uuid.UUID) (models.User, error) {
	var user models.User
	err := s.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	return user, nil
}
