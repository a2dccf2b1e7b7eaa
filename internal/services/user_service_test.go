package services_test

import (
	"errors"

	apperrors "github.com/centsible/backend/internal/errors"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/services"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestRegisterAndLogin() {
	service := services.NewUserService(models.DB)

	user, err := service.Register("Person@Example.com", "correct horse", "Person")
	suite.Require().Nil(err)
	suite.Assert().Equal("person@example.com", user.Email)
	suite.Assert().NotEqual("correct horse", user.PasswordHash)

	loggedIn, err := service.AttemptLogin("person@example.com", "correct horse")
	suite.Require().Nil(err)
	suite.Assert().Equal(user.ID, loggedIn.ID)

	_, err = service.AttemptLogin("person@example.com", "wrong password")
	suite.Assert().True(errors.Is(err, apperrors.ErrInvalidCredentials), "err is %v", err)

	_, err = service.AttemptLogin("nobody@example.com", "correct horse")
	suite.Assert().True(errors.Is(err, apperrors.ErrInvalidCredentials), "err is %v", err)
}

func (suite *TestSuiteStandard) TestRegisterDuplicateEmail() {
	service := services.NewUserService(models.DB)

	_, err := service.Register("person@example.com", "password", "")
	suite.Require().Nil(err)

	_, err = service.Register("person@example.com", "password", "")
	suite.Assert().True(errors.Is(err, apperrors.ErrDuplicateEmail), "err is %v", err)
}

func (suite *TestSuiteStandard) TestRegisterValidation() {
	service := services.NewUserService(models.DB)

	_, err := service.Register("", "password", "")
	suite.Assert().True(errors.Is(err, apperrors.ErrInvalidInput), "err is %v", err)

	_, err = service.Register("person@example.com", "", "")
	suite.Assert().True(errors.Is(err, apperrors.ErrInvalidInput), "err is %v", err)
}

func (suite *TestSuiteStandard) TestUserGetByID() {
	service := services.NewUserService(models.DB)

	user := suite.createTestUser()
	found, err := service.GetByID(user.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal(user.Email, found.Email)

	_, err = service.GetByID(uuid.New())
	suite.Assert().True(errors.Is(err, apperrors.ErrUserNotFound), "err is %v", err)
}
