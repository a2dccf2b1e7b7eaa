package v1

import (
	"github.com/centsible/backend/internal/models"
)

// RegisterEditable represents the data needed to create a user.
type RegisterEditable struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"correct horse battery staple"`
	Name     string `json:"name" example:"Jane"`
}

type LoginEditable struct {
	Email    string `json:"email" binding:"required" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"correct horse battery staple"`
}

// Session is a token together with the user it belongs to.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type SessionResponse struct {
	Data Session `json:"data"`
}

type UserResponse struct {
	Data models.User `json:"data"`
}
