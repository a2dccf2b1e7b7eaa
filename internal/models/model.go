package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Timestamps are the timestamps all resources track.
//
// DeletedAt implements soft deletion: rows are never physically removed by
// the application, and all default reads exclude deleted rows.
type Timestamps struct {
	CreatedAt time.Time      `json:"createdAt" example:"2025-03-17T14:30:00.000000Z"`
	UpdatedAt time.Time      `json:"updatedAt" example:"2025-03-17T14:30:00.000000Z"`
	DeletedAt gorm.DeletedAt `json:"deletedAt" gorm:"index" swaggertype:"primitive,string" example:"2025-04-01T07:23:06.000000Z"`
}

// DefaultModel is the base for all resources with a generated UUID.
type DefaultModel struct {
	ID uuid.UUID `json:"id" gorm:"primaryKey" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Timestamps
}

// BeforeCreate generates the UUID when none is set.
func (m *DefaultModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
