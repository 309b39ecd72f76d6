package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUIDModel is embedded by every entity keyed by a server-generated UUID.
type UUIDModel struct {
	ID string `gorm:"primaryKey;size:36" json:"id" example:"9b2f1c3e-5a7d-4e8f-9a0b-1c2d3e4f5a6b"`
}

// Identifiable is implemented by every model with a string primary key.
type Identifiable interface {
	GetID() string
}

func (m UUIDModel) GetID() string {
	return m.ID
}

func (m *UUIDModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type Timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
