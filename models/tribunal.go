package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tribunal represents a court whose resolutions the office serves
type Tribunal struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Nombre       string  `gorm:"not null" json:"nombre"`
	Jurisdiccion *string `json:"jurisdiccion,omitempty"`
	Comuna       *string `json:"comuna,omitempty"`
}

// BeforeCreate hook to generate UUID
func (t *Tribunal) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Tribunal model
func (Tribunal) TableName() string {
	return "tribunales"
}
