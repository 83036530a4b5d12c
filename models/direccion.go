package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Direccion represents a service address registered for a filing
type Direccion struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CausaID string `gorm:"type:uuid;not null;index" json:"causa_id"`
	Causa   Causa  `gorm:"foreignKey:CausaID" json:"causa,omitempty"`

	Calle  string  `gorm:"not null" json:"calle"`
	Numero *string `gorm:"size:20" json:"numero,omitempty"`
	Depto  *string `gorm:"size:20" json:"depto,omitempty"`
	Comuna string  `gorm:"not null" json:"comuna"`
}

// BeforeCreate hook to generate UUID
func (d *Direccion) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Direccion model
func (Direccion) TableName() string {
	return "direcciones"
}
