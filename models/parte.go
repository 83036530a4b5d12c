package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Parte represents a party of a filing, typically the ejecutado (person to
// be served or collected from)
type Parte struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CausaID string `gorm:"type:uuid;not null;index" json:"causa_id"`
	Causa   Causa  `gorm:"foreignKey:CausaID" json:"causa,omitempty"`

	Nombre string `gorm:"not null" json:"nombre"`

	// Chilean national ID (RUT); redacted at audit export time, never at write
	Rut      *string `gorm:"size:20" json:"rut,omitempty"`
	Telefono *string `gorm:"size:30" json:"telefono,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// BeforeCreate hook to generate UUID
func (p *Parte) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Parte model
func (Parte) TableName() string {
	return "partes"
}
