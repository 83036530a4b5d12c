package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Causa represents the originating case filing (ingreso) registered by the
// office. It owns the parties to be served and their addresses; diligencias
// that reference a party or address must reference one belonging to this
// filing.
type Causa struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OficinaID string  `gorm:"type:uuid;not null;index" json:"oficina_id"`
	Oficina   Oficina `gorm:"foreignKey:OficinaID" json:"oficina,omitempty"`

	// Caption as it appears on the court resolution, e.g. "BANCO X con PEREZ"
	Caratulado string `gorm:"not null" json:"caratulado"`

	// Court docket reference of the originating proceeding
	RolTribunal *string `gorm:"size:50" json:"rol_tribunal,omitempty"`

	TribunalID *string   `gorm:"type:uuid;index" json:"tribunal_id,omitempty"`
	Tribunal   *Tribunal `gorm:"foreignKey:TribunalID" json:"tribunal,omitempty"`

	Partes      []Parte     `gorm:"foreignKey:CausaID" json:"partes,omitempty"`
	Direcciones []Direccion `gorm:"foreignKey:CausaID" json:"direcciones,omitempty"`
}

// BeforeCreate hook to generate UUID
func (c *Causa) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Causa model
func (Causa) TableName() string {
	return "causas"
}
