package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DiligenciaTipo is the catalog of procedural step types (notificación
// personal, requerimiento de pago, retiro de especies, etc.)
type DiligenciaTipo struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Codigo string `gorm:"size:50;not null;uniqueIndex" json:"codigo"`
	Nombre string `gorm:"not null" json:"nombre"`
}

// BeforeCreate hook to generate UUID
func (t *DiligenciaTipo) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for DiligenciaTipo model
func (DiligenciaTipo) TableName() string {
	return "diligencia_tipos"
}
