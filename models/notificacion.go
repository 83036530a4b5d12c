package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notificacion represents an in-app notification for office members (e.g. a
// rol reached terminado)
type Notificacion struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	OficinaID string  `gorm:"type:uuid;not null;index" json:"oficina_id"`
	UserID    *string `gorm:"type:uuid;index" json:"user_id,omitempty"` // nil means every office member

	Titulo  string `gorm:"not null" json:"titulo"`
	Mensaje string `gorm:"type:text" json:"mensaje,omitempty"`

	// Optional link back to the rol that produced it
	RolCausaID *string `gorm:"type:uuid;index" json:"rol_causa_id,omitempty"`

	ReadAt *time.Time `json:"read_at,omitempty"`
}

// BeforeCreate hook to generate UUID
func (n *Notificacion) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Notificacion model
func (Notificacion) TableName() string {
	return "notificaciones"
}
