package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Nota represents a free-form note attached to a rol. Append-only: content
// is immutable after creation; tenant members may delete.
type Nota struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OficinaID  string   `gorm:"type:uuid;not null;index" json:"oficina_id"`
	RolCausaID string   `gorm:"type:uuid;not null;index" json:"rol_causa_id"`
	RolCausa   RolCausa `gorm:"foreignKey:RolCausaID" json:"rol_causa,omitempty"`

	Contenido string `gorm:"type:text;not null" json:"contenido"`

	CreatedByID string `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedBy   *User  `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

// BeforeCreate hook to generate UUID
func (n *Nota) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Nota model
func (Nota) TableName() string {
	return "notas"
}
