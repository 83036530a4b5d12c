package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Documento represents a document generated for or attached to a rol
// (estampes, certificados, uploaded scans). Bytes live behind the storage
// provider; this row only records metadata and the storage key.
type Documento struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OficinaID  string   `gorm:"type:uuid;not null;index" json:"oficina_id"`
	RolCausaID string   `gorm:"type:uuid;not null;index" json:"rol_causa_id"`
	RolCausa   RolCausa `gorm:"foreignKey:RolCausaID" json:"rol_causa,omitempty"`

	// Optional link to the diligencia this document came out of
	DiligenciaID *string     `gorm:"type:uuid;index" json:"diligencia_id,omitempty"`
	Diligencia   *Diligencia `gorm:"foreignKey:DiligenciaID" json:"diligencia,omitempty"`

	Nombre     string `gorm:"not null" json:"nombre"`
	StorageKey string `gorm:"not null" json:"-"`
	MimeType   string `json:"mime_type,omitempty"`
	FileSize   int64  `json:"file_size,omitempty"`

	UploadedByID string `gorm:"type:uuid;not null" json:"uploaded_by_id"`
	UploadedBy   *User  `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
}

// BeforeCreate hook to generate UUID
func (d *Documento) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Documento model
func (Documento) TableName() string {
	return "documentos"
}
