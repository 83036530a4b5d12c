package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RolCausa estado constants
const (
	EstadoPendiente = "pendiente"
	EstadoEnProceso = "en_proceso"
	EstadoTerminado = "terminado"
	EstadoArchivado = "archivado"
)

// EstadoTransitions is the legal adjacency table for explicit estado changes.
// archivado is terminal: nothing leaves it, not even re-activation.
var EstadoTransitions = map[string][]string{
	EstadoPendiente: {EstadoEnProceso, EstadoArchivado},
	EstadoEnProceso: {EstadoTerminado, EstadoArchivado},
	EstadoTerminado: {EstadoArchivado},
	EstadoArchivado: {},
}

// RolCausa represents a case tracked by the office, identified by its docket
// number (rol). It is never physically deleted; archival is a status.
type RolCausa struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OficinaID string  `gorm:"type:uuid;not null;index:idx_rol_oficina_estado" json:"oficina_id"`
	Oficina   Oficina `gorm:"foreignKey:OficinaID" json:"oficina,omitempty"`

	// Docket number, globally unique across offices
	Rol string `gorm:"size:50;not null;uniqueIndex" json:"rol"`

	Estado string `gorm:"not null;default:pendiente;index:idx_rol_oficina_estado" json:"estado"`

	// Originating filing (one rol per registered causa)
	CausaID *string `gorm:"type:uuid;uniqueIndex" json:"causa_id,omitempty"`
	Causa   *Causa  `gorm:"foreignKey:CausaID" json:"causa,omitempty"`

	TribunalID *string   `gorm:"type:uuid;index" json:"tribunal_id,omitempty"`
	Tribunal   *Tribunal `gorm:"foreignKey:TribunalID" json:"tribunal,omitempty"`

	EstadoChangedAt *time.Time `json:"estado_changed_at,omitempty"`
	EstadoChangedBy *string    `gorm:"type:uuid" json:"estado_changed_by,omitempty"`

	Diligencias []Diligencia `gorm:"foreignKey:RolCausaID" json:"diligencias,omitempty"`
	Notas       []Nota       `gorm:"foreignKey:RolCausaID" json:"notas,omitempty"`
	Documentos  []Documento  `gorm:"foreignKey:RolCausaID" json:"documentos,omitempty"`
}

// BeforeCreate hook to generate UUID
func (r *RolCausa) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for RolCausa model
func (RolCausa) TableName() string {
	return "rol_causas"
}

// IsArchivado checks if the rol has been archived
func (r *RolCausa) IsArchivado() bool {
	return r.Estado == EstadoArchivado
}

// IsTerminado checks if the rol is finished
func (r *RolCausa) IsTerminado() bool {
	return r.Estado == EstadoTerminado
}

// IsValidEstado checks if the estado value is one of the known states
func IsValidEstado(estado string) bool {
	_, ok := EstadoTransitions[estado]
	return ok
}

// CanTransition reports whether the explicit edge from -> to is legal.
// Requesting the current estado is handled by the caller as a no-op, not
// through this table.
func CanTransition(from, to string) bool {
	for _, target := range EstadoTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}
