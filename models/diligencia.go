package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Diligencia estado constants
const (
	DiligenciaPendiente  = "pendiente"
	DiligenciaCompletada = "completada"
	DiligenciaFallida    = "fallida"
)

// Recognized meta keys. The meta bag is merge-only and accepts only these
// keys, split by lifecycle stage, so new facts never drift in unnamed.
const (
	MetaFechaEjecucion       = "fechaEjecucion"
	MetaHoraEjecucion        = "horaEjecucion"
	MetaEjecutadoID          = "ejecutadoId"
	MetaDireccionID          = "direccionId"
	MetaObservaciones        = "observaciones"
	MetaProgramadoEn         = "programadoEn"
	MetaObservacionesFinales = "observacionesFinales"
	MetaCompletadaEn         = "completadaEn"
)

// SchedulingMetaKeys are the keys the schedule operation may merge
var SchedulingMetaKeys = map[string]bool{
	MetaFechaEjecucion: true,
	MetaHoraEjecucion:  true,
	MetaEjecutadoID:    true,
	MetaDireccionID:    true,
	MetaObservaciones:  true,
	MetaProgramadoEn:   true,
}

// CompletionMetaKeys are the keys the complete operation may merge
var CompletionMetaKeys = map[string]bool{
	MetaObservacionesFinales: true,
	MetaCompletadaEn:         true,
}

// Diligencia represents one procedural step of a rol (e.g. a notification
// attempt). Created pending; scheduling merges planned facts into Meta
// without touching Estado, completion sets Estado and freezes Fecha.
type Diligencia struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OficinaID  string   `gorm:"type:uuid;not null;index" json:"oficina_id"`
	RolCausaID string   `gorm:"type:uuid;not null;index" json:"rol_causa_id"`
	RolCausa   RolCausa `gorm:"foreignKey:RolCausaID" json:"rol_causa,omitempty"`

	TipoID string         `gorm:"type:uuid;not null;index" json:"tipo_id"`
	Tipo   DiligenciaTipo `gorm:"foreignKey:TipoID" json:"tipo,omitempty"`

	Estado string `gorm:"not null;default:pendiente" json:"estado"`

	// Planned date while pending, realized date once completed
	Fecha *time.Time `json:"fecha,omitempty"`

	Meta datatypes.JSONMap `json:"meta,omitempty"`
}

// BeforeCreate hook to generate UUID
func (d *Diligencia) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Diligencia model
func (Diligencia) TableName() string {
	return "diligencias"
}

// IsCompletada checks if the diligencia has been completed
func (d *Diligencia) IsCompletada() bool {
	return d.Estado == DiligenciaCompletada
}

// MergeMeta merges values into the meta bag. Existing keys not present in
// values are kept; the bag is never replaced wholesale.
func (d *Diligencia) MergeMeta(values map[string]interface{}) {
	if d.Meta == nil {
		d.Meta = datatypes.JSONMap{}
	}
	for k, v := range values {
		d.Meta[k] = v
	}
}
