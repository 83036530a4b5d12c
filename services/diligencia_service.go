package services

import (
	"errors"
	"strings"
	"time"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/models"
	"gorm.io/gorm"
)

// MaxObservacionesLength caps free-text outcome notes
const MaxObservacionesLength = 1000

// CreateDiligenciaInput is the authoritative step-creation shape: type plus
// optional scheduling facts in the same payload. The legacy minimal shape is
// simply this one with the optional fields left empty.
type CreateDiligenciaInput struct {
	TipoID         string
	FechaEjecucion string
	HoraEjecucion  string
	EjecutadoID    string
	DireccionID    string
	Observaciones  string
}

// ScheduleDiligenciaInput carries the planned execution facts of a step
type ScheduleDiligenciaInput struct {
	FechaEjecucion string
	HoraEjecucion  string
	EjecutadoID    string
	DireccionID    string
	Observaciones  string
}

// CompleteDiligenciaInput carries the realized outcome of a step
type CompleteDiligenciaInput struct {
	ObservacionesFinales string
	FechaRealizacion     string
}

// GetDiligenciaScoped retrieves a diligencia by id within the given office
func GetDiligenciaScoped(db *gorm.DB, oficinaID, diligenciaID string) (*models.Diligencia, error) {
	var diligencia models.Diligencia
	err := db.Where("oficina_id = ? AND id = ?", oficinaID, diligenciaID).
		Preload("Tipo").
		First(&diligencia).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiligenciaNotFound
		}
		return nil, err
	}
	return &diligencia, nil
}

// GetDiligenciasByRol retrieves all diligencias of a rol in creation order
func GetDiligenciasByRol(db *gorm.DB, rolID string) ([]models.Diligencia, error) {
	var diligencias []models.Diligencia
	err := db.Where("rol_causa_id = ?", rolID).
		Preload("Tipo").
		Order("created_at ASC").
		Find(&diligencias).Error
	return diligencias, err
}

// CreateDiligencia registers a new pending step for a rol. Scheduling facts
// supplied in the same payload are validated and merged exactly as the
// schedule operation would. Triggers estado derivation for the parent rol.
func CreateDiligencia(db *gorm.DB, oficinaID, rolID string, input CreateDiligenciaInput) (*models.Diligencia, error) {
	rol, err := GetRolScoped(db, oficinaID, rolID)
	if err != nil {
		return nil, err
	}

	if input.TipoID == "" {
		return nil, NewValidationError("el tipo de diligencia es obligatorio")
	}
	var tipoCount int64
	if err := db.Model(&models.DiligenciaTipo{}).Where("id = ?", input.TipoID).Count(&tipoCount).Error; err != nil {
		return nil, err
	}
	if tipoCount == 0 {
		return nil, ErrTipoNotFound
	}

	diligencia := models.Diligencia{
		OficinaID:  oficinaID,
		RolCausaID: rol.ID,
		TipoID:     input.TipoID,
		Estado:     models.DiligenciaPendiente,
	}

	if input.FechaEjecucion != "" || input.EjecutadoID != "" || input.DireccionID != "" {
		schedule := ScheduleDiligenciaInput{
			FechaEjecucion: input.FechaEjecucion,
			HoraEjecucion:  input.HoraEjecucion,
			EjecutadoID:    input.EjecutadoID,
			DireccionID:    input.DireccionID,
			Observaciones:  input.Observaciones,
		}
		fecha, values, err := buildScheduleFacts(db, rol, schedule)
		if err != nil {
			return nil, err
		}
		diligencia.Fecha = &fecha
		diligencia.MergeMeta(values)
	}

	if err := db.Create(&diligencia).Error; err != nil {
		return nil, err
	}

	deriveAfterDiligenciaWrite(db, rol.ID)

	return &diligencia, nil
}

// ScheduleDiligencia assigns planned execution facts to a step. The planned
// date may be in the future. It merges the facts into the step's meta bag
// and stamps programadoEn; the estado is not changed. Every validation runs
// before any write, so a rejected payload leaves the meta untouched.
func ScheduleDiligencia(db *gorm.DB, oficinaID, diligenciaID string, input ScheduleDiligenciaInput) (*models.Diligencia, error) {
	diligencia, err := GetDiligenciaScoped(db, oficinaID, diligenciaID)
	if err != nil {
		return nil, err
	}

	var rol models.RolCausa
	if err := db.First(&rol, "id = ?", diligencia.RolCausaID).Error; err != nil {
		return nil, err
	}

	if input.FechaEjecucion == "" {
		return nil, NewValidationError("la fecha de ejecución es obligatoria")
	}

	fecha, values, err := buildScheduleFacts(db, &rol, input)
	if err != nil {
		return nil, err
	}

	diligencia.Fecha = &fecha
	diligencia.MergeMeta(values)

	if err := db.Model(&models.Diligencia{}).
		Where("id = ?", diligencia.ID).
		Updates(map[string]interface{}{
			"fecha": diligencia.Fecha,
			"meta":  diligencia.Meta,
		}).Error; err != nil {
		return nil, err
	}

	deriveAfterDiligenciaWrite(db, diligencia.RolCausaID)

	return diligencia, nil
}

// CompleteDiligencia marks a step as completed. An optional realized date
// overwrites the step's fecha; it must parse and may not lie in the future.
// The outcome note is merged into meta.observacionesFinales and completadaEn
// is stamped. Re-completion simply re-applies the merge.
func CompleteDiligencia(db *gorm.DB, oficinaID, diligenciaID string, input CompleteDiligenciaInput) (*models.Diligencia, error) {
	diligencia, err := GetDiligenciaScoped(db, oficinaID, diligenciaID)
	if err != nil {
		return nil, err
	}

	if len(input.ObservacionesFinales) > MaxObservacionesLength {
		return nil, NewValidationError("las observaciones no pueden exceder %d caracteres", MaxObservacionesLength)
	}

	var realizada *time.Time
	if input.FechaRealizacion != "" {
		parsed, err := ParseDate(input.FechaRealizacion)
		if err != nil {
			return nil, NewValidationError("fecha de realización inválida: %v", err)
		}
		if IsFutureDate(parsed) {
			return nil, NewValidationError("la fecha de realización no puede ser futura")
		}
		realizada = &parsed
	}

	values := map[string]interface{}{
		models.MetaCompletadaEn: time.Now().UTC().Format(time.RFC3339),
	}
	if note := strings.TrimSpace(input.ObservacionesFinales); note != "" {
		values[models.MetaObservacionesFinales] = note
	}

	// Only recognized completion keys may reach the bag
	for k := range values {
		if !models.CompletionMetaKeys[k] {
			delete(values, k)
		}
	}

	diligencia.Estado = models.DiligenciaCompletada
	if realizada != nil {
		diligencia.Fecha = realizada
	}
	diligencia.MergeMeta(values)

	if err := db.Model(&models.Diligencia{}).
		Where("id = ?", diligencia.ID).
		Updates(map[string]interface{}{
			"estado": diligencia.Estado,
			"fecha":  diligencia.Fecha,
			"meta":   diligencia.Meta,
		}).Error; err != nil {
		return nil, err
	}

	deriveAfterDiligenciaWrite(db, diligencia.RolCausaID)

	return diligencia, nil
}

// buildScheduleFacts validates scheduling input against the rol's filing and
// returns the planned date plus the meta values to merge. No writes happen
// here.
func buildScheduleFacts(db *gorm.DB, rol *models.RolCausa, input ScheduleDiligenciaInput) (time.Time, map[string]interface{}, error) {
	fecha, err := ParseDate(input.FechaEjecucion)
	if err != nil {
		return time.Time{}, nil, NewValidationError("fecha de ejecución inválida: %v", err)
	}

	values := map[string]interface{}{
		models.MetaFechaEjecucion: input.FechaEjecucion,
		models.MetaProgramadoEn:   time.Now().UTC().Format(time.RFC3339),
	}

	if input.HoraEjecucion != "" {
		if _, err := ParseHora(input.HoraEjecucion); err != nil {
			return time.Time{}, nil, NewValidationError("hora de ejecución inválida: %v", err)
		}
		values[models.MetaHoraEjecucion] = input.HoraEjecucion
	}

	if input.EjecutadoID != "" || input.DireccionID != "" {
		if rol.CausaID == nil {
			return time.Time{}, nil, NewValidationError("el rol no tiene causa de origen registrada")
		}

		if input.EjecutadoID != "" {
			var count int64
			if err := db.Model(&models.Parte{}).
				Where("id = ? AND causa_id = ?", input.EjecutadoID, *rol.CausaID).
				Count(&count).Error; err != nil {
				return time.Time{}, nil, err
			}
			if count == 0 {
				return time.Time{}, nil, NewValidationError("el ejecutado no pertenece a la causa")
			}
			values[models.MetaEjecutadoID] = input.EjecutadoID
		}

		if input.DireccionID != "" {
			var count int64
			if err := db.Model(&models.Direccion{}).
				Where("id = ? AND causa_id = ?", input.DireccionID, *rol.CausaID).
				Count(&count).Error; err != nil {
				return time.Time{}, nil, err
			}
			if count == 0 {
				return time.Time{}, nil, NewValidationError("la dirección no pertenece a la causa")
			}
			values[models.MetaDireccionID] = input.DireccionID
		}
	}

	if note := strings.TrimSpace(input.Observaciones); note != "" {
		if len(note) > MaxObservacionesLength {
			return time.Time{}, nil, NewValidationError("las observaciones no pueden exceder %d caracteres", MaxObservacionesLength)
		}
		values[models.MetaObservaciones] = note
	}

	// Only recognized scheduling keys may reach the bag
	for k := range values {
		if !models.SchedulingMetaKeys[k] {
			delete(values, k)
		}
	}

	return fecha, values, nil
}
