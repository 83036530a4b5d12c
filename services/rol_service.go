package services

import (
	"fmt"
	"time"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/models"
	"gorm.io/gorm"
)

// GenerateRol generates a docket number for a new rol.
// Format: R-{YEAR}-{SEQUENCE}, globally unique across offices.
// Example: R-2026-00042
func GenerateRol(db *gorm.DB) (string, error) {
	currentYear := time.Now().Year()

	var maxRol models.RolCausa
	err := db.Where("rol LIKE ?", fmt.Sprintf("R-%d-%%", currentYear)).
		Order("rol DESC").
		First(&maxRol).Error

	sequence := 1
	if err == nil {
		var parsedSeq int
		_, scanErr := fmt.Sscanf(maxRol.Rol, fmt.Sprintf("R-%d-%%d", currentYear), &parsedSeq)
		if scanErr == nil {
			sequence = parsedSeq + 1
		}
	} else if err != gorm.ErrRecordNotFound {
		return "", fmt.Errorf("failed to query max rol: %w", err)
	}

	return fmt.Sprintf("R-%d-%05d", currentYear, sequence), nil
}

// EnsureUniqueRol generates a rol number with retry logic on collision
func EnsureUniqueRol(db *gorm.DB) (string, error) {
	const maxRetries = 10

	for i := 0; i < maxRetries; i++ {
		rol, err := GenerateRol(db)
		if err != nil {
			return "", err
		}

		var count int64
		if err := db.Model(&models.RolCausa{}).Where("rol = ?", rol).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check rol uniqueness: %w", err)
		}

		if count == 0 {
			return rol, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique rol after %d retries", maxRetries)
}

// ParteInput describes a party of a filing being registered
type ParteInput struct {
	Nombre   string
	Rut      string
	Telefono string
	Email    string
}

// DireccionInput describes a service address of a filing being registered
type DireccionInput struct {
	Calle  string
	Numero string
	Depto  string
	Comuna string
}

// CausaInput describes a filing being registered
type CausaInput struct {
	Caratulado  string
	RolTribunal string
	TribunalID  string
	Partes      []ParteInput
	Direcciones []DireccionInput
}

// RegisterCausa registers a filing and creates its rol in a single
// transaction. Exactly one rol exists per causa; the rol starts pendiente.
func RegisterCausa(db *gorm.DB, oficinaID string, input CausaInput) (*models.Causa, *models.RolCausa, error) {
	if input.Caratulado == "" {
		return nil, nil, NewValidationError("el caratulado es obligatorio")
	}

	var causa models.Causa
	var rol models.RolCausa

	err := db.Transaction(func(tx *gorm.DB) error {
		causa = models.Causa{
			OficinaID:  oficinaID,
			Caratulado: input.Caratulado,
		}
		if input.RolTribunal != "" {
			causa.RolTribunal = &input.RolTribunal
		}
		if input.TribunalID != "" {
			causa.TribunalID = &input.TribunalID
		}
		if err := tx.Create(&causa).Error; err != nil {
			return err
		}

		for _, p := range input.Partes {
			parte := models.Parte{CausaID: causa.ID, Nombre: p.Nombre}
			if p.Rut != "" {
				parte.Rut = &p.Rut
			}
			if p.Telefono != "" {
				parte.Telefono = &p.Telefono
			}
			if p.Email != "" {
				parte.Email = &p.Email
			}
			if err := tx.Create(&parte).Error; err != nil {
				return err
			}
		}

		for _, d := range input.Direcciones {
			direccion := models.Direccion{CausaID: causa.ID, Calle: d.Calle, Comuna: d.Comuna}
			if d.Numero != "" {
				direccion.Numero = &d.Numero
			}
			if d.Depto != "" {
				direccion.Depto = &d.Depto
			}
			if err := tx.Create(&direccion).Error; err != nil {
				return err
			}
		}

		numero, err := EnsureUniqueRol(tx)
		if err != nil {
			return err
		}

		rol = models.RolCausa{
			OficinaID:  oficinaID,
			Rol:        numero,
			Estado:     models.EstadoPendiente,
			CausaID:    &causa.ID,
			TribunalID: causa.TribunalID,
		}
		return tx.Create(&rol).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return &causa, &rol, nil
}

// RolListFilters contains filter options for listing roles
type RolListFilters struct {
	Estado   string
	Keyword  string
	DateFrom time.Time
	DateTo   time.Time
}

// ListRoles returns paginated roles for an office
func ListRoles(db *gorm.DB, oficinaID string, filters RolListFilters, page, pageSize int) ([]models.RolCausa, int64, error) {
	query := db.Model(&models.RolCausa{}).Where("oficina_id = ?", oficinaID)

	if filters.Estado != "" && models.IsValidEstado(filters.Estado) {
		query = query.Where("estado = ?", filters.Estado)
	}
	if filters.Keyword != "" {
		query = query.Where("rol LIKE ?", "%"+filters.Keyword+"%")
	}
	if !filters.DateFrom.IsZero() {
		query = query.Where("created_at >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		query = query.Where("created_at < ?", filters.DateTo.Add(24*time.Hour))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var roles []models.RolCausa
	offset := (page - 1) * pageSize
	err := query.Preload("Tribunal").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&roles).Error

	return roles, total, err
}
