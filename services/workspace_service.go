package services

import (
	"errors"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/models"
	"gorm.io/gorm"
)

// RolWorkspace composes everything associated with one rol for read-side
// presentation. Read-only; tenant scoping is its only invariant.
type RolWorkspace struct {
	Rol         models.RolCausa     `json:"rol"`
	Diligencias []models.Diligencia `json:"diligencias"`
	Notas       []models.Nota       `json:"notas"`
	Documentos  []models.Documento  `json:"documentos"`
}

// GetRolWorkspace assembles the workspace of a rol scoped to the given
// office
func GetRolWorkspace(db *gorm.DB, oficinaID, rolID string) (*RolWorkspace, error) {
	var rol models.RolCausa
	err := db.Where("oficina_id = ? AND id = ?", oficinaID, rolID).
		Preload("Tribunal").
		Preload("Causa").
		Preload("Causa.Partes").
		Preload("Causa.Direcciones").
		First(&rol).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRolNotFound
		}
		return nil, err
	}

	workspace := &RolWorkspace{Rol: rol}

	workspace.Diligencias, err = GetDiligenciasByRol(db, rol.ID)
	if err != nil {
		return nil, err
	}

	if err := db.Where("rol_causa_id = ?", rol.ID).
		Preload("CreatedBy").
		Order("created_at DESC").
		Find(&workspace.Notas).Error; err != nil {
		return nil, err
	}

	if err := db.Where("rol_causa_id = ?", rol.ID).
		Order("created_at DESC").
		Find(&workspace.Documentos).Error; err != nil {
		return nil, err
	}

	return workspace, nil
}
