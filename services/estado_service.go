package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/models"
	"gorm.io/gorm"
)

// GetRolScoped retrieves a rol by id within the given office. A rol owned by
// another office is indistinguishable from a missing one.
func GetRolScoped(db *gorm.DB, oficinaID, rolID string) (*models.RolCausa, error) {
	var rol models.RolCausa
	err := db.Where("oficina_id = ? AND id = ?", oficinaID, rolID).First(&rol).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRolNotFound
		}
		return nil, err
	}
	return &rol, nil
}

// ChangeRolEstado applies a user-directed estado transition guarded by the
// adjacency table. Requesting the current estado is a legal no-op; the
// returned bool reports whether the estado actually changed. terminado is
// additionally guarded by the completeness of the rol's diligencias.
func ChangeRolEstado(db *gorm.DB, oficinaID, rolID, target, userID string) (*models.RolCausa, bool, error) {
	rol, err := GetRolScoped(db, oficinaID, rolID)
	if err != nil {
		return nil, false, err
	}

	if !models.IsValidEstado(target) {
		return nil, false, NewValidationError("estado desconocido: %s", target)
	}

	if target == rol.Estado {
		// No-op: no write, no audit entry
		return rol, false, nil
	}

	if !models.CanTransition(rol.Estado, target) {
		return nil, false, &TransitionError{From: rol.Estado, To: target}
	}

	if target == models.EstadoTerminado {
		total, completadas, err := countDiligencias(db, rol.ID)
		if err != nil {
			return nil, false, err
		}
		if total == 0 {
			return nil, false, &PreconditionError{Message: "el rol no tiene diligencias registradas"}
		}
		if completadas < total {
			return nil, false, &PreconditionError{
				Message: fmt.Sprintf("%d diligencias sin completar", total-completadas),
			}
		}
	}

	now := time.Now()
	updates := map[string]interface{}{
		"estado":            target,
		"estado_changed_at": now,
	}
	if userID != "" {
		updates["estado_changed_by"] = userID
	}

	if err := db.Model(&models.RolCausa{}).
		Where("id = ? AND oficina_id = ?", rol.ID, oficinaID).
		Updates(updates).Error; err != nil {
		return nil, false, err
	}

	rol.Estado = target
	rol.EstadoChangedAt = &now
	if userID != "" {
		rol.EstadoChangedBy = &userID
	}

	if target == models.EstadoTerminado {
		NotifyRolTerminado(db, rol)
	}

	return rol, true, nil
}

// DeriveRolEstado recomputes the natural estado of a rol from its diligencia
// population and writes it when it differs from the current one. An archived
// rol is never touched. The rol and its diligencias are re-read here rather
// than trusting any snapshot the caller holds, and the write is guarded so a
// concurrent archive committed after the read cannot be overwritten.
func DeriveRolEstado(db *gorm.DB, rolID string) (string, error) {
	var rol models.RolCausa
	if err := db.First(&rol, "id = ?", rolID).Error; err != nil {
		return "", err
	}

	if rol.Estado == models.EstadoArchivado {
		return models.EstadoArchivado, nil
	}

	total, completadas, err := countDiligencias(db, rol.ID)
	if err != nil {
		return "", err
	}

	natural := models.EstadoPendiente
	switch {
	case total == 0:
		natural = models.EstadoPendiente
	case completadas == total:
		natural = models.EstadoTerminado
	default:
		natural = models.EstadoEnProceso
	}

	if natural == rol.Estado {
		return natural, nil
	}

	now := time.Now()
	if err := db.Model(&models.RolCausa{}).
		Where("id = ? AND estado <> ?", rol.ID, models.EstadoArchivado).
		Updates(map[string]interface{}{
			"estado":            natural,
			"estado_changed_at": now,
		}).Error; err != nil {
		return "", err
	}

	RecordAudit(db, SystemAuditContext(rol.OficinaID), models.AuditActionTransition,
		"RolCausa", rol.ID, rol.Rol,
		fmt.Sprintf("Estado derivado automáticamente: %s -> %s", rol.Estado, natural),
		map[string]string{"estado": rol.Estado},
		map[string]string{"estado": natural})

	if natural == models.EstadoTerminado {
		derived := rol
		derived.Estado = natural
		NotifyRolTerminado(db, &derived)
	}

	return natural, nil
}

// deriveAfterDiligenciaWrite runs derivation for the parent rol of a step
// mutation. Derivation failures never fail the triggering mutation; they are
// logged and otherwise invisible to the caller.
func deriveAfterDiligenciaWrite(db *gorm.DB, rolID string) {
	if _, err := DeriveRolEstado(db, rolID); err != nil {
		log.Printf("[WARNING] Failed to derive estado for rol %s: %v", rolID, err)
	}
}

// countDiligencias returns the total and completed step counts for a rol,
// read fresh from the store
func countDiligencias(db *gorm.DB, rolID string) (int64, int64, error) {
	var total int64
	if err := db.Model(&models.Diligencia{}).
		Where("rol_causa_id = ?", rolID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}

	var completadas int64
	if err := db.Model(&models.Diligencia{}).
		Where("rol_causa_id = ? AND estado = ?", rolID, models.DiligenciaCompletada).
		Count(&completadas).Error; err != nil {
		return 0, 0, err
	}

	return total, completadas, nil
}
