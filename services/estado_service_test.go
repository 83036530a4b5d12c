package services

import (
	"errors"
	"testing"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupEstadoTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(
		&models.Oficina{},
		&models.RolCausa{},
		&models.Diligencia{},
		&models.DiligenciaTipo{},
		&models.Notificacion{},
		&models.AuditLog{},
	)
	return db
}

func createTestRol(db *gorm.DB, oficinaID, rol, estado string) *models.RolCausa {
	r := &models.RolCausa{OficinaID: oficinaID, Rol: rol, Estado: estado}
	db.Create(r)
	return r
}

func createTestDiligencia(db *gorm.DB, oficinaID, rolID, tipoID, estado string) *models.Diligencia {
	d := &models.Diligencia{OficinaID: oficinaID, RolCausaID: rolID, TipoID: tipoID, Estado: estado}
	db.Create(d)
	return d
}

func TestChangeRolEstado(t *testing.T) {
	db := setupEstadoTestDB()
	oficinaID := "oficina-1"
	userID := "user-1"

	tipo := &models.DiligenciaTipo{Codigo: "notificacion", Nombre: "Notificación personal"}
	db.Create(tipo)

	t.Run("Legal Transition", func(t *testing.T) {
		rol := createTestRol(db, oficinaID, "R-2026-00001", models.EstadoPendiente)

		updated, changed, err := ChangeRolEstado(db, oficinaID, rol.ID, models.EstadoEnProceso, userID)
		assert.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, models.EstadoEnProceso, updated.Estado)
		assert.NotNil(t, updated.EstadoChangedAt)
		assert.Equal(t, userID, *updated.EstadoChangedBy)

		var persisted models.RolCausa
		db.First(&persisted, "id = ?", rol.ID)
		assert.Equal(t, models.EstadoEnProceso, persisted.Estado)
	})

	t.Run("Same Estado Is A NoOp", func(t *testing.T) {
		rol := createTestRol(db, oficinaID, "R-2026-00002", models.EstadoPendiente)

		updated, changed, err := ChangeRolEstado(db, oficinaID, rol.ID, models.EstadoPendiente, userID)
		assert.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, models.EstadoPendiente, updated.Estado)
		assert.Nil(t, updated.EstadoChangedAt)
	})

	t.Run("Illegal Transition Rejected", func(t *testing.T) {
		rol := createTestRol(db, oficinaID, "R-2026-00003", models.EstadoPendiente)

		_, _, err := ChangeRolEstado(db, oficinaID, rol.ID, models.EstadoTerminado, userID)
		var transErr *TransitionError
		assert.ErrorAs(t, err, &transErr)
		assert.Equal(t, models.EstadoPendiente, transErr.From)
		assert.Equal(t, models.EstadoTerminado, transErr.To)

		var persisted models.RolCausa
		db.First(&persisted, "id = ?", rol.ID)
		assert.Equal(t, models.EstadoPendiente, persisted.Estado)
	})

	t.Run("Unknown Estado Rejected", func(t *testing.T) {
		rol := createTestRol(db, oficinaID, "R-2026-00004", models.EstadoPendiente)

		_, _, err := ChangeRolEstado(db, oficinaID, rol.ID, "suspendido", userID)
		var valErr *ValidationError
		assert.ErrorAs(t, err, &valErr)
	})

	t.Run("Archivado Is Terminal", func(t *testing.T) {
		rol := createTestRol(db, oficinaID, "R-2026-00005", models.EstadoArchivado)

		for _, target := range []string{models.EstadoPendiente, models.EstadoEnProceso, models.EstadoTerminado} {
			_, _, err := ChangeRolEstado(db, oficinaID, rol.ID, target, userID)
			var transErr *TransitionError
			assert.ErrorAs(t, err, &transErr)
		}
	})

	t.Run("Terminado Requires Diligencias", func(t *testing.T) {
		rol := createTestRol(db, oficinaID, "R-2026-00006", models.EstadoEnProceso)

		_, _, err := ChangeRolEstado(db, oficinaID, rol.ID, models.EstadoTerminado, userID)
		var preErr *PreconditionError
		assert.ErrorAs(t, err, &preErr)
		assert.Contains(t, preErr.Message, "no tiene diligencias")
	})

	t.Run("Terminado Requires All Diligencias Completed", func(t *testing.T) {
		rol := createTestRol(db, oficinaID, "R-2026-00007", models.EstadoEnProceso)
		createTestDiligencia(db, oficinaID, rol.ID, tipo.ID, models.DiligenciaCompletada)
		createTestDiligencia(db, oficinaID, rol.ID, tipo.ID, models.DiligenciaPendiente)

		_, _, err := ChangeRolEstado(db, oficinaID, rol.ID, models.EstadoTerminado, userID)
		var preErr *PreconditionError
		assert.ErrorAs(t, err, &preErr)
		assert.Contains(t, preErr.Message, "1 diligencias sin completar")
	})

	t.Run("Terminado Allowed When Complete", func(t *testing.T) {
		rol := createTestRol(db, oficinaID, "R-2026-00008", models.EstadoEnProceso)
		createTestDiligencia(db, oficinaID, rol.ID, tipo.ID, models.DiligenciaCompletada)

		updated, changed, err := ChangeRolEstado(db, oficinaID, rol.ID, models.EstadoTerminado, userID)
		assert.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, models.EstadoTerminado, updated.Estado)

		// Completion notice is recorded for the office
		var count int64
		db.Model(&models.Notificacion{}).Where("rol_causa_id = ?", rol.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Cross Tenant Rol Is Not Found", func(t *testing.T) {
		rol := createTestRol(db, "oficina-2", "R-2026-00009", models.EstadoPendiente)

		_, _, err := ChangeRolEstado(db, oficinaID, rol.ID, models.EstadoEnProceso, userID)
		assert.True(t, errors.Is(err, ErrRolNotFound))
	})
}

func TestDeriveRolEstado(t *testing.T) {
	db := setupEstadoTestDB()
	oficinaID := "oficina-1"

	tipo := &models.DiligenciaTipo{Codigo: "embargo", Nombre: "Embargo"}
	db.Create(tipo)

	t.Run("No Diligencias Means Pendiente", func(t *testing.T) {
		rol := createTestRol(db, oficinaID, "R-2026-00101", models.EstadoEnProceso)

		estado, err := DeriveRolEstado(db, rol.ID)
		assert.NoError(t, err)
		assert.Equal(t, models.EstadoPendiente, estado)
	})

	t.Run("Pending Diligencia Means EnProceso", func(t *testing.T) {
		rol := createTestRol(db, oficinaID, "R-2026-00102", models.EstadoPendiente)
		createTestDiligencia(db, oficinaID, rol.ID, tipo.ID, models.DiligenciaPendiente)

		estado, err := DeriveRolEstado(db, rol.ID)
		assert.NoError(t, err)
		assert.Equal(t, models.EstadoEnProceso, estado)
	})

	t.Run("All Completed Means Terminado", func(t *testing.T) {
		rol := createTestRol(db, oficinaID, "R-2026-00103", models.EstadoEnProceso)
		createTestDiligencia(db, oficinaID, rol.ID, tipo.ID, models.DiligenciaCompletada)
		createTestDiligencia(db, oficinaID, rol.ID, tipo.ID, models.DiligenciaCompletada)

		estado, err := DeriveRolEstado(db, rol.ID)
		assert.NoError(t, err)
		assert.Equal(t, models.EstadoTerminado, estado)

		var persisted models.RolCausa
		db.First(&persisted, "id = ?", rol.ID)
		assert.Equal(t, models.EstadoTerminado, persisted.Estado)
	})

	t.Run("New Pending Step Flips Terminado Back", func(t *testing.T) {
		rol := createTestRol(db, oficinaID, "R-2026-00104", models.EstadoTerminado)
		createTestDiligencia(db, oficinaID, rol.ID, tipo.ID, models.DiligenciaCompletada)
		createTestDiligencia(db, oficinaID, rol.ID, tipo.ID, models.DiligenciaPendiente)

		estado, err := DeriveRolEstado(db, rol.ID)
		assert.NoError(t, err)
		assert.Equal(t, models.EstadoEnProceso, estado)
	})

	t.Run("Archivado Never Touched", func(t *testing.T) {
		rol := createTestRol(db, oficinaID, "R-2026-00105", models.EstadoArchivado)
		createTestDiligencia(db, oficinaID, rol.ID, tipo.ID, models.DiligenciaCompletada)

		estado, err := DeriveRolEstado(db, rol.ID)
		assert.NoError(t, err)
		assert.Equal(t, models.EstadoArchivado, estado)

		var persisted models.RolCausa
		db.First(&persisted, "id = ?", rol.ID)
		assert.Equal(t, models.EstadoArchivado, persisted.Estado)
	})

	t.Run("Derivation Writes Audit Entry With System Actor", func(t *testing.T) {
		rol := createTestRol(db, oficinaID, "R-2026-00106", models.EstadoPendiente)
		createTestDiligencia(db, oficinaID, rol.ID, tipo.ID, models.DiligenciaPendiente)

		_, err := DeriveRolEstado(db, rol.ID)
		assert.NoError(t, err)

		var entry models.AuditLog
		err = db.Where("resource_type = ? AND resource_id = ?", "RolCausa", rol.ID).First(&entry).Error
		assert.NoError(t, err)
		assert.Equal(t, "sistema", entry.UserName)
		assert.Equal(t, models.AuditActionTransition, entry.Action)
		assert.Contains(t, entry.Description, "derivado")
	})

	t.Run("No Write When Estado Already Natural", func(t *testing.T) {
		rol := createTestRol(db, oficinaID, "R-2026-00107", models.EstadoEnProceso)
		createTestDiligencia(db, oficinaID, rol.ID, tipo.ID, models.DiligenciaPendiente)

		estado, err := DeriveRolEstado(db, rol.ID)
		assert.NoError(t, err)
		assert.Equal(t, models.EstadoEnProceso, estado)

		var count int64
		db.Model(&models.AuditLog{}).Where("resource_id = ?", rol.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})
}
