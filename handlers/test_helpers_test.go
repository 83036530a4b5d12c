package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/db"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/middleware"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/models"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/services"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared memory name isolates tests while keeping one handle pool
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.Oficina{},
		&models.User{},
		&models.Session{},
		&models.Tribunal{},
		&models.Causa{},
		&models.Parte{},
		&models.Direccion{},
		&models.RolCausa{},
		&models.DiligenciaTipo{},
		&models.Diligencia{},
		&models.Nota{},
		&models.Documento{},
		&models.Notificacion{},
		&models.AuditLog{},
	)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewRequestValidator()

	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return e, c, rec
}

// seedOficinaUser creates an office with one active user and puts both in
// the request context, the way the auth middleware would.
func seedOficinaUser(t *testing.T, testDB *gorm.DB, c echo.Context, nombre string) (*models.Oficina, *models.User) {
	oficina := &models.Oficina{Nombre: nombre, Email: uuid.New().String() + "@receptoria.cl"}
	assert.NoError(t, testDB.Create(oficina).Error)

	user := &models.User{
		OficinaID:    oficina.ID,
		Nombre:       "María Receptor",
		Email:        uuid.New().String() + "@receptoria.cl",
		PasswordHash: "x",
		Role:         models.RoleReceptor,
		IsActive:     true,
	}
	assert.NoError(t, testDB.Create(user).Error)

	c.Set(middleware.ContextKeyUser, user)
	c.Set(middleware.ContextKeyOficina, oficina)
	c.Set(middleware.ContextKeyAuditContext, services.AuditContext{
		UserID:        user.ID,
		UserName:      user.Nombre,
		UserEmail:     user.Email,
		UserRole:      user.Role,
		OficinaID:     oficina.ID,
		OficinaNombre: oficina.Nombre,
	})

	return oficina, user
}

func seedRolConCausa(t *testing.T, testDB *gorm.DB, oficinaID string) (*models.RolCausa, *models.Causa) {
	causa := &models.Causa{OficinaID: oficinaID, Caratulado: "BANCO CONDELL con SOTO"}
	assert.NoError(t, testDB.Create(causa).Error)

	rol := &models.RolCausa{
		OficinaID: oficinaID,
		Rol:       "R-2026-" + uuid.New().String()[:5],
		Estado:    models.EstadoPendiente,
		CausaID:   &causa.ID,
	}
	assert.NoError(t, testDB.Create(rol).Error)

	return rol, causa
}

func seedTipo(t *testing.T, testDB *gorm.DB) *models.DiligenciaTipo {
	tipo := &models.DiligenciaTipo{Codigo: "tipo_" + uuid.New().String()[:8], Nombre: "Notificación personal"}
	assert.NoError(t, testDB.Create(tipo).Error)
	return tipo
}
