package services

import (
	"errors"
	"testing"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/models"
	"github.com/stretchr/testify/assert"
)

func TestGetRolWorkspace(t *testing.T) {
	f := setupDiligenciaFixture(t)
	f.db.AutoMigrate(&models.User{}, &models.Nota{}, &models.Documento{})

	d, _ := CreateDiligencia(f.db, f.oficinaID, f.rol.ID, CreateDiligenciaInput{TipoID: f.tipo.ID})
	CreateNota(f.db, f.oficinaID, f.rol.ID, "user-1", "Primera gestión")

	t.Run("Assembles Everything", func(t *testing.T) {
		ws, err := GetRolWorkspace(f.db, f.oficinaID, f.rol.ID)
		assert.NoError(t, err)
		assert.Equal(t, f.rol.ID, ws.Rol.ID)

		assert.NotNil(t, ws.Rol.Causa)
		assert.Equal(t, "BANCO CONDELL con SOTO", ws.Rol.Causa.Caratulado)
		assert.Len(t, ws.Rol.Causa.Partes, 1)
		assert.Len(t, ws.Rol.Causa.Direcciones, 1)

		assert.Len(t, ws.Diligencias, 1)
		assert.Equal(t, d.ID, ws.Diligencias[0].ID)
		assert.Len(t, ws.Notas, 1)
		assert.Empty(t, ws.Documentos)
	})

	t.Run("Cross Tenant Rol Is Not Found", func(t *testing.T) {
		_, err := GetRolWorkspace(f.db, "oficina-2", f.rol.ID)
		assert.True(t, errors.Is(err, ErrRolNotFound))
	})
}
