package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/models"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/services"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func multipartFileRequest(t *testing.T, fieldName, fileName, content string) *http.Request {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, fileName)
	assert.NoError(t, err)
	part.Write([]byte(content))
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/roles/x/documentos", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req
}

func TestUploadDocumentoHandler(t *testing.T) {
	t.Run("Uploads And Records Documento", func(t *testing.T) {
		testDB := setupTestDB(t)
		services.Storage = services.NewLocalStorage(t.TempDir())

		req := multipartFileRequest(t, "file", "acta.pdf", "contenido del acta")
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		oficina, _ := seedOficinaUser(t, testDB, c, "Receptoría Santiago")
		rol, _ := seedRolConCausa(t, testDB, oficina.ID)

		c.SetParamNames("id")
		c.SetParamValues(rol.ID)

		assert.NoError(t, UploadDocumentoHandler(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var documento models.Documento
		assert.NoError(t, testDB.Where("rol_causa_id = ?", rol.ID).First(&documento).Error)
		assert.Equal(t, "acta.pdf", documento.Nombre)
		assert.NotEmpty(t, documento.StorageKey)
	})

	t.Run("Missing File Rejected", func(t *testing.T) {
		testDB := setupTestDB(t)
		services.Storage = services.NewLocalStorage(t.TempDir())

		_, c, rec := setupEcho(http.MethodPost, "/api/roles/x/documentos", nil)
		oficina, _ := seedOficinaUser(t, testDB, c, "Receptoría Santiago")
		rol, _ := seedRolConCausa(t, testDB, oficina.ID)

		c.SetParamNames("id")
		c.SetParamValues(rol.ID)

		assert.NoError(t, UploadDocumentoHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDownloadDocumentoHandler(t *testing.T) {
	t.Run("Streams File With Audit Trail", func(t *testing.T) {
		testDB := setupTestDB(t)
		store := services.NewLocalStorage(t.TempDir())
		services.Storage = store

		_, c, rec := setupEcho(http.MethodGet, "/api/documentos/x/descargar", nil)
		oficina, user := seedOficinaUser(t, testDB, c, "Receptoría Santiago")
		rol, _ := seedRolConCausa(t, testDB, oficina.ID)

		key := "oficinas/" + oficina.ID + "/roles/" + rol.ID + "/acta.pdf"
		_, err := store.UploadReader(c.Request().Context(), bytes.NewReader([]byte("contenido")), key, "application/pdf", 9)
		assert.NoError(t, err)

		documento := &models.Documento{
			OficinaID: oficina.ID, RolCausaID: rol.ID,
			Nombre: "acta.pdf", StorageKey: key,
			MimeType: "application/pdf", FileSize: 9,
			UploadedByID: user.ID,
		}
		testDB.Create(documento)

		c.SetParamNames("id")
		c.SetParamValues(documento.ID)

		assert.NoError(t, DownloadDocumentoHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "contenido", rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "acta.pdf")

		var count int64
		testDB.Model(&models.AuditLog{}).
			Where("action = ? AND resource_id = ?", models.AuditActionDownload, documento.ID).
			Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Cross Tenant Documento Returns Not Found", func(t *testing.T) {
		testDB := setupTestDB(t)
		services.Storage = services.NewLocalStorage(t.TempDir())

		_, c, rec := setupEcho(http.MethodGet, "/api/documentos/x/descargar", nil)
		seedOficinaUser(t, testDB, c, "Receptoría Santiago")

		otra := &models.Oficina{Nombre: "Otra", Email: "otra@receptoria.cl"}
		testDB.Create(otra)
		rol, _ := seedRolConCausa(t, testDB, otra.ID)
		documento := &models.Documento{
			OficinaID: otra.ID, RolCausaID: rol.ID,
			Nombre: "ajeno.pdf", StorageKey: "x", UploadedByID: "user-x",
		}
		testDB.Create(documento)

		c.SetParamNames("id")
		c.SetParamValues(documento.ID)

		assert.NoError(t, DownloadDocumentoHandler(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
