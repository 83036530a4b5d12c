package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/db"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/middleware"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/models"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/services"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UploadDocumentoHandler attaches an uploaded file to a rol
func UploadDocumentoHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	oficina := middleware.GetCurrentOficina(c)
	if user == nil || oficina == nil {
		return respondUnauthorized(c)
	}

	rol, err := services.GetRolScoped(db.DB, oficina.ID, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return respondFailure(c, http.StatusBadRequest, KindValidationError, "Archivo requerido")
	}

	key := services.GenerateRolDocumentKey(oficina.ID, rol.ID, file.Filename)
	result, err := services.Storage.Upload(c.Request().Context(), file, key)
	if err != nil {
		return respondError(c, err)
	}

	documento := models.Documento{
		OficinaID:    oficina.ID,
		RolCausaID:   rol.ID,
		Nombre:       file.Filename,
		StorageKey:   result.Key,
		MimeType:     result.MimeType,
		FileSize:     result.FileSize,
		UploadedByID: user.ID,
	}
	if diligenciaID := c.FormValue("diligencia_id"); diligenciaID != "" {
		if _, err := services.GetDiligenciaScoped(db.DB, oficina.ID, diligenciaID); err != nil {
			return respondError(c, err)
		}
		documento.DiligenciaID = &diligenciaID
	}

	if err := db.DB.Create(&documento).Error; err != nil {
		return respondError(c, err)
	}

	auditCtx := middleware.GetAuditContext(c)
	services.RecordAudit(db.DB, auditCtx, models.AuditActionCreate,
		"Documento", documento.ID, documento.Nombre,
		"Documento adjuntado al rol", nil, documento)

	return respondOK(c, http.StatusCreated, documento)
}

// DownloadDocumentoHandler streams a document's bytes
func DownloadDocumentoHandler(c echo.Context) error {
	oficina := middleware.GetCurrentOficina(c)
	if oficina == nil {
		return respondUnauthorized(c)
	}

	var documento models.Documento
	err := db.DB.Where("oficina_id = ? AND id = ?", oficina.ID, c.Param("id")).First(&documento).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, services.ErrDocumentoNotFound)
		}
		return respondError(c, err)
	}

	reader, contentType, err := services.Storage.Get(c.Request().Context(), documento.StorageKey)
	if err != nil {
		return respondError(c, err)
	}
	defer reader.Close()

	auditCtx := middleware.GetAuditContext(c)
	services.RecordAudit(db.DB, auditCtx, models.AuditActionDownload,
		"Documento", documento.ID, documento.Nombre,
		"Documento descargado", nil, nil)

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+documento.Nombre+"\"")
	c.Response().Header().Set(echo.HeaderContentType, contentType)
	c.Response().WriteHeader(http.StatusOK)
	_, err = io.Copy(c.Response().Writer, reader)
	return err
}
