package handlers

import (
	"net/http"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/db"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/middleware"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/models"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/services"
	"github.com/labstack/echo/v4"
)

// CreateNotaRequest is the note-creation payload
type CreateNotaRequest struct {
	Contenido string `json:"contenido" validate:"required,max=5000"`
}

// CreateNotaHandler appends a note to a rol
func CreateNotaHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	oficina := middleware.GetCurrentOficina(c)
	if user == nil || oficina == nil {
		return respondUnauthorized(c)
	}

	var req CreateNotaRequest
	if err := c.Bind(&req); err != nil {
		return respondFailure(c, http.StatusBadRequest, KindValidationError, "Cuerpo de la solicitud inválido")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	nota, err := services.CreateNota(db.DB, oficina.ID, c.Param("id"), user.ID, req.Contenido)
	if err != nil {
		return respondError(c, err)
	}

	auditCtx := middleware.GetAuditContext(c)
	services.RecordAudit(db.DB, auditCtx, models.AuditActionCreate,
		"Nota", nota.ID, "",
		"Nota agregada al rol", nil, nota)

	return respondOK(c, http.StatusCreated, nota)
}

// DeleteNotaHandler removes a note
func DeleteNotaHandler(c echo.Context) error {
	oficina := middleware.GetCurrentOficina(c)
	if oficina == nil {
		return respondUnauthorized(c)
	}

	nota, err := services.DeleteNota(db.DB, oficina.ID, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	auditCtx := middleware.GetAuditContext(c)
	services.RecordAudit(db.DB, auditCtx, models.AuditActionDelete,
		"Nota", nota.ID, "",
		"Nota eliminada", nota, nil)

	return respondOK(c, http.StatusOK, nil)
}
