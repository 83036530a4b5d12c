package handlers

import (
	"fmt"
	"net/http"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/db"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/middleware"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/models"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/services"
	"github.com/labstack/echo/v4"
)

// CreateDiligenciaRequest is the step-creation payload. Scheduling fields
// are optional; when present they are validated exactly like the schedule
// operation.
type CreateDiligenciaRequest struct {
	TipoID         string `json:"tipo_id" validate:"required,uuid"`
	FechaEjecucion string `json:"fecha_ejecucion,omitempty"`
	HoraEjecucion  string `json:"hora_ejecucion,omitempty"`
	EjecutadoID    string `json:"ejecutado_id,omitempty" validate:"omitempty,uuid"`
	DireccionID    string `json:"direccion_id,omitempty" validate:"omitempty,uuid"`
	Observaciones  string `json:"observaciones,omitempty" validate:"omitempty,max=1000"`
}

// ScheduleDiligenciaRequest carries the planned execution facts
type ScheduleDiligenciaRequest struct {
	FechaEjecucion string `json:"fecha_ejecucion" validate:"required"`
	HoraEjecucion  string `json:"hora_ejecucion,omitempty"`
	EjecutadoID    string `json:"ejecutado_id,omitempty" validate:"omitempty,uuid"`
	DireccionID    string `json:"direccion_id,omitempty" validate:"omitempty,uuid"`
	Observaciones  string `json:"observaciones,omitempty" validate:"omitempty,max=1000"`
}

// CompleteDiligenciaRequest carries the realized outcome
type CompleteDiligenciaRequest struct {
	ObservacionesFinales string `json:"observaciones_finales,omitempty" validate:"omitempty,max=1000"`
	FechaRealizacion     string `json:"fecha_realizacion,omitempty"`
}

// CreateDiligenciaHandler registers a new step on a rol
func CreateDiligenciaHandler(c echo.Context) error {
	oficina := middleware.GetCurrentOficina(c)
	if oficina == nil {
		return respondUnauthorized(c)
	}

	var req CreateDiligenciaRequest
	if err := c.Bind(&req); err != nil {
		return respondFailure(c, http.StatusBadRequest, KindValidationError, "Cuerpo de la solicitud inválido")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	diligencia, err := services.CreateDiligencia(db.DB, oficina.ID, c.Param("id"), services.CreateDiligenciaInput{
		TipoID:         req.TipoID,
		FechaEjecucion: req.FechaEjecucion,
		HoraEjecucion:  req.HoraEjecucion,
		EjecutadoID:    req.EjecutadoID,
		DireccionID:    req.DireccionID,
		Observaciones:  req.Observaciones,
	})
	if err != nil {
		return respondError(c, err)
	}

	auditCtx := middleware.GetAuditContext(c)
	services.RecordAudit(db.DB, auditCtx, models.AuditActionCreate,
		"Diligencia", diligencia.ID, diligencia.Tipo.Nombre,
		fmt.Sprintf("Diligencia creada para rol %s", diligencia.RolCausaID),
		nil, diligencia)

	return respondOK(c, http.StatusCreated, diligencia)
}

// ScheduleDiligenciaHandler assigns planned execution facts to a step
func ScheduleDiligenciaHandler(c echo.Context) error {
	oficina := middleware.GetCurrentOficina(c)
	if oficina == nil {
		return respondUnauthorized(c)
	}

	var req ScheduleDiligenciaRequest
	if err := c.Bind(&req); err != nil {
		return respondFailure(c, http.StatusBadRequest, KindValidationError, "Cuerpo de la solicitud inválido")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	diligencia, err := services.ScheduleDiligencia(db.DB, oficina.ID, c.Param("id"), services.ScheduleDiligenciaInput{
		FechaEjecucion: req.FechaEjecucion,
		HoraEjecucion:  req.HoraEjecucion,
		EjecutadoID:    req.EjecutadoID,
		DireccionID:    req.DireccionID,
		Observaciones:  req.Observaciones,
	})
	if err != nil {
		return respondError(c, err)
	}

	auditCtx := middleware.GetAuditContext(c)
	services.RecordAudit(db.DB, auditCtx, models.AuditActionUpdate,
		"Diligencia", diligencia.ID, diligencia.Tipo.Nombre,
		fmt.Sprintf("Diligencia programada para %s", req.FechaEjecucion),
		nil, diligencia.Meta)

	return respondOK(c, http.StatusOK, diligencia)
}

// CompleteDiligenciaHandler marks a step as completed
func CompleteDiligenciaHandler(c echo.Context) error {
	oficina := middleware.GetCurrentOficina(c)
	if oficina == nil {
		return respondUnauthorized(c)
	}

	var req CompleteDiligenciaRequest
	if err := c.Bind(&req); err != nil {
		return respondFailure(c, http.StatusBadRequest, KindValidationError, "Cuerpo de la solicitud inválido")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	diligencia, err := services.CompleteDiligencia(db.DB, oficina.ID, c.Param("id"), services.CompleteDiligenciaInput{
		ObservacionesFinales: req.ObservacionesFinales,
		FechaRealizacion:     req.FechaRealizacion,
	})
	if err != nil {
		return respondError(c, err)
	}

	realizada := "sin fecha informada"
	if diligencia.Fecha != nil {
		realizada = diligencia.Fecha.Format("2006-01-02")
	}
	auditCtx := middleware.GetAuditContext(c)
	services.RecordAudit(db.DB, auditCtx, models.AuditActionUpdate,
		"Diligencia", diligencia.ID, diligencia.Tipo.Nombre,
		fmt.Sprintf("Diligencia completada, fecha realizada: %s", realizada),
		nil, diligencia.Meta)

	return respondOK(c, http.StatusOK, diligencia)
}

// GetDiligenciaHandler returns a single step
func GetDiligenciaHandler(c echo.Context) error {
	oficina := middleware.GetCurrentOficina(c)
	if oficina == nil {
		return respondUnauthorized(c)
	}

	diligencia, err := services.GetDiligenciaScoped(db.DB, oficina.ID, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, diligencia)
}
