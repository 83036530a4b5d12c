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

// ParteRequest describes a party in a filing registration
type ParteRequest struct {
	Nombre   string `json:"nombre" validate:"required"`
	Rut      string `json:"rut,omitempty"`
	Telefono string `json:"telefono,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
}

// DireccionRequest describes a service address in a filing registration
type DireccionRequest struct {
	Calle  string `json:"calle" validate:"required"`
	Numero string `json:"numero,omitempty"`
	Depto  string `json:"depto,omitempty"`
	Comuna string `json:"comuna" validate:"required"`
}

// RegisterCausaRequest is the filing-registration payload
type RegisterCausaRequest struct {
	Caratulado  string             `json:"caratulado" validate:"required"`
	RolTribunal string             `json:"rol_tribunal,omitempty"`
	TribunalID  string             `json:"tribunal_id,omitempty" validate:"omitempty,uuid"`
	Partes      []ParteRequest     `json:"partes,omitempty" validate:"dive"`
	Direcciones []DireccionRequest `json:"direcciones,omitempty" validate:"dive"`
}

// RegisterCausaHandler registers a filing and its rol
func RegisterCausaHandler(c echo.Context) error {
	oficina := middleware.GetCurrentOficina(c)
	if oficina == nil {
		return respondUnauthorized(c)
	}

	var req RegisterCausaRequest
	if err := c.Bind(&req); err != nil {
		return respondFailure(c, http.StatusBadRequest, KindValidationError, "Cuerpo de la solicitud inválido")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	input := services.CausaInput{
		Caratulado:  req.Caratulado,
		RolTribunal: req.RolTribunal,
		TribunalID:  req.TribunalID,
	}
	for _, p := range req.Partes {
		input.Partes = append(input.Partes, services.ParteInput{
			Nombre: p.Nombre, Rut: p.Rut, Telefono: p.Telefono, Email: p.Email,
		})
	}
	for _, d := range req.Direcciones {
		input.Direcciones = append(input.Direcciones, services.DireccionInput{
			Calle: d.Calle, Numero: d.Numero, Depto: d.Depto, Comuna: d.Comuna,
		})
	}

	causa, rol, err := services.RegisterCausa(db.DB, oficina.ID, input)
	if err != nil {
		return respondError(c, err)
	}

	auditCtx := middleware.GetAuditContext(c)
	services.RecordAudit(db.DB, auditCtx, models.AuditActionCreate,
		"Causa", causa.ID, causa.Caratulado,
		fmt.Sprintf("Causa registrada, rol asignado %s", rol.Rol),
		nil, causa)

	return respondOK(c, http.StatusCreated, map[string]interface{}{
		"causa": causa,
		"rol":   rol,
	})
}
