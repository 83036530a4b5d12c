package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/db"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/middleware"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/models"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/services"
	"github.com/labstack/echo/v4"
)

// ChangeEstadoRequest is the explicit status-transition payload
type ChangeEstadoRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// ChangeEstadoHandler applies a user-directed estado transition
func ChangeEstadoHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	oficina := middleware.GetCurrentOficina(c)
	if user == nil || oficina == nil {
		return respondUnauthorized(c)
	}

	var req ChangeEstadoRequest
	if err := c.Bind(&req); err != nil {
		return respondFailure(c, http.StatusBadRequest, KindValidationError, "Cuerpo de la solicitud inválido")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	rol, err := services.GetRolScoped(db.DB, oficina.ID, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	previo := rol.Estado

	rol, changed, err := services.ChangeRolEstado(db.DB, oficina.ID, c.Param("id"), req.Estado, user.ID)
	if err != nil {
		return respondError(c, err)
	}

	if changed {
		auditCtx := middleware.GetAuditContext(c)
		services.RecordAudit(db.DB, auditCtx, models.AuditActionTransition,
			"RolCausa", rol.ID, rol.Rol,
			fmt.Sprintf("Cambio de estado: %s -> %s", previo, rol.Estado),
			map[string]string{"estado": previo},
			map[string]string{"estado": rol.Estado})
	}

	return respondOK(c, http.StatusOK, rol)
}

// GetRolWorkspaceHandler returns the composed workspace of a rol
func GetRolWorkspaceHandler(c echo.Context) error {
	oficina := middleware.GetCurrentOficina(c)
	if oficina == nil {
		return respondUnauthorized(c)
	}

	workspace, err := services.GetRolWorkspace(db.DB, oficina.ID, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, workspace)
}

// ListRolesHandler returns a filtered, paginated list of roles
func ListRolesHandler(c echo.Context) error {
	oficina := middleware.GetCurrentOficina(c)
	if oficina == nil {
		return respondUnauthorized(c)
	}

	filters := services.RolListFilters{
		Estado:  c.QueryParam("estado"),
		Keyword: c.QueryParam("keyword"),
	}
	if dateFrom := c.QueryParam("date_from"); dateFrom != "" {
		if parsed, err := time.Parse("2006-01-02", dateFrom); err == nil {
			filters.DateFrom = parsed
		}
	}
	if dateTo := c.QueryParam("date_to"); dateTo != "" {
		if parsed, err := time.Parse("2006-01-02", dateTo); err == nil {
			filters.DateTo = parsed
		}
	}

	page := 1
	pageSize := 20
	if pageParam := c.QueryParam("page"); pageParam != "" {
		if p, err := strconv.Atoi(pageParam); err == nil && p > 0 {
			page = p
		}
	}
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 && l <= 100 {
			pageSize = l
		}
	}

	roles, total, err := services.ListRoles(db.DB, oficina.ID, filters, page, pageSize)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, map[string]interface{}{
		"roles": roles,
		"total": total,
		"page":  page,
	})
}

// GetRolDiligenciasHandler lists the steps of a rol
func GetRolDiligenciasHandler(c echo.Context) error {
	oficina := middleware.GetCurrentOficina(c)
	if oficina == nil {
		return respondUnauthorized(c)
	}

	rol, err := services.GetRolScoped(db.DB, oficina.ID, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	diligencias, err := services.GetDiligenciasByRol(db.DB, rol.ID)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, diligencias)
}
