package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/db"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/middleware"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/services"
	"github.com/labstack/echo/v4"
)

func auditFiltersFromQuery(c echo.Context) services.AuditLogFilters {
	filters := services.AuditLogFilters{
		UserID:       c.QueryParam("user_id"),
		ResourceType: c.QueryParam("resource_type"),
		Action:       c.QueryParam("action"),
		SearchQuery:  c.QueryParam("q"),
	}
	if dateFrom := c.QueryParam("date_from"); dateFrom != "" {
		if parsed, err := time.Parse("2006-01-02", dateFrom); err == nil {
			filters.DateFrom = parsed
		}
	}
	if dateTo := c.QueryParam("date_to"); dateTo != "" {
		if parsed, err := time.Parse("2006-01-02", dateTo); err == nil {
			filters.DateTo = parsed.Add(24 * time.Hour)
		}
	}
	return filters
}

// GetAuditLogsHandler lists the office's audit trail with filters and
// pagination
func GetAuditLogsHandler(c echo.Context) error {
	oficina := middleware.GetCurrentOficina(c)
	if oficina == nil {
		return respondUnauthorized(c)
	}

	page := 1
	pageSize := 50
	if pageParam := c.QueryParam("page"); pageParam != "" {
		if p, err := strconv.Atoi(pageParam); err == nil && p > 0 {
			page = p
		}
	}

	logs, total, err := services.GetOficinaAuditLogs(db.DB, oficina.ID, auditFiltersFromQuery(c), page, pageSize)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, map[string]interface{}{
		"logs":  logs,
		"total": total,
		"page":  page,
	})
}

// ExportAuditLogsHandler streams the audit trail as a spreadsheet, with
// sensitive fields redacted
func ExportAuditLogsHandler(c echo.Context) error {
	oficina := middleware.GetCurrentOficina(c)
	if oficina == nil {
		return respondUnauthorized(c)
	}

	f, err := services.ExportAuditLogsXLSX(db.DB, oficina.ID, auditFiltersFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}

	filename := fmt.Sprintf("auditoria_%s.xlsx", time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response().Writer)
}
