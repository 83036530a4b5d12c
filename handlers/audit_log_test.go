package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/models"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/services"
	"github.com/stretchr/testify/assert"
)

func TestGetAuditLogsHandler(t *testing.T) {
	testDB := setupTestDB(t)
	_, c, rec := setupEcho(http.MethodGet, "/api/audit-logs?action=TRANSITION", nil)
	oficina, _ := seedOficinaUser(t, testDB, c, "Receptoría Santiago")

	ctx := services.SystemAuditContext(oficina.ID)
	services.RecordAudit(testDB, ctx, models.AuditActionTransition,
		"RolCausa", "rol-1", "R-2026-00001", "Cambio de estado", nil, nil)
	services.RecordAudit(testDB, ctx, models.AuditActionCreate,
		"Nota", "nota-1", "", "Nota creada", nil, nil)
	services.RecordAudit(testDB, services.SystemAuditContext("otra-oficina"), models.AuditActionTransition,
		"RolCausa", "rol-2", "R-2026-00002", "Ajena", nil, nil)

	assert.NoError(t, GetAuditLogsHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Logs  []models.AuditLog `json:"logs"`
			Total int64             `json:"total"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Data.Total)
	assert.Equal(t, "rol-1", resp.Data.Logs[0].ResourceID)
}

func TestExportAuditLogsHandler(t *testing.T) {
	testDB := setupTestDB(t)
	_, c, rec := setupEcho(http.MethodGet, "/api/audit-logs/export", nil)
	oficina, _ := seedOficinaUser(t, testDB, c, "Receptoría Santiago")

	services.RecordAudit(testDB, services.SystemAuditContext(oficina.ID), models.AuditActionCreate,
		"Parte", "parte-1", "Juan Soto 12.345.678-9", "Parte registrada", nil, nil)

	assert.NoError(t, ExportAuditLogsHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "auditoria_")
	assert.NotZero(t, rec.Body.Len())
}
