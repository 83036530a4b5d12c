package services

import (
	"fmt"
	"regexp"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/models"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Redaction patterns for sensitive data. Applied only when the audit trail
// leaves the system; stored rows keep the original values.
var (
	rutPattern   = regexp.MustCompile(`\b\d{1,2}\.?\d{3}\.?\d{3}-[\dkK]\b`)
	phonePattern = regexp.MustCompile(`(\+?56\s?)?9\s?\d{4}\s?\d{4}`)
)

const redactedPlaceholder = "[REDACTADO]"

// RedactSensitive masks RUT and phone numbers in free text
func RedactSensitive(text string) string {
	if text == "" {
		return text
	}
	text = rutPattern.ReplaceAllString(text, redactedPlaceholder)
	text = phonePattern.ReplaceAllString(text, redactedPlaceholder)
	return text
}

// ExportAuditLogsXLSX builds a spreadsheet with the office's audit trail.
// Sensitive fields are redacted at this boundary.
func ExportAuditLogsXLSX(db *gorm.DB, oficinaID string, filters AuditLogFilters) (*excelize.File, error) {
	var logs []models.AuditLog
	query := db.Model(&models.AuditLog{}).Where("oficina_id = ?", oficinaID)

	if filters.ResourceType != "" {
		query = query.Where("resource_type = ?", filters.ResourceType)
	}
	if filters.Action != "" {
		query = query.Where("action = ?", filters.Action)
	}
	if !filters.DateFrom.IsZero() {
		query = query.Where("created_at >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		query = query.Where("created_at <= ?", filters.DateTo)
	}

	if err := query.Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Auditoría"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Fecha", "Usuario", "Rol", "Recurso", "ID Recurso", "Nombre", "Acción", "Descripción", "Valores anteriores", "Valores nuevos", "IP"}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, entry := range logs {
		values := []interface{}{
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
			entry.UserName,
			entry.UserRole,
			entry.ResourceType,
			entry.ResourceID,
			RedactSensitive(entry.ResourceName),
			string(entry.Action),
			RedactSensitive(entry.Description),
			RedactSensitive(entry.OldValues),
			RedactSensitive(entry.NewValues),
			entry.IPAddress,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return f, nil
}
