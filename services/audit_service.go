package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/models"
	"gorm.io/gorm"
)

// AuditContext contains contextual information for audit logging
type AuditContext struct {
	UserID        string
	UserName      string
	UserEmail     string
	UserRole      string
	OficinaID     string
	OficinaNombre string
	IPAddress     string
	UserAgent     string
}

// SystemAuditContext is the actor recorded for writes the engine performs on
// its own, such as estado derivation
func SystemAuditContext(oficinaID string) AuditContext {
	return AuditContext{
		UserName:  "sistema",
		UserRole:  "sistema",
		OficinaID: oficinaID,
	}
}

// RecordAudit appends an audit log entry. Best-effort: failures are logged
// and swallowed so the mutation that triggered the entry is never affected.
func RecordAudit(
	db *gorm.DB,
	ctx AuditContext,
	action models.AuditAction,
	resourceType string,
	resourceID string,
	resourceName string,
	description string,
	oldValues interface{},
	newValues interface{},
) {
	if db == nil {
		log.Printf("[AUDIT] Skipping audit entry for %s %s: no database handle", resourceType, resourceID)
		return
	}

	var oldJSON, newJSON string

	if oldValues != nil {
		if bytes, err := json.Marshal(oldValues); err == nil {
			oldJSON = string(bytes)
		}
	}

	if newValues != nil {
		if bytes, err := json.Marshal(newValues); err == nil {
			newJSON = string(bytes)
		}
	}

	auditLog := models.AuditLog{
		UserID:        ptrIfNotEmpty(ctx.UserID),
		UserName:      ctx.UserName,
		UserEmail:     ctx.UserEmail,
		UserRole:      ctx.UserRole,
		OficinaID:     ptrIfNotEmpty(ctx.OficinaID),
		OficinaNombre: ctx.OficinaNombre,
		ResourceType:  resourceType,
		ResourceID:    resourceID,
		ResourceName:  resourceName,
		Action:        action,
		Description:   description,
		OldValues:     oldJSON,
		NewValues:     newJSON,
		IPAddress:     ctx.IPAddress,
		UserAgent:     ctx.UserAgent,
	}

	if err := db.Create(&auditLog).Error; err != nil {
		log.Printf("[AUDIT] Failed to create audit log: %v", err)
	}
}

// ptrIfNotEmpty returns a pointer to the string if not empty, nil otherwise
func ptrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// AuditLogFilters contains filter options for audit log queries
type AuditLogFilters struct {
	UserID       string
	ResourceType string
	Action       string
	DateFrom     time.Time
	DateTo       time.Time
	SearchQuery  string
}

// GetOficinaAuditLogs retrieves paginated audit logs for an office
func GetOficinaAuditLogs(
	db *gorm.DB,
	oficinaID string,
	filters AuditLogFilters,
	page, pageSize int,
) ([]models.AuditLog, int64, error) {
	query := db.Model(&models.AuditLog{}).Where("oficina_id = ?", oficinaID)

	if filters.UserID != "" {
		query = query.Where("user_id = ?", filters.UserID)
	}
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
	if filters.SearchQuery != "" {
		searchPattern := "%" + filters.SearchQuery + "%"
		query = query.Where(
			"resource_name LIKE ? OR description LIKE ? OR user_name LIKE ?",
			searchPattern, searchPattern, searchPattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&logs).Error

	return logs, total, err
}

// GetResourceAuditHistory retrieves the audit history for a specific resource
func GetResourceAuditHistory(db *gorm.DB, oficinaID, resourceType, resourceID string) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := db.Where("oficina_id = ? AND resource_type = ? AND resource_id = ?", oficinaID, resourceType, resourceID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}
