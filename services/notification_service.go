package services

import (
	"fmt"
	"log"
	"time"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/models"
	"gorm.io/gorm"
)

// NotifyRolTerminado records an in-app notification for the office when a
// rol reaches terminado, and sends an email notice when the mailer is
// configured. Best-effort on both counts.
func NotifyRolTerminado(db *gorm.DB, rol *models.RolCausa) {
	notificacion := models.Notificacion{
		OficinaID:  rol.OficinaID,
		Titulo:     fmt.Sprintf("Rol %s terminado", rol.Rol),
		Mensaje:    "Todas las diligencias del rol fueron completadas.",
		RolCausaID: &rol.ID,
	}
	if err := db.Create(&notificacion).Error; err != nil {
		log.Printf("[WARNING] Failed to create notification for rol %s: %v", rol.Rol, err)
	}

	if Mailer == nil {
		return
	}

	var oficina models.Oficina
	if err := db.First(&oficina, "id = ?", rol.OficinaID).Error; err != nil {
		log.Printf("[WARNING] Failed to load oficina for rol %s notification: %v", rol.Rol, err)
		return
	}

	if err := Mailer.SendRolTerminado(oficina.Email, rol.Rol); err != nil {
		log.Printf("[WARNING] Failed to send rol terminado email for %s: %v", rol.Rol, err)
	}
}

// GetUnreadNotifications returns the latest unread notifications visible to
// a user of an office
func GetUnreadNotifications(db *gorm.DB, oficinaID, userID string) ([]models.Notificacion, error) {
	var notificaciones []models.Notificacion
	err := db.Where("oficina_id = ? AND (user_id IS NULL OR user_id = ?) AND read_at IS NULL", oficinaID, userID).
		Order("created_at DESC").
		Limit(10).
		Find(&notificaciones).Error
	return notificaciones, err
}

// MarkNotificationRead marks a notification as read within the office
func MarkNotificationRead(db *gorm.DB, oficinaID, notificationID, userID string) error {
	now := time.Now()
	return db.Model(&models.Notificacion{}).
		Where("id = ? AND oficina_id = ? AND (user_id IS NULL OR user_id = ?)", notificationID, oficinaID, userID).
		Update("read_at", now).Error
}
