package handlers

import (
	"net/http"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/db"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/middleware"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/services"
	"github.com/labstack/echo/v4"
)

// GetNotificacionesHandler lists the caller's unread notifications
func GetNotificacionesHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	oficina := middleware.GetCurrentOficina(c)
	if user == nil || oficina == nil {
		return respondUnauthorized(c)
	}

	notificaciones, err := services.GetUnreadNotifications(db.DB, oficina.ID, user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, notificaciones)
}

// MarkNotificacionReadHandler marks a notification as read
func MarkNotificacionReadHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	oficina := middleware.GetCurrentOficina(c)
	if user == nil || oficina == nil {
		return respondUnauthorized(c)
	}

	if err := services.MarkNotificationRead(db.DB, oficina.ID, c.Param("id"), user.ID); err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, nil)
}
