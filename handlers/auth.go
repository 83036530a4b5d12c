package handlers

import (
	"net/http"
	"time"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/db"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/middleware"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/models"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/services"
	"github.com/labstack/echo/v4"
)

// LoginRequest is the credential payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginHandler authenticates and issues a session cookie
func LoginHandler(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondFailure(c, http.StatusBadRequest, KindValidationError, "Cuerpo de la solicitud inválido")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	session, err := services.Authenticate(db.DB, req.Email, req.Password, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return respondFailure(c, http.StatusUnauthorized, KindUnauthorized, "Credenciales inválidas")
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	var user models.User
	if err := db.DB.Preload("Oficina").First(&user, "id = ?", session.UserID).Error; err != nil {
		return respondError(c, err)
	}

	services.RecordAudit(db.DB, services.AuditContext{
		UserID:    user.ID,
		UserName:  user.Nombre,
		UserEmail: user.Email,
		UserRole:  user.Role,
		OficinaID: user.OficinaID,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}, models.AuditActionLogin, "User", user.ID, user.Email, "Inicio de sesión", nil, nil)

	return respondOK(c, http.StatusOK, user)
}

// LogoutHandler terminates the session
func LogoutHandler(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		_ = services.DeleteSession(db.DB, cookie.Value)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if user := middleware.GetCurrentUser(c); user != nil {
		auditCtx := middleware.GetAuditContext(c)
		services.RecordAudit(db.DB, auditCtx, models.AuditActionLogout,
			"User", user.ID, user.Email, "Cierre de sesión", nil, nil)
	}

	return respondOK(c, http.StatusOK, nil)
}

// MeHandler returns the authenticated user
func MeHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return respondUnauthorized(c)
	}
	return respondOK(c, http.StatusOK, user)
}
