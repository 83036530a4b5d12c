package middleware

import (
	"net/http"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/db"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/models"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/services"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "oficina_session"
	// ContextKeyUser is the context key for the authenticated user
	ContextKeyUser = "user"
	// ContextKeyOficina is the context key for the user's office
	ContextKeyOficina = "oficina"
	// ContextKeySession is the context key for the session
	ContextKeySession = "session"
)

// RequireAuth resolves the session cookie to a (user, office) pair and
// stores both in the request context. Every core operation runs behind it;
// an unresolved identity is an authorization failure.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil {
				return unauthorized(c)
			}

			session, err := services.ValidateSession(db.DB, cookie.Value)
			if err != nil {
				clearSessionCookie(c)
				return unauthorized(c)
			}

			if !session.User.IsActive {
				clearSessionCookie(c)
				return unauthorized(c)
			}

			c.Set(ContextKeyUser, &session.User)
			c.Set(ContextKeyOficina, &session.User.Oficina)
			c.Set(ContextKeySession, session)

			return next(c)
		}
	}
}

// RequireRole is middleware that requires specific roles
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := GetCurrentUser(c)
			if user == nil {
				return unauthorized(c)
			}

			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}

// GetCurrentUser retrieves the current user from context
func GetCurrentUser(c echo.Context) *models.User {
	user, ok := c.Get(ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetCurrentOficina retrieves the current office from context
func GetCurrentOficina(c echo.Context) *models.Oficina {
	oficina, ok := c.Get(ContextKeyOficina).(*models.Oficina)
	if !ok {
		return nil
	}
	return oficina
}

// GetOficinaScopedQuery returns a GORM query scoped to the current office
func GetOficinaScopedQuery(c echo.Context, db *gorm.DB) *gorm.DB {
	oficina := GetCurrentOficina(c)
	if oficina == nil || oficina.ID == "" {
		// Query that matches nothing
		return db.Where("1 = 0")
	}

	return db.Where("oficina_id = ?", oficina.ID)
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]interface{}{
		"success": false,
		"error": map[string]string{
			"kind":    "unauthorized",
			"message": "No autenticado",
		},
	})
}

// clearSessionCookie clears the session cookie
func clearSessionCookie(c echo.Context) {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)
}
