package main

import (
	"log"
	"time"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/config"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/db"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/handlers"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/middleware"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/models"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/services"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.Oficina{},
		&models.User{},
		&models.Session{},
		&models.Tribunal{},
		&models.Causa{},
		&models.Parte{},
		&models.Direccion{},
		&models.RolCausa{},
		&models.DiligenciaTipo{},
		&models.Diligencia{},
		&models.Nota{},
		&models.Documento{},
		&models.Notificacion{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize collaborators
	services.InitializeStorage(cfg)
	services.InitEmail(cfg)

	// Create Echo instance
	e := echo.New()
	e.Validator = handlers.NewRequestValidator()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	// Public routes
	e.POST("/login", handlers.LoginHandler)

	// Protected routes
	api := e.Group("/api")
	api.Use(middleware.RequireAuth())
	api.Use(middleware.AuditContext())
	{
		api.POST("/logout", handlers.LogoutHandler)
		api.GET("/me", handlers.MeHandler)

		// Filings
		api.POST("/causas", handlers.RegisterCausaHandler)

		// Roles
		api.GET("/roles", handlers.ListRolesHandler)
		api.GET("/roles/:id/workspace", handlers.GetRolWorkspaceHandler)
		api.GET("/roles/:id/diligencias", handlers.GetRolDiligenciasHandler)
		api.POST("/roles/:id/diligencias", handlers.CreateDiligenciaHandler)
		api.PUT("/roles/:id/estado", handlers.ChangeEstadoHandler)
		api.POST("/roles/:id/notas", handlers.CreateNotaHandler)
		api.POST("/roles/:id/documentos", handlers.UploadDocumentoHandler)

		// Diligencias
		api.GET("/diligencias/:id", handlers.GetDiligenciaHandler)
		api.PUT("/diligencias/:id/programar", handlers.ScheduleDiligenciaHandler)
		api.PUT("/diligencias/:id/completar", handlers.CompleteDiligenciaHandler)

		// Notes and documents
		api.DELETE("/notas/:id", handlers.DeleteNotaHandler)
		api.GET("/documentos/:id/descargar", handlers.DownloadDocumentoHandler)

		// Notifications
		api.GET("/notificaciones", handlers.GetNotificacionesHandler)
		api.PUT("/notificaciones/:id/leer", handlers.MarkNotificacionReadHandler)

		// Audit trail (admin only)
		auditRoutes := api.Group("/audit-logs")
		auditRoutes.Use(middleware.RequireRole(models.RoleAdmin))
		{
			auditRoutes.GET("", handlers.GetAuditLogsHandler)
			auditRoutes.GET("/export", handlers.ExportAuditLogsHandler)
		}
	}

	// Background cleanup of expired sessions
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
