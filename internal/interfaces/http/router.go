package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/provision-audit-api/internal/application/auth"
	"github.com/jhoicas/provision-audit-api/internal/application/usecase"
	"github.com/jhoicas/provision-audit-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProvisionUC *usecase.ProvisionUseCase
	ExportUC    *usecase.ExportUseCase
	ReportUC    *usecase.ReportUseCase
	UserUC      *usecase.UserUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, registro solo para SUPER_ADMIN
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleSuperAdmin),
		authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (protegido)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/auditors", userHandler.ListAuditors)

	// Provisions (protegido)
	provisions := protected.Group("/provisions")
	provisionHandler := NewProvisionHandler(deps.ProvisionUC, deps.ExportUC, deps.ReportUC)

	// Las rutas fijas van antes de /:id para que Fiber no las capture como parámetro.
	provisions.Get("/quick-search", provisionHandler.QuickSearch)
	provisions.Get("/statistics", provisionHandler.Statistics)
	provisions.Get("/export", provisionHandler.Export)
	provisions.Post("/bulk-import", provisionHandler.BulkImport)

	// Operaciones en lote: solo administración
	adminOnly := RequireRole(entity.RoleSuperAdmin, entity.RoleManager)
	provisions.Patch("/bulk", adminOnly, provisionHandler.BulkUpdate)
	provisions.Delete("/bulk", adminOnly, provisionHandler.BulkDelete)

	provisions.Post("/", provisionHandler.Create)
	provisions.Get("/", provisionHandler.List)
	provisions.Get("/:id", provisionHandler.GetByID)
	provisions.Get("/:id/report", provisionHandler.Report)
	provisions.Patch("/:id", provisionHandler.Update)
	provisions.Delete("/:id", adminOnly, provisionHandler.Delete)
}
