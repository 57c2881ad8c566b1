package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/crm-inmobiliario/internal/application/usecase"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/repository"
	"github.com/tu-usuario/crm-inmobiliario/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Asesores    repository.AsesorRepository
	PropiedadUC *usecase.PropiedadUseCase
	JWT         config.JWTConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.Asesores, deps.JWT)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWT.Secret))

	// Catálogo de propiedades (protegido, solo lectura)
	propiedades := protected.Group("/propiedades")
	propiedadHandler := NewPropiedadHandler(deps.PropiedadUC)
	propiedades.Get("/", propiedadHandler.List)
	propiedades.Get("/:id", propiedadHandler.GetByID)
}
