package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/colegioeccos/requesthub/internal/api/http/handlers"
	"github.com/colegioeccos/requesthub/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Requests       *handlers.RequestsHandler
	AdminRequests  *handlers.AdminRequestsHandler
	Availability   *handlers.AvailabilityHandler
	Equipment      *handlers.EquipmentHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/sso", cfg.Auth.SignIn)

	authed := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	authed.Post("/requests", cfg.Requests.Create)
	authed.Get("/requests", cfg.Requests.List)
	authed.Get("/requests/:id", cfg.Requests.Get)
	authed.Post("/requests/:id/chat", cfg.Requests.AddChat)

	authed.Get("/equipment", cfg.Equipment.List)
	authed.Get("/availability", cfg.Availability.List)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/requests", cfg.AdminRequests.List)
	admin.Patch("/requests/:id/status", cfg.AdminRequests.UpdateStatus)
	admin.Delete("/requests/:id", cfg.AdminRequests.Delete)
	admin.Post("/requests/:id/chat", cfg.Requests.AddChat)

	admin.Get("/availability", cfg.Availability.List)
	admin.Post("/availability", cfg.Availability.Add)
	admin.Delete("/availability/:id", cfg.Availability.Remove)

	admin.Get("/equipment", cfg.Equipment.List)
	admin.Post("/equipment", cfg.Equipment.Add)
	admin.Delete("/equipment/:id", cfg.Equipment.Remove)

	admin.Get("/users", cfg.Users.List)
	admin.Patch("/users/:id/role", cfg.Users.UpdateRole)
}
