package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/http/handlers"
	"github.com/spec-kit/complaint-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Complaints     *handlers.ComplaintsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/password/reset/request", cfg.Users.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Users.ConfirmPasswordReset)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Users.Logout)

	me := app.Group("/me", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	me.Get("/", cfg.Users.Me)
	me.Patch("/", cfg.Users.UpdateMe)

	complaints := app.Group("/complaints", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	complaints.Post("/", cfg.Complaints.Create)
	complaints.Get("/my", cfg.Complaints.ListMine)
	complaints.Get("/all", auth.RequireAdmin(), cfg.Complaints.ListAll)
	complaints.Get("/stats/overview", auth.RequireAdmin(), cfg.Complaints.Stats)
	complaints.Get("/:id", cfg.Complaints.Get)
	complaints.Patch("/:id", auth.RequireAdmin(), cfg.Complaints.AdminUpdate)
	complaints.Delete("/:id", auth.RequireAdmin(), cfg.Complaints.Delete)

	attachments := app.Group("/attachments", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	attachments.Get("/:name", cfg.Complaints.GetAttachment)
}
