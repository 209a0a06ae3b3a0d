package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/sq-invest/crm-service/internal/access"
	"github.com/sq-invest/crm-service/internal/api/http/handlers"
	"github.com/sq-invest/crm-service/internal/auth"
	"github.com/sq-invest/crm-service/internal/domain"
	"github.com/sq-invest/crm-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Session        *handlers.SessionHandler
	Directory      *handlers.DirectoryHandler
	Pipeline       *handlers.PipelineHandler
	Activity       *handlers.ActivityHandler
	Metrics        *observability.Metrics
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	app.Post("/auth/login", cfg.Session.Login)

	authed := cfg.AuthMiddleware.Handle
	app.Post("/auth/logout", authed, cfg.Session.Logout)

	app.Get("/session", authed, cfg.Session.Current)
	app.Put("/session", authed, cfg.Session.Update)
	app.Get("/session/permissions/:token", authed, cfg.Session.Permission)
	app.Get("/access/:view", authed, cfg.Session.Access)

	app.Get("/directory", authed, cfg.Directory.List)
	app.Put("/directory/:id", authed, auth.RequireView(access.ViewDirectoryEdit), cfg.Directory.Update)
	app.Delete("/directory/:id", authed, auth.RequireView(access.ViewDirectoryDelete), cfg.Directory.Remove)

	contacts := auth.RequirePermission(domain.PermissionContacts)
	app.Get("/pipeline", authed, contacts, cfg.Pipeline.Board)
	app.Get("/pipeline/stats", authed, contacts, cfg.Pipeline.Stats)
	app.Get("/pipeline/templates", authed, contacts, cfg.Pipeline.Templates)
	app.Post("/pipeline/move", authed, contacts, cfg.Pipeline.Move)
	app.Post("/pipeline/bulk", authed, contacts, cfg.Pipeline.Bulk)
	app.Post("/pipeline/contacts", authed, contacts, cfg.Pipeline.AddContact)
	app.Put("/pipeline/contacts/:id", authed, contacts, cfg.Pipeline.EditContact)

	app.Get("/activity", authed, cfg.Activity.Recent)
}
