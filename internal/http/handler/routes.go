package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"docregistry/internal/http/middleware"
	"docregistry/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// All registry operations sit behind the Identity middleware; health and
// liveness probes do not.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.RegistryService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	identified := app.Group("", middleware.Identity())

	identified.Post("/users", RegisterUser(svc))
	identified.Get("/users", ListUsers(svc))
	identified.Get("/users/me", GetMyProfile(svc))
	identified.Put("/users/:identity/role", AssignRole(svc))

	identified.Post("/documents", UploadDocument(svc))
	identified.Get("/documents", ListDocuments(svc))
	identified.Get("/documents/:id", GetDocument(svc))
	identified.Get("/documents/:id/download", DownloadDocument(svc))
}
