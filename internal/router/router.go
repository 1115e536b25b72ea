package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mrnewton/activity-api/internal/config"
	"github.com/mrnewton/activity-api/internal/handler"
	"github.com/mrnewton/activity-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ActivityHandler   *handler.ActivityHandler
	InstanceHandler   *handler.InstanceHandler
	SubmissionHandler *handler.SubmissionHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(api.Group("/config"))
	}

	if deps.InstanceHandler != nil {
		deps.InstanceHandler.Register(api.Group("/deploy"))
	}

	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(api.Group("/submissions"))
	}
}
