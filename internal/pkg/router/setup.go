package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pixelcraft/studio/internal/pkg/config"
)

// Router installs one group of routes on the app.
type Router interface {
	InstallRouter(app *fiber.App)
}

// Options carry the shared infrastructure the routers need. Nil storages
// fall back to in-memory storage.
type Options struct {
	Config         *config.Config
	SessionStorage fiber.Storage
	LimiterStorage fiber.Storage
	Gatherer       prometheus.Gatherer
}

func InstallRouter(app *fiber.App, opts Options) {
	// Webhooks go first so they skip the session middleware installed by
	// the HttpRouter. API routes depend on that middleware.
	setup(app,
		NewWebhookRouter(opts),
		NewOpsRouter(opts),
		NewHttpRouter(opts),
		NewApiRouter(opts),
	)
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
