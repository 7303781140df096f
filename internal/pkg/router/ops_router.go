package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pixelcraft/studio/app/controllers"
)

// OpsRouter serves health, metrics and the fiber monitor. Metrics and the
// monitor are only mounted when a metrics password is configured.
type OpsRouter struct {
	opts Options
}

func (h OpsRouter) InstallRouter(app *fiber.App) {
	app.Get("/healthz", controllers.HandleHealthz)

	if h.opts.Config == nil || h.opts.Config.MetricsPassword == "" {
		return
	}

	auth := basicauth.New(basicauth.Config{
		Users: map[string]string{
			h.opts.Config.MetricsUser: h.opts.Config.MetricsPassword,
		},
	})

	if h.opts.Gatherer != nil {
		app.Get("/metrics", auth, adaptor.HTTPHandler(promhttp.HandlerFor(h.opts.Gatherer, promhttp.HandlerOpts{})))
	}
	app.Get("/monitor", auth, monitor.New(monitor.Config{Title: "studio monitor"}))
}

func NewOpsRouter(opts Options) *OpsRouter {
	return &OpsRouter{opts: opts}
}
