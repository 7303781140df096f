package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/pixelcraft/studio/app/controllers"
	"github.com/pixelcraft/studio/internal/pkg/middleware"
)

type ApiRouter struct {
	opts Options
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	corsConf := cors.Config{}
	if h.opts.Config != nil && h.opts.Config.PublicDomain != "" {
		corsConf.AllowOrigins = h.opts.Config.PublicDomain
		corsConf.AllowCredentials = true
	}

	api := app.Group("/api",
		cors.New(corsConf),
		limiter.New(limiter.Config{
			Max:        120,
			Expiration: time.Minute,
			Storage:    h.opts.LimiterStorage,
		}),
	)
	api.Get("/billing/products", controllers.HandleBillingProducts)

	protected := api.Group("", middleware.RequireAPISessionAuth)
	protected.Get("/user/me", controllers.HandleUserMe)
	protected.Get("/user/credits", controllers.HandleUserCredits)
	protected.Get("/dashboard", controllers.HandleDashboard)
	protected.Get("/projects", controllers.HandleProjectList)
	protected.Post("/projects", controllers.HandleProjectCreate)
	protected.Delete("/projects/:id", controllers.HandleProjectDelete)
	protected.Get("/upload-auth", controllers.HandleUploadAuth)
	protected.Post("/billing/checkout", controllers.HandleBillingCheckout)
	protected.Get("/billing/portal", controllers.HandleBillingPortal)

	admin := api.Group("/admin", middleware.RequireAPIAdmin)
	admin.Get("/billing/events", controllers.HandleAdminBillingEvents)
	admin.Get("/stats", controllers.HandleAdminStats)
}

func NewApiRouter(opts Options) *ApiRouter {
	return &ApiRouter{opts: opts}
}
