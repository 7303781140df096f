package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/pixelcraft/studio/app/controllers"
)

type WebhookRouter struct {
	opts Options
}

func (h WebhookRouter) InstallRouter(app *fiber.App) {
	hooks := app.Group("/webhooks", limiter.New(limiter.Config{
		Max:        300,
		Expiration: time.Minute,
		Storage:    h.opts.LimiterStorage,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "rate_limited",
				"message": "too many requests",
			})
		},
	}))
	hooks.Post("/polar", controllers.HandlePolarWebhook)
}

func NewWebhookRouter(opts Options) *WebhookRouter {
	return &WebhookRouter{opts: opts}
}
