package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck is one dependency probe, for example the database ping.
type HealthCheck func(ctx context.Context) error

type MainController struct {
	checks map[string]HealthCheck
}

func NewMainController(checks map[string]HealthCheck) *MainController {
	return &MainController{checks: checks}
}

// HandleHealthz reports 200 when every probe passes and 503 otherwise.
func (mc *MainController) HandleHealthz(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
	defer cancel()

	status := fiber.StatusOK
	results := fiber.Map{}
	for name, check := range mc.checks {
		if err := check(ctx); err != nil {
			status = fiber.StatusServiceUnavailable
			results[name] = err.Error()
			continue
		}
		results[name] = "ok"
	}

	return c.Status(status).JSON(fiber.Map{
		"ok":     status == fiber.StatusOK,
		"checks": results,
	})
}
