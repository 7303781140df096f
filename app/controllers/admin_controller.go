package controllers

import (
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/pixelcraft/studio/internal/pkg/statistics"
)

type AdminController struct {
	stats *statistics.Service
}

func NewAdminController(stats *statistics.Service) *AdminController {
	return &AdminController{stats: stats}
}

// HandleStats returns the cached site statistics.
func (ac *AdminController) HandleStats(c *fiber.Ctx) error {
	stats, err := ac.stats.Get(c.UserContext())
	if err != nil {
		fiberlog.Errorf("admin stats: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to load statistics")
	}
	return c.JSON(stats)
}
