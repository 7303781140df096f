package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/pixelcraft/studio/app/repository"
	"github.com/pixelcraft/studio/internal/pkg/usercontext"
)

type UserController struct {
	users    repository.UserRepository
	projects repository.ProjectRepository
	now      func() time.Time
}

func NewUserController(users repository.UserRepository, projects repository.ProjectRepository) *UserController {
	return &UserController{users: users, projects: projects, now: time.Now}
}

// HandleMe returns the account of the logged in user.
func (uc *UserController) HandleMe(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	user, err := uc.users.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "user not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to load user")
	}
	return c.JSON(userResponse(user))
}

// HandleCredits returns the current credit balance.
func (uc *UserController) HandleCredits(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	credits, err := uc.users.GetCredits(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "user not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to load credits")
	}
	return c.JSON(fiber.Map{"credits": credits})
}

// HandleDashboard returns the numbers shown on the dashboard.
func (uc *UserController) HandleDashboard(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	user, err := uc.users.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "user not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to load user")
	}

	stats, err := uc.projects.GetStatsByUserID(user.ID, uc.now())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to load statistics")
	}

	return c.JSON(fiber.Map{
		"name":          user.Name,
		"credits":       user.Credits,
		"totalProjects": stats.TotalProjects,
		"thisMonth":     stats.ThisMonth,
		"thisWeek":      stats.ThisWeek,
	})
}
