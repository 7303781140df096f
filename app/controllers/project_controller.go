package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pixelcraft/studio/app/models"
	"github.com/pixelcraft/studio/app/repository"
	"github.com/pixelcraft/studio/internal/pkg/usercontext"
)

type ProjectController struct {
	projects repository.ProjectRepository
}

func NewProjectController(projects repository.ProjectRepository) *ProjectController {
	return &ProjectController{projects: projects}
}

type createProjectRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=200"`
	ImageURL   string  `json:"imageUrl" validate:"required,url,max=1024"`
	ImageKitID string  `json:"imageKitId" validate:"required,max=191"`
	FilePath   string  `json:"filePath" validate:"required,max=1024"`
}

func (pc *ProjectController) HandleList(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	projects, err := pc.projects.ListByUserID(userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to fetch projects")
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return c.JSON(fiber.Map{"projects": projects})
}

func (pc *ProjectController) HandleCreate(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	var req createProjectRequest
	if err := parseBody(c, &req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", err.Error())
	}

	project := &models.Project{
		ImageURL:   strings.TrimSpace(req.ImageURL),
		ImageKitID: strings.TrimSpace(req.ImageKitID),
		FilePath:   strings.TrimSpace(req.FilePath),
		UserID:     userCtx.UserID,
	}
	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); name != "" {
			project.Name = &name
		}
	}

	if err := pc.projects.Create(project); err != nil {
		fiberlog.Errorf("create project for user %d: %v", userCtx.UserID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to create project")
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

func (pc *ProjectController) HandleDelete(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "invalid project id")
	}

	if err := pc.projects.DeleteForUser(id, userCtx.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "project not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to delete project")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
