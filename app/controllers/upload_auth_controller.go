package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/pixelcraft/studio/internal/pkg/security"
	"github.com/pixelcraft/studio/internal/pkg/usercontext"
)

type UploadAuthController struct {
	privateKey string
	publicKey  string
}

func NewUploadAuthController(privateKey, publicKey string) *UploadAuthController {
	return &UploadAuthController{privateKey: privateKey, publicKey: publicKey}
}

// HandleUploadAuth returns signed parameters for a direct ImageKit upload.
func (uc *UploadAuthController) HandleUploadAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return unauthorized(c)
	}

	auth, err := security.GenerateUploadAuth(uc.privateKey, uc.publicKey, security.DefaultUploadAuthTTL, time.Now())
	if err != nil {
		fiberlog.Errorf("upload auth: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to generate upload auth")
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.JSON(auth)
}
