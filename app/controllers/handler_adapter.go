package controllers

import (
	"github.com/gofiber/fiber/v2"
)

// Dependencies are the collaborators the global controllers are built from.
type Dependencies struct {
	Auth       *AuthController
	Billing    *BillingController
	User       *UserController
	Project    *ProjectController
	UploadAuth *UploadAuthController
	Main       *MainController
	Admin      *AdminController
}

var ctrl Dependencies

// InitializeControllers installs the global controller instances used by
// the adapter functions below.
func InitializeControllers(deps Dependencies) {
	ctrl = deps
}

// Adapter functions used by the router

func HandleAuthRegister(c *fiber.Ctx) error {
	return ctrl.Auth.HandleRegister(c)
}

func HandleAuthLogin(c *fiber.Ctx) error {
	return ctrl.Auth.HandleLogin(c)
}

func HandleAuthLogout(c *fiber.Ctx) error {
	return ctrl.Auth.HandleLogout(c)
}

func HandlePolarWebhook(c *fiber.Ctx) error {
	return ctrl.Billing.HandlePolarWebhook(c)
}

func HandleBillingCheckout(c *fiber.Ctx) error {
	return ctrl.Billing.HandleCheckout(c)
}

func HandleBillingPortal(c *fiber.Ctx) error {
	return ctrl.Billing.HandlePortal(c)
}

func HandleBillingProducts(c *fiber.Ctx) error {
	return ctrl.Billing.HandleProducts(c)
}

func HandleAdminBillingEvents(c *fiber.Ctx) error {
	return ctrl.Billing.HandleAdminBillingEvents(c)
}

func HandleUserMe(c *fiber.Ctx) error {
	return ctrl.User.HandleMe(c)
}

func HandleUserCredits(c *fiber.Ctx) error {
	return ctrl.User.HandleCredits(c)
}

func HandleDashboard(c *fiber.Ctx) error {
	return ctrl.User.HandleDashboard(c)
}

func HandleProjectList(c *fiber.Ctx) error {
	return ctrl.Project.HandleList(c)
}

func HandleProjectCreate(c *fiber.Ctx) error {
	return ctrl.Project.HandleCreate(c)
}

func HandleProjectDelete(c *fiber.Ctx) error {
	return ctrl.Project.HandleDelete(c)
}

func HandleUploadAuth(c *fiber.Ctx) error {
	return ctrl.UploadAuth.HandleUploadAuth(c)
}

func HandleHealthz(c *fiber.Ctx) error {
	return ctrl.Main.HandleHealthz(c)
}

func HandleAdminStats(c *fiber.Ctx) error {
	return ctrl.Admin.HandleStats(c)
}
