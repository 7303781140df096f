package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/pixelcraft/studio/app/models"
	"github.com/pixelcraft/studio/app/repository"
	"github.com/pixelcraft/studio/internal/pkg/billing"
	"github.com/pixelcraft/studio/internal/pkg/session"
	"github.com/pixelcraft/studio/internal/pkg/usercontext"
)

// CustomerRegistrar creates the payment provider customer for a new user.
type CustomerRegistrar interface {
	CreateCustomer(ctx context.Context, email, name, externalID string) (*billing.PolarCustomer, error)
}

type AuthController struct {
	users     repository.UserRepository
	customers CustomerRegistrar
}

func NewAuthController(users repository.UserRepository, customers CustomerRegistrar) *AuthController {
	return &AuthController{users: users, customers: customers}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func userResponse(u *models.User) fiber.Map {
	return fiber.Map{
		"id":            u.ID,
		"name":          u.Name,
		"email":         u.Email,
		"external_id":   u.ExternalID,
		"credits":       u.Credits,
		"is_admin":      u.Role == models.ROLE_ADMIN,
		"created_at":    u.CreatedAt.UTC().Format(time.RFC3339),
		"last_login_at": formatTimePtr(u.LastLoginAt),
	}
}

func (ac *AuthController) HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := parseBody(c, &req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", err.Error())
	}

	if _, err := ac.users.GetByEmail(req.Email); err == nil {
		return jsonError(c, fiber.StatusConflict, "email_taken", "an account with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to check email")
	}

	user, err := models.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", err.Error())
	}
	if err := ac.users.Create(user); err != nil {
		fiberlog.Errorf("register: create user %s: %v", user.Email, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to create user")
	}

	// the provider customer is best effort; checkout creates it lazily otherwise
	if ac.customers != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
		if _, err := ac.customers.CreateCustomer(ctx, user.Email, user.Name, user.ExternalID); err != nil {
			fiberlog.Warnf("register: polar customer for user %d: %v", user.ID, err)
		}
		cancel()
	}

	if err := startSession(c, user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to start session")
	}
	return c.Status(fiber.StatusCreated).JSON(userResponse(user))
}

func (ac *AuthController) HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", err.Error())
	}

	// do not reveal whether the email exists
	user, err := ac.users.GetByEmail(req.Email)
	if err != nil || !user.CheckPassword(req.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "invalid_credentials", "email or password is wrong")
	}
	if !user.IsActive() {
		return jsonError(c, fiber.StatusForbidden, "account_disabled", "this account is disabled")
	}

	if err := startSession(c, user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to start session")
	}

	now := time.Now()
	if err := ac.users.UpdateLastLogin(user.ID, now); err != nil {
		fiberlog.Warnf("login: update last login for user %d: %v", user.ID, err)
	}
	user.LastLoginAt = &now

	return c.JSON(userResponse(user))
}

func (ac *AuthController) HandleLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return c.JSON(fiber.Map{"ok": true})
	}
	if err := sess.Destroy(); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to end session")
	}
	c.Locals(usercontext.KeyFromProtected, false)
	return c.JSON(fiber.Map{"ok": true})
}

func startSession(c *fiber.Ctx, user *models.User) error {
	store := session.GetSessionStore()
	if store == nil {
		return errors.New("session store not initialized")
	}
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	// new session id on login
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUsername, user.Name)
	sess.Set(usercontext.KeyExternalID, user.ExternalID)
	sess.Set(usercontext.KeyIsAdmin, user.Role == models.ROLE_ADMIN)
	return sess.Save()
}
