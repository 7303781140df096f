package router

import (
	"crypto/sha256"
	"encoding/base64"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/pixelcraft/studio/app/controllers"
	"github.com/pixelcraft/studio/internal/pkg/middleware"
	"github.com/pixelcraft/studio/internal/pkg/session"
)

// HttpRouter sets up sessions, the user context and the auth routes.
type HttpRouter struct {
	opts Options
}

// cookieKey derives the 32 byte cookie encryption key from AUTH_SECRET.
func cookieKey(secret string) string {
	sum := sha256.Sum256([]byte("cookie:" + secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	secure := false
	if h.opts.Config != nil {
		secure = h.opts.Config.IsProduction()
		app.Use(encryptcookie.New(encryptcookie.Config{
			Key:    cookieKey(h.opts.Config.AuthSecret),
			Except: []string{"csrf_"},
		}))
	}

	// init session
	session.NewSessionStore(h.opts.SessionStorage, secure)

	// Apply UserContext middleware globally
	app.Use(middleware.UserContextMiddleware)

	csrfConf := csrf.Config{
		KeyLookup:      "header:X-CSRF-Token",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   secure,
		Expiration:     1 * time.Hour,
	}

	auth := app.Group("/auth",
		limiter.New(limiter.Config{
			Max:        20,
			Expiration: time.Minute,
			Storage:    h.opts.LimiterStorage,
		}),
		csrf.New(csrfConf),
	)
	auth.Get("/csrf", func(c *fiber.Ctx) error {
		token, _ := c.Locals("csrf").(string)
		return c.JSON(fiber.Map{"csrfToken": token})
	})
	auth.Post("/register", controllers.HandleAuthRegister)
	auth.Post("/login", controllers.HandleAuthLogin)
	auth.Post("/logout", controllers.HandleAuthLogout)
}

func NewHttpRouter(opts Options) *HttpRouter {
	return &HttpRouter{opts: opts}
}
