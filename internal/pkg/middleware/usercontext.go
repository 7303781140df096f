package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pixelcraft/studio/internal/pkg/session"
	"github.com/pixelcraft/studio/internal/pkg/usercontext"
)

func setAnonymous(c *fiber.Ctx) {
	c.Locals(usercontext.ContextKey, usercontext.UserContext{})
	c.Locals(usercontext.KeyFromProtected, false)
	c.Locals(usercontext.KeyIsAdmin, false)
}

// UserContextMiddleware loads the session once per request and exposes the
// logged in user through usercontext.
func UserContextMiddleware(c *fiber.Ctx) error {
	store := session.GetSessionStore()
	if store == nil {
		setAnonymous(c)
		return c.Next()
	}

	sess, err := store.Get(c)
	if err != nil {
		setAnonymous(c)
		return c.Next()
	}

	userID, ok := sess.Get(usercontext.KeyUserID).(uint)
	if !ok || userID == 0 {
		setAnonymous(c)
		return c.Next()
	}

	username, _ := sess.Get(usercontext.KeyUsername).(string)
	externalID, _ := sess.Get(usercontext.KeyExternalID).(string)
	isAdmin, _ := sess.Get(usercontext.KeyIsAdmin).(bool)

	userCtx := usercontext.UserContext{
		UserID:     userID,
		Username:   username,
		ExternalID: externalID,
		IsLoggedIn: true,
		IsAdmin:    isAdmin,
	}
	c.Locals(usercontext.ContextKey, userCtx)
	c.Locals(usercontext.KeyFromProtected, true)
	c.Locals(usercontext.KeyUserID, userID)
	c.Locals(usercontext.KeyIsAdmin, isAdmin)

	return c.Next()
}
