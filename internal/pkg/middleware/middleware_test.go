package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelcraft/studio/internal/pkg/session"
	"github.com/pixelcraft/studio/internal/pkg/usercontext"
)

func newApp() *fiber.App {
	session.NewSessionStore(nil, false)

	app := fiber.New()
	app.Use(UserContextMiddleware)
	app.Get("/login", func(c *fiber.Ctx) error {
		sess, err := session.GetSessionStore().Get(c)
		if err != nil {
			return err
		}
		sess.Set(usercontext.KeyUserID, uint(7))
		sess.Set(usercontext.KeyUsername, "alice")
		sess.Set(usercontext.KeyExternalID, "ext-7")
		sess.Set(usercontext.KeyIsAdmin, c.Query("admin") == "1")
		return sess.Save()
	})
	app.Get("/me", RequireAPISessionAuth, func(c *fiber.Ctx) error {
		return c.JSON(usercontext.GetUserContext(c))
	})
	app.Get("/admin", RequireAPIAdmin, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func login(t *testing.T, app *fiber.App, admin bool) *http.Cookie {
	t.Helper()
	target := "/login"
	if admin {
		target += "?admin=1"
	}
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func get(t *testing.T, app *fiber.App, target string, cookie *http.Cookie) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRequireAPISessionAuth(t *testing.T) {
	app := newApp()

	assert.Equal(t, http.StatusUnauthorized, get(t, app, "/me", nil))
	assert.Equal(t, http.StatusOK, get(t, app, "/me", login(t, app, false)))
}

func TestRequireAPIAdmin(t *testing.T) {
	app := newApp()

	assert.Equal(t, http.StatusUnauthorized, get(t, app, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, get(t, app, "/admin", login(t, app, false)))
	assert.Equal(t, http.StatusOK, get(t, app, "/admin", login(t, app, true)))
}
