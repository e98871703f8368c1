package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"wejv/domain"
	"wejv/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/", handler, func(c *fiber.Ctx) error {
		r := Requester(c)
		return c.JSON(fiber.Map{"user_id": r.UserID, "role": r.Role})
	})
	return app
}

func get(t *testing.T, app *fiber.App, auth string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthMiddleware(t *testing.T) {
	tokens := jwt.NewJWTService("secret")
	app := newApp(NewMiddleware().AuthMiddleware(tokens))

	token, err := tokens.GenerateTokenUser(8, domain.RoleAdmin)
	require.NoError(t, err)

	status, body := get(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"user_id":8,"role":"admin"}`, body)

	status, _ = get(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = get(t, app, "Bearer garbage")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = get(t, app, "Basic "+token)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	tokens := jwt.NewJWTService("secret")
	app := newApp(NewMiddleware().OptionalAuthMiddleware(tokens))

	status, body := get(t, app, "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"user_id":0,"role":""}`, body)

	token, err := tokens.GenerateTokenUser(3, domain.RoleUser)
	require.NoError(t, err)

	status, body = get(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"user_id":3,"role":"user"}`, body)

	status, _ = get(t, app, "Bearer garbage")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
