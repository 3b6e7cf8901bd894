package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	authutils "request-flow-backend/lib/utils/auth-utils"
	"request-flow-backend/models"
)

const testSecret = "test-secret"

func testApp() *fiber.App {
	app := fiber.New()
	app.Use(authorization(testSecret))
	app.Get("/me", func(ctx *fiber.Ctx) error {
		return ctx.JSON(GetPrincipal(ctx))
	})
	app.Get("/admin", AdminRequired(), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestAuthorization(t *testing.T) {
	app := testApp()
	adminToken, err := authutils.SignToken(testSecret, time.Hour, "u1", "Иван", true)
	require.NoError(t, err)
	userToken, err := authutils.SignToken(testSecret, time.Hour, "u2", "Пётр", false)
	require.NoError(t, err)

	t.Run("no token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
	t.Run("foreign signature", func(t *testing.T) {
		foreign, err := authutils.SignToken("other", time.Hour, "u1", "Иван", true)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+foreign)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
	t.Run("principal from header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var principal models.Principal
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&principal))
		require.Equal(t, models.Principal{UserID: "u1", Name: "Иван", IsAdmin: true}, principal)
	})
	t.Run("header without bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", adminToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
	t.Run("principal from query", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/me?token="+userToken, nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var principal models.Principal
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&principal))
		require.Equal(t, "u2", principal.UserID)
		require.False(t, principal.IsAdmin)
	})
	t.Run("admin guard", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+userToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

		req = httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		resp, err = app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
