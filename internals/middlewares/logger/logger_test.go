package logger

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessLogSkipsProbes(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("request_id", "rid-1")
		return c.Next()
	})
	app.Use(AccessLog(&buf))
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/api/a/members", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	_, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	_, err = app.Test(httptest.NewRequest("GET", "/api/a/members", nil))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "rid=rid-1")
	assert.Contains(t, buf.String(), "GET /api/a/members status=204")
}
