package controller

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"njangitech_backend/internals/databases/dbtest"
	"njangitech_backend/internals/features/members/service"
)

func newApp(t *testing.T) *fiber.App {
	ctl := NewMemberController(service.New(dbtest.New(t)))
	app := fiber.New()
	app.Get("/members", ctl.List)
	app.Post("/members", ctl.Create)
	app.Get("/members/:id", ctl.Get)
	app.Patch("/members/:id/status", ctl.UpdateStatus)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestMemberEndpoints(t *testing.T) {
	app := newApp(t)

	status, body := do(t, app, "POST", "/members", `{"member_full_name":"Awa Ngono","member_email":"awa@example.com"}`)
	require.Equal(t, 201, status)
	id := body["data"].(map[string]any)["member_id"].(string)

	status, body = do(t, app, "GET", "/members/"+id, "")
	assert.Equal(t, 200, status)
	assert.Equal(t, "Awa Ngono", body["data"].(map[string]any)["member_full_name"])

	status, _ = do(t, app, "PATCH", "/members/"+id+"/status", `{"member_status":"suspended"}`)
	assert.Equal(t, 200, status)

	status, body = do(t, app, "GET", "/members?status=suspended", "")
	assert.Equal(t, 200, status)
	assert.Len(t, body["data"], 1)
	assert.EqualValues(t, 1, body["pagination"].(map[string]any)["total"])
}

func TestMemberEndpointErrors(t *testing.T) {
	app := newApp(t)

	status, body := do(t, app, "POST", "/members", `{"member_full_name":"A","member_email":"nope"}`)
	assert.Equal(t, 422, status)
	assert.Contains(t, body["errors"], "member_email")

	status, _ = do(t, app, "GET", "/members/not-a-uuid", "")
	assert.Equal(t, 400, status)

	status, body = do(t, app, "GET", "/members/6d3c1f0e-8a1b-4c55-9d7e-2f0b1a9c3e11", "")
	assert.Equal(t, 404, status)
	assert.Equal(t, "MEMBER_NOT_FOUND", body["error_code"])
}
