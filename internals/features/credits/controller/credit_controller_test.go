package controller

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"njangitech_backend/internals/configs"
	"njangitech_backend/internals/databases/dbtest"
	balance "njangitech_backend/internals/features/balance/service"
	"njangitech_backend/internals/features/credits/service"
	tontineModel "njangitech_backend/internals/features/tontines/model"
)

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

func TestCreditEndpoints(t *testing.T) {
	db := dbtest.New(t)
	tn := dbtest.Tontine(t, db, tontineModel.TontineTypePresence, 50000)
	m := dbtest.Member(t, db, "Amina")
	dbtest.Fund(t, db, tn.TontineID, 200000)

	ctl := NewCreditController(service.New(db, balance.New(db), configs.DefaultRules()))
	app := fiber.New()
	app.Post("/credits", ctl.Request)
	app.Post("/credits/:id/approve", ctl.Approve)
	app.Get("/members/:id/active-credit", ctl.MemberActiveCredit)

	body := `{"credit_member_id":"` + m.MemberID.String() + `","credit_tontine_id":"` + tn.TontineID.String() +
		`","credit_amount":"250000","credit_interest_rate":"10","credit_due_date":"2099-01-01T00:00:00Z"}`
	status, out := do(t, app, "POST", "/credits", body)
	assert.Equal(t, 422, status)
	assert.Equal(t, "INSUFFICIENT_FUNDS", out["error_code"])

	body = strings.Replace(body, `"250000"`, `"150000"`, 1)
	status, out = do(t, app, "POST", "/credits", body)
	require.Equal(t, 201, status)
	data := out["data"].(map[string]any)
	assert.Equal(t, "pending", data["credit_status"])

	status, _ = do(t, app, "POST", "/credits/"+data["credit_id"].(string)+"/approve", "")
	assert.Equal(t, 200, status)

	status, out = do(t, app, "GET", "/members/"+m.MemberID.String()+"/active-credit", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, false, out["data"].(map[string]any)["has_active_credit"])

	status, _ = do(t, app, "POST", "/credits", `{"credit_amount":"-5"}`)
	assert.Equal(t, 422, status)
}
