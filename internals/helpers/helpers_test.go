package helper

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"njangitech_backend/internals/helpers/apperror"
)

func decodeBody(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestResolvePaging(t *testing.T) {
	app := fiber.New()
	var got Paging
	app.Get("/", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 20, 100)
		return nil
	})

	tests := []struct {
		query string
		want  Paging
	}{
		{"", Paging{Page: 1, PerPage: 20, Offset: 0, Limit: 20}},
		{"?page=3&per_page=10", Paging{Page: 3, PerPage: 10, Offset: 20, Limit: 10}},
		{"?page=-2&limit=500", Paging{Page: 1, PerPage: 100, Offset: 0, Limit: 100}},
	}
	for _, tt := range tests {
		_, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.query)
	}
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(45, Paging{Page: 2, PerPage: 20}, 20)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	empty := BuildPagination(0, Paging{Page: 1, PerPage: 20}, 0)
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.HasNext)
}

func TestOrderBy(t *testing.T) {
	app := fiber.New()
	var got string
	allowed := map[string]string{"date": "session_date", "number": "session_number"}
	app.Get("/", func(c *fiber.Ctx) error {
		got = OrderBy(c, allowed, "number", "desc")
		return nil
	})

	for query, want := range map[string]string{
		"":                            "session_number DESC",
		"?sort_by=date&order=asc":     "session_date ASC",
		"?sort_by=drop+table&order=x": "session_number DESC",
	} {
		_, err := app.Test(httptest.NewRequest("GET", "/"+query, nil))
		require.NoError(t, err)
		assert.Equal(t, want, got, query)
	}
}

func TestFromServiceErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{apperror.ErrCreditNotFound, 404, "CREDIT_NOT_FOUND"},
		{apperror.ErrInsufficientFunds, 422, "INSUFFICIENT_FUNDS"},
		{apperror.ErrActiveCreditExists, 409, "ACTIVE_CREDIT_EXISTS"},
		{apperror.InvalidTransition("session", "closed", "close"), 409, "INVALID_TRANSITION"},
		{apperror.Validation("amount must equal 50000"), 422, "VALIDATION_ERROR"},
		{apperror.Persistence(assert.AnError), 500, "PERSISTENCE_ERROR"},
		{fiber.NewError(fiber.StatusBadRequest, "bad id"), 400, "BAD_REQUEST"},
	}
	for _, tt := range tests {
		app := fiber.New()
		err := tt.err
		app.Get("/", func(c *fiber.Ctx) error { return FromServiceError(c, err) })

		resp, e := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, e)
		assert.Equal(t, tt.status, resp.StatusCode, tt.err.Error())
		body := decodeBody(t, resp.Body)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, tt.code, body["error_code"])
	}
}

type amountReq struct {
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
	Kind   string          `json:"kind" validate:"required,oneof=a b"`
}

func TestBindAndValidate(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		var req amountReq
		if ok, err := BindAndValidate(c, &req); !ok {
			return err
		}
		return JsonOK(c, "", req.Amount.String())
	})

	post := func(body string) (int, map[string]any) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode, decodeBody(t, resp.Body)
	}

	status, body := post(`{"amount": 1500, "kind": "a"}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, "1500", body["data"])

	status, body = post(`{"amount": 0, "kind": "c"}`)
	assert.Equal(t, 422, status)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "amount")
	assert.Contains(t, errs, "kind")

	status, _ = post(`{not json`)
	assert.Equal(t, 400, status)
}
