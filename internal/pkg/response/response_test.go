package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"estate-backend/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError_StatusAndBody(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{apperror.Validation("Incomplete payment data"), 400, "Incomplete payment data"},
		{apperror.BusinessRule("Installment is already paid"), 400, "Installment is already paid"},
		{apperror.NotFound("Installment not found"), 404, "Installment not found"},
		{errors.New("near \"FROM\": syntax error"), 500, "Internal Server Error"},
	}
	for _, tc := range cases {
		app := fiber.New()
		err := tc.err
		app.Get("/", func(c *fiber.Ctx) error { return FromError(c, err) })

		resp, rerr := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, rerr)
		assert.Equal(t, tc.code, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		var out map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Equal(t, "error", out["status"])
		assert.Equal(t, tc.msg, out["error"])
		assert.Equal(t, float64(tc.code), out["statusCode"])
	}
}

func TestCreated(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error { return Created(c, fiber.Map{"id": "C-1"}) })
	resp, err := app.Test(httptest.NewRequest("POST", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
}

func TestFromError_LogsStorageCause(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	app := fiber.New()
	app.Get("/api/customers", func(c *fiber.Ctx) error {
		c.Set("X-Trace-Id", "trace-123")
		return FromError(c, apperror.Storage(errors.New("no such table: customers")))
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/api/customers", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "no such table: customers", entry["error"])
	assert.Equal(t, "trace-123", entry["trace_id"])
	assert.Equal(t, "/api/customers", entry["path"])
}

func TestFromError_ClientErrorsAreNotLogged(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return FromError(c, apperror.NotFound("Customer not found")) })
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Empty(t, buf.String())
}
