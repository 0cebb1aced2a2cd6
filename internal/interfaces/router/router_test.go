package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"estate-backend/internal/config"
	"estate-backend/internal/infrastructure/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) *fiber.App {
	db, err := database.OpenAndMigrate(":memory:")
	require.NoError(t, err)
	return CreateApp(&config.Config{Env: "test"}, db, nil)
}

func call(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func callList(t *testing.T, app *fiber.App, path string) []interface{} {
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	var out []interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestSaleFlowOverHTTP(t *testing.T) {
	app := setupApp(t)

	code, partner := call(t, app, "POST", "/api/partners", map[string]interface{}{"name": "Owner"})
	require.Equal(t, 201, code)
	code, group := call(t, app, "POST", "/api/partnerGroups", map[string]interface{}{
		"name":     "Solo",
		"partners": []map[string]interface{}{{"partnerId": partner["id"], "percent": 100}},
	})
	require.Equal(t, 201, code)
	code, customer := call(t, app, "POST", "/api/customers", map[string]interface{}{"name": "Mona"})
	require.Equal(t, 201, code)
	code, safe := call(t, app, "POST", "/api/safes", map[string]interface{}{"name": "Main"})
	require.Equal(t, 201, code)
	code, unit := call(t, app, "POST", "/api/units", map[string]interface{}{
		"name": "A1", "floor": "2", "building": "B", "totalPrice": 120000, "partnerGroupId": group["id"],
	})
	require.Equal(t, 201, code)
	assert.Equal(t, "B-2-A1", unit["code"])

	code, contract := call(t, app, "POST", "/api/contracts", map[string]interface{}{
		"unitId": unit["id"], "customerId": customer["id"], "totalPrice": 120000,
		"downPayment": 20000, "downPaymentSafeId": safe["id"], "type": "monthly",
		"count": 10, "start": "2024-01-01",
	})
	require.Equal(t, 201, code, contract)
	assert.Equal(t, "CTR-00001", contract["code"])
	installments := contract["installments"].([]interface{})
	require.Len(t, installments, 10)
	first := installments[0].(map[string]interface{})

	code, pay := call(t, app, "POST", fmt.Sprintf("/api/installments/%s/pay", first["id"]), map[string]interface{}{
		"amount": 4000, "safeId": safe["id"], "date": "2024-02-01",
	})
	require.Equal(t, 200, code)
	assert.Equal(t, "partially-paid", pay["status"])
	assert.Equal(t, 6000.0, pay["remaining"])

	code, bal := call(t, app, "GET", fmt.Sprintf("/api/units/%s/balance", unit["id"]), nil)
	require.Equal(t, 200, code)
	assert.Equal(t, 96000.0, bal["remaining"])

	code, kpis := call(t, app, "GET", "/api/dashboard/kpis", nil)
	require.Equal(t, 200, code)
	assert.Equal(t, 24000.0, kpis["totalReceipts"])

	code, verify := call(t, app, "GET", "/api/safes/verify", nil)
	require.Equal(t, 200, code)
	assert.Equal(t, true, verify["ok"])

	code, all := call(t, app, "GET", "/api/alldata", nil)
	require.Equal(t, 200, code)
	assert.Len(t, all["installments"], 10)
	assert.Equal(t, map[string]interface{}{"theme": "dark", "font": 16.0}, all["settings"])
	assert.Equal(t, false, all["locked"])

	// the unit is sold, a second sale is refused
	code, errBody := call(t, app, "POST", "/api/contracts", map[string]interface{}{
		"unitId": unit["id"], "customerId": customer["id"], "totalPrice": 1, "start": "2024-01-01",
	})
	assert.Equal(t, 400, code)
	assert.Equal(t, "error", errBody["status"])
	assert.Equal(t, "Unit is not available for sale", errBody["error"])
	assert.Equal(t, 400.0, errBody["statusCode"])

	code, _ = call(t, app, "DELETE", fmt.Sprintf("/api/customers/%s", customer["id"]), nil)
	assert.Equal(t, 400, code)

	code, del := call(t, app, "DELETE", fmt.Sprintf("/api/contracts/%s", contract["id"]), nil)
	require.Equal(t, 200, code)
	assert.Equal(t, "Contract deleted", del["message"])
	assert.Empty(t, callList(t, app, "/api/installments"))
	assert.Len(t, callList(t, app, "/api/vouchers"), 2)
	assert.NotEmpty(t, callList(t, app, "/api/auditLog"))
}

func TestNotFoundAndBadBody(t *testing.T) {
	app := setupApp(t)

	code, body := call(t, app, "POST", "/api/installments/I-missing/pay", map[string]interface{}{
		"amount": 1, "safeId": "S-1", "date": "2024-01-01",
	})
	assert.Equal(t, 404, code)
	assert.Equal(t, "Installment not found", body["error"])

	req := httptest.NewRequest("POST", "/api/units", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	code, _ = call(t, app, "GET", "/api/nothing-here", nil)
	assert.Equal(t, 404, code)
}

func TestHealthJSON(t *testing.T) {
	app := setupApp(t)
	code, body := call(t, app, "GET", "/health/json", nil)
	require.Equal(t, 200, code)
	assert.Equal(t, "estate-ledger-api", body["service"])
	assert.Equal(t, "ok", body["status"])
}

func TestLedgerOptions(t *testing.T) {
	opts := LedgerOptions(&config.Config{MaintenanceInstallment: true, ReverseOnContractDelete: true})
	assert.True(t, opts.Schedule.MaintenanceInstallment)
	assert.False(t, opts.Schedule.AnnualInstallments)
	assert.True(t, opts.ReverseOnDelete)
}

func TestBackupWorkbook(t *testing.T) {
	app := setupApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/backup.xlsx", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment; filename=ledger_")
}
