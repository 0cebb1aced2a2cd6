package units

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	catalogsvc "estate-backend/internal/application/catalog"
	"estate-backend/internal/application/ledger"
	"estate-backend/internal/application/reports"
	"estate-backend/internal/domain"
	"estate-backend/internal/infrastructure/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUnitsTest(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := database.OpenAndMigrate(":memory:")
	require.NoError(t, err)
	h := &Handlers{
		Ledger:  ledger.NewService(db, ledger.Options{}),
		Reports: &reports.Service{DB: db},
		Catalog: &catalogsvc.Service{DB: db},
	}
	app := fiber.New()
	app.Get("/units", h.List)
	app.Post("/units", h.Create)
	app.Delete("/units/:id", h.Delete)
	app.Get("/units/:id/balance", h.Balance)
	return app, db
}

func post(t *testing.T, app *fiber.App, body interface{}) (int, map[string]interface{}) {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", "/units", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestCreateUnit_Handler(t *testing.T) {
	app, db := setupUnitsTest(t)
	group := domain.PartnerGroup{Name: "G"}
	require.NoError(t, db.Create(&group).Error)
	p := domain.Partner{Name: "P"}
	require.NoError(t, db.Create(&p).Error)
	require.NoError(t, db.Create(&domain.PartnerGroupLink{GroupID: group.ID, PartnerID: p.ID, Percent: 100}).Error)

	code, body := post(t, app, map[string]interface{}{"name": "A1", "floor": "1", "building": "B"})
	assert.Equal(t, 400, code)
	assert.Contains(t, body["error"], "Incomplete unit data")

	code, body = post(t, app, map[string]interface{}{
		"name": "A1", "floor": "1", "building": "B", "totalPrice": 500000, "partnerGroupId": group.ID,
	})
	require.Equal(t, 201, code)
	assert.Equal(t, "available", body["status"])
	assert.Len(t, body["partners"], 1)
	id := body["id"].(string)

	resp, err := app.Test(httptest.NewRequest("GET", "/units/"+id+"/balance", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/units/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/units", nil))
	require.NoError(t, err)
	var list []interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Empty(t, list)
}
