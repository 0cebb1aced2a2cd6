package units

import (
	catalogsvc "estate-backend/internal/application/catalog"
	"estate-backend/internal/application/ledger"
	"estate-backend/internal/application/reports"
	"estate-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Ledger  *ledger.Service
	Reports *reports.Service
	Catalog *catalogsvc.Service
}

// List GET /api/units
func (h *Handlers) List(c *fiber.Ctx) error {
	units, err := h.Catalog.ListUnits(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, units)
}

// Create POST /api/units
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in ledger.CreateUnitInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	unit, err := h.Ledger.CreateUnit(c.UserContext(), in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, unit)
}

// Delete DELETE /api/units/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	if err := h.Ledger.DeleteUnit(c.UserContext(), c.Params("id")); err != nil {
		return response.FromError(c, err)
	}
	return response.Message(c, "Unit deleted")
}

// Balance GET /api/units/:id/balance
func (h *Handlers) Balance(c *fiber.Ctx) error {
	b, err := h.Reports.RemainingBalance(c.UserContext(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, b)
}
