package contracts

import (
	catalogsvc "estate-backend/internal/application/catalog"
	"estate-backend/internal/application/ledger"
	"estate-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers serves contracts and their installments.
type Handlers struct {
	Ledger  *ledger.Service
	Catalog *catalogsvc.Service
}

// List GET /api/contracts
func (h *Handlers) List(c *fiber.Ctx) error {
	contracts, err := h.Catalog.ListContracts(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, contracts)
}

// Create POST /api/contracts
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in ledger.CreateContractInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	res, err := h.Ledger.CreateContract(c.UserContext(), in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, res)
}

// Delete DELETE /api/contracts/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	res, err := h.Ledger.DeleteContract(c.UserContext(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, fiber.Map{
		"message":             "Contract deleted",
		"unitId":              res.UnitID,
		"removedInstallments": res.RemovedInstallments,
		"reversals":           res.Reversals,
	})
}

// ListInstallments GET /api/installments
func (h *Handlers) ListInstallments(c *fiber.Ctx) error {
	installments, err := h.Catalog.ListInstallments(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, installments)
}

// PayInstallment POST /api/installments/:id/pay
func (h *Handlers) PayInstallment(c *fiber.Ctx) error {
	var in ledger.PayInstallmentInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	res, err := h.Ledger.PayInstallment(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, res)
}
