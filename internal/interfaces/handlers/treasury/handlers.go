package treasury

import (
	catalogsvc "estate-backend/internal/application/catalog"
	"estate-backend/internal/application/ledger"
	"estate-backend/internal/application/reports"
	"estate-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers serves safes, vouchers, transfers, broker dues and partner debt settlement.
type Handlers struct {
	Ledger  *ledger.Service
	Reports *reports.Service
	Catalog *catalogsvc.Service
}

func (h *Handlers) ListSafes(c *fiber.Ctx) error {
	safes, err := h.Catalog.ListSafes(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, safes)
}

// CreateSafe POST /api/safes
func (h *Handlers) CreateSafe(c *fiber.Ctx) error {
	var in ledger.CreateSafeInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	safe, err := h.Ledger.CreateSafe(c.UserContext(), in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, safe)
}

// RenameSafe PUT /api/safes/:id. Only the name is writable.
func (h *Handlers) RenameSafe(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	for k := range body {
		if k != "name" && k != "id" {
			return response.BadRequest(c, "Only the safe name can be changed")
		}
	}
	name, _ := body["name"].(string)
	safe, err := h.Ledger.RenameSafe(c.UserContext(), c.Params("id"), name)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, safe)
}

// DeleteSafe DELETE /api/safes/:id
func (h *Handlers) DeleteSafe(c *fiber.Ctx) error {
	if err := h.Ledger.DeleteSafe(c.UserContext(), c.Params("id")); err != nil {
		return response.FromError(c, err)
	}
	return response.Message(c, "Safe deleted")
}

// VerifySafes GET /api/safes/verify
func (h *Handlers) VerifySafes(c *fiber.Ctx) error {
	report, err := h.Reports.VerifySafes(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, report)
}

func (h *Handlers) ListVouchers(c *fiber.Ctx) error {
	vouchers, err := h.Catalog.ListVouchers(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, vouchers)
}

// PostVoucher POST /api/vouchers
func (h *Handlers) PostVoucher(c *fiber.Ctx) error {
	var in ledger.VoucherInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	v, err := h.Ledger.PostVoucher(c.UserContext(), in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, v)
}

func (h *Handlers) ListTransfers(c *fiber.Ctx) error {
	transfers, err := h.Catalog.ListTransfers(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, transfers)
}

// Transfer POST /api/transfers
func (h *Handlers) Transfer(c *fiber.Ctx) error {
	var in ledger.TransferInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	res, err := h.Ledger.TransferFunds(c.UserContext(), in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, res)
}

func (h *Handlers) ListBrokerDues(c *fiber.Ctx) error {
	dues, err := h.Catalog.ListBrokerDues(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, dues)
}

// PayBrokerDue POST /api/brokerDues/:id/pay
func (h *Handlers) PayBrokerDue(c *fiber.Ctx) error {
	var in ledger.SettleInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	due, err := h.Ledger.PayBrokerDue(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, due)
}

// SettlePartnerDebt POST /api/partnerDebts/:id/settle. The body is optional.
func (h *Handlers) SettlePartnerDebt(c *fiber.Ctx) error {
	var in ledger.SettleInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}
	debt, err := h.Ledger.SettlePartnerDebt(c.UserContext(), c.Params("id"), in.Date)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, debt)
}
