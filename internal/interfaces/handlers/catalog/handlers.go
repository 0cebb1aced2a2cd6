package catalog

import (
	catalogsvc "estate-backend/internal/application/catalog"
	"estate-backend/internal/domain"
	"estate-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers serves the reference records: customers, partners, partner groups, brokers and
// partner debts.
type Handlers struct {
	Service *catalogsvc.Service
}

func send(c *fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, data)
}

func created(c *fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, data)
}

func deleted(c *fiber.Ctx, what string, err error) error {
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Message(c, what+" deleted")
}

func updateBody(c *fiber.Ctx) (map[string]interface{}, bool) {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return nil, false
	}
	return body, true
}

func (h *Handlers) ListCustomers(c *fiber.Ctx) error {
	out, err := h.Service.ListCustomers(c.UserContext())
	return send(c, out, err)
}

func (h *Handlers) CreateCustomer(c *fiber.Ctx) error {
	var in domain.Customer
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	out, err := h.Service.CreateCustomer(c.UserContext(), in)
	return created(c, out, err)
}

func (h *Handlers) UpdateCustomer(c *fiber.Ctx) error {
	body, ok := updateBody(c)
	if !ok {
		return response.BadRequest(c, "Invalid request body")
	}
	out, err := h.Service.UpdateCustomer(c.UserContext(), c.Params("id"), body)
	return send(c, out, err)
}

func (h *Handlers) DeleteCustomer(c *fiber.Ctx) error {
	return deleted(c, "Customer", h.Service.DeleteCustomer(c.UserContext(), c.Params("id")))
}

func (h *Handlers) ListPartners(c *fiber.Ctx) error {
	out, err := h.Service.ListPartners(c.UserContext())
	return send(c, out, err)
}

func (h *Handlers) CreatePartner(c *fiber.Ctx) error {
	var in domain.Partner
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	out, err := h.Service.CreatePartner(c.UserContext(), in)
	return created(c, out, err)
}

func (h *Handlers) UpdatePartner(c *fiber.Ctx) error {
	body, ok := updateBody(c)
	if !ok {
		return response.BadRequest(c, "Invalid request body")
	}
	out, err := h.Service.UpdatePartner(c.UserContext(), c.Params("id"), body)
	return send(c, out, err)
}

func (h *Handlers) DeletePartner(c *fiber.Ctx) error {
	return deleted(c, "Partner", h.Service.DeletePartner(c.UserContext(), c.Params("id")))
}

func (h *Handlers) ListBrokers(c *fiber.Ctx) error {
	out, err := h.Service.ListBrokers(c.UserContext())
	return send(c, out, err)
}

func (h *Handlers) CreateBroker(c *fiber.Ctx) error {
	var in domain.Broker
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	out, err := h.Service.CreateBroker(c.UserContext(), in)
	return created(c, out, err)
}

func (h *Handlers) UpdateBroker(c *fiber.Ctx) error {
	body, ok := updateBody(c)
	if !ok {
		return response.BadRequest(c, "Invalid request body")
	}
	out, err := h.Service.UpdateBroker(c.UserContext(), c.Params("id"), body)
	return send(c, out, err)
}

func (h *Handlers) DeleteBroker(c *fiber.Ctx) error {
	return deleted(c, "Broker", h.Service.DeleteBroker(c.UserContext(), c.Params("id")))
}

func (h *Handlers) ListPartnerGroups(c *fiber.Ctx) error {
	out, err := h.Service.ListPartnerGroups(c.UserContext())
	return send(c, out, err)
}

// CreatePartnerGroup POST /api/partnerGroups {name, partners:[{partnerId, percent}]}
func (h *Handlers) CreatePartnerGroup(c *fiber.Ctx) error {
	var in catalogsvc.PartnerGroupInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	out, err := h.Service.CreatePartnerGroup(c.UserContext(), in)
	return created(c, out, err)
}

// UpdatePartnerGroup PUT /api/partnerGroups/:id. Sending partners rewrites the links.
func (h *Handlers) UpdatePartnerGroup(c *fiber.Ctx) error {
	var in catalogsvc.PartnerGroupInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	out, err := h.Service.UpdatePartnerGroup(c.UserContext(), c.Params("id"), in)
	return send(c, out, err)
}

func (h *Handlers) DeletePartnerGroup(c *fiber.Ctx) error {
	return deleted(c, "Partner group", h.Service.DeletePartnerGroup(c.UserContext(), c.Params("id")))
}

func (h *Handlers) ListPartnerDebts(c *fiber.Ctx) error {
	out, err := h.Service.ListPartnerDebts(c.UserContext())
	return send(c, out, err)
}

func (h *Handlers) CreatePartnerDebt(c *fiber.Ctx) error {
	var in domain.PartnerDebt
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	out, err := h.Service.CreatePartnerDebt(c.UserContext(), in)
	return created(c, out, err)
}

func (h *Handlers) UpdatePartnerDebt(c *fiber.Ctx) error {
	body, ok := updateBody(c)
	if !ok {
		return response.BadRequest(c, "Invalid request body")
	}
	out, err := h.Service.UpdatePartnerDebt(c.UserContext(), c.Params("id"), body)
	return send(c, out, err)
}

func (h *Handlers) DeletePartnerDebt(c *fiber.Ctx) error {
	return deleted(c, "Partner debt", h.Service.DeletePartnerDebt(c.UserContext(), c.Params("id")))
}
