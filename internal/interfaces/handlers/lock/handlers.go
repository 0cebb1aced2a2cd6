package lock

import (
	locksvc "estate-backend/internal/application/lock"
	"estate-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *locksvc.Service
}

type passwordBody struct {
	Password string `json:"password"`
}

// Set PUT /api/lock. An empty password clears the lock.
func (h *Handlers) Set(c *fiber.Ctx) error {
	var body passwordBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.Service.Set(c.UserContext(), body.Password); err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, fiber.Map{"locked": body.Password != ""})
}

// Unlock POST /api/unlock
func (h *Handlers) Unlock(c *fiber.Ctx) error {
	var body passwordBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	ok, err := h.Service.Unlock(c.UserContext(), body.Password)
	if err != nil {
		return response.FromError(c, err)
	}
	if !ok {
		return response.Error(c, "Wrong password", fiber.StatusUnauthorized, nil)
	}
	return response.OK(c, fiber.Map{"unlocked": true})
}
