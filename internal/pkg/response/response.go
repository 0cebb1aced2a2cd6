package response

import (
	"errors"

	"estate-backend/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorBody is the error JSON shape. The UI shell reads the message from "error".
type ErrorBody struct {
	Status     string      `json:"status"`
	Error      string      `json:"error"`
	StatusCode int         `json:"statusCode"`
	Details    interface{} `json:"details,omitempty"`
}

// MessageBody is returned by deletes and other operations without an entity.
type MessageBody struct {
	Message string `json:"message"`
}

const statusError = "error"

// traceIDHeader is set on every response by the tracing middleware.
const traceIDHeader = "X-Trace-Id"

// OK sends 200 with data as the body.
func OK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// Created sends 201 with the created entity as the body.
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// Message sends 200 with {"message": msg}.
func Message(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusOK).JSON(MessageBody{Message: msg})
}

// Error sends a response with the standard error format.
func Error(c *fiber.Ctx, message string, statusCode int, details interface{}) error {
	return c.Status(statusCode).JSON(ErrorBody{
		Status:     statusError,
		Error:      message,
		StatusCode: statusCode,
		Details:    details,
	})
}

// FromError renders a service error with the status its kind maps to.
// Server errors are logged with their underlying cause; the client only sees a generic message.
func FromError(c *fiber.Ctx, err error) error {
	code := apperror.HTTPStatus(err)
	msg := err.Error()
	if code == fiber.StatusInternalServerError {
		cause := err
		if inner := errors.Unwrap(err); inner != nil {
			cause = inner
		}
		log.Error().Err(cause).
			Str("trace_id", c.GetRespHeader(traceIDHeader)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("Unhandled error")
		msg = "Internal Server Error"
	}
	return Error(c, msg, code, nil)
}

// BadRequest is shorthand for a 400 with the given message.
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusBadRequest, nil)
}
