package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"petcareapi/internal/http/middleware"
	"petcareapi/internal/service"
)

// errorPayload is the uniform error body every endpoint returns.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx reads the id stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError emits the error envelope. code is the machine-readable short
// code (INVALID_INPUT, NOT_FOUND, ...); message must be safe to show a client.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps service sentinel errors onto HTTP statuses.
// Validation messages are safe to expose; everything else gets a generic body.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrIDRequired), errors.Is(err, service.ErrValidation):
		return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrEmailInUse):
		return writeError(c, fiber.StatusConflict, "EMAIL_IN_USE", "Email already in use")
	case errors.Is(err, service.ErrActiveReportExists):
		return writeError(c, fiber.StatusConflict, "ACTIVE_REPORT_EXISTS", "an active missing report already exists for this pet")
	case errors.Is(err, service.ErrUpstream):
		return writeError(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", "upstream service unavailable")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler is the app-level Fiber error handler; it catches errors raised
// outside the handlers themselves, like body-limit rejections and bad routes.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
