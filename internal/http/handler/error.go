package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docregistry/internal/http/middleware"
	"docregistry/internal/service"
)

// envelope is the uniform response wrapper for every operation.
// Data and Error are mutually exclusive; Success false always carries
// an Error and never Data.
type envelope struct {
	Success   bool       `json:"success"`
	Data      any        `json:"data,omitempty"`
	Error     *errorBody `json:"error,omitempty"`
	RequestID string     `json:"request_id,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeData writes a success envelope.
func writeData(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(envelope{
		Success:   true,
		Data:      data,
		RequestID: requestIDFromCtx(c),
	})
}

// writeError writes a failure envelope without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "NOT_FOUND", "UNAUTHORIZED")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(envelope{
		Success:   false,
		Error:     &errorBody{Code: code, Message: message},
		RequestID: requestIDFromCtx(c),
	})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses
// and envelope codes. Anything unrecognized is an infrastructural
// failure and surfaces as a generic internal error.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrIdentityRequired):
		return writeError(c, fiber.StatusUnauthorized, "IDENTITY_REQUIRED", "caller identity is required")
	case errors.Is(err, service.ErrAlreadyRegistered):
		return writeError(c, fiber.StatusConflict, "ALREADY_REGISTERED", "user already registered")
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrNotRegistered):
		return writeError(c, fiber.StatusForbidden, "UNAUTHORIZED", "operation not permitted")
	case errors.Is(err, service.ErrUserNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "user not found")
	case errors.Is(err, service.ErrDocumentNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	case errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrPayloadRequired),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidAccess):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "IDENTITY_REQUIRED", "caller identity is required")
		case fiber.StatusForbidden:
			return writeError(c, status, "UNAUTHORIZED", "operation not permitted")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
