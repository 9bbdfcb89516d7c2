package handlers

import (
	"errors"
	"log/slog"

	"recordbase/query"
	"recordbase/schema"
	"recordbase/services"
	"recordbase/validator"

	"github.com/gofiber/fiber/v2"
)

func success(c *fiber.Ctx, data fiber.Map) error {
	return c.JSON(data)
}

func created(c *fiber.Ctx, data fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": message})
}

func conflict(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": message})
}

func validationFailed(c *fiber.Ctx, details interface{}) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "Validation failed",
		"details": details,
	})
}

func serverErrorWithDetails(c *fiber.Ctx, message string, err error) error {
	requestID := ""
	if id, ok := c.Locals("requestID").(string); ok {
		requestID = id
	}

	slog.Error("server error",
		"request_id", requestID,
		"method", c.Method(),
		"path", c.Path(),
		"message", message,
		"error", err,
	)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}

// serviceError maps known service and validation failures to their
// status codes; anything unrecognized becomes a generic 500.
func serviceError(c *fiber.Ctx, err error, fallback string) error {
	var fieldErrs schema.FieldErrors
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, services.ErrRecordNotFound):
		return notFound(c, "Record not found")
	case errors.Is(err, services.ErrCollectionNotFound):
		return notFound(c, "Collection not found")
	case errors.Is(err, services.ErrCollectionExists):
		return conflict(c, "Collection already exists")
	case errors.Is(err, query.ErrSyntax):
		return badRequest(c, err.Error())
	case errors.As(err, &fieldErrs):
		return validationFailed(c, fieldErrs)
	case errors.As(err, &validationErrs):
		return validationFailed(c, validationErrs)
	default:
		return serverErrorWithDetails(c, fallback, err)
	}
}
