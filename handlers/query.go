package handlers

import (
	"recordbase/app"
	"recordbase/models"

	"github.com/gofiber/fiber/v2"
)

// ExecuteQuery runs a parameterized filter expression over a collection
// and returns the matching records.
func ExecuteQuery(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.QueryRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(req); err != nil {
			return serviceError(c, err, "Failed to validate request")
		}

		records, err := a.Records().Query(req)
		if err != nil {
			return serviceError(c, err, "Failed to execute query")
		}

		return success(c, fiber.Map{
			"records": records,
			"count":   len(records),
		})
	}
}
