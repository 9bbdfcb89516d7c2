package handlers

import (
	"recordbase/app"
	"recordbase/models"

	"github.com/gofiber/fiber/v2"
)

// GetCollections lists every collection with its record count
func GetCollections(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		collections, err := a.Collections().List()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to list collections", err)
		}

		return success(c, fiber.Map{"collections": collections})
	}
}

// CreateCollection declares a new collection, optionally with field
// constraints
func CreateCollection(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateCollectionRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(req); err != nil {
			return serviceError(c, err, "Failed to validate request")
		}

		col, err := a.Collections().Create(req.Name, req.Fields)
		if err != nil {
			return serviceError(c, err, "Failed to create collection")
		}

		return created(c, fiber.Map{"collection": col})
	}
}

// GetCollection returns one collection with its record count
func GetCollection(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("name")
		if name == "" {
			return badRequest(c, "collection name is required")
		}

		info, err := a.Collections().Get(name)
		if err != nil {
			return serviceError(c, err, "Failed to fetch collection")
		}

		return success(c, fiber.Map{"collection": info})
	}
}

// DeleteCollection removes a collection and every record in it
func DeleteCollection(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("name")
		if name == "" {
			return badRequest(c, "collection name is required")
		}

		if err := a.Collections().Delete(name); err != nil {
			return serviceError(c, err, "Failed to delete collection")
		}

		return success(c, fiber.Map{
			"message": "Collection deleted successfully",
		})
	}
}
