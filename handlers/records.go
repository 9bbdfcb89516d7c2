package handlers

import (
	"recordbase/app"
	"recordbase/models"

	"github.com/gofiber/fiber/v2"
)

// SaveRecord creates or updates a record in a collection. The key may be
// supplied in the body; when absent the store assigns one.
func SaveRecord(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		collection := c.Params("collection")
		if collection == "" {
			return badRequest(c, "collection is required")
		}

		var req models.SaveRecordRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(req); err != nil {
			return serviceError(c, err, "Failed to validate request")
		}

		rec, err := a.Records().Save(collection, req.Key, req.Fields)
		if err != nil {
			return serviceError(c, err, "Failed to save record")
		}

		return created(c, fiber.Map{"record": rec})
	}
}

// UpdateRecord writes a record under the key given in the path
func UpdateRecord(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		collection, key := c.Params("collection"), c.Params("key")
		if collection == "" || key == "" {
			return badRequest(c, "collection and key are required")
		}

		var req models.SaveRecordRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		req.Key = key

		if err := a.Validator.Validate(req); err != nil {
			return serviceError(c, err, "Failed to validate request")
		}

		rec, err := a.Records().Save(collection, key, req.Fields)
		if err != nil {
			return serviceError(c, err, "Failed to save record")
		}

		return success(c, fiber.Map{"record": rec})
	}
}

// GetRecord retrieves a record by key
func GetRecord(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		collection, key := c.Params("collection"), c.Params("key")
		if collection == "" || key == "" {
			return badRequest(c, "collection and key are required")
		}

		rec, err := a.Records().Get(collection, key)
		if err != nil {
			return serviceError(c, err, "Failed to fetch record")
		}

		return success(c, fiber.Map{"record": rec})
	}
}

// ListRecords retrieves records in a collection with pagination
func ListRecords(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		collection := c.Params("collection")
		if collection == "" {
			return badRequest(c, "collection is required")
		}

		limit := c.QueryInt("limit", 50)
		offset := c.QueryInt("offset", 0)

		records, err := a.Records().List(collection, limit, offset)
		if err != nil {
			return serviceError(c, err, "Failed to fetch records")
		}

		return success(c, fiber.Map{
			"records": records,
			"limit":   limit,
			"offset":  offset,
		})
	}
}

// DeleteRecord removes a record permanently
func DeleteRecord(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		collection, key := c.Params("collection"), c.Params("key")
		if collection == "" || key == "" {
			return badRequest(c, "collection and key are required")
		}

		if err := a.Records().Delete(collection, key); err != nil {
			return serviceError(c, err, "Failed to delete record")
		}

		return success(c, fiber.Map{
			"message": "Record deleted successfully",
		})
	}
}
