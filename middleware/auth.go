package middleware

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"recordbase/config"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired checks the Basic credentials on every request against the
// configured username/password pair. When no pair is configured the
// middleware is a pass-through.
func AuthRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !cfg.AuthEnabled() {
			return c.Next()
		}

		username, password, ok := basicCredentials(c.Get("Authorization"))
		if !ok {
			c.Set("WWW-Authenticate", `Basic realm="recordbase"`)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization",
			})
		}

		// Constant-time compare so a mismatch does not leak where it failed
		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.AuthUsername)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(cfg.AuthPassword)) == 1
		if !userOK || !passOK {
			c.Set("WWW-Authenticate", `Basic realm="recordbase"`)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid credentials",
			})
		}

		c.Locals("username", username)
		return c.Next()
	}
}

func basicCredentials(header string) (username, password string, ok bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Basic") {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", "", false
	}

	username, password, ok = strings.Cut(string(decoded), ":")
	return username, password, ok
}

// GetUsername returns the authenticated username, if any.
func GetUsername(c *fiber.Ctx) string {
	username, ok := c.Locals("username").(string)
	if !ok {
		return ""
	}
	return username
}
