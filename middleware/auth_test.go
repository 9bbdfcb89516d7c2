package middleware

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"recordbase/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Get("/protected", AuthRequired(cfg), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"username": GetUsername(c)})
	})
	return app
}

func basicHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func TestAuthRequired(t *testing.T) {
	cfg := &config.Config{AuthUsername: "admin", AuthPassword: "s3cret"}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid credentials", basicHeader("admin", "s3cret"), http.StatusOK},
		{"wrong password", basicHeader("admin", "nope"), http.StatusUnauthorized},
		{"wrong username", basicHeader("root", "s3cret"), http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
		{"not basic", "Bearer abc", http.StatusUnauthorized},
		{"garbage base64", "Basic %%%", http.StatusUnauthorized},
	}

	app := authApp(cfg)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestAuthRequired_DisabledWithoutCredentials(t *testing.T) {
	app := authApp(&config.Config{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
