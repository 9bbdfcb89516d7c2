package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Delete policies for removing a key that has no record.
const (
	DeleteMissingError  = "error"
	DeleteMissingIgnore = "ignore"
)

// Repository scopes: one shared service graph or one built per request.
const (
	ScopeSingleton = "singleton"
	ScopeRequest   = "request"
)

// Schema modes: create backing tables automatically or leave them alone.
const (
	SchemaAuto = "auto"
	SchemaNone = "none"
)

type Config struct {
	Port          string `env:"PORT" envDefault:"3000"`
	Env           string `env:"ENV" envDefault:"development"`
	BasePath      string `env:"BASE_PATH" envDefault:""`
	DatasourceURL string `env:"DATASOURCE_URL" envDefault:"sqlite://./data/recordbase.db"`
	SchemaMode    string `env:"SCHEMA_MODE" envDefault:"auto"`
	SchemaFile    string `env:"SCHEMA_FILE" envDefault:""`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	AuthUsername  string `env:"AUTH_USERNAME" envDefault:""`
	AuthPassword  string `env:"AUTH_PASSWORD" envDefault:""`
	DeleteMissing string `env:"DELETE_MISSING" envDefault:"error"`
	RepoScope     string `env:"REPO_SCOPE" envDefault:"singleton"`
	CORSOrigins   string `env:"CORS_ORIGINS" envDefault:"*"`
}

// Load reads .env (if present), then the process environment, and checks
// the enumerated keys. The returned value is owned by the caller; no
// package-level state is kept.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.SchemaMode {
	case SchemaAuto, SchemaNone:
	default:
		return fmt.Errorf("SCHEMA_MODE must be %q or %q, got %q", SchemaAuto, SchemaNone, c.SchemaMode)
	}

	switch c.DeleteMissing {
	case DeleteMissingError, DeleteMissingIgnore:
	default:
		return fmt.Errorf("DELETE_MISSING must be %q or %q, got %q", DeleteMissingError, DeleteMissingIgnore, c.DeleteMissing)
	}

	switch c.RepoScope {
	case ScopeSingleton, ScopeRequest:
	default:
		return fmt.Errorf("REPO_SCOPE must be %q or %q, got %q", ScopeSingleton, ScopeRequest, c.RepoScope)
	}

	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("BASE_PATH must start with '/', got %q", c.BasePath)
	}

	// Auth is all-or-nothing: a username without a password would
	// silently disable the check.
	if (c.AuthUsername == "") != (c.AuthPassword == "") {
		return fmt.Errorf("AUTH_USERNAME and AUTH_PASSWORD must be set together")
	}

	return nil
}

// AuthEnabled reports whether the configured credential pair guards the API.
func (c *Config) AuthEnabled() bool {
	return c.AuthUsername != "" && c.AuthPassword != ""
}
