package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "", cfg.BasePath)
	assert.Equal(t, "sqlite://./data/recordbase.db", cfg.DatasourceURL)
	assert.Equal(t, SchemaAuto, cfg.SchemaMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DeleteMissingError, cfg.DeleteMissing)
	assert.Equal(t, ScopeSingleton, cfg.RepoScope)
	assert.False(t, cfg.AuthEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("BASE_PATH", "/v1")
	t.Setenv("DATASOURCE_URL", "memory://")
	t.Setenv("SCHEMA_MODE", "none")
	t.Setenv("DELETE_MISSING", "ignore")
	t.Setenv("REPO_SCOPE", "request")
	t.Setenv("AUTH_USERNAME", "admin")
	t.Setenv("AUTH_PASSWORD", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/v1", cfg.BasePath)
	assert.Equal(t, "memory://", cfg.DatasourceURL)
	assert.Equal(t, SchemaNone, cfg.SchemaMode)
	assert.Equal(t, DeleteMissingIgnore, cfg.DeleteMissing)
	assert.Equal(t, ScopeRequest, cfg.RepoScope)
	assert.True(t, cfg.AuthEnabled())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad schema mode", "SCHEMA_MODE", "sometimes"},
		{"bad delete policy", "DELETE_MISSING", "maybe"},
		{"bad repo scope", "REPO_SCOPE", "global"},
		{"base path without slash", "BASE_PATH", "v1"},
		{"username without password", "AUTH_USERNAME", "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
