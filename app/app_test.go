package app

import (
	"log/slog"
	"os"
	"testing"

	"recordbase/config"
	"recordbase/storage"

	"github.com/stretchr/testify/assert"
)

func newApp(scope string) *App {
	cfg := &config.Config{
		RepoScope:     scope,
		DeleteMissing: config.DeleteMissingError,
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return New(cfg, storage.NewMemoryStore(), logger)
}

func TestRepositoryScope(t *testing.T) {
	t.Run("singleton scope shares one service", func(t *testing.T) {
		a := newApp(config.ScopeSingleton)
		assert.Same(t, a.Records(), a.Records())
		assert.Same(t, a.Collections(), a.Collections())
	})

	t.Run("request scope builds a fresh service per call", func(t *testing.T) {
		a := newApp(config.ScopeRequest)
		assert.NotSame(t, a.Records(), a.Records())
		assert.NotSame(t, a.Collections(), a.Collections())
	})
}
