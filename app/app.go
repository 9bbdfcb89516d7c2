package app

import (
	"log/slog"

	"recordbase/config"
	"recordbase/services"
	"recordbase/storage"
	"recordbase/validator"
)

// App holds all application dependencies
// This struct is the central point for explicit wiring: main builds it
// once and hands it to every handler.
type App struct {
	Config    *config.Config
	Store     storage.Store
	Validator *validator.Validator
	Logger    *slog.Logger

	// populated only in singleton scope
	records     *services.RecordService
	collections *services.CollectionService
}

// New creates a new App instance with all dependencies. The store handle
// is supplied by the caller, which also owns its lifetime.
func New(cfg *config.Config, store storage.Store, logger *slog.Logger) *App {
	a := &App{
		Config:    cfg,
		Store:     store,
		Validator: validator.New(),
		Logger:    logger,
	}

	if cfg.RepoScope == config.ScopeSingleton {
		a.records = services.NewRecordService(store, cfg.DeleteMissing)
		a.collections = services.NewCollectionService(store)
	}

	return a
}

// Records returns the record service: the shared instance in singleton
// scope, a fresh one per call in request scope. Both run over the same
// store handle.
func (a *App) Records() *services.RecordService {
	if a.records != nil {
		return a.records
	}
	return services.NewRecordService(a.Store, a.Config.DeleteMissing)
}

// Collections returns the collection service, scoped like Records.
func (a *App) Collections() *services.CollectionService {
	if a.collections != nil {
		return a.collections
	}
	return services.NewCollectionService(a.Store)
}
