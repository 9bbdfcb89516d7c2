package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recordbase/app"
	"recordbase/config"
	"recordbase/handlers"
	"recordbase/middleware"
	"recordbase/schema"
	"recordbase/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	// Open the backing store; this handle is owned here and passed down,
	// never constructed inside a component.
	store, err := storage.Open(cfg.DatasourceURL, cfg.SchemaMode)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("store initialized", "datasource", cfg.DatasourceURL, "schema_mode", cfg.SchemaMode)

	// Apply declared collections, if a schema file is configured
	if cfg.SchemaFile != "" {
		file, err := schema.LoadFile(cfg.SchemaFile)
		if err != nil {
			logger.Error("failed to load schema file", "error", err)
			os.Exit(1)
		}
		if err := schema.Apply(store, file); err != nil {
			logger.Error("failed to apply schema file", "error", err)
			os.Exit(1)
		}
		logger.Info("schema file applied", "path", cfg.SchemaFile, "collections", len(file.Collections))
	}

	application := app.New(cfg, store, logger)

	fiberApp := fiber.New(fiber.Config{
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 30,
		DisableStartupMessage: cfg.Env == "production",
		ErrorHandler:          customErrorHandler(logger),
		ReadBufferSize:        8192,
	})

	fiberApp.Use(
		recover.New(),
		middleware.StructuredLogger(logger),
		middleware.Security(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
			AllowCredentials: false,
			MaxAge:           86400,
		}),
		limiter.New(limiter.Config{
			Max:        200,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Rate limit exceeded",
				})
			},
		}),
	)

	var root fiber.Router = fiberApp
	if cfg.BasePath != "" {
		root = fiberApp.Group(cfg.BasePath)
	}

	root.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	api := root.Group("/api", middleware.AuthRequired(cfg))
	api.Get("/collections", handlers.GetCollections(application))
	api.Post("/collections", handlers.CreateCollection(application))
	api.Get("/collections/:name", handlers.GetCollection(application))
	api.Delete("/collections/:name", handlers.DeleteCollection(application))
	api.Get("/collections/:collection/records", handlers.ListRecords(application))
	api.Post("/collections/:collection/records", handlers.SaveRecord(application))
	api.Get("/collections/:collection/records/:key", handlers.GetRecord(application))
	api.Put("/collections/:collection/records/:key", handlers.UpdateRecord(application))
	api.Delete("/collections/:collection/records/:key", handlers.DeleteRecord(application))
	api.Post("/query", handlers.ExecuteQuery(application))

	logger.Info("starting server", "port", cfg.Port, "base_path", cfg.BasePath, "env", cfg.Env)

	go func() {
		if err := fiberApp.Listen(":" + cfg.Port); err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := fiberApp.ShutdownWithContext(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     getLogLevel(cfg.LogLevel),
		AddSource: cfg.Env == "development",
	}

	if cfg.Env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func getLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func customErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		requestID := ""
		if id, ok := c.Locals("requestID").(string); ok {
			requestID = id
		}

		logger.Error("request failed",
			"request_id", requestID,
			"method", c.Method(),
			"path", c.Path(),
			"status", code,
			"error", err,
		)

		return c.Status(code).JSON(fiber.Map{
			"error":      message,
			"request_id": requestID,
		})
	}
}
