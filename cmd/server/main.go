package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"

	"github.com/gestobra/gestobra-api/internal/config"
	"github.com/gestobra/gestobra-api/internal/database"
	"github.com/gestobra/gestobra-api/internal/handlers"
	"github.com/gestobra/gestobra-api/internal/middleware"
	"github.com/gestobra/gestobra-api/internal/services"
	"github.com/gestobra/gestobra-api/internal/sheets"
	"github.com/gestobra/gestobra-api/internal/storage"
	"github.com/gestobra/gestobra-api/internal/types"

	_ "github.com/gestobra/gestobra-api/docs/api" // Swagger docs
)

// @title Gestobra API
// @version 1.0.0
// @description Expense and document management service for real-estate ventures
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/gestobra/gestobra-api

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name gestobra_session

func main() {
	// Load .env when present; real deployments set the environment directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()

	// Storage adapter
	store, err := storage.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage backend: %v", err)
	}
	log.Printf("Storage backend: %s", store.Name())

	// Spreadsheet exporter, only when Google credentials are configured
	var exporter *sheets.Exporter
	if creds, err := cfg.GoogleCredentials(); err == nil {
		exporter, err = sheets.NewExporter(ctx, creds)
		if err != nil {
			log.Fatalf("Failed to initialize sheets exporter: %v", err)
		}
	} else {
		log.Printf("Spreadsheet export disabled: %v", err)
	}

	// Services
	authService := services.NewAuthService(db, cfg)
	attachments := services.NewAttachmentService(db, store)
	settingsService := services.NewSettingsService(db, cfg.EncryptionKey)
	exportService := services.NewExportService(db, exporter)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    services.MaxDocumentSize + 1<<20,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("gestobra")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check
	app.Get("/healthz", func(c *fiber.Ctx) error {
		result := services.HealthCheck(cfg, db)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	// Handlers
	authHandler := &handlers.AuthHandler{DB: db, Auth: authService, Cfg: cfg}
	ventureHandler := &handlers.VentureHandler{DB: db, Attachments: attachments, Export: exportService}
	expenseHandler := &handlers.ExpenseHandler{DB: db, Attachments: attachments}
	documentHandler := &handlers.DocumentHandler{DB: db, Attachments: attachments}
	userHandler := &handlers.UserHandler{DB: db}
	settingsHandler := &handlers.SettingsHandler{DB: db, Settings: settingsService}
	reportHandler := &handlers.ReportHandler{DB: db}
	notificationHandler := &handlers.NotificationHandler{DB: db}
	uiConfigHandler := &handlers.UIConfigHandler{}

	authUser := middleware.AuthUser(authService, cfg)
	authManager := middleware.AuthManager(authService, cfg)
	authAdmin := middleware.AuthAdmin(authService, cfg)
	authOptional := middleware.OptionalAuth(authService, cfg)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/register", authOptional, authHandler.Register)
	auth.Get("/me", authUser, authHandler.Me)

	// Venture routes
	ventures := api.Group("/ventures", authUser)
	ventures.Get("/", ventureHandler.List)
	ventures.Get("/:id", ventureHandler.Get)
	ventures.Post("/", authAdmin, ventureHandler.Create)
	ventures.Put("/:id", authAdmin, ventureHandler.Update)
	ventures.Delete("/:id", authAdmin, ventureHandler.Delete)
	ventures.Post("/:id/storage", authAdmin, ventureHandler.ProvisionStorage)
	ventures.Post("/:id/cover", authManager, ventureHandler.UploadCover)
	ventures.Put("/:id/spreadsheet", authManager, ventureHandler.LinkSpreadsheet)
	ventures.Post("/:id/export", authManager, ventureHandler.ExportExpenses)

	// Expense routes
	expenses := api.Group("/expenses", authUser)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/:id", expenseHandler.Get)
	expenses.Post("/", expenseHandler.Create)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)
	expenses.Post("/:id/attachments", expenseHandler.Attach)

	// Document routes
	documents := api.Group("/documents", authUser)
	documents.Get("/", documentHandler.List)
	documents.Get("/:id", documentHandler.Get)
	documents.Post("/", authManager, documentHandler.Create)
	documents.Delete("/:id", authManager, documentHandler.Delete)

	// User administration routes
	users := api.Group("/users", authUser)
	users.Get("/", authAdmin, userHandler.List)
	users.Put("/me/password", userHandler.ChangePassword)
	users.Put("/me/preferences", userHandler.UpdatePreferences)
	users.Get("/:id", userHandler.Get)
	users.Patch("/:id", userHandler.Update)
	users.Delete("/:id", authAdmin, userHandler.Deactivate)

	// Settings routes
	settings := api.Group("/settings", authAdmin)
	settings.Get("/", settingsHandler.Get)
	settings.Put("/", settingsHandler.Update)
	settings.Get("/integration-logs", settingsHandler.IntegrationLogs)

	// Report routes
	reports := api.Group("/reports", authUser)
	reports.Get("/categories", reportHandler.Categories)
	reports.Get("/monthly", reportHandler.Monthly)
	reports.Get("/summary", reportHandler.Summary)

	// Notification routes
	api.Get("/notifications/summary", authUser, notificationHandler.Summary)

	// UI configuration routes
	api.Get("/ui-config", authUser, uiConfigHandler.ForRole)
	api.Get("/ui-config/:module", authUser, uiConfigHandler.ForModule)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var customErr *types.CustomError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &customErr):
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
		if code == fiber.StatusRequestEntityTooLarge {
			errorType = types.ErrPayloadTooLarge
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
