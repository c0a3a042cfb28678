package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gestobra/gestobra-api/internal/config"
	"github.com/gestobra/gestobra-api/internal/handlers"
	"github.com/gestobra/gestobra-api/internal/middleware"
	"github.com/gestobra/gestobra-api/internal/models"
	"github.com/gestobra/gestobra-api/internal/services"
	"github.com/gestobra/gestobra-api/internal/types"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Venture{},
		&models.Expense{},
		&models.Document{},
		&models.AppSettings{},
		&models.IntegrationLog{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// newTestApp creates a Fiber app with the production error mapping and a stub
// auth middleware that injects the given user.
func newTestApp(user *models.User) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			errorType := "unknown"
			message := err.Error()
			var customErr *types.CustomError
			if errors.As(err, &customErr) {
				code = customErr.Code
				message = customErr.Message
				errorType = customErr.Type
			}
			return c.Status(code).JSON(fiber.Map{
				"status":  code,
				"message": message,
				"ok":      false,
				"type":    errorType,
			})
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalUser, user)
		return c.Next()
	})
	return app
}

func adminUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         "Admin",
		Email:        "admin@example.com",
		PasswordHash: "x",
		Role:         models.RoleAdmin,
		Active:       true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create admin: %v", err)
	}
	return user
}

// TestReportsCategoriesEndpoint tests GET /api/reports/categories
func TestReportsCategoriesEndpoint(t *testing.T) {
	db := setupTestDB(t)
	admin := adminUser(t, db)

	venture := &models.Venture{ID: uuid.NewString(), Name: "Aurora"}
	db.Create(venture)
	db.Create(&models.Expense{
		ID:              uuid.NewString(),
		Description:     "Cimento",
		Value:           decimal.NewFromInt(100),
		TransactionDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Status:          models.StatusPaid,
		Category:        "Material",
		VentureID:       venture.ID,
		CreatedBy:       admin.ID,
	})

	app := newTestApp(admin)
	handler := &handlers.ReportHandler{DB: db}
	app.Get("/api/reports/categories", handler.Categories)

	req := httptest.NewRequest("GET", "/api/reports/categories", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(result) != len(models.Categories) {
		t.Fatalf("Expected %d categories, got %d", len(models.Categories), len(result))
	}
	for i, category := range models.Categories {
		if result[i]["category"] != category {
			t.Errorf("Expected category %s at index %d, got %v", category, i, result[i]["category"])
		}
	}
}

// TestReportsDegradeToZeroedPayload tests that an internal failure returns a
// zeroed 200 payload instead of an error.
func TestReportsDegradeToZeroedPayload(t *testing.T) {
	db := setupTestDB(t)
	admin := adminUser(t, db)

	// Break the database to force internal errors on every query.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql db: %v", err)
	}
	sqlDB.Close()

	app := newTestApp(admin)
	handler := &handlers.ReportHandler{DB: db}
	app.Get("/api/reports/summary", handler.Summary)
	app.Get("/api/reports/categories", handler.Categories)

	for _, path := range []string{"/api/reports/summary", "/api/reports/categories"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatalf("Failed to execute request: %v", err)
		}
		if resp.StatusCode != 200 {
			t.Errorf("%s: expected degraded 200, got %d", path, resp.StatusCode)
		}
	}
}

// TestReportsBadDateIsNotDegraded tests that caller errors still surface.
func TestReportsBadDateIsNotDegraded(t *testing.T) {
	db := setupTestDB(t)
	admin := adminUser(t, db)

	app := newTestApp(admin)
	handler := &handlers.ReportHandler{DB: db}
	app.Get("/api/reports/summary", handler.Summary)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/reports/summary?from=32-13-2024", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}

// TestVentureDeleteConflictEnvelope tests the 409 error envelope shape.
func TestVentureDeleteConflictEnvelope(t *testing.T) {
	db := setupTestDB(t)
	admin := adminUser(t, db)

	venture := &models.Venture{ID: uuid.NewString(), Name: "Aurora"}
	db.Create(venture)
	db.Create(&models.Expense{
		ID:              uuid.NewString(),
		Description:     "Cimento",
		Value:           decimal.NewFromInt(100),
		TransactionDate: time.Now(),
		Status:          models.StatusPaid,
		Category:        "Material",
		VentureID:       venture.ID,
		CreatedBy:       admin.ID,
	})

	app := newTestApp(admin)
	handler := &handlers.VentureHandler{DB: db}
	app.Delete("/api/ventures/:id", handler.Delete)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/ventures/"+venture.ID, nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 409 {
		t.Fatalf("Expected status 409, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["type"] != types.ErrConflict {
		t.Errorf("Expected type %s, got %v", types.ErrConflict, body["type"])
	}
	if body["ok"] != false {
		t.Error("Expected ok=false in error envelope")
	}
}

// TestExpenseInvalidIDEndpoint tests that malformed ids return INVALID_ID, not 404.
func TestExpenseInvalidIDEndpoint(t *testing.T) {
	db := setupTestDB(t)
	admin := adminUser(t, db)

	app := newTestApp(admin)
	handler := &handlers.ExpenseHandler{DB: db}
	app.Get("/api/expenses/:id", handler.Get)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/expenses/not-a-uuid", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["type"] != types.ErrInvalidID {
		t.Errorf("Expected type %s, got %v", types.ErrInvalidID, body["type"])
	}
}

// TestExpenseListToDateIsInclusive tests that expenses time-stamped later on
// the 'to' day still match the range.
func TestExpenseListToDateIsInclusive(t *testing.T) {
	db := setupTestDB(t)
	admin := adminUser(t, db)

	venture := &models.Venture{ID: uuid.NewString(), Name: "Aurora"}
	db.Create(venture)
	db.Create(&models.Expense{
		ID:              uuid.NewString(),
		Description:     "Cimento",
		Value:           decimal.NewFromInt(100),
		TransactionDate: time.Date(2024, time.June, 1, 15, 30, 0, 0, time.UTC),
		Status:          models.StatusPaid,
		Category:        "Material",
		VentureID:       venture.ID,
		CreatedBy:       admin.ID,
	})

	app := newTestApp(admin)
	handler := &handlers.ExpenseHandler{DB: db}
	app.Get("/api/expenses", handler.List)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/expenses?from=2024-06-01&to=2024-06-01", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if total, _ := body["total"].(float64); total != 1 {
		t.Errorf("Expected the afternoon expense inside the range, got total %v", body["total"])
	}
}

// TestRegisterGatedAfterBootstrap tests that registration is open only for
// the very first account and admin-only afterwards.
func TestRegisterGatedAfterBootstrap(t *testing.T) {
	db := setupTestDB(t)
	auth := services.NewAuthService(db, &config.Config{
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
	})
	cfg := &config.Config{SessionCookieName: "gestobra_session"}

	body := func(email string) *strings.Reader {
		return strings.NewReader(`{"name":"Ana","email":"` + email + `","password":"correct-horse"}`)
	}

	// Bootstrap: no accounts yet, anonymous registration is allowed and the
	// account comes out admin.
	anon := newTestApp(nil)
	handler := &handlers.AuthHandler{DB: db, Auth: auth, Cfg: cfg}
	anon.Post("/api/auth/register", handler.Register)

	req := httptest.NewRequest("POST", "/api/auth/register", body("first@example.com"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := anon.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("Expected bootstrap registration to pass, got %d", resp.StatusCode)
	}

	// Afterwards an anonymous caller is rejected.
	req = httptest.NewRequest("POST", "/api/auth/register", body("second@example.com"))
	req.Header.Set("Content-Type", "application/json")
	resp, err = anon.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Errorf("Expected anonymous post-bootstrap registration to be forbidden, got %d", resp.StatusCode)
	}

	// An admin session may keep creating accounts.
	var admin models.User
	if err := db.First(&admin, "email = ?", "first@example.com").Error; err != nil {
		t.Fatalf("Failed to load bootstrap admin: %v", err)
	}
	asAdmin := newTestApp(&admin)
	asAdmin.Post("/api/auth/register", handler.Register)

	req = httptest.NewRequest("POST", "/api/auth/register", body("third@example.com"))
	req.Header.Set("Content-Type", "application/json")
	resp, err = asAdmin.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Errorf("Expected admin registration to pass, got %d", resp.StatusCode)
	}
}

// TestUIConfigEndpoint tests the capability table endpoint.
func TestUIConfigEndpoint(t *testing.T) {
	db := setupTestDB(t)
	admin := adminUser(t, db)

	app := newTestApp(admin)
	handler := &handlers.UIConfigHandler{}
	app.Get("/api/ui-config/:module", handler.ForModule)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/ui-config/expenses", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var cap map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&cap); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if cap["module"] != "expenses" {
		t.Errorf("Expected expenses module, got %v", cap["module"])
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/ui-config/ghost", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404 for unknown module, got %d", resp.StatusCode)
	}
}
