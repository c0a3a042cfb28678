package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gestobra/gestobra-api/internal/models"
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

func seedUser(t *testing.T, db *gorm.DB, role string, ventures ...string) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         "Test " + role,
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Active:       true,
	}
	user.AssignedVentures = append(user.AssignedVentures, ventures...)
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return user
}

func seedVenture(t *testing.T, db *gorm.DB, name string) *models.Venture {
	t.Helper()
	venture := &models.Venture{
		ID:   uuid.NewString(),
		Name: name,
	}
	if err := db.Create(venture).Error; err != nil {
		t.Fatalf("Failed to seed venture: %v", err)
	}
	return venture
}

func seedExpense(t *testing.T, db *gorm.DB, ventureID, category, status string, value int64, date time.Time) *models.Expense {
	t.Helper()
	expense := &models.Expense{
		ID:              uuid.NewString(),
		Description:     "seed expense",
		Value:           decimal.NewFromInt(value),
		TransactionDate: date,
		Status:          status,
		Category:        category,
		VentureID:       ventureID,
		CreatedBy:       uuid.NewString(),
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("Failed to seed expense: %v", err)
	}
	return expense
}
