// Command migrate runs the schema migrations and optionally seeds the first
// admin account from ADMIN_EMAIL / ADMIN_PASSWORD.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/gestobra/gestobra-api/internal/config"
	"github.com/gestobra/gestobra-api/internal/database"
	"github.com/gestobra/gestobra-api/internal/models"
	"github.com/gestobra/gestobra-api/internal/services"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations applied")

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Fatalf("Failed to count users: %v", err)
	}
	if count > 0 {
		log.Println("Users already exist, skipping admin seed")
		return
	}

	auth := services.NewAuthService(db, cfg)
	admin, err := auth.Register(services.RegisterInput{
		Name:     "Administrator",
		Email:    email,
		Password: password,
	})
	if err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}
	log.Printf("Seeded admin account %s (%s)", admin.Email, admin.ID)
}
