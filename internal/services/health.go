package services

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/gestobra/gestobra-api/internal/config"
	"github.com/gestobra/gestobra-api/internal/utils"
)

// Storage API endpoints probed by the health check, per backend.
var storageEndpoints = map[string]string{
	config.StorageDrive: "https://www.googleapis.com",
	config.StorageS3:    "https://s3.amazonaws.com",
}

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Storage      string            `json:"storage"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
	} else {
		if err := sqlDB.Ping(); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
			log.Printf("Health check failed - database ping: %v", err)
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	// Check storage backend reachability
	endpoint, probed := storageEndpoints[cfg.StorageBackend]
	if !probed {
		result.Storage = "ok"
		result.Details["storage_backend"] = cfg.StorageBackend
	} else if err := utils.PingStorage(endpoint); err != nil {
		result.Status = "unhealthy"
		result.Storage = "unreachable"
		result.Details["storage_error"] = err.Error()
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("Storage ping failed: %v", err)
		} else {
			result.ErrorMessage += fmt.Sprintf("; Storage ping failed: %v", err)
		}
		log.Printf("Health check failed - storage ping: %v", err)
	} else {
		result.Storage = "ok"
		result.Details["storage_backend"] = cfg.StorageBackend
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}
