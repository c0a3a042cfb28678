package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Storage backend names accepted in STORAGE_BACKEND.
const (
	StorageDrive  = "drive"
	StorageS3     = "s3"
	StorageMemory = "memory"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Database configuration
	DBType            string // mysql, postgres, sqlite, sqlserver, etc.
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Session configuration
	SessionSecret     string
	SessionCookieName string
	SessionTTL        time.Duration

	// Settings encryption passphrase (PBKDF2 input)
	EncryptionKey string

	// Storage adapter selection
	StorageBackend string

	// Google integration (Drive adapter, folder provisioning, Sheets export)
	GoogleCredentialsFile string
	GoogleCredentialsJSON string
	DriveRootFolderID     string

	// S3 adapter
	S3Bucket           string
	S3Region           string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		DBType:            getEnv("DB_TYPE", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),

		SessionSecret:     getEnv("SESSION_SECRET", ""),
		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "gestobra_session"),
		SessionTTL:        getEnvAsDuration("SESSION_TTL", 24*time.Hour),

		EncryptionKey: getEnv("ENCRYPTION_KEY", ""),

		StorageBackend: getEnv("STORAGE_BACKEND", StorageMemory),

		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),
		GoogleCredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),
		DriveRootFolderID:     getEnv("DRIVE_ROOT_FOLDER_ID", ""),

		S3Bucket:           getEnv("S3_BUCKET", ""),
		S3Region:           getEnv("S3_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
	}

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.DBType != "sqlite" && cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	if cfg.EncryptionKey == "" {
		return nil, fmt.Errorf("ENCRYPTION_KEY is required")
	}

	switch cfg.StorageBackend {
	case StorageDrive:
		if cfg.GoogleCredentialsFile == "" && cfg.GoogleCredentialsJSON == "" {
			return nil, fmt.Errorf("GOOGLE_CREDENTIALS_FILE or GOOGLE_CREDENTIALS_JSON is required for the drive backend")
		}
		if cfg.DriveRootFolderID == "" {
			return nil, fmt.Errorf("DRIVE_ROOT_FOLDER_ID is required for the drive backend")
		}
	case StorageS3:
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required for the s3 backend")
		}
	case StorageMemory:
		// no external requirements
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}

	return cfg, nil
}

// GoogleCredentials returns the service account credentials JSON, reading the
// configured file when no inline JSON is set.
func (c *Config) GoogleCredentials() ([]byte, error) {
	if c.GoogleCredentialsJSON != "" {
		return []byte(c.GoogleCredentialsJSON), nil
	}
	if c.GoogleCredentialsFile != "" {
		data, err := os.ReadFile(c.GoogleCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read google credentials file: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("no google credentials configured")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
