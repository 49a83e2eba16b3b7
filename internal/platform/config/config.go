package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	DatabaseURL      string
	JWTSecret        string
	IdentityBaseURL  string
	IdentityAPIKey   string
	StorageDir       string
	StorageBaseURL   string
	StorageBucket    string
	Environment      string
	RunMigrations    bool
	MaxBodyBytes     int64
	MaxUploadBytes   int64
	MaxDocumentBytes int64
}

func Load() Config {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	return Config{
		Addr:             getEnv("APP_ADDR", ":8080"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		IdentityBaseURL:  getEnv("IDENTITY_BASE_URL", "https://identitytoolkit.googleapis.com/v1"),
		IdentityAPIKey:   getEnv("IDENTITY_API_KEY", ""),
		StorageDir:       getEnv("STORAGE_DIR", "storage/uploads"),
		StorageBaseURL:   getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
		StorageBucket:    getEnv("STORAGE_BUCKET", "skills-audit-portal"),
		Environment:      getEnv("APP_ENV", "development"),
		RunMigrations:    getEnvBool("RUN_MIGRATIONS", true),
		MaxBodyBytes:     int64(getEnvInt("MAX_BODY_BYTES", 4194304)),
		MaxUploadBytes:   int64(getEnvInt("MAX_UPLOAD_BYTES", 2097152)),
		MaxDocumentBytes: int64(getEnvInt("MAX_DOCUMENT_BYTES", 10485760)),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.IdentityAPIKey) == "" {
		return fmt.Errorf("IDENTITY_API_KEY is required")
	}
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.MaxDocumentBytes <= 0 {
		return fmt.Errorf("MAX_DOCUMENT_BYTES must be positive")
	}
	return nil
}
