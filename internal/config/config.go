package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Server
	ApiPort          string
	CorsAllowOrigins string // comma-separated, "*" for all

	// Listing store
	DataFile string

	// Rate Limiting Defaults
	RateLimitBucketSize int
	RateLimitRefillRate int // tokens per second

	// Asset uploads
	UploadBackend string // "local" or "s3"
	UploadDir     string
	UploadBaseURL string

	// AWS S3 (only used when UploadBackend is "s3")
	AwsAccessKeyID     string
	AwsSecretAccessKey string
	AwsRegion          string
	AwsS3Bucket        string
}

// Load configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file, ignoring errors if it doesn't exist
	godotenv.Load()

	cfg := &Config{}

	var err error

	// Helper function to get env var or default
	getEnv := func(key, defaultValue string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		return defaultValue
	}

	cfg.ApiPort = getEnv("API_PORT", "4000")
	cfg.CorsAllowOrigins = getEnv("CORS_ALLOW_ORIGINS", "*")
	cfg.DataFile = getEnv("DATA_FILE", "db.json")
	cfg.UploadBackend = getEnv("UPLOAD_BACKEND", "local")
	cfg.UploadDir = getEnv("UPLOAD_DIR", "uploads")
	cfg.UploadBaseURL = getEnv("UPLOAD_BASE_URL", "/uploads")
	cfg.AwsAccessKeyID = getEnv("AWS_ACCESS_KEY_ID", "")
	cfg.AwsSecretAccessKey = getEnv("AWS_SECRET_ACCESS_KEY", "")
	cfg.AwsRegion = getEnv("AWS_REGION", "")
	cfg.AwsS3Bucket = getEnv("AWS_S3_BUCKET", "")

	cfg.RateLimitBucketSize, err = strconv.Atoi(getEnv("RATE_LIMIT_BUCKET_SIZE", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BUCKET_SIZE: %w", err)
	}

	cfg.RateLimitRefillRate, err = strconv.Atoi(getEnv("RATE_LIMIT_REFILL_RATE", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REFILL_RATE: %w", err)
	}

	switch cfg.UploadBackend {
	case "local", "s3":
	default:
		return nil, fmt.Errorf("invalid UPLOAD_BACKEND: %q (expected \"local\" or \"s3\")", cfg.UploadBackend)
	}
	if cfg.UploadBackend == "s3" && cfg.AwsS3Bucket == "" {
		return nil, fmt.Errorf("missing required environment variable: AWS_S3_BUCKET")
	}

	return cfg, nil
}
