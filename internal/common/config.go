package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Blob     BlobConfig
	Extract  ExtractConfig
}

// DatabaseConfig holds record-store configuration. DSNs starting with
// "postgres://" open a pgx pool; anything else is treated as a SQLite path.
type DatabaseConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// BlobConfig holds object-storage configuration. Endpoint may point at any
// S3-compatible store.
type BlobConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string // canonical bucket for self-healed uploads
	SignedURLTTL    time.Duration
}

// ExtractConfig holds structured-extraction endpoint configuration.
type ExtractConfig struct {
	Endpoint    string
	Timeout     time.Duration
	MaxAttempts int
	BackoffBase time.Duration
	BackoffCap  time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", ""),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Blob: BlobConfig{
			Endpoint:        getEnv("BLOB_ENDPOINT", ""),
			Region:          getEnv("BLOB_REGION", "auto"),
			AccessKeyID:     getEnv("BLOB_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("BLOB_SECRET_ACCESS_KEY", ""),
			Bucket:          getEnv("BLOB_BUCKET", "profile-documents"),
			SignedURLTTL:    getEnvAsDuration("BLOB_SIGNED_URL_TTL", 5*time.Minute),
		},
		Extract: ExtractConfig{
			Endpoint:    getEnv("EXTRACT_URL", ""),
			Timeout:     getEnvAsDuration("EXTRACT_TIMEOUT", 45*time.Second),
			MaxAttempts: getEnvAsInt("EXTRACT_MAX_ATTEMPTS", 3),
			BackoffBase: getEnvAsDuration("EXTRACT_BACKOFF_BASE", time.Second),
			BackoffCap:  getEnvAsDuration("EXTRACT_BACKOFF_CAP", 5*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewPipelineError(KindPersistence, "DB_URL is required", nil)
	}
	if c.Extract.Endpoint == "" {
		return NewPipelineError(KindExtractionFatal, "EXTRACT_URL is required", nil)
	}
	if c.Blob.Bucket == "" {
		return NewPipelineError(KindMalformedReference, "BLOB_BUCKET is required", nil)
	}
	return nil
}
