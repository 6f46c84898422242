package config

import (
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Storage backends for uploaded bytes
const (
	StorageMemory = "memory"
	StorageFS     = "fs"
	StorageS3     = "s3"
	StorageGCS    = "gcs"
	StorageBadger = "badger"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string // Empty = in-memory metadata (dev only)
	TablePrefix string
	CORSOrigins string
	// Auth: HS256 shared secret and/or JWKS endpoint
	JWTSecret string
	JWKSURL   string
	// Content store
	StorageBackend string
	StorageDir     string // fs and badger backends
	S3Bucket       string
	S3Prefix       string
	S3Region       string
	S3Endpoint     string
	S3AccessKeyID  string
	S3SecretKey    string
	GCSBucket      string
	GCSPrefix      string
	GCSCredentials string // service account JSON or a path to it; empty = ADC
	// Uploads and text extraction
	MaxUploadBytes  int64
	ExtractOnUpload bool
	// Logging
	LogDir      string // Empty = stdout only
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     env,
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		TablePrefix:     getTablePrefix(env),
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWKSURL:         getEnv("JWKS_URL", ""),
		StorageBackend:  getEnv("STORAGE_BACKEND", StorageFS),
		StorageDir:      getEnv("STORAGE_DIR", "./uploads"),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", "datarooms/"),
		S3Region:        getEnv("S3_REGION", ""),
		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:   getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:     getEnv("S3_SECRET_ACCESS_KEY", ""),
		GCSBucket:       getEnv("GCS_BUCKET", ""),
		GCSPrefix:       getEnv("GCS_PREFIX", "datarooms/"),
		GCSCredentials:  getEnv("GCS_CREDENTIALS", ""),
		MaxUploadBytes:  getEnvInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
		ExtractOnUpload: getEnv("EXTRACT_ON_UPLOAD", "true") == "true",
		LogDir:          getEnv("LOG_DIR", ""),
		LogMaxFiles:     int(getEnvInt64("LOG_MAX_FILES", 10)),
	}
}

// Validate checks that the selected backends have what they need
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required),
		validation.Field(&c.Environment, validation.In("dev", "test", "prod")),
		validation.Field(&c.StorageBackend,
			validation.Required,
			validation.In(StorageMemory, StorageFS, StorageS3, StorageGCS, StorageBadger),
		),
		validation.Field(&c.StorageDir, validation.When(c.StorageBackend == StorageFS, validation.Required)),
		validation.Field(&c.S3Bucket, validation.When(c.StorageBackend == StorageS3, validation.Required)),
		validation.Field(&c.S3SecretKey, validation.When(c.S3AccessKeyID != "", validation.Required)),
		validation.Field(&c.GCSBucket, validation.When(c.StorageBackend == StorageGCS, validation.Required)),
		validation.Field(&c.MaxUploadBytes, validation.Required, validation.Min(int64(1))),
		validation.Field(&c.JWTSecret, validation.When(c.JWKSURL == "", validation.Required.Error("JWT_SECRET or JWKS_URL is required"))),
		validation.Field(&c.DatabaseURL, validation.When(c.Environment == "prod", validation.Required)),
	)
}

// AllowedOrigins splits CORSOrigins on commas
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return n
}
