package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppMode string
	LogMode string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	JWTSecret    string
	JWTExpiryMin int

	AdminEmail    string
	AdminFullName string
	AdminPassword string

	WebhookURL        string
	WebhookTimeoutSec int

	RedisEnabled     bool
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	AuthRateLimit    int
	ContactRateLimit int

	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string
	S3ArchivePrefix string
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort: getEnv("APP_PORT", "8080"),
		AppMode: getEnv("APP_MODE", "debug"),
		LogMode: getEnv("LOG_MODE", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "zelux"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:    getEnv("JWT_SECRET", "change-me"),
		JWTExpiryMin: getEnvAsInt("JWT_EXPIRY_MIN", 60),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminFullName: getEnv("ADMIN_FULL_NAME", "Administrator"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		WebhookURL:        getEnv("WEBHOOK_URL", ""),
		WebhookTimeoutSec: getEnvAsInt("WEBHOOK_TIMEOUT_SEC", 10),

		RedisEnabled:     getEnvAsBool("REDIS_ENABLED", false),
		RedisHost:        getEnv("REDIS_HOST", "localhost"),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		AuthRateLimit:    getEnvAsInt("AUTH_RATE_LIMIT", 10),
		ContactRateLimit: getEnvAsInt("CONTACT_RATE_LIMIT", 5),

		S3Region:        getEnv("S3_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3AccessKey:     getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:     getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		S3ArchivePrefix: getEnv("S3_ARCHIVE_PREFIX", "contact-messages"),
	}
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.AppMode == "release" && c.JWTSecret == "change-me" {
		return errors.New("JWT_SECRET must be set in release mode")
	}
	if c.JWTExpiryMin <= 0 {
		return errors.New("JWT_EXPIRY_MIN must be positive")
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return nil
}

// S3Enabled reports whether the contact archive is configured.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}
