// internal/config/config.go
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultTokenSecret = "change-me-admin-token-secret"

// Origins the storefront is served from in production, plus local dev servers.
var defaultAllowedOrigins = []string{
	"https://auto-salvage.vercel.app",
	"https://autosalvage.autos",
	"https://auto-salvage.onrender.com",
	"https://autosalvage.onrender.com",
	"http://localhost:5173",
	"http://localhost:3000",
	"http://127.0.0.1:5173",
}

type Config struct {
	Environment string
	LogLevel    string
	StaticDir   string
	SeedData    bool
	Server      ServerConfig
	Database    DatabaseConfig
	Admin       AdminConfig
	CORS        CORSConfig
	Storage     StorageConfig
	AWS         AWSConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	URL          string
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type AdminConfig struct {
	Username     string
	Password     string
	TokenSecret  string
	TokenTTL     int // in hours
	RequireToken bool
}

type CORSConfig struct {
	AllowAllOrigins bool
	AllowedOrigins  []string
}

type StorageConfig struct {
	Driver      string // "local" or "s3"
	UploadDir   string
	UploadRoute string
	MaxFiles    int
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	CloudFrontURL   string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		StaticDir:   getEnv("STATIC_DIR", ""),
		SeedData:    getEnvAsBool("SEED_SAMPLE_DATA", false),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "3001"),
			Host:         getEnv("SERVER_HOST", ""),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			URL:          getEnv("DATABASE_URL", ""),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "autosalvage"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", ""),
			Password:     getEnv("ADMIN_PASSWORD", ""),
			TokenSecret:  getEnv("ADMIN_TOKEN_SECRET", defaultTokenSecret),
			TokenTTL:     getEnvAsInt("ADMIN_TOKEN_TTL", 12),
			RequireToken: getEnvAsBool("REQUIRE_ADMIN_TOKEN", false),
		},
		CORS: CORSConfig{
			AllowAllOrigins: getEnvAsBool("ALLOW_ALL_ORIGINS", false),
			AllowedOrigins:  getEnvAsList("ALLOWED_ORIGINS", defaultAllowedOrigins),
		},
		Storage: StorageConfig{
			Driver:      getEnv("STORAGE_DRIVER", "local"),
			UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),
			UploadRoute: getEnv("UPLOAD_ROUTE", "/uploads"),
			MaxFiles:    getEnvAsInt("MAX_UPLOAD_FILES", 10),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", ""),
			CloudFrontURL:   getEnv("AWS_CLOUDFRONT_URL", ""),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Storage.Driver != "local" && c.Storage.Driver != "s3" {
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Storage.Driver == "s3" && c.AWS.S3Bucket == "" {
		return fmt.Errorf("AWS_S3_BUCKET is required when STORAGE_DRIVER=s3")
	}

	if c.Storage.MaxFiles < 1 {
		return fmt.Errorf("MAX_UPLOAD_FILES must be positive")
	}

	if !strings.HasPrefix(c.Storage.UploadRoute, "/") {
		return fmt.Errorf("UPLOAD_ROUTE must start with /")
	}

	if c.Environment == "production" {
		if c.Admin.TokenSecret == defaultTokenSecret {
			return fmt.Errorf("admin token secret must be changed in production")
		}
		if c.Database.URL == "" && c.Database.Password == "" {
			return fmt.Errorf("database password is required in production")
		}
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Addr is the listen address. An empty host listens on every interface.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
