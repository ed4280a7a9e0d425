// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Top selling strategies.
const (
	TopSellingSample    = "sample"
	TopSellingSoldCount = "sold_count"
)

type Config struct {
	Environment string
	LogLevel    string
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	AWS         AWSConfig
	Email       EmailConfig
	Frontend    FrontendConfig
	CORS        CORSConfig
	Catalog     CatalogConfig
	Admin       AdminConfig
}

type FrontendConfig struct {
	BaseURL string
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
	// PublicURL prefixes locally stored uploads when S3 is not configured.
	PublicURL string
	UploadDir string
}

type DatabaseConfig struct {
	Driver       string
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

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL int // in hours
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	CloudFrontURL   string
}

// Enabled reports whether uploads go to S3.
func (a AWSConfig) Enabled() bool {
	return a.AccessKeyID != "" && a.SecretAccessKey != "" && a.S3Bucket != ""
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type CatalogConfig struct {
	DefaultPageSize int
	MaxPageSize     int
	// TopSellingMode is TopSellingSample or TopSellingSoldCount.
	TopSellingMode string
	// ConsistentPagination runs count and page fetch against one snapshot.
	ConsistentPagination bool
}

// AdminConfig is the account created by the seed command.
type AdminConfig struct {
	Email    string
	Password string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
			PublicURL:    strings.TrimRight(getEnv("PUBLIC_URL", "http://localhost:8080"), "/"),
			UploadDir:    getEnv("UPLOAD_DIR", "./uploads"),
		},
		Database: DatabaseConfig{
			Driver:       getEnv("STORE_DRIVER", StoreDriverPostgres),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "fashion_factory"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
		},
		JWT: JWTConfig{
			SecretKey:      getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenTTL: getEnvAsInt("JWT_ACCESS_TTL", 24), // 24 hours
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "ap-southeast-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", ""),
			CloudFrontURL:   getEnv("AWS_CLOUDFRONT_URL", ""),
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnv("SMTP_PORT", "587"),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("FROM_EMAIL", "noreply@fashionfactory.vn"),
			FromName:     getEnv("FROM_NAME", "Fashion Factory"),
		},
		Frontend: FrontendConfig{
			BaseURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Catalog: CatalogConfig{
			DefaultPageSize:      getEnvAsInt("CATALOG_DEFAULT_PAGE_SIZE", 10),
			MaxPageSize:          getEnvAsInt("CATALOG_MAX_PAGE_SIZE", 100),
			TopSellingMode:       getEnv("CATALOG_TOP_SELLING_MODE", TopSellingSample),
			ConsistentPagination: getEnvAsBool("CATALOG_CONSISTENT_PAGINATION", false),
		},
		Admin: AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", "admin@fashionfactory.vn"),
			Password: getEnv("ADMIN_PASSWORD", "Admin123"),
		},
	}

	return config, config.Validate()
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.IsProduction() {
		if c.JWT.SecretKey == defaultJWTSecret {
			errs = append(errs, errors.New("JWT_SECRET must be changed in production"))
		}
		if c.Database.Driver == StoreDriverPostgres && c.Database.Password == "" {
			errs = append(errs, errors.New("DB_PASSWORD is required in production"))
		}
	}

	switch c.Database.Driver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unsupported store driver %q", c.Database.Driver))
	}

	switch c.Catalog.TopSellingMode {
	case TopSellingSample, TopSellingSoldCount:
	default:
		errs = append(errs, fmt.Errorf("unsupported top selling mode %q", c.Catalog.TopSellingMode))
	}

	if c.Catalog.DefaultPageSize <= 0 || c.Catalog.MaxPageSize < c.Catalog.DefaultPageSize {
		errs = append(errs, fmt.Errorf("invalid catalog page sizes: default %d, max %d", c.Catalog.DefaultPageSize, c.Catalog.MaxPageSize))
	}

	return errors.Join(errs...)
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
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
