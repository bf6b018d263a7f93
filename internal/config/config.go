package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// Public base URL used when building completion links
	PublicBaseURL string `json:"public_base_url"`

	// MongoDB configuration
	MongoURI      string `json:"mongo_uri"`
	MongoDatabase string `json:"mongo_database"`

	// Redis configuration
	RedisURI      string        `json:"redis_uri"`
	RedisPassword string        `json:"redis_password"`
	RedisDB       int           `json:"redis_db"`
	RedisTTL      time.Duration `json:"redis_ttl"`

	// Collection names
	SinistroCollection string `json:"mongo_sinistro_collection"`
	StatusCollection   string `json:"mongo_status_collection"`
	UserCollection     string `json:"mongo_user_collection"`
	AuditCollection    string `json:"mongo_audit_collection"`

	// Status registry configuration
	StatusCacheTTL time.Duration `json:"status_cache_ttl"`

	// Completion link configuration
	CompletionTokenTTL time.Duration `json:"completion_token_ttl"`

	// Auth configuration
	JWTSecret     string        `json:"-"`
	SessionTTL    time.Duration `json:"session_ttl"`
	AdminGroup    string        `json:"admin_group"`
	ManagerGroup  string        `json:"manager_group"`

	// OCR vendor configuration
	OCREndpoint string        `json:"ocr_endpoint"`
	OCRAPIKey   string        `json:"-"`
	OCRTimeout  time.Duration `json:"ocr_timeout"`

	// Photo storage configuration
	PhotoBucket     string        `json:"photo_bucket"`
	PhotoPresignTTL time.Duration `json:"photo_presign_ttl"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`

	// Audit worker configuration
	AuditWorkers    int `json:"audit_workers"`
	AuditBufferSize int `json:"audit_buffer_size"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	redisTTL, err := time.ParseDuration(getEnvOrDefault("REDIS_TTL", "5m"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_TTL: %w", err)
	}

	statusCacheTTL, err := time.ParseDuration(getEnvOrDefault("STATUS_CACHE_TTL", "5m"))
	if err != nil {
		return fmt.Errorf("invalid STATUS_CACHE_TTL: %w", err)
	}

	completionTokenTTL, err := time.ParseDuration(getEnvOrDefault("COMPLETION_TOKEN_TTL", "720h"))
	if err != nil {
		return fmt.Errorf("invalid COMPLETION_TOKEN_TTL: %w", err)
	}

	sessionTTL, err := time.ParseDuration(getEnvOrDefault("SESSION_TTL", "24h"))
	if err != nil {
		return fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	ocrTimeout, err := time.ParseDuration(getEnvOrDefault("OCR_TIMEOUT", "30s"))
	if err != nil {
		return fmt.Errorf("invalid OCR_TIMEOUT: %w", err)
	}

	photoPresignTTL, err := time.ParseDuration(getEnvOrDefault("PHOTO_PRESIGN_TTL", "15m"))
	if err != nil {
		return fmt.Errorf("invalid PHOTO_PRESIGN_TTL: %w", err)
	}

	auditWorkers, err := strconv.Atoi(getEnvOrDefault("AUDIT_WORKERS", "2"))
	if err != nil {
		return fmt.Errorf("invalid AUDIT_WORKERS: %w", err)
	}

	auditBufferSize, err := strconv.Atoi(getEnvOrDefault("AUDIT_BUFFER_SIZE", "1000"))
	if err != nil {
		return fmt.Errorf("invalid AUDIT_BUFFER_SIZE: %w", err)
	}

	// JWT secret has no sane default
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		PublicBaseURL: getEnvOrDefault("PUBLIC_BASE_URL", "http://localhost:3000"),

		// MongoDB configuration
		MongoURI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "sinistros"),

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		RedisTTL:      redisTTL,

		// Collection names
		SinistroCollection: getEnvOrDefault("MONGODB_SINISTRO_COLLECTION", "sinistros"),
		StatusCollection:   getEnvOrDefault("MONGODB_STATUS_COLLECTION", "status_sinistro"),
		UserCollection:     getEnvOrDefault("MONGODB_USER_COLLECTION", "usuarios"),
		AuditCollection:    getEnvOrDefault("MONGODB_AUDIT_COLLECTION", "audit_logs"),

		StatusCacheTTL:     statusCacheTTL,
		CompletionTokenTTL: completionTokenTTL,

		// Auth configuration
		JWTSecret:    jwtSecret,
		SessionTTL:   sessionTTL,
		AdminGroup:   getEnvOrDefault("ADMIN_GROUP", "admin"),
		ManagerGroup: getEnvOrDefault("MANAGER_GROUP", "manager"),

		// OCR vendor configuration
		OCREndpoint: getEnvOrDefault("OCR_ENDPOINT", ""),
		OCRAPIKey:   getEnvOrDefault("OCR_API_KEY", ""),
		OCRTimeout:  ocrTimeout,

		// Photo storage configuration
		PhotoBucket:     getEnvOrDefault("PHOTO_BUCKET", ""),
		PhotoPresignTTL: photoPresignTTL,

		// Tracing configuration
		TracingEnabled:  getEnvOrDefault("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),

		// Audit worker configuration
		AuditWorkers:    auditWorkers,
		AuditBufferSize: auditBufferSize,
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
