package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	API        APIConfig
	Session    SessionConfig
	Redis      RedisConfig
	Compliance ComplianceConfig
	Reports    ReportsConfig
	OTEL       OTELConfig
	Env        string
}

// APIConfig holds CareAxis backend API configuration
type APIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// SessionConfig holds session store configuration
type SessionConfig struct {
	// Backend selects the session store adapter: "redis" or "memory".
	Backend string
	// KeyPrefix namespaces the fixed session keys in the store.
	KeyPrefix string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ComplianceConfig holds compliance provider configuration
type ComplianceConfig struct {
	// Provider selects the analysis backend: "api" or "fixture".
	Provider string
	// SevereThreshold and ModerateThreshold map the backend's
	// deviation percentage onto a deviation level.
	SevereThreshold   float64
	ModerateThreshold float64
	MinorThreshold    float64
}

// ReportsConfig holds report view configuration
type ReportsConfig struct {
	PatientPollInterval time.Duration
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		API: APIConfig{
			BaseURL:        getEnv("CAREAXIS_API_URL", "http://127.0.0.1:8000"),
			RequestTimeout: getEnvAsDuration("CAREAXIS_API_TIMEOUT", 30*time.Second),
		},
		Session: SessionConfig{
			Backend:   getEnv("SESSION_BACKEND", "memory"),
			KeyPrefix: getEnv("SESSION_KEY_PREFIX", "careaxis"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Compliance: ComplianceConfig{
			Provider:          getEnv("COMPLIANCE_PROVIDER", "api"),
			SevereThreshold:   getEnvAsFloat("COMPLIANCE_SEVERE_THRESHOLD", 50),
			ModerateThreshold: getEnvAsFloat("COMPLIANCE_MODERATE_THRESHOLD", 25),
			MinorThreshold:    getEnvAsFloat("COMPLIANCE_MINOR_THRESHOLD", 10),
		},
		Reports: ReportsConfig{
			PatientPollInterval: getEnvAsDuration("PATIENT_POLL_INTERVAL", 30*time.Second),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "careaxis-copilot"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Env: getEnv("APP_ENV", "development"),
	}, nil
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
