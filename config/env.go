package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

type StorageBackend string

const (
	StorageMemory   StorageBackend = "memory"
	StoragePostgres StorageBackend = "postgres"
)

// Config holds all environment configuration
type Config struct {
	Environment string
	Port        string

	// Storage
	StorageBackend   StorageBackend
	SeedSampleData   bool
	DatabaseHost     string
	DatabasePort     string
	PostgresUser     string
	PostgresPassword string
	DatabaseName     string

	// Authentication
	JWTSecret   string
	AuthEnabled bool

	// Change events
	KafkaBroker string
	KafkaTopic  string

	// HTTP
	CacheTTLSeconds int
	CorsOrigins     []string

	// Logging
	LogLevel  string
	LogFormat string
}

var (
	appConfig *Config
	onceEnv   sync.Once
)

// loadConfig loads and validates all environment variables
func loadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
		Port:        getEnvWithDefault("PORT", "8000"),

		StorageBackend:   StorageBackend(strings.ToLower(getEnvWithDefault("STORAGE_BACKEND", string(StorageMemory)))),
		SeedSampleData:   getEnvAsBool("SEED_SAMPLE_DATA", false),
		DatabaseHost:     getEnvWithDefault("DATABASE_HOST", "localhost"),
		DatabasePort:     getEnvWithDefault("DATABASE_PORT", "5432"),
		PostgresUser:     getEnvWithDefault("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnvWithDefault("POSTGRES_PASSWORD", "postgres"),
		DatabaseName:     getEnvWithDefault("DATABASE_NAME", "postgres"),

		JWTSecret:   getEnvWithDefault("JWT_SECRET", "dummyjwt"),
		AuthEnabled: getEnvAsBool("AUTH_ENABLED", false),

		// Kafka - optional, events are dropped without a broker
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		KafkaTopic:  getEnvWithDefault("KAFKA_TOPIC", "tag-category-changes"),

		CacheTTLSeconds: getEnvAsInt("CACHE_TTL_SECONDS", 60),
		CorsOrigins:     getEnvAsList("CORS_ORIGINS", []string{"http://localhost", "http://localhost:3000"}),

		LogLevel:  getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvWithDefault("LOG_FORMAT", "json"),
	}
	if IsProduction() && config.AuthEnabled && config.JWTSecret == "dummyjwt" {
		panic("JWT_SECRET must be set when AUTH_ENABLED is true in production")
	}
	if config.StorageBackend != StorageMemory && config.StorageBackend != StoragePostgres {
		panic(fmt.Sprintf("Unknown STORAGE_BACKEND %q", config.StorageBackend))
	}
	return config
}

func Env() *Config {
	onceEnv.Do(func() {
		appConfig = loadConfig()
	})
	return appConfig
}

// Helper functions
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	return strings.EqualFold(valueStr, "true") || valueStr == "1"
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	values := make([]string, 0)
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// IsProduction returns true if running in production
func IsProduction() bool {
	return getEnvWithDefault("ENVIRONMENT", "development") == "production"
}

// IsDevelopment returns true if running in development
func IsDevelopment() bool {
	return !IsProduction()
}
