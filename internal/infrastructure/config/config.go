// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string `validate:"omitempty,oneof=debug info warn error"`

	// Server
	Port         string `validate:"required,numeric"`
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Scanning
	PassesDir     string `validate:"required"`
	PollInterval  time.Duration
	DecodeWorkers int `validate:"min=1"`

	// Leg store
	StoreBackend string `validate:"oneof=json mongo"`
	PassDataFile string `validate:"required_if=StoreBackend json"`

	// MongoDB
	MongoURI      string `validate:"required_if=StoreBackend mongo"`
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Postgres reference data, optional
	PostgresURI string

	// Locking
	LockBackend   string `validate:"oneof=local redis"`
	RedisAddr     string `validate:"required_if=LockBackend redis"`
	RedisPassword string
	RedisDB       int
	LockTTL       time.Duration

	// Events
	EventBackend string `validate:"oneof=none nats kafka"`
	NatsURL      string `validate:"required_if=EventBackend nats"`
	NatsToken    string
	NatsSubject  string
	KafkaBrokers []string `validate:"required_if=EventBackend kafka"`
	KafkaTopic   string

	MetricsNamespace string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		LogLevel:     strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		PassesDir:     getEnv("PASSES_DIR", "passes"),
		PollInterval:  getEnvAsDuration("POLL_INTERVAL", time.Minute),
		DecodeWorkers: getEnvAsInt("DECODE_WORKERS", 4),

		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", "json")),
		PassDataFile: getEnv("PASS_DATA_FILE", "boarding_passes.json"),

		MongoURI:      getEnv("MONGODB_DSN", ""),
		MongoDB:       getEnv("MONGO_DB", "boardingpass"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		LockBackend:   strings.ToLower(getEnv("LOCK_BACKEND", "local")),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		LockTTL:       getEnvAsDuration("LOCK_TTL", 30*time.Second),

		EventBackend: strings.ToLower(getEnv("EVENT_BACKEND", "none")),
		NatsURL:      getEnv("NATS_URL", ""),
		NatsToken:    getEnv("NATS_TOKEN", ""),
		NatsSubject:  getEnv("NATS_SUBJECT", "boardingpass.reconciled"),
		KafkaBrokers: getEnvAsList("KAFKA_BROKERS"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "boardingpass.reconciled"),

		MetricsNamespace: getEnv("METRICS_NAMESPACE", "boardingpass"),
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("90s", "5m") or a bare number of seconds
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
