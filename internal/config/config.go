// Package config centralises configuration parsing for the tracker binaries.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures runtime configuration values for the tracker.
type Config struct {
	HTTPAddress      string
	MetricsAddress   string
	PostgresURL      string // Empty disables summary persistence.
	KafkaBrokers     []string
	SensorTopics     []string
	SummaryTopic     string // Empty disables summary publishing.
	ConsumerGroupID  string
	JWTSecret        string
	JWTIssuer        string
	BatchConcurrency int
	PackagesFile     string
	ShutdownTimeout  time.Duration
}

// Load reads environment variables into Config, applying defaults for local dev.
func Load() Config {
	return Config{
		HTTPAddress:      getEnv("HTTP_ADDRESS", ":8080"),
		MetricsAddress:   getEnv("METRICS_ADDRESS", ":9196"),
		PostgresURL:      getEnv("POSTGRES_URL", ""),
		KafkaBrokers:     splitAndTrim(getEnv("KAFKA_BROKERS", "kafka:9092")),
		SensorTopics:     splitAndTrim(getEnv("SENSOR_TOPICS", "sensor_packages")),
		SummaryTopic:     getEnv("SUMMARY_TOPIC", ""),
		ConsumerGroupID:  getEnv("CONSUMER_GROUP_ID", "ftracker-consumer"),
		JWTSecret:        getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTIssuer:        getEnv("JWT_ISSUER", "i5e.identity"),
		BatchConcurrency: getIntEnv("BATCH_CONCURRENCY", 4),
		PackagesFile:     getEnv("PACKAGES_FILE", ""),
		ShutdownTimeout:  getDurationEnv("SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
