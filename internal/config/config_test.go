package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDRESS", "POSTGRES_URL", "KAFKA_BROKERS", "SENSOR_TOPICS", "SUMMARY_TOPIC", "BATCH_CONCURRENCY", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	require.Equal(t, ":8080", cfg.HTTPAddress)
	require.Empty(t, cfg.PostgresURL)
	require.Empty(t, cfg.SummaryTopic)
	require.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	require.Equal(t, []string{"sensor_packages"}, cfg.SensorTopics)
	require.Equal(t, 4, cfg.BatchConcurrency)
	require.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " broker-1:9092, ,broker-2:9092 ")
	t.Setenv("SENSOR_TOPICS", "tracker_a,tracker_b")
	t.Setenv("SUMMARY_TOPIC", "workout_summaries")
	t.Setenv("BATCH_CONCURRENCY", "8")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg := Load()
	require.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	require.Equal(t, []string{"tracker_a", "tracker_b"}, cfg.SensorTopics)
	require.Equal(t, "workout_summaries", cfg.SummaryTopic)
	require.Equal(t, 8, cfg.BatchConcurrency)
	require.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("BATCH_CONCURRENCY", "-2")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg := Load()
	require.Equal(t, 4, cfg.BatchConcurrency)
	require.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
}
