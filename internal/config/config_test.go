package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, "order-api", cfg.ServiceName)
	assert.Equal(t, 30*time.Second, cfg.ReconcileInterval)
	assert.Equal(t, 1024, cfg.NotifyBuffer)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("KAFKA_BROKERS", "kafka1:9092, kafka2:9092 ,")
	t.Setenv("RECONCILE_INTERVAL_SECONDS", "5")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, []string{"kafka1:9092", "kafka2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 5*time.Second, cfg.ReconcileInterval)
}

func TestLoadBadIntFallsBack(t *testing.T) {
	t.Setenv("RECONCILE_INTERVAL_SECONDS", "not-a-number")
	cfg := Load()
	assert.Equal(t, 30*time.Second, cfg.ReconcileInterval)
}
