package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestParseDurationWithDays(t *testing.T) {
	assert.Equal(t, 30*24*time.Hour, parseDurationWithDays("30d"))
	assert.Equal(t, 2*time.Second, parseDurationWithDays("2s"))
	assert.Equal(t, time.Duration(0), parseDurationWithDays("xd"))
	assert.Equal(t, time.Duration(0), parseDurationWithDays("soon"))
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, splitAndTrim(" a:9092, ,b:9092 "))
	assert.Nil(t, splitAndTrim("  "))
}

// unsetEnv убирает переменную на время теста
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")
	unsetEnv(t, "KAFKA_BROKERS", "STORAGE_DRIVER", "PREFS_DRIVER", "SESSION_TTL", "SESSION_CLEANUP_INTERVAL", "ADMIN_USERNAME", "CHECKOUT_MAX_RETRIES")

	cfg := Load(zap.NewNop())
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 30*24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, time.Hour, cfg.Session.CleanupInterval)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, 3, cfg.Checkout.MaxRetries)
	assert.False(t, cfg.Kafka.Enabled())
}

func TestLoad_MissingRequiredPanics(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("STORAGE_DRIVER", "postgres")
	unsetEnv(t, "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME")
	assert.Panics(t, func() { Load(zap.NewNop()) })
}
