package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()
	assert.Equal(t, 10, cfg.LowStockThreshold)
	assert.Equal(t, 24.0, cfg.TokenTTL.Hours())
	assert.Equal(t, "notifications_queue", cfg.NotifyQueue)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("LOW_STOCK_THRESHOLD", "25")
	t.Setenv("DB_NAME", "bakery_test")

	cfg := LoadConfig()
	assert.Equal(t, 25, cfg.LowStockThreshold)
	assert.Equal(t, "bakery_test", cfg.DBName)
}

func TestLoadConfigBadIntFallsBack(t *testing.T) {
	t.Setenv("LOW_STOCK_THRESHOLD", "lots")
	cfg := LoadConfig()
	assert.Equal(t, 10, cfg.LowStockThreshold)
}

func TestSecretFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret")
	require.NoError(t, os.WriteFile(path, []byte("from-file\n"), 0o600))
	t.Setenv("JWT_SECRET_FILE", path)

	cfg := LoadConfig()
	assert.Equal(t, "from-file", cfg.JWTSecret)
}
