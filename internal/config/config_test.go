package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/eolymp/go-texmath/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "REDIS_URL", "CACHE_TTL_MINUTES", "TEXMATH_TRUST", "TEXMATH_MAX_EXPAND"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := config.Load()

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "", cfg.Cache.RedisURL)
	assert.Equal(t, 60*time.Minute, cfg.Cache.TTL)
	assert.False(t, cfg.TexMath.Trust)
	assert.Equal(t, 1000, cfg.TexMath.MaxExpand)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("GO_ENV", "Production")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("CACHE_TTL_MINUTES", "5")
	t.Setenv("TEXMATH_TRUST", "true")
	t.Setenv("TEXMATH_MAX_EXPAND", "-1")

	cfg := config.Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "redis://cache:6379/1", cfg.Cache.RedisURL)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.True(t, cfg.TexMath.Trust)
	assert.Equal(t, -1, cfg.TexMath.MaxExpand)
}
