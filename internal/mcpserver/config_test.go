package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearSchemawalkEnv clears all SCHEMAWALK_* env vars to isolate tests from the ambient environment.
func clearSchemawalkEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SCHEMAWALK_CACHE_ENABLED", "SCHEMAWALK_CACHE_MAX_SIZE",
		"SCHEMAWALK_CACHE_FILE_TTL", "SCHEMAWALK_CACHE_URL_TTL",
		"SCHEMAWALK_CACHE_CONTENT_TTL", "SCHEMAWALK_CACHE_SWEEP_INTERVAL",
		"SCHEMAWALK_WALK_LIMIT", "SCHEMAWALK_WALK_DETAIL_LIMIT",
		"SCHEMAWALK_MAX_LIMIT", "SCHEMAWALK_MAX_DEPTH",
		"SCHEMAWALK_MAX_INLINE_SIZE", "SCHEMAWALK_ALLOW_PRIVATE_IPS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearSchemawalkEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 5*time.Minute, c.CacheURLTTL)
	assert.Equal(t, 15*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 100, c.WalkLimit)
	assert.Equal(t, 25, c.WalkDetailLimit)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.Zero(t, c.MaxDepth)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.False(t, c.AllowPrivateIPs)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearSchemawalkEnv(t)
	t.Setenv("SCHEMAWALK_CACHE_ENABLED", "false")
	t.Setenv("SCHEMAWALK_CACHE_MAX_SIZE", "50")
	t.Setenv("SCHEMAWALK_CACHE_FILE_TTL", "30m")
	t.Setenv("SCHEMAWALK_CACHE_URL_TTL", "2m")
	t.Setenv("SCHEMAWALK_CACHE_CONTENT_TTL", "10m")
	t.Setenv("SCHEMAWALK_CACHE_SWEEP_INTERVAL", "30s")
	t.Setenv("SCHEMAWALK_WALK_LIMIT", "200")
	t.Setenv("SCHEMAWALK_WALK_DETAIL_LIMIT", "50")
	t.Setenv("SCHEMAWALK_MAX_LIMIT", "5000")
	t.Setenv("SCHEMAWALK_MAX_DEPTH", "64")
	t.Setenv("SCHEMAWALK_MAX_INLINE_SIZE", "1024")
	t.Setenv("SCHEMAWALK_ALLOW_PRIVATE_IPS", "true")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 2*time.Minute, c.CacheURLTTL)
	assert.Equal(t, 10*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 30*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 200, c.WalkLimit)
	assert.Equal(t, 50, c.WalkDetailLimit)
	assert.Equal(t, 5000, c.MaxLimit)
	assert.Equal(t, 64, c.MaxDepth)
	assert.Equal(t, int64(1024), c.MaxInlineSize)
	assert.True(t, c.AllowPrivateIPs)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	clearSchemawalkEnv(t)
	t.Setenv("SCHEMAWALK_CACHE_ENABLED", "maybe")
	t.Setenv("SCHEMAWALK_WALK_LIMIT", "-5")
	t.Setenv("SCHEMAWALK_MAX_DEPTH", "-1")
	t.Setenv("SCHEMAWALK_CACHE_FILE_TTL", "forever")
	t.Setenv("SCHEMAWALK_MAX_INLINE_SIZE", "big")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 100, c.WalkLimit)
	assert.Zero(t, c.MaxDepth)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
}

func TestEnvNonNegativeInt_AcceptsZero(t *testing.T) {
	t.Setenv("SCHEMAWALK_TEST_DEPTH", "0")
	assert.Zero(t, envNonNegativeInt("SCHEMAWALK_TEST_DEPTH", 7))

	t.Setenv("SCHEMAWALK_TEST_DEPTH", "0")
	assert.Equal(t, 7, envInt("SCHEMAWALK_TEST_DEPTH", 7), "envInt rejects zero")
}
