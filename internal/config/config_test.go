package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func baseEnv() map[string]string {
	return map[string]string{
		"USER_JWT_SECRET":  "user-secret",
		"ADMIN_JWT_SECRET": "admin-secret",
		"ADMIN_PASSWORD":   "hunter2",
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(lookupFrom(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.UserTokenTTL)
	assert.Equal(t, time.Hour, cfg.AdminTokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
}

func TestParse_MissingSecret(t *testing.T) {
	env := baseEnv()
	delete(env, "ADMIN_JWT_SECRET")
	_, err := Parse(lookupFrom(env))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_JWT_SECRET")
}

func TestParse_SecretsMustDiffer(t *testing.T) {
	env := baseEnv()
	env["ADMIN_JWT_SECRET"] = env["USER_JWT_SECRET"]
	_, err := Parse(lookupFrom(env))
	require.Error(t, err)
}

func TestParse_AdminPasswordRequired(t *testing.T) {
	env := baseEnv()
	delete(env, "ADMIN_PASSWORD")
	_, err := Parse(lookupFrom(env))
	require.Error(t, err)

	env["ADMIN_PASSWORD_HASH"] = "$2a$10$abcdefghijklmnopqrstuuJ1XlHk8l5mWq0e7k3ZzXzHn8JH7rK9i"
	_, err = Parse(lookupFrom(env))
	require.NoError(t, err)
}

func TestParse_MySQLRequiresDB(t *testing.T) {
	env := baseEnv()
	env["STORE_DRIVER"] = "mysql"
	_, err := Parse(lookupFrom(env))
	require.Error(t, err)

	env["DB_USER"], env["DB_HOST"], env["DB_PORT"], env["DB_NAME"] = "u", "h", "3306", "gallery"
	cfg, err := Parse(lookupFrom(env))
	require.NoError(t, err)
	assert.Equal(t, "gallery", cfg.DBName)
}

func TestParse_UnknownDriver(t *testing.T) {
	env := baseEnv()
	env["STORE_DRIVER"] = "mongo"
	_, err := Parse(lookupFrom(env))
	require.Error(t, err)
}

func TestParse_BadDurationKeepsDefault(t *testing.T) {
	env := baseEnv()
	env["USER_TOKEN_TTL"] = "soon"
	env["ADMIN_TOKEN_TTL"] = "30m"
	cfg, err := Parse(lookupFrom(env))
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.UserTokenTTL)
	assert.Equal(t, 30*time.Minute, cfg.AdminTokenTTL)
}

func TestLoadRateLimitConfig_Normalizes(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "1s")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	c := LoadRateLimitConfig()
	assert.Equal(t, 1, c.Capacity)
	assert.Equal(t, 5*time.Second, c.TTL)
	assert.InDelta(t, 1.0, c.RefillPerSecond(), 1e-9)
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_ENABLED", "off")
	c := LoadCacheConfig()
	assert.False(t, c.Enabled)
	assert.True(t, c.Methods["GET"])
	assert.True(t, c.Methods["HEAD"])
	assert.Equal(t, 30*time.Second, c.TTL)
}

func TestLoadUploadConfig(t *testing.T) {
	t.Setenv("UPLOAD_MAX_BYTES", "2048")
	c := LoadUploadConfig()
	assert.Equal(t, int64(2048), c.MaxBytes)
	assert.False(t, c.UseS3())

	t.Setenv("S3_BUCKET", "photos")
	assert.True(t, LoadUploadConfig().UseS3())
}

func TestNewRedisClient_Disabled(t *testing.T) {
	assert.Nil(t, NewRedisClient(RedisConfig{Enabled: false}))
}
