package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIntoYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlBody := `
server:
  port: 9090
database:
  driver: sqlite
  dsn: file:test.db
  retry_interval: 2s
redis:
  addr: localhost:6379
`
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7070")
	t.Setenv("DB_CONN_MAX_LIFETIME", "90m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Default()
	require.NoError(t, LoadInto(&cfg))

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:test.db", cfg.Database.DSN)
	assert.Equal(t, 2*time.Second, cfg.Database.RetryInterval)
	assert.Equal(t, 90*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	// untouched defaults survive
	assert.Equal(t, "ecodrive:status-estacoes", cfg.Redis.StatusChannel)
	assert.Equal(t, 5*time.Second, cfg.Redis.DialTimeout)
	assert.Equal(t, 100, cfg.Database.MaxOpenConns)
}

func TestLoadIntoRejectsBadValue(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "many")

	cfg := Default()
	err := LoadInto(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_MAX_OPEN_CONNS")
}

func TestLoadIntoRequiresStructPointer(t *testing.T) {
	var cfg Config
	assert.Error(t, LoadInto(cfg))
	assert.Error(t, LoadInto(nil))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Auth.JWTSecret = "secret"
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Database.Driver = "oracle"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Auth.JWTSecret = ""
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Server.Port = 0
	assert.Error(t, bad.Validate())
}
