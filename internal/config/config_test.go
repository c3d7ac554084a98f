package config_test

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/cliching/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, config.StoreMemory, cfg.Store)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cliching.yaml")
	content := `
addr: ":9090"
store: redis
session_ttl: 30m
redis:
  addr: "redis:6379"
  db: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, config.StoreRedis, cfg.Store)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cliching.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":7000\"\n"), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, config.StoreMemory, cfg.Store)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cliching.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":7000\"\n"), 0644))

	t.Setenv("CLICHING_ADDR", ":6000")
	t.Setenv("CLICHING_SESSION_TTL", "15m")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":6000", cfg.Addr)
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL)
}

func TestLoad_UnknownStore(t *testing.T) {
	t.Setenv("CLICHING_STORE", "postgres")

	_, err := config.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store backend")
}

func TestLoad_EncryptionKey(t *testing.T) {
	key := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{'k'}, 32))
	t.Setenv("CLICHING_ENCRYPTION_KEY", key)
	t.Setenv("CLICHING_REDACT_PATTERNS", `\bAlice\b,\bBob\b`)

	cfg, err := config.Load("")
	require.NoError(t, err)

	raw, err := cfg.EncryptionKeyBytes()
	require.NoError(t, err)
	assert.Len(t, raw, 32)
	assert.Equal(t, []string{`\bAlice\b`, `\bBob\b`}, cfg.RedactPatterns)
}

func TestLoad_BadEncryptionKey(t *testing.T) {
	t.Setenv("CLICHING_ENCRYPTION_KEY", base64.StdEncoding.EncodeToString([]byte("short")))

	_, err := config.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "32 bytes")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
