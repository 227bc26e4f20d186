package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/pathfinder/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, config.CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "PATHFINDER_FILE_PATH", cfg.FilePathEnv)
}

func TestLoad_YAML(t *testing.T) {
	p := writeConfig(t, "pathfinder.yaml", `
log_level: debug
file_paths:
  - /opt/models
  - /usr/share/models
suffixes: [meshes, materials/textures]
memo: true
cache:
  backend: redis
  redis:
    addr: redis:6379
    db: 2
    ttl: 90s
server:
  port: 9000
`)

	cfg, err := config.Load(p)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"/opt/models", "/usr/share/models"}, cfg.FilePaths)
	assert.Equal(t, []string{"meshes", "materials/textures"}, cfg.Suffixes)
	assert.True(t, cfg.Memo)
	assert.Equal(t, config.CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, "redis:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 2, cfg.Cache.Redis.DB)
	assert.Equal(t, 90*time.Second, cfg.Cache.Redis.TTL)
	assert.Equal(t, "pathfinder:digest:", cfg.Cache.Redis.Prefix, "unset keys keep defaults")
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoad_JSONAndDelimitedList(t *testing.T) {
	list := strings.Join([]string{"/a", "/b"}, string(filepath.ListSeparator))
	p := writeConfig(t, "pathfinder.json", `{"file_paths": "`+list+`", "server": {"port": "7000"}}`)

	cfg, err := config.Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b"}, cfg.FilePaths)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, "bad.yaml", "cache: [unclosed"))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, "unknown.yaml", "colour: blue\n"))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, "backend.yaml", "cache:\n  backend: etcd\n"))
	assert.ErrorContains(t, err, "unknown cache backend")

	_, err = config.Load(writeConfig(t, "port.yaml", "server:\n  port: 70000\n"))
	assert.ErrorContains(t, err, "out of range")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PATHFINDER_LOG_LEVEL", "warn")
	t.Setenv("PATHFINDER_CACHE_BACKEND", "REDIS")
	t.Setenv("PATHFINDER_REDIS_ADDR", "cache:6380")
	t.Setenv("PATHFINDER_SERVER_PORT", "8181")
	t.Setenv("PATHFINDER_MEMO", "true")
	t.Setenv("PATHFINDER_SUFFIXES", strings.Join([]string{"urdf", "meshes"}, string(filepath.ListSeparator)))

	cfg, err := config.Load(writeConfig(t, "base.yaml", "suffixes: [sdf]\n"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, config.CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, "cache:6380", cfg.Cache.Redis.Addr)
	assert.Equal(t, 8181, cfg.Server.Port)
	assert.True(t, cfg.Memo)
	assert.Equal(t, []string{"sdf", "urdf", "meshes"}, cfg.Suffixes)
}

func TestLoad_InvalidEnvOverrides(t *testing.T) {
	t.Run("Memo", func(t *testing.T) {
		t.Setenv("PATHFINDER_MEMO", "yes")
		_, err := config.Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PATHFINDER_MEMO")
	})

	t.Run("Port", func(t *testing.T) {
		t.Setenv("PATHFINDER_SERVER_PORT", "http")
		_, err := config.Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PATHFINDER_SERVER_PORT")
	})

	t.Run("Both", func(t *testing.T) {
		t.Setenv("PATHFINDER_MEMO", "maybe")
		t.Setenv("PATHFINDER_SERVER_PORT", "80a")
		_, err := config.Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PATHFINDER_MEMO")
		assert.Contains(t, err.Error(), "PATHFINDER_SERVER_PORT")
	})
}

func TestDecode_EmptyDocument(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, config.Decode([]byte(""), cfg))
	assert.Equal(t, config.Default(), cfg)
}
