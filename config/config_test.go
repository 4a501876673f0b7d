package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dealdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
  read_timeout: 5s
database:
  driver: sqlite
  dsn: ":memory:"
auth:
  secret: file-secret
cache:
  enabled: true
  namespace: testns
  default_ttl: 90s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file-secret", cfg.Auth.Secret)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "testns", cfg.Cache.Namespace)
	assert.Equal(t, 90*time.Second, cfg.Cache.DefaultTTL)
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeConfigFile(t, `
auth:
  secret: s
database:
  dsn: ":memory:"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, "dealdesk", cfg.Cache.Namespace)
	assert.Equal(t, 5*time.Minute, cfg.Cache.DefaultTTL)
	assert.Equal(t, []string{"GET"}, cfg.Cache.Methods)
	assert.Equal(t, "dealdesk", cfg.Auth.Issuer)
	assert.Equal(t, 2*time.Hour, cfg.Auth.AccessTTL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
auth:
  secret: file-secret
`)
	t.Setenv("DEALDESK_SERVER_PORT", "7070")
	t.Setenv("DEALDESK_AUTH_SECRET", "env-secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.Auth.Secret)
}

func TestLoad_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("DEALDESK_AUTH_SECRET", "env-only")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-only", cfg.Auth.Secret)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfigFile(t, "server: [not: valid")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &AppConfig{}
	cfg.ApplyDefaults()
	assert.Error(t, cfg.Validate(), "missing secret and dsn")

	cfg.Auth.Secret = "s"
	assert.Error(t, cfg.Validate(), "missing dsn")

	cfg.Database.DSN = ":memory:"
	assert.NoError(t, cfg.Validate())
}
