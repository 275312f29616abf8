package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
app:
  name: helpdesk-test
server:
  port: 9090
database:
  host: db.internal
  password: secret
agent:
  enabled: true
  model: gpt-4o-mini
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644))

	require.NoError(t, Load(dir))
	cfg := Get()
	require.NotNil(t, cfg)

	assert.Equal(t, "helpdesk-test", cfg.App.Name)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.True(t, cfg.Agent.Enabled)
	assert.Equal(t, "gpt-4o-mini", cfg.Agent.Model)

	// Defaults fill in everything the file leaves out.
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 8, cfg.Agent.MaxSteps)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestDatabaseDSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "helpdesk",
		Password: "pw", Name: "helpdesk", SSLMode: "disable",
	}
	assert.Equal(t, "host=localhost port=5432 user=helpdesk password=pw dbname=helpdesk sslmode=disable", c.DSN())
}

func TestRedisAddr(t *testing.T) {
	c := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", c.Addr())
}
