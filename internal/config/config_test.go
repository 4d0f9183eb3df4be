package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("SALON_API_KEY", "secret-key")

	path := writeConfig(t, `
app:
  name: "peluqueria"
  environment: "test"
salon:
  timezone: "UTC"
  catalog_path: "configs/servicios.yaml"
database:
  path: "data/salon.db"
api:
  enabled: true
  auth:
    enabled: true
    api_keys:
      - key: "${SALON_API_KEY}"
        name: "recepcion"
        permissions: ["read", "write"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data/salon.db", cfg.Database.Path)
	require.Len(t, cfg.API.Auth.APIKeys, 1)
	assert.Equal(t, "secret-key", cfg.API.Auth.APIKeys[0].Key)
	assert.Equal(t, "UTC", cfg.Location().String())

	// defaults
	assert.Equal(t, 8080, cfg.API.HTTP.Port)
	assert.Equal(t, "X-API-Key", cfg.API.Auth.HeaderAPIKey)
	assert.Equal(t, 10*time.Second, cfg.API.HTTP.ReadTimeout)
	assert.Equal(t, float64(10), cfg.API.RateLimit.RPS)
	assert.Equal(t, 20, cfg.API.RateLimit.Burst)
	assert.Equal(t, 100, cfg.Salon.ActivityFeedSize)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("BadYAML", func(t *testing.T) {
		_, err := Load(writeConfig(t, "database: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("MissingDatabasePath", func(t *testing.T) {
		_, err := Load(writeConfig(t, "app:\n  name: x\n"))
		assert.ErrorContains(t, err, "config validation failed")
	})
}

func TestValidateConfig(t *testing.T) {
	base := func() Config {
		return Config{Database: DatabaseConfig{Path: "salon.db"}}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid config", mutate: func(c *Config) {}},
		{name: "missing database path", mutate: func(c *Config) { c.Database.Path = "" }, wantErr: true},
		{name: "bad timezone", mutate: func(c *Config) { c.Salon.Timezone = "Mars/Olympus" }, wantErr: true},
		{name: "file output without path", mutate: func(c *Config) { c.Logging.Output = "file" }, wantErr: true},
		{name: "unknown log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: true},
		{name: "backup without storage", mutate: func(c *Config) { c.Backup.Enabled = true }, wantErr: true},
		{
			name: "auth without keys",
			mutate: func(c *Config) {
				c.API.Enabled = true
				c.API.Auth.Enabled = true
			},
			wantErr: true,
		},
		{
			name: "duplicate api key",
			mutate: func(c *Config) {
				c.API.Auth.APIKeys = []APIClientKey{{Key: "k", Name: "a"}, {Key: "k", Name: "b"}}
			},
			wantErr: true,
		},
		{
			name: "unknown permission",
			mutate: func(c *Config) {
				c.API.Auth.APIKeys = []APIClientKey{{Key: "k", Name: "a", Permissions: []string{"admin"}}}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
