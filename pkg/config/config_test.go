package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		JWT:   JWTConfig{Secret: "s", AccessMinutes: 420, RefreshHours: 168},
		Store: StoreConfig{Driver: "postgres", Revocation: "postgres"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"válida", func(*Config) {}, false},
		{"sin secreto", func(c *Config) { c.JWT.Secret = "" }, true},
		{"ttl no positivo", func(c *Config) { c.JWT.AccessMinutes = 0 }, true},
		{"driver desconocido", func(c *Config) { c.Store.Driver = "sqlite" }, true},
		{"revocación desconocida", func(c *Config) { c.Store.Revocation = "memcached" }, true},
		{"memoria con revocación postgres", func(c *Config) { c.Store.Driver = "memory" }, true},
		{"memoria con redis", func(c *Config) { c.Store.Driver = "memory"; c.Store.Revocation = "redis" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_DefaultsYVariables(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("REVOCATION_STORE", "memory")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secreto", cfg.JWT.Secret)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 420, cfg.JWT.AccessMinutes)
	assert.Equal(t, 7*time.Hour, cfg.JWT.AccessTTL())
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshTTL())
	assert.Equal(t, "AR", cfg.Phone.Region)
	assert.NoError(t, cfg.Validate())
}
