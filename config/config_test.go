package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_EXPIRY_MIN", "not-a-number")
	t.Setenv("REDIS_ENABLED", "true")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, 60, cfg.JWTExpiryMin)
	assert.True(t, cfg.RedisEnabled)
	assert.Equal(t, "contact-messages", cfg.S3ArchivePrefix)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "empty secret", mutate: func(c *Config) { c.JWTSecret = " " }, wantErr: true},
		{name: "default secret in release", mutate: func(c *Config) { c.AppMode = "release" }, wantErr: true},
		{name: "zero expiry", mutate: func(c *Config) { c.JWTExpiryMin = 0 }, wantErr: true},
		{name: "admin email without password", mutate: func(c *Config) { c.AdminEmail = "a@x.com" }, wantErr: true},
		{name: "admin pair", mutate: func(c *Config) {
			c.AdminEmail = "a@x.com"
			c.AdminPassword = "secret"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{AppMode: "debug", JWTSecret: "change-me", JWTExpiryMin: 60}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
