package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:                     "8080",
		Env:                      "development",
		DBDriver:                 DriverPostgres,
		DBPassword:               "secure-password",
		DBSSLMode:                "require",
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 5,
		TracingSampleRatio:       1,
	}
}

func TestConfig_ValidateSSLMode(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		sslMode     string
		expectError bool
	}{
		{"Production with empty SSL mode", "production", "", true},
		{"Production with disable SSL mode", "production", "disable", true},
		{"Production with require SSL mode", "production", "require", false},
		{"Prod with verify-full SSL mode", "prod", "verify-full", false},
		{"Development with disable SSL mode", "development", "disable", false},
		{"Test with empty SSL mode", "test", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Env = tt.env
			c.DBSSLMode = tt.sslMode

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing port", func(c *Config) { c.Port = "" }},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }},
		{"zero pool", func(c *Config) { c.DBMaxOpenConns = 0 }},
		{"sample ratio above one", func(c *Config) { c.TracingSampleRatio = 1.5 }},
		{"sqlite in production", func(c *Config) { c.Env = "production"; c.DBDriver = DriverSQLite }},
		{"default password in production", func(c *Config) { c.Env = "production"; c.DBPassword = "password" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestConfig_ProductionDatabaseURLSkipsDiscreteChecks(t *testing.T) {
	c := validConfig()
	c.Env = "production"
	c.DBPassword = ""
	c.DBSSLMode = ""
	c.DatabaseURL = "postgres://blog:secret@db:5432/blog_db?sslmode=require"
	assert.NoError(t, c.Validate())
}

func TestLoadConfig_TestProfileDefaultsToSQLite(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	defer viper.Reset()

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, c.DBDriver)
	assert.Equal(t, ":memory:", c.DBSQLitePath)
	assert.Equal(t, "auto", c.DBSchemaMode)
}

func TestLoadConfig_Normalization(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_SSLMODE", "  DISABLE  ")
	t.Setenv("DB_DRIVER", "Postgres")
	defer viper.Reset()

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, DriverPostgres, c.DBDriver)
	assert.Equal(t, "8080", c.Port)
}
