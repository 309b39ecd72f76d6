package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: "postgres", Host: "db"},
		MinIO:    MinIOConfig{Endpoint: "minio:9000", AccessKeyID: "key", SecretAccessKey: "secret"},
		Auth:     AuthConfig{JWTSecret: "secret"},
		Pagination: PaginationConfig{
			DefaultPerPage: 20,
			MaxPerPage:     100,
		},
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DEFAULT_PER_PAGE", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("UPLOAD_POLL_INTERVAL", "")

	cfg := Load()
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 20, cfg.Pagination.DefaultPerPage)
	assert.Equal(t, 100, cfg.Pagination.MaxPerPage)
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10*time.Second, cfg.Upload.PollInterval)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/museum.db")
	t.Setenv("UPLOAD_WORKERS", "4")
	t.Setenv("AUTH_RATE_WINDOW", "30s")
	t.Setenv("AWS_USE_SSL", "true")
	t.Setenv("DEFAULT_PER_PAGE", "many")

	cfg := Load()
	assert.Equal(t, "/tmp/museum.db", cfg.Database.DSN())
	assert.Equal(t, 4, cfg.Upload.Workers)
	assert.Equal(t, 30*time.Second, cfg.Auth.RateWindow)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 20, cfg.Pagination.DefaultPerPage, "unparsable values fall back to the default")
}

func TestPostgresDSN(t *testing.T) {
	d := DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432", User: "u", Password: "p", DBName: "museum", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=museum sslmode=disable TimeZone=UTC connect_timeout=10", d.DSN())
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, `unsupported DB_DRIVER "mysql"`},
		{"missing host", func(c *Config) { c.Database.Host = "" }, "DB_HOST is required"},
		{"missing sqlite path", func(c *Config) { c.Database.Driver = "sqlite" }, "DB_SQLITE_PATH is required"},
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = "" }, "JWT_SECRET is required"},
		{"page size above max", func(c *Config) { c.Pagination.DefaultPerPage = 101 }, "DEFAULT_PER_PAGE must be between 1 and 100"},
		{"missing minio key", func(c *Config) { c.MinIO.AccessKeyID = "" }, "AWS_ACCESS_KEY_ID is required for MinIO"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.EqualError(t, cfg.Validate(), tt.want)
		})
	}
}
