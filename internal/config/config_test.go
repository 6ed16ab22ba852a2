// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("STORAGE_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Server.Port)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, "/uploads", cfg.Storage.UploadRoute)
	assert.Equal(t, 10, cfg.Storage.MaxFiles)
	assert.False(t, cfg.Admin.RequireToken)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "https://autosalvage.autos")
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:5173")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("ALLOW_ALL_ORIGINS", "TRUE")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("MAX_UPLOAD_FILES", "4")
	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("REQUIRE_ADMIN_TOKEN", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.CORS.AllowAllOrigins)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 4, cfg.Storage.MaxFiles)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.True(t, cfg.Admin.RequireToken)
}

func TestMalformedNumbersFallBackToDefaults(t *testing.T) {
	t.Setenv("MAX_UPLOAD_FILES", "ten")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Storage.MaxFiles)
}

func validConfig() *Config {
	return &Config{
		Environment: "development",
		Admin:       AdminConfig{TokenSecret: defaultTokenSecret},
		Storage:     StorageConfig{Driver: "local", UploadRoute: "/uploads", MaxFiles: 10},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "ftp" }, true},
		{"s3 without bucket", func(c *Config) { c.Storage.Driver = "s3" }, true},
		{"s3 with bucket", func(c *Config) { c.Storage.Driver = "s3"; c.AWS.S3Bucket = "parts" }, false},
		{"no files allowed", func(c *Config) { c.Storage.MaxFiles = 0 }, true},
		{"relative route", func(c *Config) { c.Storage.UploadRoute = "uploads" }, true},
		{"production default secret", func(c *Config) {
			c.Environment = "production"
			c.Database.URL = "postgres://db"
		}, true},
		{"production without database credentials", func(c *Config) {
			c.Environment = "production"
			c.Admin.TokenSecret = "real-secret"
		}, true},
		{"production ready", func(c *Config) {
			c.Environment = "production"
			c.Admin.TokenSecret = "real-secret"
			c.Database.URL = "postgres://db"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "parts", Password: "pw", Database: "autosalvage", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=parts password=pw dbname=autosalvage sslmode=disable", d.DSN())

	d.URL = "postgres://parts:pw@db/autosalvage"
	assert.Equal(t, "postgres://parts:pw@db/autosalvage", d.DSN())
}

func TestServerAddr(t *testing.T) {
	assert.Equal(t, ":8080", ServerConfig{Port: "8080"}.Addr())
	assert.Equal(t, "127.0.0.1:3001", ServerConfig{Host: "127.0.0.1", Port: "3001"}.Addr())
}
