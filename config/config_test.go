package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/folio")
	t.Setenv("FOLIO_SESSION_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.App.AllowedOrigins)
	assert.Equal(t, "postgres://localhost/folio", cfg.Database.URL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, 5, cfg.RateLimit.ContactLimit)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_PrefixedOverrides(t *testing.T) {
	t.Setenv("FOLIO_DATABASE_URL", "postgres://db/folio")
	t.Setenv("FOLIO_SESSION_SECRET", "secret")
	t.Setenv("FOLIO_APP_ENV", "production")
	t.Setenv("FOLIO_APP_ALLOWED_ORIGINS", "https://a.dev, https://b.dev")
	t.Setenv("FOLIO_SESSION_TTL", "2h")
	t.Setenv("FOLIO_STORAGE_DRIVER", "S3")
	t.Setenv("FOLIO_STORAGE_BUCKET", "cv")
	t.Setenv("FOLIO_APP_PUBLIC_API_KEY", "anon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://db/folio", cfg.Database.URL)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.App.AllowedOrigins)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "s3", cfg.Storage.Driver)
	assert.Equal(t, "anon", cfg.App.PublicAPIKey)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("FOLIO_DATABASE_URL", "")
	t.Setenv("FOLIO_SESSION_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL not set")
	assert.Contains(t, err.Error(), "FOLIO_SESSION_SECRET not set")
}

func TestValidate_Storage(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{URL: "postgres://x"},
		Session:  SessionConfig{Secret: "s"},
		Storage:  StorageConfig{Driver: "s3"},
	}
	assert.ErrorContains(t, cfg.Validate(), "FOLIO_STORAGE_BUCKET not set")

	cfg.Storage.Driver = "ftp"
	assert.ErrorContains(t, cfg.Validate(), "unknown storage driver")
}

func TestLoadClient(t *testing.T) {
	t.Setenv("FOLIO_API_URL", "http://localhost:8080/")
	t.Setenv("FOLIO_API_KEY", "anon")

	cfg := LoadClient()
	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.Equal(t, "anon", cfg.APIKey)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadClient_Missing(t *testing.T) {
	t.Setenv("FOLIO_API_URL", "")
	t.Setenv("FOLIO_API_KEY", "")

	cfg := LoadClient()
	assert.Empty(t, cfg.APIURL)
	assert.Empty(t, cfg.APIKey)
}

func TestLoadPartial_SkipsValidation(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/folio")
	t.Setenv("FOLIO_SESSION_SECRET", "")
	t.Setenv("FOLIO_ADMIN_EMAIL", "me@example.com")

	cfg := LoadPartial()
	assert.Equal(t, "postgres://localhost/folio", cfg.Database.URL)
	assert.Equal(t, "me@example.com", cfg.Admin.Email)
	assert.Error(t, cfg.Validate())
}
