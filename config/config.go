// Package config loads server and client settings from the environment.
//
// Every key can be set as FOLIO_<SECTION>_<KEY> (for example
// FOLIO_DATABASE_URL). A few keys also accept the conventional unprefixed
// names (DATABASE_URL, REDIS_URL, PORT).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Session   SessionConfig
	Storage   StorageConfig
	Log       LogConfig
	RateLimit RateLimitConfig
	Admin     AdminSeedConfig
}

type AppConfig struct {
	Env            string
	Port           string
	PublicAPIKey   string
	AllowedOrigins []string
	MaxUploadBytes int64
}

type DatabaseConfig struct {
	URL             string
	MaxConns        int32
	MinConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	URL string
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// StorageConfig selects where uploaded CVs live. Driver is "local" or "s3".
type StorageConfig struct {
	Driver            string
	LocalDir          string
	PublicPath        string
	Endpoint          string
	Region            string
	Bucket            string
	AccessKey         string
	SecretKey         string
	UsePathStyle      bool
	PresignExpiration time.Duration
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// RateLimitConfig bounds public contact submissions per client IP.
type RateLimitConfig struct {
	ContactLimit  int
	ContactWindow time.Duration
}

// AdminSeedConfig is read by the migrate command to create the operator account.
type AdminSeedConfig struct {
	Email    string
	Password string
}

// ClientConfig is what the admin console needs to reach the API.
// Missing values are not an error here; the client degrades every call
// to a failure instead.
type ClientConfig struct {
	APIURL    string
	APIKey    string
	CacheFile string
	LogLevel  string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.allowed_origins", "http://localhost:5173")
	v.SetDefault("app.max_upload_bytes", 10<<20)

	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.conn_max_idle_time", 30*time.Minute)

	v.SetDefault("redis.url", "redis://localhost:6379/0")

	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.issuer", "folio")

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.local_dir", "./uploads")
	v.SetDefault("storage.public_path", "/files")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.presign_expiration", time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("rate_limit.contact_limit", 5)
	v.SetDefault("rate_limit.contact_window", time.Hour)
}

// Load reads the server configuration. Call godotenv.Load first if a
// .env file should be honoured.
func Load() (*Config, error) {
	cfg := LoadPartial()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadPartial reads the configuration without validating it. Tools that
// need only a subset of the settings check those fields themselves.
func LoadPartial() *Config {
	v := newViper()
	setDefaults(v)

	_ = v.BindEnv("database.url", "FOLIO_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("redis.url", "FOLIO_REDIS_URL", "REDIS_URL")
	_ = v.BindEnv("app.port", "FOLIO_APP_PORT", "PORT")

	cfg := &Config{
		App: AppConfig{
			Env:            v.GetString("app.env"),
			Port:           v.GetString("app.port"),
			PublicAPIKey:   v.GetString("app.public_api_key"),
			AllowedOrigins: splitList(v.GetString("app.allowed_origins")),
			MaxUploadBytes: v.GetInt64("app.max_upload_bytes"),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("database.url"),
			MaxConns:        v.GetInt32("database.max_conns"),
			MinConns:        v.GetInt32("database.min_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetDuration("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			URL: v.GetString("redis.url"),
		},
		Session: SessionConfig{
			Secret: v.GetString("session.secret"),
			TTL:    v.GetDuration("session.ttl"),
			Issuer: v.GetString("session.issuer"),
		},
		Storage: StorageConfig{
			Driver:            strings.ToLower(v.GetString("storage.driver")),
			LocalDir:          v.GetString("storage.local_dir"),
			PublicPath:        v.GetString("storage.public_path"),
			Endpoint:          v.GetString("storage.endpoint"),
			Region:            v.GetString("storage.region"),
			Bucket:            v.GetString("storage.bucket"),
			AccessKey:         v.GetString("storage.access_key"),
			SecretKey:         v.GetString("storage.secret_key"),
			UsePathStyle:      v.GetBool("storage.use_path_style"),
			PresignExpiration: v.GetDuration("storage.presign_expiration"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		RateLimit: RateLimitConfig{
			ContactLimit:  v.GetInt("rate_limit.contact_limit"),
			ContactWindow: v.GetDuration("rate_limit.contact_window"),
		},
		Admin: AdminSeedConfig{
			Email:    v.GetString("admin.email"),
			Password: v.GetString("admin.password"),
		},
	}
	return cfg
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL not set"))
	}
	if c.Session.Secret == "" {
		errs = append(errs, errors.New("FOLIO_SESSION_SECRET not set"))
	}
	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.Bucket == "" {
			errs = append(errs, errors.New("FOLIO_STORAGE_BUCKET not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// LoadClient reads the admin console settings. It never fails.
func LoadClient() ClientConfig {
	v := newViper()
	v.SetDefault("log.level", "warn")
	return ClientConfig{
		APIURL:    strings.TrimRight(v.GetString("api_url"), "/"),
		APIKey:    v.GetString("api_key"),
		CacheFile: v.GetString("cache_file"),
		LogLevel:  v.GetString("log.level"),
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
