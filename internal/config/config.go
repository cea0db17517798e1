package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the top-level application configuration, shared by the tamuctl
// client and the development backend.
type Config struct {
	API       APIConfig       `koanf:"api"`
	UI        UIConfig        `koanf:"ui"`
	Session   SessionConfig   `koanf:"session"`
	Log       LogConfig       `koanf:"log"`
	DevServer DevServerConfig `koanf:"devserver"`
	Database  DatabaseConfig  `koanf:"database"`
}

// APIConfig holds settings for the backend the client talks to.
type APIConfig struct {
	BaseURL string `koanf:"base_url"`
	Timeout string `koanf:"timeout"`
}

// UIConfig holds the timing knobs of the list screens.
type UIConfig struct {
	Debounce           string `koanf:"debounce"`
	NotifyTTL          string `koanf:"notify_ttl"`
	DashboardNotifyTTL string `koanf:"dashboard_notify_ttl"`
}

// SessionConfig holds the persisted-session settings.
type SessionConfig struct {
	FilePath string `koanf:"file_path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level           string `koanf:"level"`
	Format          string `koanf:"format"`
	Color           *bool  `koanf:"color"`
	FilePath        string `koanf:"file_path"`
	MaxSizeMB       int    `koanf:"max_size_mb"`
	RetentionDays   int    `koanf:"retention_days"`
	MaxBackups      int    `koanf:"max_backups"`
	CompressRotated *bool  `koanf:"compress_rotated"`
}

// DevServerConfig holds settings for the local reference backend.
type DevServerConfig struct {
	Host          string     `koanf:"host"`
	Port          int        `koanf:"port"`
	Mode          string     `koanf:"mode"`
	JWTSecret     string     `koanf:"jwt_secret"`
	TokenExpiry   string     `koanf:"token_expiry"`
	AdminEmail    string     `koanf:"admin_email"`
	AdminPassword string     `koanf:"admin_password"`
	CORS          CORSConfig `koanf:"cors"`
}

// CORSConfig holds CORS middleware settings for the devserver.
type CORSConfig struct {
	AllowOrigins     []string `koanf:"allow_origins"`
	AllowMethods     []string `koanf:"allow_methods"`
	AllowHeaders     []string `koanf:"allow_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           string   `koanf:"max_age"`
}

// DatabaseConfig holds devserver database connection settings.
type DatabaseConfig struct {
	Driver   string         `koanf:"driver"`
	SQLite   SQLiteConfig   `koanf:"sqlite"`
	Postgres PostgresConfig `koanf:"postgres"`
}

// SQLiteConfig holds SQLite-specific settings.
type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DBName   string `koanf:"dbname"`
	SSLMode  string `koanf:"sslmode"`
}

// Load reads configuration from a YAML file and overlays environment variables.
// Environment variables use the prefix "TAMU__" and double-underscore as the
// hierarchy separator; single underscores are preserved as part of the key name.
// For example, TAMU__API__BASE_URL overrides api.base_url and
// TAMU__DEVSERVER__JWT_SECRET overrides devserver.jwt_secret.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	if err := k.Load(env.Provider("TAMU__", ".", func(s string) string {
		key := strings.TrimPrefix(s, "TAMU__")
		key = strings.ToLower(key)
		key = strings.ReplaceAll(key, "__", ".")
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cross-field constraints and normalizes values in place.
func (c *Config) Validate() error {
	// api.base_url must be an absolute http(s) URL without a trailing slash.
	base := strings.TrimSpace(c.API.BaseURL)
	if base == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api.base_url %q: must be an absolute URL", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api.base_url %q: scheme must be http or https", c.API.BaseURL)
	}
	c.API.BaseURL = strings.TrimRight(base, "/")

	if err := validateOptionalDuration("api.timeout", &c.API.Timeout); err != nil {
		return err
	}
	if err := validateOptionalDuration("ui.debounce", &c.UI.Debounce); err != nil {
		return err
	}
	if err := validateOptionalDuration("ui.notify_ttl", &c.UI.NotifyTTL); err != nil {
		return err
	}
	if err := validateOptionalDuration("ui.dashboard_notify_ttl", &c.UI.DashboardNotifyTTL); err != nil {
		return err
	}

	c.Session.FilePath = strings.TrimSpace(c.Session.FilePath)

	// Validate log.level.
	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch level {
	case "debug", "info", "warn", "error":
		c.Log.Level = level
	default:
		return fmt.Errorf("invalid log.level %q: must be one of %q, %q, %q, %q", c.Log.Level, "debug", "info", "warn", "error")
	}

	// Validate log.format.
	format := strings.ToLower(strings.TrimSpace(c.Log.Format))
	switch format {
	case "text", "json":
		c.Log.Format = format
	default:
		return fmt.Errorf("invalid log.format %q: must be one of %q, %q", c.Log.Format, "text", "json")
	}

	return c.validateDevServer()
}

// validateDevServer checks the devserver and database sections. They only
// matter when running cmd/devserver, but invalid values are rejected up front
// so a shared config file fails fast for both binaries.
func (c *Config) validateDevServer() error {
	mode := strings.TrimSpace(c.DevServer.Mode)
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		c.DevServer.Mode = mode
	default:
		return fmt.Errorf("invalid devserver.mode %q: must be one of %q, %q, %q", c.DevServer.Mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}

	if c.DevServer.Port < 1 || c.DevServer.Port > 65535 {
		return fmt.Errorf("invalid devserver.port %d: must be between 1 and 65535", c.DevServer.Port)
	}

	host := strings.TrimSpace(c.DevServer.Host)
	if host == "" {
		return fmt.Errorf("devserver.host is required")
	}
	c.DevServer.Host = host

	secret := strings.TrimSpace(c.DevServer.JWTSecret)
	if secret == "" {
		return fmt.Errorf("devserver.jwt_secret is required")
	}
	if len(secret) < 32 {
		return fmt.Errorf("invalid devserver.jwt_secret: must be at least 32 characters")
	}
	c.DevServer.JWTSecret = secret

	expiry := strings.TrimSpace(c.DevServer.TokenExpiry)
	if expiry == "" {
		return fmt.Errorf("devserver.token_expiry is required")
	}
	d, err := time.ParseDuration(expiry)
	if err != nil {
		return fmt.Errorf("invalid devserver.token_expiry %q: %w", c.DevServer.TokenExpiry, err)
	}
	if d <= 0 {
		return fmt.Errorf("invalid devserver.token_expiry %q: must be greater than 0", c.DevServer.TokenExpiry)
	}
	c.DevServer.TokenExpiry = expiry

	if err := validateOptionalDuration("devserver.cors.max_age", &c.DevServer.CORS.MaxAge); err != nil {
		return err
	}

	switch c.Database.Driver {
	case "sqlite", "postgres":
		// ok
	default:
		return fmt.Errorf("invalid database.driver %q: must be one of %q, %q", c.Database.Driver, "sqlite", "postgres")
	}

	if c.Database.Driver == "sqlite" {
		path := strings.TrimSpace(c.Database.SQLite.Path)
		if path == "" {
			return fmt.Errorf("database.sqlite.path is required when driver is sqlite")
		}
		c.Database.SQLite.Path = path
	}

	if c.Database.Driver == "postgres" {
		pg := &c.Database.Postgres
		pg.Host = strings.TrimSpace(pg.Host)
		if pg.Host == "" {
			return fmt.Errorf("database.postgres.host is required when driver is postgres")
		}
		if pg.Port < 1 || pg.Port > 65535 {
			return fmt.Errorf("invalid database.postgres.port %d: must be between 1 and 65535", pg.Port)
		}
		pg.User = strings.TrimSpace(pg.User)
		if pg.User == "" {
			return fmt.Errorf("database.postgres.user is required when driver is postgres")
		}
		pg.DBName = strings.TrimSpace(pg.DBName)
		if pg.DBName == "" {
			return fmt.Errorf("database.postgres.dbname is required when driver is postgres")
		}
		pg.SSLMode = strings.TrimSpace(pg.SSLMode)
		switch pg.SSLMode {
		case "disable", "allow", "prefer", "require", "verify-ca", "verify-full":
			// ok
		default:
			return fmt.Errorf("invalid database.postgres.sslmode %q", pg.SSLMode)
		}
	}

	return nil
}

// validateOptionalDuration normalizes an optional duration field: whitespace-only
// means unset; a set value must parse as a positive Go duration.
func validateOptionalDuration(name string, value *string) error {
	*value = strings.TrimSpace(*value)
	if *value == "" {
		return nil
	}
	d, err := time.ParseDuration(*value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, *value, err)
	}
	if d <= 0 {
		return fmt.Errorf("invalid %s %q: must be greater than 0", name, *value)
	}
	return nil
}

// Default fallbacks for the optional duration knobs.
const (
	DefaultAPITimeout         = 15 * time.Second
	DefaultDebounce           = 500 * time.Millisecond
	DefaultNotifyTTL          = 3 * time.Second
	DefaultDashboardNotifyTTL = 5 * time.Second
)

// Duration parses an already-validated optional duration string, falling back
// to def when unset.
func Duration(value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return d
}
