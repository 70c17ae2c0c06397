package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dfryer1193/onewheel-blog/internal/auth"
	"github.com/dfryer1193/onewheel-blog/shared/db/sqlite"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Session  SessionConfig  `mapstructure:"session"`
	Log      LogConfig      `mapstructure:"log"`
	Login    LoginConfig    `mapstructure:"login"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type AdminConfig struct {
	Email        string `mapstructure:"email"`
	PasswordHash string `mapstructure:"password_hash"`
}

type SessionConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
	Secure bool          `mapstructure:"secure"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type LoginConfig struct {
	RatePerMinute int `mapstructure:"rate_per_minute"`
	Burst         int `mapstructure:"burst"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("database.path", sqlite.DefaultPath)
	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password_hash", "")
	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.secure", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("login.rate_per_minute", 10)
	v.SetDefault("login.burst", 5)
}

// Load reads configuration from defaults, an optional file and the environment, in increasing precedence.
// Keys map to environment variables by upper-casing and replacing dots, e.g. session.secret -> SESSION_SECRET.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("database.path", "SQLITE_DB_PATH", "DATABASE_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind database path: %w", err)
	}
	if err := v.BindEnv("server.port", "PORT", "SERVER_PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind server port: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the settings the HTTP server cannot run without.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d is out of range", c.Server.Port))
	}
	if c.Admin.Email == "" {
		errs = append(errs, errors.New("admin.email is required"))
	}
	if c.Admin.PasswordHash == "" {
		errs = append(errs, errors.New("admin.password_hash is required"))
	}
	if len(c.Session.Secret) < 16 {
		errs = append(errs, errors.New("session.secret must be at least 16 characters"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session.ttl must be positive"))
	}
	if c.Login.RatePerMinute <= 0 {
		errs = append(errs, errors.New("login.rate_per_minute must be positive"))
	}
	if c.Login.Burst <= 0 {
		errs = append(errs, errors.New("login.burst must be positive"))
	}

	return errors.Join(errs...)
}

func (c *Config) SQLite() *sqlite.SQLiteConfig {
	return &sqlite.SQLiteConfig{Path: c.Database.Path}
}

func (c *Config) Auth() auth.Config {
	return auth.Config{
		AdminEmail:        c.Admin.Email,
		AdminPasswordHash: c.Admin.PasswordHash,
		Secret:            c.Session.Secret,
		TTL:               c.Session.TTL,
		SecureCookie:      c.Session.Secure,
	}
}
