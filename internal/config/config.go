// Package config loads server settings from an optional TOML file, a .env
// file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/comitanigiacomo/studylog-engine/internal/core/view"
)

const ConfigPathEnv = "STUDYLOG_CONFIG"

var (
	ErrFileNotFound  = errors.New("configuration file not found")
	ErrInvalidFormat = errors.New("invalid configuration file format")
)

type ConfigError struct {
	Field   string
	Message string
}

func (e ConfigError) Error() string {
	if e.Field != "" {
		return "config." + e.Field + ": " + e.Message
	}
	return e.Message
}

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Auth      AuthConfig      `toml:"auth"`
	OAuth     OAuthConfig     `toml:"oauth"`
	App       AppConfig       `toml:"app"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

type ServerConfig struct {
	Port         string        `toml:"port"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	IdleTimeout  time.Duration `toml:"idle_timeout"`
}

type DatabaseConfig struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Name     string `toml:"name"`
	SSLMode  string `toml:"sslmode"`
	MaxConns int    `toml:"max_conns"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`

	PoolSize     int           `toml:"pool_size"`
	MinIdleConns int           `toml:"min_idle_conns"`
	DialTimeout  time.Duration `toml:"dial_timeout"`
	IOTimeout    time.Duration `toml:"io_timeout"`
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type AuthConfig struct {
	JWTSecret string        `toml:"jwt_secret"`
	Issuer    string        `toml:"issuer"`
	TokenTTL  time.Duration `toml:"token_ttl"`
}

type OAuthConfig struct {
	GoogleClientID     string `toml:"google_client_id"`
	GoogleClientSecret string `toml:"google_client_secret"`
	RedirectURL        string `toml:"redirect_url"`
	FrontendURL        string `toml:"frontend_url"`

	// Endpoint overrides, empty means Google's production endpoints.
	AuthURL     string `toml:"auth_url"`
	TokenURL    string `toml:"token_url"`
	UserInfoURL string `toml:"userinfo_url"`
}

// Enabled reports whether Google sign-in has credentials.
func (o OAuthConfig) Enabled() bool {
	return o.GoogleClientID != "" && o.GoogleClientSecret != ""
}

type AppConfig struct {
	view.Copy
	TableLimit int `toml:"table_limit"`
}

type RateLimitConfig struct {
	Requests int           `toml:"requests"`
	Window   time.Duration `toml:"window"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			SSLMode:  "disable",
			MaxConns: 25,
		},
		Redis: RedisConfig{
			Host:         "localhost",
			Port:         "6379",
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			IOTimeout:    3 * time.Second,
		},
		Auth: AuthConfig{
			Issuer:   "studylog-engine",
			TokenTTL: 24 * time.Hour,
		},
		App: AppConfig{
			Copy:       view.DefaultCopy(),
			TableLimit: 100,
		},
		RateLimit: RateLimitConfig{
			Requests: 100,
			Window:   time.Minute,
		},
	}
}

// Load reads .env (if present), then the TOML file named by STUDYLOG_CONFIG
// (if set), then applies environment overrides and validates.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path := os.Getenv(ConfigPathEnv); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnvironmentOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTools is Load for the admin CLI, which never signs tokens and so
// only needs the database section to be usable.
func LoadTools() (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path := os.Getenv(ConfigPathEnv); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnvironmentOverrides()

	if strings.TrimSpace(cfg.Database.Name) == "" {
		return nil, ConfigError{Field: "database.name", Message: "is required (set DB_NAME)"}
	}
	return cfg, nil
}

// LoadFile is Load with an explicit file path and no .env lookup.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.ApplyEnvironmentOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Decoding over the defaults keeps every key the file leaves out.
	if _, err := toml.Decode(string(data), c); err != nil {
		return fmt.Errorf("%w: %s - %v", ErrInvalidFormat, path, err)
	}
	return nil
}

func (c *Config) ApplyEnvironmentOverrides() {
	setString(&c.Server.Port, "PORT")

	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")

	setString(&c.Redis.Host, "REDIS_HOST")
	setString(&c.Redis.Port, "REDIS_PORT")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setInt(&c.Redis.DB, "REDIS_DB")
	setInt(&c.Redis.PoolSize, "REDIS_POOL_SIZE")

	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Auth.Issuer, "JWT_ISSUER")
	setDuration(&c.Auth.TokenTTL, "JWT_TTL")

	setString(&c.OAuth.GoogleClientID, "GOOGLE_CLIENT_ID")
	setString(&c.OAuth.GoogleClientSecret, "GOOGLE_CLIENT_SECRET")
	setString(&c.OAuth.RedirectURL, "GOOGLE_REDIRECT_URL")
	setString(&c.OAuth.FrontendURL, "FRONTEND_URL")

	setInt(&c.App.TableLimit, "APP_TABLE_LIMIT")

	setInt(&c.RateLimit.Requests, "RATE_LIMIT_REQUESTS")
	setDuration(&c.RateLimit.Window, "RATE_LIMIT_WINDOW")
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return ConfigError{Field: "auth.jwt_secret", Message: "is required (set JWT_SECRET)"}
	}
	if strings.TrimSpace(c.Database.Name) == "" {
		return ConfigError{Field: "database.name", Message: "is required (set DB_NAME)"}
	}
	if c.Auth.TokenTTL <= 0 {
		return ConfigError{Field: "auth.token_ttl", Message: "must be positive"}
	}
	if c.App.TableLimit < 1 {
		return ConfigError{Field: "app.table_limit", Message: "must be at least 1"}
	}
	if c.RateLimit.Requests < 1 || c.RateLimit.Window <= 0 {
		return ConfigError{Field: "rate_limit", Message: "requests and window must be positive"}
	}
	if c.OAuth.Enabled() && c.OAuth.RedirectURL == "" {
		return ConfigError{Field: "oauth.redirect_url", Message: "is required when Google sign-in is configured"}
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
