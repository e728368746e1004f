// Package config loads server settings from an optional YAML file, an
// optional .env file and the process environment, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

var ErrInvalidConfiguration = errors.New("invalid configuration")

type Config struct {
	Port         string        `yaml:"port"`
	Env          string        `yaml:"env"`
	Store        string        `yaml:"store"`
	MongoURI     string        `yaml:"mongoUri"`
	DBUser       string        `yaml:"dbUser"`
	DBPass       string        `yaml:"dbPass"`
	DBHost       string        `yaml:"dbHost"`
	DBName       string        `yaml:"dbName"`
	TokenSecret  string        `yaml:"accessTokenSecret"`
	TokenTTL     time.Duration `yaml:"tokenTTL"`
	CookieSecure bool          `yaml:"cookieSecure"`
	CORSOrigins  []string      `yaml:"corsOrigins"`
	RedisURL     string        `yaml:"redisUrl"`
	CacheTTL     time.Duration `yaml:"cacheTTL"`
	OTelEndpoint string        `yaml:"otelEndpoint"`
}

func Default() *Config {
	return &Config{
		Port:        "5000",
		Store:       StoreMongo,
		DBName:      "touchLajawab",
		TokenTTL:    time.Hour,
		CORSOrigins: []string{"http://localhost:5173"},
		CacheTTL:    30 * time.Second,
	}
}

// Load builds the configuration. A missing .env file is not an error; a
// CONFIG_FILE that cannot be read is.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) LoadFromFile(path string) error {
	ext := filepath.Ext(path)
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config file extension %q: %w", ext, ErrInvalidConfiguration)
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("STORE"); v != "" {
		c.Store = v
	}
	if v := os.Getenv("MONGODB_URI"); v != "" {
		c.MongoURI = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		c.DBUser = v
	}
	if v := os.Getenv("DB_PASS"); v != "" {
		c.DBPass = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		c.DBHost = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.DBName = v
	}
	if v := os.Getenv("ACCESS_TOKEN_SECRET"); v != "" {
		c.TokenSecret = v
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TOKEN_TTL %q: %w", v, ErrInvalidConfiguration)
		}
		c.TokenTTL = d
	}
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("COOKIE_SECURE %q: %w", v, ErrInvalidConfiguration)
		}
		c.CookieSecure = b
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		c.OTelEndpoint = v
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CACHE_TTL %q: %w", v, ErrInvalidConfiguration)
		}
		c.CacheTTL = d
	}
	return nil
}

// DatabaseURI returns MongoURI, or an Atlas SRV URI built from the
// DB_USER/DB_PASS/DB_HOST parts when no URI is set.
func (c *Config) DatabaseURI() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	if c.DBUser == "" || c.DBHost == "" {
		return ""
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     c.DBHost,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	return u.String()
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Validate() error {
	if c.TokenSecret == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET is required: %w", ErrInvalidConfiguration)
	}
	if c.Port == "" {
		return fmt.Errorf("port is required: %w", ErrInvalidConfiguration)
	}
	for _, origin := range c.CORSOrigins {
		// session cookies are sent cross-origin, so every origin must be explicit
		if origin == "*" {
			return fmt.Errorf("CORS_ORIGINS must list origins, not \"*\": %w", ErrInvalidConfiguration)
		}
	}
	switch c.Store {
	case StoreMemory:
	case StoreMongo:
		if c.DatabaseURI() == "" {
			return fmt.Errorf("MONGODB_URI or DB_USER/DB_PASS/DB_HOST is required: %w", ErrInvalidConfiguration)
		}
		if c.DBName == "" {
			return fmt.Errorf("DB_NAME is required: %w", ErrInvalidConfiguration)
		}
	default:
		return fmt.Errorf("unknown store %q: %w", c.Store, ErrInvalidConfiguration)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
