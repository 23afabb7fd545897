package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// insecureJWTSecret is the built-in default; it is only accepted in development.
const insecureJWTSecret = "secret-dev"

type Config struct {
	Addr           string         `yaml:"addr"`
	JWTSecret      string         `yaml:"jwt_secret"`
	APITimeout     time.Duration  `yaml:"timeout"`
	TokenDuration  time.Duration  `yaml:"token_duration"`
	BcryptCost     int            `yaml:"bcrypt_cost"`
	MigrateOnStart bool           `yaml:"migrate_on_start"`
	LogLevel       string         `yaml:"log_level"`
	Database       DatabaseConfig `yaml:"database"`
	RateLimit      RateLimit      `yaml:"rate_limit"`
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`
	DSN             string        `yaml:"dsn"`
	ConnectAttempts uint          `yaml:"connect_attempts"`
	ConnectDelay    time.Duration `yaml:"connect_delay"`
}

// RateLimit configures the request limiter. A zero RPS disables it.
type RateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:           getEnv("JOBLY_ADDR", ":3001"),
		JWTSecret:      getEnv("JOBLY_JWT_SECRET", insecureJWTSecret),
		APITimeout:     15 * time.Second,
		TokenDuration:  24 * time.Hour,
		BcryptCost:     getEnvInt("JOBLY_BCRYPT_COST", bcrypt.DefaultCost),
		MigrateOnStart: getEnvBool("JOBLY_MIGRATE_ON_START", true),
		LogLevel:       getEnv("JOBLY_LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Driver:          getEnv("JOBLY_DB_DRIVER", "sqlite"),
			DSN:             getEnv("JOBLY_DATABASE_URL", "jobly.db"),
			ConnectAttempts: 5,
			ConnectDelay:    time.Second,
		},
		RateLimit: RateLimit{RPS: 50, Burst: 100},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks the configuration and fills defaults for zero values.
func (c *Config) Validate() error {
	env := strings.ToLower(os.Getenv("JOBLY_ENV"))
	if c.JWTSecret == "" {
		return errors.New("jwt_secret is required")
	}
	if c.JWTSecret == insecureJWTSecret && env != "development" && env != "test" {
		return errors.New("jwt_secret uses the insecure default; set JOBLY_JWT_SECRET or JOBLY_ENV=development")
	}

	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}
	if c.Database.ConnectAttempts == 0 {
		c.Database.ConnectAttempts = 1
	}

	if c.APITimeout < 0 || c.TokenDuration < 0 {
		return errors.New("timeout and token_duration must not be negative")
	}
	if c.APITimeout == 0 {
		c.APITimeout = 15 * time.Second
	}
	if c.TokenDuration == 0 {
		c.TokenDuration = 24 * time.Hour
	}

	if c.BcryptCost == 0 {
		c.BcryptCost = bcrypt.DefaultCost
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return errors.New("rate_limit values must not be negative")
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 1
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Level parses LogLevel into a slog.Level.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}

	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}

	return def
}
