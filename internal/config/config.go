package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrNoDatabase means DATABASE_URL is unset; callers may fall back to the
// in-memory store.
var ErrNoDatabase = errors.New("DATABASE_URL not set")

type Config struct {
	Env             string        `yaml:"env"`
	ListenAddr      string        `yaml:"listen_addr"`
	DatabaseURL     string        `yaml:"database_url"`
	DBMaxConns      int           `yaml:"db_max_conns"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"`
	LogLevel        string        `yaml:"log_level"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps"`
	RateLimitBurst  int           `yaml:"rate_limit_burst"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Env:             "development",
		ListenAddr:      ":8080",
		DBMaxConns:      10,
		MigrateOnStart:  true,
		LogLevel:        "info",
		RateLimitBurst:  20,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load reads .env (if present), then the YAML file named by CONFIG_FILE (if
// set), then environment variables, each layer overriding the previous one.
// A missing DATABASE_URL is reported as ErrNoDatabase together with a usable
// Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.Env = getenv("APP_ENV", cfg.Env)
	cfg.ListenAddr = getenv("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DatabaseURL = getenv("DATABASE_URL", cfg.DatabaseURL)
	cfg.DBMaxConns = getenvInt("DB_MAX_CONNS", cfg.DBMaxConns)
	cfg.MigrateOnStart = getenvBool("MIGRATE_ON_START", cfg.MigrateOnStart)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	cfg.RateLimitRPS = getenvFloat("RATE_LIMIT_RPS", cfg.RateLimitRPS)
	cfg.RateLimitBurst = getenvInt("RATE_LIMIT_BURST", cfg.RateLimitBurst)
	cfg.ShutdownTimeout = getenvDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	if cfg.DatabaseURL == "" {
		return cfg, ErrNoDatabase
	}
	return cfg, nil
}

// Production reports whether the service runs with APP_ENV=production.
func (c Config) Production() bool { return c.Env == "production" }

func (c Config) validate() error {
	if c.ListenAddr == "" {
		return errors.New("LISTEN_ADDR must not be empty")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0, got %v", c.RateLimitRPS)
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 1 when rate limiting, got %d", c.RateLimitBurst)
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if out, err := strconv.Atoi(v); err == nil {
			return out
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if out, err := strconv.ParseFloat(v, 64); err == nil {
			return out
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if out, err := strconv.ParseBool(v); err == nil {
			return out
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if out, err := time.ParseDuration(v); err == nil {
			return out
		}
	}
	return def
}
