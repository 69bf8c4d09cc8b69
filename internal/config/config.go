// Package config reads menubot settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// ErrInvalidConfig is returned when a setting has an unusable value.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds every setting the commands need.
type Config struct {
	// Persistence
	Store       string
	SessionDir  string
	SessionTTL  time.Duration
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Menu
	Locale   string
	MenuFile string

	// Transports
	Addr         string
	JWTSecret    string
	DiscordToken string

	Debug bool
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Store:      StoreFile,
		SessionDir: ".menubot/sessions",
		RedisAddr:  "localhost:6379",
		Locale:     "en",
		Addr:       ":8080",
	}
}

// Load reads .env files (missing ones are fine) and then MENUBOT_*
// variables on top of Default.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := Default()
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv("MENUBOT_" + key)); v != "" {
			*dst = v
		}
	}

	str("STORE", &cfg.Store)
	str("SESSION_DIR", &cfg.SessionDir)
	str("DATABASE_URL", &cfg.DatabaseURL)
	str("REDIS_ADDR", &cfg.RedisAddr)
	str("REDIS_PASSWORD", &cfg.RedisPassword)
	str("LOCALE", &cfg.Locale)
	str("MENU_FILE", &cfg.MenuFile)
	str("ADDR", &cfg.Addr)
	str("JWT_SECRET", &cfg.JWTSecret)
	str("DISCORD_TOKEN", &cfg.DiscordToken)

	if v := getenv("MENUBOT_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil || db < 0 {
			return nil, fmt.Errorf("%w: MENUBOT_REDIS_DB=%q", ErrInvalidConfig, v)
		}
		cfg.RedisDB = db
	}
	if v := getenv("MENUBOT_SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl < 0 {
			return nil, fmt.Errorf("%w: MENUBOT_SESSION_TTL=%q", ErrInvalidConfig, v)
		}
		cfg.SessionTTL = ttl
	}
	if v := getenv("MENUBOT_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: MENUBOT_DEBUG=%q", ErrInvalidConfig, v)
		}
		cfg.Debug = debug
	}

	cfg.Store = strings.ToLower(cfg.Store)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that depend on each other.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreFile, StoreRedis:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: postgres store requires MENUBOT_DATABASE_URL", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	}
	return nil
}
