// Package config loads console and development-backend settings from the
// environment. A .env file in the working directory is read first when present.
package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Token store backends.
const (
	TokenBackendFile   = "file"
	TokenBackendRedis  = "redis"
	TokenBackendMemory = "memory"
)

type Config struct {
	Addr     string `env:"CONSOLE_ADDR, default=127.0.0.1:5173"`
	Env      string `env:"ENV,          default=development"`
	LogLevel string `env:"LOG_LEVEL,    default=info"`

	API     APIConfig
	Tokens  TokenConfig
	Redis   RedisConfig
	Session SessionConfig
	Dev     DevBackendConfig
}

type APIConfig struct {
	BaseURL string `env:"API_BASE_URL, default=http://localhost:8000/products/api/v1/"`
	// Timeout of zero means no client timeout: a hung request keeps its page loading.
	Timeout time.Duration `env:"API_TIMEOUT, default=0s"`
}

type TokenConfig struct {
	Backend string `env:"TOKEN_BACKEND, default=file"`
	Dir     string `env:"TOKEN_DIR"`
	Scope   string `env:"TOKEN_SCOPE,   default=default"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type SessionConfig struct {
	// RollbackPartialLogin clears the stored pair when login succeeds but
	// fetching the user afterwards fails.
	RollbackPartialLogin bool `env:"SESSION_ROLLBACK_PARTIAL_LOGIN, default=false"`
}

// DevBackendConfig configures cmd/devbackend.
type DevBackendConfig struct {
	Addr       string        `env:"DEV_ADDR,        default=127.0.0.1:8000"`
	JWTSecret  string        `env:"DEV_JWT_SECRET,  default=dev-secret-change-me"`
	AccessTTL  time.Duration `env:"DEV_ACCESS_TTL,  default=5m"`
	RefreshTTL time.Duration `env:"DEV_REFRESH_TTL, default=24h"`
	Seed       bool          `env:"DEV_SEED,        default=true"`
}

// Production reports whether the console runs with ENV=production.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads .env (if any) and the process environment.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through an explicit lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: API_BASE_URL must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return errors.New("config: API_TIMEOUT cannot be negative")
	}

	switch c.Tokens.Backend {
	case TokenBackendFile, TokenBackendRedis, TokenBackendMemory:
	default:
		return fmt.Errorf("config: TOKEN_BACKEND must be one of file, redis, memory, got %q", c.Tokens.Backend)
	}
	if strings.TrimSpace(c.Tokens.Scope) == "" || strings.ContainsAny(c.Tokens.Scope, `/\`) {
		return fmt.Errorf("config: TOKEN_SCOPE must be a non-empty name without path separators, got %q", c.Tokens.Scope)
	}
	if c.Tokens.Backend == TokenBackendRedis && strings.TrimSpace(c.Redis.Addr) == "" {
		return errors.New("config: REDIS_ADDR is required for the redis token backend")
	}
	return nil
}

// TokenDir resolves the directory of the file token store, defaulting to
// <user config dir>/stockmanager.
func (c *Config) TokenDir() (string, error) {
	if c.Tokens.Dir != "" {
		return c.Tokens.Dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve token dir: %w", err)
	}
	return filepath.Join(base, "stockmanager"), nil
}
