package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type Config struct {
	Port              string        `mapstructure:"PORT"`
	Env               string        `mapstructure:"ENV"`
	StoreBackend      string        `mapstructure:"STORE_BACKEND"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DBMaxConns        int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns        int32         `mapstructure:"DB_MIN_CONNS"`
	RedisURL          string        `mapstructure:"REDIS_URL"`
	RedisHashKey      string        `mapstructure:"REDIS_HASH_KEY"`
	SQLitePath        string        `mapstructure:"SQLITE_PATH"`
	CatalogFile       string        `mapstructure:"CATALOG_FILE"`
	AdminPassword     string        `mapstructure:"ADMIN_PASSWORD"`
	AdminPasswordHash string        `mapstructure:"ADMIN_PASSWORD_HASH"`
	AdminTokenSecret  string        `mapstructure:"ADMIN_TOKEN_SECRET"`
	AdminTokenTTL     time.Duration `mapstructure:"ADMIN_TOKEN_TTL"`
	StoreTimeout      time.Duration `mapstructure:"STORE_TIMEOUT"`
	RequestTimeout    time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	CORSOrigins       []string      `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS      float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst    int           `mapstructure:"RATE_LIMIT_BURST"`
}

var envKeys = []string{
	"PORT", "ENV", "STORE_BACKEND",
	"DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS",
	"REDIS_URL", "REDIS_HASH_KEY", "SQLITE_PATH", "CATALOG_FILE",
	"ADMIN_PASSWORD", "ADMIN_PASSWORD_HASH", "ADMIN_TOKEN_SECRET", "ADMIN_TOKEN_TTL",
	"STORE_TIMEOUT", "REQUEST_TIMEOUT", "CORS_ORIGINS",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
}

// Load reads .env (if present) and the environment. Environment variables
// win over the file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 1)
	v.SetDefault("REDIS_HASH_KEY", "icu_beds")
	v.SetDefault("SQLITE_PATH", "data/bedboard.db")
	v.SetDefault("ADMIN_TOKEN_TTL", "8h")
	v.SetDefault("STORE_TIMEOUT", "5s")
	v.SetDefault("REQUEST_TIMEOUT", "15s")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)

	for _, k := range envKeys {
		_ = v.BindEnv(k)
	}

	// A missing .env is fine.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.CORSOrigins = splitList(strings.Join(cfg.CORSOrigins, ","))
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	if cfg.StoreBackend == "" && cfg.IsDev() {
		cfg.StoreBackend = BackendMemory
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// HasAdminCredential reports whether any admin login is configured.
func (c *Config) HasAdminCredential() bool {
	return c.AdminPassword != "" || c.AdminPasswordHash != ""
}

// TokensEnabled reports whether admin session tokens can be issued.
func (c *Config) TokensEnabled() bool {
	return c.AdminTokenSecret != ""
}

// Validate checks the configuration before anything is opened. Outside
// development a store backend and an admin credential must be configured.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory, BackendSQLite:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when STORE_BACKEND is %q", BackendRedis)
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_BACKEND is %q", BackendPostgres)
		}
	case "":
		return fmt.Errorf("STORE_BACKEND is required when ENV=%q", c.Env)
	default:
		return fmt.Errorf("STORE_BACKEND must be one of memory, redis, postgres, sqlite; got %q", c.StoreBackend)
	}

	if c.IsProduction() && c.StoreBackend == BackendMemory {
		return fmt.Errorf("STORE_BACKEND=memory loses every update on restart and is not allowed in production")
	}
	if !c.IsDev() && !c.HasAdminCredential() {
		return fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required when ENV=%q", c.Env)
	}
	if c.AdminTokenSecret != "" && len(c.AdminTokenSecret) < 32 {
		return fmt.Errorf("ADMIN_TOKEN_SECRET must be at least 32 bytes, got %d", len(c.AdminTokenSecret))
	}
	if c.AdminTokenSecret != "" && c.AdminTokenTTL <= 0 {
		return fmt.Errorf("ADMIN_TOKEN_TTL must be positive")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}
