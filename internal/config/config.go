package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreSQLite   = "sqlite"
)

const envDevelopment = "development"

// Config aggregates runtime configuration for the service. Fields are filled by
// envconfig from their `envconfig` and `default` tags rather than per-field getEnv
// helpers, so a setting's env name and default live next to its declaration.
type Config struct {
	App      AppConfig
	Store    StoreConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	SQLite   SQLiteConfig
	Logger   LoggerConfig
	CORS     CORSConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name    string `envconfig:"APP_NAME" default:"staffing-api"`
	Env     string `envconfig:"APP_ENV" default:"production"`
	Host    string `envconfig:"APP_HOST" default:"0.0.0.0"`
	Port    string `envconfig:"PORT" default:"3000"`
	Version string `envconfig:"APP_VERSION" default:"dev"`
}

// StoreConfig selects the record store backend.
type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"memory"`
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN             string        `envconfig:"POSTGRES_DSN"`
	Password        string        `envconfig:"POSTGRES_PASSWORD"`
	MaxConns        int32         `envconfig:"POSTGRES_MAX_CONNS" default:"10"`
	MinConns        int32         `envconfig:"POSTGRES_MIN_CONNS" default:"2"`
	RunMigrations   bool          `envconfig:"POSTGRES_RUN_MIGRATIONS" default:"true"`
	ConnMaxIdleTime time.Duration `envconfig:"POSTGRES_CONN_MAX_IDLE_TIME" default:"30s"`
	ConnMaxLifetime time.Duration `envconfig:"POSTGRES_CONN_MAX_LIFETIME" default:"5m"`
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr      string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	Password  string `envconfig:"REDIS_PASSWORD"`
	DB        int    `envconfig:"REDIS_DB" default:"0"`
	KeyPrefix string `envconfig:"REDIS_KEY_PREFIX" default:"staffing"`
}

// SQLiteConfig points at the local database file.
type SQLiteConfig struct {
	Path string `envconfig:"SQLITE_PATH" default:"staffing.db"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// CORSConfig lists the origins allowed to call the API.
type CORSConfig struct {
	AllowOrigins string `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
}

// Load reads configuration from the environment (and an optional .env file), applying defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case StoreMemory, StoreRedis:
	case StorePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when STORE_DRIVER=%s", StorePostgres)
		}
	case StoreSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("SQLITE_PATH is required when STORE_DRIVER=%s", StoreSQLite)
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// IsDevelopment reports whether internal error detail may be exposed to clients.
func (a AppConfig) IsDevelopment() bool {
	return strings.EqualFold(a.Env, envDevelopment)
}
