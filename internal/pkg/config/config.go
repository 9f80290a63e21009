package config

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Store   StoreConfig
	Feed    FeedConfig

	NotifyBuffer int `env:"NOTIFY_BUFFER, default=32"`
}

type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=http://localhost:8000"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=10s"`
}

type StoreConfig struct {
	Driver         string `env:"STORE_DRIVER,    default=sqlite"`
	PersistWorkers int    `env:"PERSIST_WORKERS, default=4"`

	SQLite SQLiteConfig
	Mongo  MongoConfig
	Redis  RedisConfig
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=./storefront.db"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=storefront"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
	Prefix   string `env:"REDIS_PREFIX,   default=storefront"`
}

type FeedConfig struct {
	PollInterval time.Duration `env:"ORDER_POLL_INTERVAL, default=15s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadContext(context.Background(), nil)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadContext reads and validates the configuration. A nil lookuper reads
// the process environment.
func LoadContext(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	ec := &envconfig.Config{Target: &cfg}
	if lookuper != nil {
		ec.Lookuper = lookuper
	}
	if err := envconfig.ProcessWith(ctx, ec); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite, DriverRedis, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if u, err := url.Parse(c.Backend.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: invalid BACKEND_URL %q", c.Backend.URL)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("config: BACKEND_TIMEOUT must be positive")
	}
	if c.Feed.PollInterval <= 0 {
		return fmt.Errorf("config: ORDER_POLL_INTERVAL must be positive")
	}
	if c.Store.PersistWorkers <= 0 {
		return fmt.Errorf("config: PERSIST_WORKERS must be positive")
	}
	if c.NotifyBuffer <= 0 {
		return fmt.Errorf("config: NOTIFY_BUFFER must be positive")
	}
	return nil
}

// IsDevelopment reports whether logs should be human readable.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev" || c.Env == "local"
}
