package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	DefaultAddr      = "127.0.0.1:3000"
	DefaultStaticDir = "web"
	DefaultMaxConns  = 10
)

type Config struct {
	DatabaseURL string `toml:"database_url"`
	StaticDir   string `toml:"static_dir"`
	Addr        string `toml:"addr"`
	MaxConns    int    `toml:"max_conns"`
	AutoMigrate bool   `toml:"auto_migrate"`
	Store       string `toml:"store"`
	LogLevel    string `toml:"log_level"`
	LogFormat   string `toml:"log_format"`
}

func Default() *Config {
	return &Config{
		StaticDir:   DefaultStaticDir,
		Addr:        DefaultAddr,
		MaxConns:    DefaultMaxConns,
		AutoMigrate: true,
		Store:       StorePostgres,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Load layers the defaults, the TOML file named by TODO_CONFIG, a .env file
// and the process environment, later sources winning.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("TODO_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		cfg.StaticDir = v
	}
	if v := os.Getenv("ADDR"); v != "" {
		cfg.Addr = v
	} else if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	if v := os.Getenv("DB_MAX_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DB_MAX_CONNS: %w", err)
		}
		cfg.MaxConns = n
	}
	if v := os.Getenv("AUTO_MIGRATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("AUTO_MIGRATE: %w", err)
		}
		cfg.AutoMigrate = b
	}
	if v := os.Getenv("STORE"); v != "" {
		cfg.Store = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Store {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL environment variable is required")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.MaxConns < 1 {
		return fmt.Errorf("max connections must be positive, got %d", c.MaxConns)
	}
	if c.Addr == "" {
		return errors.New("listen address is empty")
	}
	return nil
}
