// Package config loads the engine's configuration from YAML and
// environment overrides via Viper, in the style of the pack's
// Redis/config.go: one Config struct, a defaultConfig(), and a Load that
// layers env over file over defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Oracle configures the external travel-time provider.
type Oracle struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Cache configures the Redis-backed travel-time cache.
type Cache struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Solver configures the CP-VRP solver driver.
type Solver struct {
	Budget time.Duration `mapstructure:"budget"`
}

// Storage configures the technician/catchment SQLite repositories.
type Storage struct {
	DSN string `mapstructure:"dsn"`
}

// Server configures the thin HTTP adapter.
type Server struct {
	Addr        string `mapstructure:"addr"`
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// Observability configures ambient logging.
type Observability struct {
	LogLevel string `mapstructure:"log_level"`
}

// Config is the engine's full runtime configuration.
type Config struct {
	Oracle        Oracle        `mapstructure:"oracle"`
	Cache         Cache         `mapstructure:"cache"`
	Solver        Solver        `mapstructure:"solver"`
	Storage       Storage       `mapstructure:"storage"`
	Server        Server        `mapstructure:"server"`
	Observability Observability `mapstructure:"observability"`
}

func defaultConfig() *Config {
	return &Config{
		Oracle: Oracle{
			BaseURL: "http://localhost:8081",
			Timeout: 10 * time.Second,
		},
		Cache: Cache{
			Addr: "localhost:6379",
			DB:   0,
			TTL:  1 * time.Hour,
		},
		Solver: Solver{
			Budget: 30 * time.Second,
		},
		Storage: Storage{
			DSN: "file:phleb-router.db?cache=shared",
		},
		Server: Server{
			Addr:        ":8080",
			MetricsAddr: ":9090",
		},
		Observability: Observability{
			LogLevel: "info",
		},
	}
}

// Load reads configuration from the YAML file at path, layering env
// overrides (upper-cased, "." replaced by "_") and falling back to
// defaults where neither is set. A missing path is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := defaultConfig()
	v.SetDefault("oracle.base_url", def.Oracle.BaseURL)
	v.SetDefault("oracle.timeout", def.Oracle.Timeout)
	v.SetDefault("cache.addr", def.Cache.Addr)
	v.SetDefault("cache.password", def.Cache.Password)
	v.SetDefault("cache.db", def.Cache.DB)
	v.SetDefault("cache.ttl", def.Cache.TTL)
	v.SetDefault("solver.budget", def.Solver.Budget)
	v.SetDefault("storage.dsn", def.Storage.DSN)
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("server.metrics_addr", def.Server.MetricsAddr)
	v.SetDefault("observability.log_level", def.Observability.LogLevel)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks config invariants the engine depends on.
func Validate(cfg *Config) error {
	if cfg.Solver.Budget <= 0 {
		return fmt.Errorf("solver.budget must be > 0")
	}
	if cfg.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0")
	}
	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr must be set")
	}
	return nil
}
