// Package config loads the service configuration from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Shop      ShopConfig      `yaml:"shop"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	SecureCookies   bool          `yaml:"secure_cookies"`
}

// StorageConfig selects where carts are persisted.
type StorageConfig struct {
	Driver     string      `yaml:"driver"`
	KeyPrefix  string      `yaml:"key_prefix"`
	SQLitePath string      `yaml:"sqlite_path"`
	DSN        string      `yaml:"dsn"`
	Migrate    bool        `yaml:"migrate"`
	Redis      RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr        string        `yaml:"addr"`
	Username    string        `yaml:"username"`
	Password    string        `yaml:"password"`
	DB          int           `yaml:"db"`
	MaxRetries  int           `yaml:"max_retries"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
	Timeout     time.Duration `yaml:"timeout"`
}

type ShopConfig struct {
	Name           string `yaml:"name"`
	WhatsAppNumber string `yaml:"whatsapp_number"`
	ContactEmail   string `yaml:"contact_email"`
	MPAlias        string `yaml:"mp_alias"`
	CuentaDNIAlias string `yaml:"cuenta_dni_alias"`
	Currency       string `yaml:"currency"`
	// CatalogPath replaces the built-in catalog when set.
	CatalogPath string `yaml:"catalog_path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type TelemetryConfig struct {
	ServiceName      string  `yaml:"service_name"`
	Environment      string  `yaml:"environment"`
	OTLPEndpoint     string  `yaml:"otlp_endpoint"`
	OTLPInsecure     bool    `yaml:"otlp_insecure"`
	TracesEnabled    bool    `yaml:"traces_enabled"`
	MetricsEnabled   bool    `yaml:"metrics_enabled"`
	TraceSampleRatio float64 `yaml:"trace_sample_ratio"`
	MetricsPath      string  `yaml:"metrics_path"`
}

// Load reads path (or CONFIG_PATH, or config.yaml). A missing file is not an error:
// defaults and environment overrides still apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config.yaml"
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	}

	applyEnv(&cfg)
	normalize(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Driver:     DriverSQLite,
			KeyPrefix:  "cv_cart",
			SQLitePath: "data/cvshop.db",
			Migrate:    true,
			Redis: RedisConfig{
				Addr:        "localhost:6379",
				MaxRetries:  3,
				DialTimeout: 5 * time.Second,
				Timeout:     3 * time.Second,
			},
		},
		Shop: ShopConfig{
			Name:           "CV Accesorios",
			WhatsAppNumber: "+5492494618560",
			ContactEmail:   "jonalippo@gmail.com",
			MPAlias:        "cv.accesorios.mp",
			CuentaDNIAlias: "cv.accesorios.dni",
			Currency:       "ARS",
		},
		Log: LogConfig{
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			ServiceName:      "cvshop",
			Environment:      "local",
			OTLPEndpoint:     "localhost:4318",
			OTLPInsecure:     true,
			TracesEnabled:    false,
			MetricsEnabled:   true,
			TraceSampleRatio: 1.0,
			MetricsPath:      "/metrics",
		},
	}
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite, DriverRedis:
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for driver %q", DriverPostgres)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Shop.WhatsAppNumber == "" {
		return fmt.Errorf("shop.whatsapp_number is required")
	}

	return nil
}

func applyEnv(cfg *Config) {
	overrides := map[string]*string{
		"CVSHOP_HTTP_ADDR":       &cfg.Server.Addr,
		"CVSHOP_STORAGE_DRIVER":  &cfg.Storage.Driver,
		"CVSHOP_STORAGE_DSN":     &cfg.Storage.DSN,
		"CVSHOP_SQLITE_PATH":     &cfg.Storage.SQLitePath,
		"CVSHOP_REDIS_ADDR":      &cfg.Storage.Redis.Addr,
		"CVSHOP_REDIS_PASSWORD":  &cfg.Storage.Redis.Password,
		"CVSHOP_WHATSAPP_NUMBER": &cfg.Shop.WhatsAppNumber,
		"CVSHOP_LOG_LEVEL":       &cfg.Log.Level,
	}

	for env, target := range overrides {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*target = v
		}
	}
}

func normalize(cfg *Config) {
	d := Default()

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = d.Server.Addr
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = d.Server.ReadTimeout
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = d.Server.WriteTimeout
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = d.Server.IdleTimeout
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = d.Storage.Driver
	}
	if cfg.Storage.KeyPrefix == "" {
		cfg.Storage.KeyPrefix = d.Storage.KeyPrefix
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = d.Storage.SQLitePath
	}
	if cfg.Shop.Currency == "" {
		cfg.Shop.Currency = d.Shop.Currency
	}
	if cfg.Shop.Name == "" {
		cfg.Shop.Name = d.Shop.Name
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = d.Log.Level
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = d.Telemetry.ServiceName
	}
	if cfg.Telemetry.OTLPEndpoint == "" {
		cfg.Telemetry.OTLPEndpoint = d.Telemetry.OTLPEndpoint
	}
	if cfg.Telemetry.TraceSampleRatio <= 0 || cfg.Telemetry.TraceSampleRatio > 1 {
		cfg.Telemetry.TraceSampleRatio = 1.0
	}
	if cfg.Telemetry.MetricsPath == "" {
		cfg.Telemetry.MetricsPath = d.Telemetry.MetricsPath
	}
}
