// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Supported catalog sources.
const (
	CatalogSourcePostgres = "postgres"
	CatalogSourceHTTP     = "http"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Catalog       CatalogConfig       `yaml:"catalog"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig selects and configures the alert store.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // postgres, mongo, memory
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
	MongoURI string `yaml:"mongo_uri"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// CatalogConfig defines where server offers and prices are read from.
type CatalogConfig struct {
	Source    string          `yaml:"source"` // postgres, http
	BaseURL   string          `yaml:"base_url"`
	DSN       string          `yaml:"dsn"`
	CacheTTL  time.Duration   `yaml:"cache_ttl"`
	Timeout   time.Duration   `yaml:"timeout"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// VerifyServices makes subscribe reject services missing from the catalog.
	// Defaults to true.
	VerifyServices *bool `yaml:"verify_services"`
}

// RateLimitConfig defines client-side request rate limiting.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// ScheduleConfig defines cron intervals.
type ScheduleConfig struct {
	PriceCheckInterval time.Duration `yaml:"price_check_interval"`
}

// NotificationsConfig defines notification targets and delivery limits.
type NotificationsConfig struct {
	Discord     DiscordConfig `yaml:"discord"`
	Kafka       KafkaConfig   `yaml:"kafka"`
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`
}

// DiscordConfig defines Discord bot direct message settings.
type DiscordConfig struct {
	Enabled   bool            `yaml:"enabled"`
	BotToken  string          `yaml:"bot_token"`
	APIBase   string          `yaml:"api_base"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// KafkaConfig defines the alert event topic settings.
type KafkaConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// TelemetryConfig defines OpenTelemetry export settings.
type TelemetryConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Endpoint      string  `yaml:"endpoint"`
	Insecure      bool    `yaml:"insecure"`
	ServiceName   string  `yaml:"service_name"`
	SampleRatio   float64 `yaml:"sample_ratio"`
	ExportMetrics bool    `yaml:"export_metrics"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// LoadEnvFiles loads KEY=value pairs from the given .env files into the
// process environment. Missing files are skipped; variables already set win.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading env file %s: %w", p, err)
		}
	}
	return nil
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyCatalogDefaults(&cfg.Catalog)
	applyScheduleDefaults(&cfg.Schedule)
	applyNotificationDefaults(&cfg.Notifications)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Driver == "" {
		d.Driver = DriverPostgres
	}
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyCatalogDefaults(c *CatalogConfig) {
	if c.Source == "" {
		c.Source = CatalogSourcePostgres
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.Timeout == 0 {
		c.Timeout = 15 * time.Second
	}
	if c.RateLimit.PerSecond == 0 {
		c.RateLimit.PerSecond = 5
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
	if c.VerifyServices == nil {
		verify := true
		c.VerifyServices = &verify
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.PriceCheckInterval == 0 {
		s.PriceCheckInterval = 10 * time.Minute
	}
}

func applyNotificationDefaults(n *NotificationsConfig) {
	if n.Concurrency == 0 {
		n.Concurrency = 8
	}
	if n.Timeout == 0 {
		n.Timeout = 10 * time.Second
	}
	if n.Discord.APIBase == "" {
		n.Discord.APIBase = "https://discord.com/api/v10"
	}
	if n.Discord.RateLimit.PerSecond == 0 {
		n.Discord.RateLimit.PerSecond = 5
	}
	if n.Discord.RateLimit.Burst == 0 {
		n.Discord.RateLimit.Burst = 5
	}
	if n.Kafka.Topic == "" {
		n.Kafka.Topic = "price-alerts"
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.ServiceName == "" {
		t.ServiceName = "server-price-alerts"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1.0
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	switch cfg.Database.Driver {
	case DriverPostgres:
		if cfg.Database.Host == "" {
			errs = append(errs, fmt.Errorf("database.host is required"))
		}
		if cfg.Database.Name == "" {
			errs = append(errs, fmt.Errorf("database.name is required"))
		}
		if cfg.Database.User == "" {
			errs = append(errs, fmt.Errorf("database.user is required"))
		}
	case DriverMongo:
		if cfg.Database.MongoURI == "" {
			errs = append(errs, fmt.Errorf("database.mongo_uri is required when driver is mongo"))
		}
		if cfg.Database.Name == "" {
			errs = append(errs, fmt.Errorf("database.name is required"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf(
			"database.driver must be one of: postgres, mongo, memory (got %q)",
			cfg.Database.Driver,
		))
	}

	switch cfg.Catalog.Source {
	case CatalogSourcePostgres:
		if cfg.Catalog.DSN == "" && cfg.Database.Driver != DriverPostgres {
			errs = append(errs, fmt.Errorf(
				"catalog.dsn is required when catalog.source is postgres and database.driver is %s",
				cfg.Database.Driver,
			))
		}
	case CatalogSourceHTTP:
		if cfg.Catalog.BaseURL == "" {
			errs = append(errs, fmt.Errorf("catalog.base_url is required when source is http"))
		}
	default:
		errs = append(errs, fmt.Errorf(
			"catalog.source must be one of: postgres, http (got %q)",
			cfg.Catalog.Source,
		))
	}

	if cfg.Schedule.PriceCheckInterval < time.Minute {
		errs = append(errs, fmt.Errorf(
			"schedule.price_check_interval must be at least 1m (got %s)",
			cfg.Schedule.PriceCheckInterval,
		))
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.BotToken == "" {
		errs = append(errs, fmt.Errorf("notifications.discord.bot_token is required when discord is enabled"))
	}
	if cfg.Notifications.Kafka.Enabled && len(cfg.Notifications.Kafka.Brokers) == 0 {
		errs = append(errs, fmt.Errorf("notifications.kafka.brokers is required when kafka is enabled"))
	}

	if r := cfg.Telemetry.SampleRatio; r < 0 || r > 1 {
		errs = append(errs, fmt.Errorf("telemetry.sample_ratio must be between 0 and 1 (got %g)", r))
	}

	return errors.Join(errs...)
}
