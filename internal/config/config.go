// Package config loads the service configuration from an optional YAML file
// and environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"crm/internal/util"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

const defaultFlushSchedule = "*/5 * * * *"

// Storage selects and configures the snapshot backend.
type Storage struct {
	Driver         string `yaml:"driver"`
	SQLitePath     string `yaml:"sqlite_path"`
	RedisAddr      string `yaml:"redis_addr"`
	RedisPassword  string `yaml:"redis_password"`
	RedisDB        int    `yaml:"redis_db"`
	KeyPrefix      string `yaml:"key_prefix"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Config is the full service configuration.
type Config struct {
	Addr          string  `yaml:"addr"`
	StaticDir     string  `yaml:"static_dir"`
	LogLevel      string  `yaml:"log_level"`
	Seed          bool    `yaml:"seed"`
	FlushSchedule string  `yaml:"flush_schedule"`
	Storage       Storage `yaml:"storage"`
}

// Timeout returns the per-call storage timeout.
func (s Storage) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Load reads path when it exists, then applies environment overrides and
// defaults. An empty path falls back to CRM_CONFIG, then config.yaml.
func Load(path string) (Config, error) {
	cfg := Config{Seed: true}

	if path == "" {
		path = util.EnvOrDefault("CRM_CONFIG", "config.yaml")
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	util.OverrideString(&cfg.Addr, "CRM_ADDR")
	util.OverrideString(&cfg.StaticDir, "CRM_STATIC_DIR")
	util.OverrideString(&cfg.LogLevel, "CRM_LOG_LEVEL")
	util.OverrideString(&cfg.FlushSchedule, "CRM_FLUSH_SCHEDULE")
	util.OverrideString(&cfg.Storage.Driver, "CRM_STORAGE_DRIVER")
	util.OverrideString(&cfg.Storage.SQLitePath, "CRM_DB_PATH")
	util.OverrideString(&cfg.Storage.RedisAddr, "CRM_REDIS_ADDR")
	util.OverrideString(&cfg.Storage.RedisPassword, "CRM_REDIS_PASSWORD")
	util.OverrideString(&cfg.Storage.KeyPrefix, "CRM_REDIS_PREFIX")
	if err := util.OverrideInt(&cfg.Storage.RedisDB, "CRM_REDIS_DB"); err != nil {
		return Config{}, err
	}
	if err := util.OverrideInt(&cfg.Storage.TimeoutSeconds, "CRM_STORAGE_TIMEOUT_SECONDS"); err != nil {
		return Config{}, err
	}
	if err := util.OverrideBool(&cfg.Seed, "CRM_SEED"); err != nil {
		return Config{}, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.StaticDir == "" {
		c.StaticDir = "web/dist"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.FlushSchedule == "" {
		c.FlushSchedule = defaultFlushSchedule
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverSQLite
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = "data/crm.db"
	}
	if c.Storage.RedisAddr == "" {
		c.Storage.RedisAddr = "localhost:6379"
	}
	if c.Storage.TimeoutSeconds <= 0 {
		c.Storage.TimeoutSeconds = 5
	}
}

// Validate rejects unknown drivers, log levels and malformed schedules.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if _, err := ParseSchedule(c.FlushSchedule); err != nil {
		return fmt.Errorf("invalid flush_schedule %q: %w", c.FlushSchedule, err)
	}
	return nil
}

// ParseSchedule parses a standard 5-field cron expression.
func ParseSchedule(spec string) (cron.Schedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	return parser.Parse(strings.TrimSpace(spec))
}
