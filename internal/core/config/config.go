package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pulseboard-lab/pulseboard/internal/core/analytics"
)

// Config represents the top-level application config plus resolved panel config.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Analytics AnalyticsConfig `koanf:"analytics"`

	// Panels is populated by Load after parsing panel files.
	Panels []analytics.RankedPanel `koanf:"-"`
}

type ServerConfig struct {
	Port          int    `koanf:"port"`
	Host          string `koanf:"host"`
	MaxBodySizeMB int    `koanf:"max_body_size_mb"`
	Mode          string `koanf:"mode"` // debug | release
}

type DatabaseConfig struct {
	Type         string `koanf:"type"`
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

type AnalyticsConfig struct {
	PanelDir        string `koanf:"panel_dir"`
	RefreshInterval string `koanf:"refresh_interval"` // parsed and validated on startup
	ColorMode       string `koanf:"color_mode"`       // hash | random
	MonthFormat     string `koanf:"month_format"`     // year_month | month
}

// Month bucket formats accepted in analytics.month_format.
const (
	MonthFormatYearMonth = "year_month"
	MonthFormatMonth     = "month"
)

// MonthLabeler resolves the configured month-bucket labeling strategy.
func (c AnalyticsConfig) MonthLabeler() analytics.MonthLabeler {
	if c.MonthFormat == MonthFormatMonth {
		return analytics.MonthOnly
	}
	return analytics.YearMonth
}

// ColorAssigner resolves the configured series color strategy.
func (c AnalyticsConfig) ColorAssigner() analytics.ColorAssigner {
	if c.ColorMode == analytics.ColorModeRandom {
		return analytics.NewRandomColors(time.Now().UnixNano())
	}
	return analytics.HashColors{}
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be > 0")
	}
	if c.Database.MaxIdleConns <= 0 {
		return fmt.Errorf("database.max_idle_conns must be > 0")
	}
	if c.Database.Type != "" && c.Database.Type != "postgres" {
		return fmt.Errorf("unsupported database.type %q", c.Database.Type)
	}

	interval, err := time.ParseDuration(c.Analytics.RefreshInterval)
	if err != nil {
		return fmt.Errorf("invalid analytics.refresh_interval %q: %w", c.Analytics.RefreshInterval, err)
	}
	if interval <= 0 {
		return fmt.Errorf("analytics.refresh_interval must be > 0")
	}
	if c.Analytics.ColorMode != analytics.ColorModeHash && c.Analytics.ColorMode != analytics.ColorModeRandom {
		return fmt.Errorf("invalid analytics.color_mode %q (must be hash or random)", c.Analytics.ColorMode)
	}
	if c.Analytics.MonthFormat != MonthFormatYearMonth && c.Analytics.MonthFormat != MonthFormatMonth {
		return fmt.Errorf("invalid analytics.month_format %q (must be year_month or month)", c.Analytics.MonthFormat)
	}

	return nil
}

// Load parses config from file + env, validates it, then loads and validates ranked panels.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":                8080,
		"server.host":                "0.0.0.0",
		"server.max_body_size_mb":    1,
		"server.mode":                "release",
		"database.type":              "postgres",
		"database.dsn":               "",
		"database.max_open_conns":    25,
		"database.max_idle_conns":    25,
		"database.auto_migrate":      true,
		"analytics.panel_dir":        "./config/panels",
		"analytics.refresh_interval": "1m",
		"analytics.color_mode":       analytics.ColorModeHash,
		"analytics.month_format":     MonthFormatYearMonth,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("PULSEBOARD_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "PULSEBOARD_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	repo, err := analytics.NewFileSystemPanelRepository(cfg.Analytics.PanelDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load ranked panels: %w", err)
	}
	cfg.Panels = repo.Panels()

	return &cfg, nil
}
