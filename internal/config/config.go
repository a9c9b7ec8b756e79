package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Hermes        HermesConfig        `yaml:"hermes"`
	Model         ModelConfig         `yaml:"model"`
	Recalculation RecalculationConfig `yaml:"recalculation"`
	Logging       LoggingConfig       `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
	// RateLimit is the per-client request budget per minute. Zero disables limiting.
	RateLimit int `yaml:"rate_limit"`
}

// DatabaseConfig selects the store. An empty URL keeps everything in memory.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

// ModelConfig seeds the funding model weights until an operator saves new ones.
type ModelConfig struct {
	WeightEducation   float64 `yaml:"weight_education"`
	WeightNormative   float64 `yaml:"weight_normative"`
	WeightResearch    float64 `yaml:"weight_research"`
	TotalSystemBudget float64 `yaml:"total_system_budget"`
	TotalSystemPoints float64 `yaml:"total_system_points"`
}

type RecalculationConfig struct {
	Enabled bool `yaml:"enabled"`
	// DebounceMs coalesces bursts of change events for the same university.
	DebounceMs int `yaml:"debounce_ms"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Recalculation.DebounceMs) * time.Millisecond
}

// LogLevel maps the configured level name to slog. Unknown names fall back to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
			RateLimit:   600,
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Model: ModelConfig{
			WeightEducation:   0.45,
			WeightNormative:   0.50,
			WeightResearch:    0.05,
			TotalSystemBudget: 50_000_000_000,
			TotalSystemPoints: 1_500_000,
		},
		Recalculation: RecalculationConfig{
			Enabled:    true,
			DebounceMs: 250,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ALLOCATOR_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("ALLOCATOR_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("ALLOCATOR_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimit = n
		}
	}
	if v := os.Getenv("ALLOCATOR_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("ALLOCATOR_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("ALLOCATOR_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	parseFloatEnv("ALLOCATOR_WEIGHT_EDUCATION", &cfg.Model.WeightEducation)
	parseFloatEnv("ALLOCATOR_WEIGHT_NORMATIVE", &cfg.Model.WeightNormative)
	parseFloatEnv("ALLOCATOR_WEIGHT_RESEARCH", &cfg.Model.WeightResearch)
	if v := os.Getenv("ALLOCATOR_TOTAL_SYSTEM_BUDGET"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Model.TotalSystemBudget = f
		}
	}
	if v := os.Getenv("ALLOCATOR_TOTAL_SYSTEM_POINTS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Model.TotalSystemPoints = f
		}
	}
	if v := os.Getenv("ALLOCATOR_RECALCULATION_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Recalculation.Enabled = b
		}
	}
	if v := os.Getenv("ALLOCATOR_DEBOUNCE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Recalculation.DebounceMs = n
		}
	}
	if v := os.Getenv("ALLOCATOR_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func parseFloatEnv(key string, dst *float64) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
