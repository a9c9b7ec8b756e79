package config

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envVars = []string{
	"ALLOCATOR_PORT", "ALLOCATOR_METRICS_PORT", "ALLOCATOR_ADMIN_TOKEN",
	"ALLOCATOR_DATABASE_URL", "ALLOCATOR_HERMES_URL", "ALLOCATOR_TOTAL_SYSTEM_BUDGET",
	"ALLOCATOR_TOTAL_SYSTEM_POINTS", "ALLOCATOR_RECALCULATION_ENABLED", "ALLOCATOR_DEBOUNCE_MS",
	"ALLOCATOR_LOG_LEVEL", "ALLOCATOR_RATE_LIMIT", "ALLOCATOR_WEIGHT_EDUCATION",
	"ALLOCATOR_WEIGHT_NORMATIVE", "ALLOCATOR_WEIGHT_RESEARCH",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.RateLimit != 600 {
		t.Errorf("expected rate limit 600, got %d", cfg.Server.RateLimit)
	}
	if cfg.Database.URL != "" {
		t.Errorf("expected empty database URL, got %s", cfg.Database.URL)
	}
	if cfg.Hermes.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Hermes.URL)
	}
	if !cfg.Recalculation.Enabled {
		t.Error("expected recalculation enabled by default")
	}
	if cfg.Debounce() != 250*time.Millisecond {
		t.Errorf("expected debounce 250ms, got %v", cfg.Debounce())
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}

	m := cfg.Model
	if sum := m.WeightEducation + m.WeightNormative + m.WeightResearch; math.Abs(sum-1.0) > 0.001 {
		t.Errorf("model weights sum to %f, expected 1.0", sum)
	}
	if m.TotalSystemBudget != 50_000_000_000 {
		t.Errorf("expected budget 5e10, got %f", m.TotalSystemBudget)
	}
	if m.TotalSystemPoints != 1_500_000 {
		t.Errorf("expected system points 1.5e6, got %f", m.TotalSystemPoints)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "allocator.yaml")
	data := []byte(`
server:
  port: 9100
database:
  url: postgres://localhost/allocator
model:
  weight_education: 0.40
  weight_normative: 0.55
  weight_research: 0.05
recalculation:
  enabled: false
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("expected port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("unset keys should keep defaults, got metrics port %d", cfg.Server.MetricsPort)
	}
	if cfg.Database.URL != "postgres://localhost/allocator" {
		t.Errorf("expected database URL, got '%s'", cfg.Database.URL)
	}
	if cfg.Model.WeightEducation != 0.40 || cfg.Model.TotalSystemPoints != 1_500_000 {
		t.Errorf("unexpected model config %+v", cfg.Model)
	}
	if cfg.Recalculation.Enabled {
		t.Error("expected recalculation disabled")
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ALLOCATOR_PORT", "9000")
	t.Setenv("ALLOCATOR_METRICS_PORT", "9001")
	t.Setenv("ALLOCATOR_ADMIN_TOKEN", "secret-token")
	t.Setenv("ALLOCATOR_DATABASE_URL", "postgres://localhost/allocator_test")
	t.Setenv("ALLOCATOR_HERMES_URL", "nats://nats:4222")
	t.Setenv("ALLOCATOR_TOTAL_SYSTEM_BUDGET", "1000000")
	t.Setenv("ALLOCATOR_TOTAL_SYSTEM_POINTS", "99000")
	t.Setenv("ALLOCATOR_RECALCULATION_ENABLED", "false")
	t.Setenv("ALLOCATOR_DEBOUNCE_MS", "0")
	t.Setenv("ALLOCATOR_LOG_LEVEL", "debug")
	t.Setenv("ALLOCATOR_RATE_LIMIT", "0")
	t.Setenv("ALLOCATOR_WEIGHT_EDUCATION", "0.30")
	t.Setenv("ALLOCATOR_WEIGHT_NORMATIVE", "0.60")
	t.Setenv("ALLOCATOR_WEIGHT_RESEARCH", "0.10")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9001 {
		t.Errorf("expected metrics port 9001, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.AdminToken != "secret-token" {
		t.Errorf("expected admin token 'secret-token', got '%s'", cfg.Server.AdminToken)
	}
	if cfg.Database.URL != "postgres://localhost/allocator_test" {
		t.Errorf("expected database URL, got '%s'", cfg.Database.URL)
	}
	if cfg.Hermes.URL != "nats://nats:4222" {
		t.Errorf("expected hermes URL, got '%s'", cfg.Hermes.URL)
	}
	if cfg.Model.TotalSystemBudget != 1_000_000 || cfg.Model.TotalSystemPoints != 99_000 {
		t.Errorf("unexpected model overrides %+v", cfg.Model)
	}
	if cfg.Model.WeightEducation != 0.30 || cfg.Model.WeightNormative != 0.60 || cfg.Model.WeightResearch != 0.10 {
		t.Errorf("expected block weights from env, got %+v", cfg.Model)
	}
	if cfg.Server.RateLimit != 0 {
		t.Errorf("expected rate limiting disabled, got %d", cfg.Server.RateLimit)
	}
	if cfg.Recalculation.Enabled {
		t.Error("expected recalculation disabled")
	}
	if cfg.Debounce() != 0 {
		t.Errorf("expected zero debounce, got %v", cfg.Debounce())
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got '%s'", cfg.Logging.Level)
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := &Config{Logging: LoggingConfig{Level: tt.level}}
		if got := cfg.LogLevel(); got != tt.want {
			t.Errorf("LogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestLoadIgnoresMalformedWeightEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOCATOR_WEIGHT_RESEARCH", "lots")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Model.WeightResearch != 0.05 {
		t.Errorf("malformed value should keep the default, got %f", cfg.Model.WeightResearch)
	}
}
