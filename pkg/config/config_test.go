package config

import (
    "os"
    "path/filepath"
    "testing"
)

const validYAML = `
environment: test
server:
  port: 8080
gamma:
  base_url: https://gamma-api.polymarket.com
  limit: 25
analyzer:
  min_score: 50
  min_confidence: 60
sink:
  type: file
  dir: data
`

func writeConfig(t *testing.T, body string) string {
    t.Helper()
    path := filepath.Join(t.TempDir(), "config.yaml")
    if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
        t.Fatal(err)
    }
    return path
}

func TestLoadValid(t *testing.T) {
    cfg, err := Load(writeConfig(t, validYAML))
    if err != nil {
        t.Fatalf("load: %v", err)
    }
    if cfg.Gamma.Limit != 25 {
        t.Errorf("expected gamma limit 25, got %d", cfg.Gamma.Limit)
    }
    if cfg.Analyzer.MaxSignals != 5 {
        t.Errorf("expected default max_signals 5, got %d", cfg.Analyzer.MaxSignals)
    }
    if cfg.Log.Level != "info" {
        t.Errorf("expected default log level info, got %s", cfg.Log.Level)
    }
}

func TestLoadMissingEnvironment(t *testing.T) {
    _, err := Load(writeConfig(t, "gamma:\n  base_url: http://x\n"))
    if err == nil {
        t.Fatal("expected validation error")
    }
}

func TestLoadBadSinkType(t *testing.T) {
    body := validYAML + "\n"
    cfg, err := Load(writeConfig(t, body))
    if err != nil {
        t.Fatal(err)
    }
    cfg.Sink.Type = "s3"
    if err := cfg.Validate(); err == nil {
        t.Fatal("expected error for unknown sink type")
    }
}

func TestLoadKafkaSinkRequiresBrokers(t *testing.T) {
    body := `
environment: test
gamma:
  base_url: http://x
sink:
  type: kafka
`
    if _, err := Load(writeConfig(t, body)); err == nil {
        t.Fatal("expected error for kafka sink without brokers")
    }
}

func TestLoadWithEnvOverride(t *testing.T) {
    t.Setenv("GAMMA_BASE_URL", "http://localhost:9999")
    cfg, err := LoadWithEnv(writeConfig(t, validYAML))
    if err != nil {
        t.Fatal(err)
    }
    if cfg.Gamma.BaseURL != "http://localhost:9999" {
        t.Errorf("env override not applied: %s", cfg.Gamma.BaseURL)
    }
}
