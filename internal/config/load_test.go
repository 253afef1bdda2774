package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	t.Setenv("INCLUDED_CONFIG_PATH", "")
	t.Setenv("LOG_MODE", "")
	t.Setenv("INCLUDED_HTTP_ADDR", "")
	t.Setenv("INCLUDED_ARTIFACTS_DIR", "")
	t.Setenv("INCLUDED_PROVIDER_BASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":8000" {
		t.Fatalf("addr=%q", cfg.HTTP.Addr)
	}
	if cfg.Model.Variant != "math" || cfg.Model.Provider.Type != "mock" {
		t.Fatalf("model: %+v", cfg.Model)
	}
	if cfg.Model.DefaultConfidence != 0.85 {
		t.Fatalf("default confidence=%v", cfg.Model.DefaultConfidence)
	}
	if cfg.Batch.MaxItems != 64 || cfg.Batch.Parallelism != 8 {
		t.Fatalf("batch: %+v", cfg.Batch)
	}
	if cfg.Training.RewardLog.Type != "memory" {
		t.Fatalf("reward log: %+v", cfg.Training.RewardLog)
	}
}

func TestLoadFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")
	body := `{
		"env": "production",
		"http": {"addr": ":9000", "shutdown_timeout": "5s"},
		"model": {
			"variant": "generic",
			"provider": {"type": "http", "base_url": "http://policy:8100/"}
		}
	}`
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("INCLUDED_CONFIG_PATH", p)
	t.Setenv("INCLUDED_HTTP_ADDR", ":9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Env != "production" {
		t.Fatalf("env=%q", cfg.Env)
	}
	if cfg.HTTP.Addr != ":9100" {
		t.Fatalf("env override lost: addr=%q", cfg.HTTP.Addr)
	}
	if cfg.HTTP.ShutdownTimeout.Duration != 5*time.Second {
		t.Fatalf("shutdown timeout=%v", cfg.HTTP.ShutdownTimeout.Duration)
	}
	if cfg.Model.Provider.BaseURL != "http://policy:8100" {
		t.Fatalf("base url=%q", cfg.Model.Provider.BaseURL)
	}
	if cfg.Model.Provider.PredictPath != "/predict" {
		t.Fatalf("predict path=%q", cfg.Model.Provider.PredictPath)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad variant", func(c *Config) { c.Model.Variant = "science" }},
		{"bad provider", func(c *Config) { c.Model.Provider.Type = "grpc" }},
		{"http without base url", func(c *Config) { c.Model.Provider.Type = "http"; c.Model.Provider.BaseURL = "" }},
		{"confidence above 1", func(c *Config) { c.Model.DefaultConfidence = 1.2 }},
		{"redis without addr", func(c *Config) { c.Training.RewardLog.Type = "redis" }},
	}
	for _, tc := range cases {
		cfg := defaultConfig()
		tc.mutate(cfg)
		if err := validate(cfg); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestDurationForms(t *testing.T) {
	var d Duration
	if err := d.UnmarshalJSON([]byte(`"250ms"`)); err != nil || d.Duration != 250*time.Millisecond {
		t.Fatalf("string form: %v %v", d.Duration, err)
	}
	if err := d.UnmarshalJSON([]byte(`1000000`)); err != nil || d.Duration != time.Millisecond {
		t.Fatalf("int form: %v %v", d.Duration, err)
	}
	if err := d.UnmarshalJSON([]byte(`"soon"`)); err == nil {
		t.Fatal("expected parse error")
	}
}
