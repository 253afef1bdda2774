package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		d.Duration = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		u, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		if strings.TrimSpace(u) == "" {
			d.Duration = 0
			return nil
		}
		dd, err := time.ParseDuration(u)
		if err != nil {
			return err
		}
		d.Duration = dd
		return nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("duration must be a JSON string like \"5s\" or an int nanoseconds: %w", err)
	}
	d.Duration = time.Duration(n)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}

func defaultConfig() *Config {
	return &Config{
		Env: "development",
		HTTP: HTTPConfig{
			Addr:              ":8000",
			ReadHeaderTimeout: Duration{Duration: 5 * time.Second},
			IdleTimeout:       Duration{Duration: 2 * time.Minute},
			ShutdownTimeout:   Duration{Duration: 15 * time.Second},
			MaxRequestBytes:   1 << 20,
			AllowOrigins:      []string{"*"},
		},
		Model: ModelConfig{
			Variant:           "math",
			DefaultConfidence: 0.85,
			Provider: ProviderConfig{
				Type:    "mock",
				Timeout: Duration{Duration: 10 * time.Second},
			},
		},
		Batch: BatchConfig{
			MaxItems:    64,
			Parallelism: 8,
		},
		Training: TrainingConfig{
			RewardLog: RewardLogConfig{Type: "memory"},
		},
	}
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	cfgPath := strings.TrimSpace(os.Getenv("INCLUDED_CONFIG_PATH"))
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			p := filepath.Join(wd, "config", "config.json")
			if _, err := os.Stat(p); err == nil {
				cfgPath = p
			}
		}
	}

	if cfgPath != "" {
		b, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, err
		}
		var loaded Config
		if err := json.Unmarshal(b, &loaded); err != nil {
			return nil, err
		}
		*cfg = loaded
	}

	if v := strings.TrimSpace(os.Getenv("LOG_MODE")); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(os.Getenv("INCLUDED_HTTP_ADDR")); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("INCLUDED_ARTIFACTS_DIR")); v != "" {
		cfg.Model.ArtifactsDir = v
	}
	if v := strings.TrimSpace(os.Getenv("INCLUDED_PROVIDER_BASE_URL")); v != "" {
		cfg.Model.Provider.BaseURL = v
	}

	return cfg, validate(cfg)
}

func validate(cfg *Config) error {
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		cfg.HTTP.Addr = ":8000"
	}
	if cfg.HTTP.MaxRequestBytes <= 0 {
		cfg.HTTP.MaxRequestBytes = 1 << 20
	}
	if len(cfg.HTTP.AllowOrigins) == 0 {
		cfg.HTTP.AllowOrigins = []string{"*"}
	}

	m := &cfg.Model
	m.Variant = strings.ToLower(strings.TrimSpace(m.Variant))
	switch m.Variant {
	case "":
		m.Variant = "math"
	case "generic", "math":
	default:
		return fmt.Errorf("invalid model.variant %q (want \"generic\" or \"math\")", m.Variant)
	}

	if m.DefaultConfidence == 0 {
		m.DefaultConfidence = 0.85
	}
	if m.DefaultConfidence < 0 || m.DefaultConfidence > 1 {
		return fmt.Errorf("invalid model.default_confidence %v", m.DefaultConfidence)
	}

	p := &m.Provider
	p.Type = strings.ToLower(strings.TrimSpace(p.Type))
	switch p.Type {
	case "":
		p.Type = "mock"
	case "mock":
	case "http":
		p.BaseURL = strings.TrimRight(strings.TrimSpace(p.BaseURL), "/")
		if p.BaseURL == "" {
			return fmt.Errorf("model.provider (http) missing base_url")
		}
		if p.PredictPath == "" {
			p.PredictPath = "/predict"
		}
		if p.Timeout.Duration <= 0 {
			p.Timeout = Duration{Duration: 10 * time.Second}
		}
	default:
		return fmt.Errorf("unsupported model.provider.type %q", p.Type)
	}

	if cfg.Batch.MaxItems <= 0 {
		cfg.Batch.MaxItems = 64
	}
	if cfg.Batch.Parallelism <= 0 {
		cfg.Batch.Parallelism = 8
	}

	r := &cfg.Training.RewardLog
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	switch r.Type {
	case "":
		r.Type = "memory"
	case "memory":
	case "redis":
		if strings.TrimSpace(r.RedisAddr) == "" {
			return fmt.Errorf("training.reward_log (redis) missing redis_addr")
		}
		if strings.TrimSpace(r.Stream) == "" {
			r.Stream = "included:reward_samples"
		}
	default:
		return fmt.Errorf("unsupported training.reward_log.type %q", r.Type)
	}

	return nil
}
