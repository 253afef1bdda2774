package config

import "time"

type Duration struct {
	Duration time.Duration
}

type HTTPConfig struct {
	Addr              string   `json:"addr"`
	ReadHeaderTimeout Duration `json:"read_header_timeout"`
	IdleTimeout       Duration `json:"idle_timeout"`
	ShutdownTimeout   Duration `json:"shutdown_timeout"`
	MaxRequestBytes   int64    `json:"max_request_bytes"`

	// AllowOrigins feeds the CORS layer; the frontend runs on a different
	// origin in every deployment.
	AllowOrigins []string `json:"allow_origins,omitempty"`
}

type ProviderConfig struct {
	// Type selects the policy provider: "mock" (in-process, deterministic)
	// or "http" (remotely served trained policy).
	Type string `json:"type"`

	// BaseURL is the upstream policy server (for "http" providers).
	BaseURL string `json:"base_url,omitempty"`

	// APIKey is optional; when set it is sent as a bearer token upstream.
	APIKey string `json:"api_key,omitempty"`

	// PredictPath defaults to "/predict".
	PredictPath string `json:"predict_path,omitempty"`

	// Timeout bounds the single external predict call; on expiry the
	// request surfaces a policy-unavailable condition.
	Timeout Duration `json:"timeout,omitempty"`
}

type ModelConfig struct {
	// Variant selects the action catalog and feature dimensionality:
	// "generic" (5 actions, 8 features) or "math" (8 actions, 12 features).
	Variant string `json:"variant"`

	// ArtifactsDir holds feature_scaler.json and model_metadata.json
	// exported with the trained policy. Empty means mock/dev mode with an
	// identity scaler.
	ArtifactsDir string `json:"artifacts_dir,omitempty"`

	// DefaultConfidence is reported when the provider exposes no decision
	// distribution of its own.
	DefaultConfidence float64 `json:"default_confidence,omitempty"`

	Provider ProviderConfig `json:"provider"`
}

type BatchConfig struct {
	// MaxItems caps a single batch request.
	MaxItems int `json:"max_items,omitempty"`

	// Parallelism bounds concurrent item evaluation within one batch.
	Parallelism int `json:"parallelism,omitempty"`
}

type RewardLogConfig struct {
	// Type selects the training sink: "memory" (default) or "redis".
	Type string `json:"type,omitempty"`

	RedisAddr string `json:"redis_addr,omitempty"`
	Stream    string `json:"stream,omitempty"`
}

type TrainingConfig struct {
	RewardLog RewardLogConfig `json:"reward_log,omitempty"`
}

type Config struct {
	Env      string         `json:"env"`
	HTTP     HTTPConfig     `json:"http"`
	Model    ModelConfig    `json:"model"`
	Batch    BatchConfig    `json:"batch,omitempty"`
	Training TrainingConfig `json:"training,omitempty"`
}
