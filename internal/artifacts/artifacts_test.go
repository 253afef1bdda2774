package artifacts

import (
	"errors"
	"testing"

	"github.com/shemankubana/IncludEd/internal/config"
	"github.com/shemankubana/IncludEd/internal/decision/action"
)

func mathConfig(dir string) *config.Config {
	return &config.Config{
		Model: config.ModelConfig{
			Variant:           "math",
			ArtifactsDir:      dir,
			DefaultConfidence: 0.85,
			Provider:          config.ProviderConfig{Type: "mock"},
		},
	}
}

func TestLoadMockDefaults(t *testing.T) {
	a, err := Load(mathConfig(""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if a.Scaler.Dims() != 12 {
		t.Fatalf("dims=%d", a.Scaler.Dims())
	}
	if a.Catalog.Size() != 8 {
		t.Fatalf("catalog size=%d", a.Catalog.Size())
	}
	if a.Meta.Version != "0.0.0-dev" {
		t.Fatalf("version=%q", a.Meta.Version)
	}
	if a.Provider == nil {
		t.Fatal("nil provider")
	}
}

func TestLoadFromDir(t *testing.T) {
	a, err := Load(mathConfig("testdata/math"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if a.Meta.Version != "1.2.0" || a.Meta.Algorithm != "PPO" {
		t.Fatalf("meta: %+v", a.Meta)
	}
	if a.Scaler.Mean[0] != 70.0 || a.Scaler.Scale[11] != 1.2 {
		t.Fatalf("scaler: %+v", a.Scaler)
	}
	if len(a.Meta.FeatureNames) != 12 {
		t.Fatalf("feature names: %d", len(a.Meta.FeatureNames))
	}
}

func TestLoadScalerDimMismatch(t *testing.T) {
	if _, err := Load(mathConfig("testdata/badscaler")); err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestLoadActionSpanMismatch(t *testing.T) {
	// 8 actions in metadata vs the generic catalog's 5: a registry swapped
	// independently of its policy must abort startup.
	cfg := mathConfig("testdata/spanmismatch")
	cfg.Model.Variant = "generic"
	_, err := Load(cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	var uae *action.UnknownActionError
	if !errors.As(err, &uae) {
		t.Fatalf("error type %T: %v", err, err)
	}
}

func TestLoadHTTPProvider(t *testing.T) {
	cfg := mathConfig("")
	cfg.Model.Provider = config.ProviderConfig{Type: "http", BaseURL: "http://policy:8100"}
	a, err := Load(cfg)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if a.Provider == nil {
		t.Fatal("nil provider")
	}
}
