// Package artifacts loads the trained-policy companions (feature scaler,
// model metadata), constructs the configured policy provider, and binds the
// action catalog matching the model variant. The result is an immutable
// context built once at startup and injected into every decision-path
// operation; nothing mutates it afterwards, so it is shared freely across
// concurrent requests.
package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shemankubana/IncludEd/internal/config"
	"github.com/shemankubana/IncludEd/internal/decision/action"
	"github.com/shemankubana/IncludEd/internal/decision/policy"
	"github.com/shemankubana/IncludEd/internal/decision/policy/httppolicy"
	"github.com/shemankubana/IncludEd/internal/decision/policy/mock"
	"github.com/shemankubana/IncludEd/internal/decision/state"
)

const (
	scalerFile   = "feature_scaler.json"
	metadataFile = "model_metadata.json"
)

// Metadata describes the deployed policy artifact.
type Metadata struct {
	Version      string   `json:"version"`
	Algorithm    string   `json:"algorithm,omitempty"`
	TrainedAt    string   `json:"trained_at,omitempty"`
	Description  string   `json:"description,omitempty"`
	FeatureNames []string `json:"feature_names,omitempty"`
	NumActions   int      `json:"num_actions,omitempty"`
}

// Artifacts is the read-only set of loaded decision dependencies.
type Artifacts struct {
	Scaler   *policy.Scaler
	Provider policy.Provider
	Catalog  *action.Catalog
	Meta     Metadata
}

func variantShape(variant string) (*action.Catalog, int, error) {
	switch variant {
	case "generic":
		return action.Generic(), state.GenericDims, nil
	case "math":
		return action.Math(), state.MathDims, nil
	default:
		return nil, 0, fmt.Errorf("artifacts: unknown model variant %q", variant)
	}
}

// Load reads the artifact directory and wires the provider. Dimension or
// action-space mismatches between artifacts and the compiled catalog are
// fatal here, at startup, rather than surfacing mid-request.
func Load(cfg *config.Config) (*Artifacts, error) {
	catalog, dims, err := variantShape(cfg.Model.Variant)
	if err != nil {
		return nil, err
	}

	a := &Artifacts{
		Catalog: catalog,
		Scaler:  policy.Identity(dims),
		Meta:    Metadata{Version: "0.0.0-dev", Algorithm: "mock"},
	}

	if dir := cfg.Model.ArtifactsDir; dir != "" {
		var sc policy.Scaler
		if err := readJSON(filepath.Join(dir, scalerFile), &sc); err != nil {
			return nil, fmt.Errorf("load scaler: %w", err)
		}
		var meta Metadata
		if err := readJSON(filepath.Join(dir, metadataFile), &meta); err != nil {
			return nil, fmt.Errorf("load metadata: %w", err)
		}
		a.Scaler = &sc
		a.Meta = meta
	}

	if got := a.Scaler.Dims(); got != dims {
		return nil, fmt.Errorf("artifacts: scaler fitted on %d features, %s variant expects %d", got, cfg.Model.Variant, dims)
	}
	if a.Meta.NumActions != 0 && a.Meta.NumActions != catalog.Size() {
		// The catalog is versioned with the policy; a span mismatch means
		// the provider can emit ids this build cannot interpret.
		return nil, &action.UnknownActionError{ID: a.Meta.NumActions - 1, Catalog: catalog.Name()}
	}

	switch cfg.Model.Provider.Type {
	case "mock":
		a.Provider = mock.New(catalog.Size(), dims)
	case "http":
		p, err := httppolicy.New(httppolicy.Config{
			BaseURL:     cfg.Model.Provider.BaseURL,
			APIKey:      cfg.Model.Provider.APIKey,
			PredictPath: cfg.Model.Provider.PredictPath,
			Timeout:     cfg.Model.Provider.Timeout.Duration,
		})
		if err != nil {
			return nil, err
		}
		a.Provider = p
	default:
		return nil, fmt.Errorf("artifacts: unsupported provider type %q", cfg.Model.Provider.Type)
	}

	return a, nil
}

func readJSON(path string, dst any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
