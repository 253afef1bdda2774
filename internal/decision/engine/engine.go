// Package engine is the policy inference adapter: it takes a validated,
// flattened state vector, normalizes it through the fitted scaler, queries
// the policy provider deterministically, and checks the answer against the
// active action catalog before anything leaves the decision path.
package engine

import (
	"context"
	"fmt"

	"github.com/shemankubana/IncludEd/internal/decision/action"
	"github.com/shemankubana/IncludEd/internal/decision/policy"
)

// Decision is the adapter's output: a catalog-validated action id and a
// confidence in [0,1].
type Decision struct {
	ActionID   int
	Confidence float64
	// ProviderConfidence is true when the confidence came from the
	// provider's own decision distribution rather than the configured
	// default.
	ProviderConfidence bool
}

type Engine struct {
	scaler   *policy.Scaler
	provider policy.Provider
	catalog  *action.Catalog

	// defaultConfidence is reported when the provider exposes no decision
	// distribution. It is not an uncertainty estimate.
	defaultConfidence float64
}

func New(scaler *policy.Scaler, provider policy.Provider, catalog *action.Catalog, defaultConfidence float64) (*Engine, error) {
	if scaler == nil || provider == nil || catalog == nil {
		return nil, fmt.Errorf("engine: scaler, provider and catalog are required")
	}
	if defaultConfidence < 0 || defaultConfidence > 1 {
		return nil, fmt.Errorf("engine: default confidence %v outside [0,1]", defaultConfidence)
	}
	return &Engine{
		scaler:            scaler,
		provider:          provider,
		catalog:           catalog,
		defaultConfidence: defaultConfidence,
	}, nil
}

// Dims is the feature-vector length the engine expects.
func (e *Engine) Dims() int { return e.scaler.Dims() }

// Decide runs one deterministic inference over a raw feature vector.
func (e *Engine) Decide(ctx context.Context, raw []float64) (Decision, error) {
	normalized, err := e.scaler.Transform(raw)
	if err != nil {
		return Decision{}, err
	}

	pred, err := e.provider.Predict(ctx, normalized)
	if err != nil {
		return Decision{}, err
	}

	if _, err := e.catalog.Get(pred.Action); err != nil {
		return Decision{}, err
	}

	d := Decision{ActionID: pred.Action}
	if pred.Confidence >= 0 {
		d.Confidence = clamp01(pred.Confidence)
		d.ProviderConfidence = true
	} else {
		d.Confidence = e.defaultConfidence
	}
	return d, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
