// Package policy defines the contracts of the externally trained decision
// artifacts: the policy provider that maps a normalized state to an action
// id, and the feature scaler that normalizes raw telemetry vectors.
package policy

import "context"

// Prediction is a provider's answer for one observation.
//
// Confidence is the provider's own estimate in [0,1] when it reports one;
// a negative value means the provider exposes no decision distribution and
// the engine should fall back to its configured default.
type Prediction struct {
	Action     int
	Confidence float64
}

// Provider is the external pre-trained policy. Predict must be
// deterministic: identical observations yield identical predictions
// (providers are queried in deterministic, not sampling, mode).
type Provider interface {
	Predict(ctx context.Context, observation []float64) (Prediction, error)
}
