package policy

import "fmt"

// Scaler is the fitted feature scaler exported alongside the trained
// policy: a per-feature standard-score transform. Stateless after fitting;
// safe for concurrent use.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Identity returns a pass-through scaler of the given dimensionality,
// used when no fitted artifact is configured (mock/dev mode).
func Identity(dims int) *Scaler {
	s := &Scaler{Mean: make([]float64, dims), Scale: make([]float64, dims)}
	for i := range s.Scale {
		s.Scale[i] = 1
	}
	return s
}

// Dims is the feature-vector length the scaler was fitted on.
func (s *Scaler) Dims() int { return len(s.Mean) }

func (s *Scaler) validate() error {
	if len(s.Mean) == 0 || len(s.Mean) != len(s.Scale) {
		return fmt.Errorf("scaler: mean/scale length mismatch (%d vs %d)", len(s.Mean), len(s.Scale))
	}
	return nil
}

// Transform applies the standard-score transform to a raw feature vector.
// Zero-variance features pass through centered only, matching the fitting
// library's guard against division by zero.
func (s *Scaler) Transform(raw []float64) ([]float64, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if len(raw) != len(s.Mean) {
		return nil, fmt.Errorf("scaler: got %d features, fitted on %d", len(raw), len(s.Mean))
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		sc := s.Scale[i]
		if sc == 0 {
			sc = 1
		}
		out[i] = (v - s.Mean[i]) / sc
	}
	return out, nil
}
