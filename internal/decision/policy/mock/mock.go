// Package mock provides an in-process deterministic policy provider for
// development and tests. Scores come from a fixed hash-derived weight
// matrix, so identical observations always yield the identical action.
package mock

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/shemankubana/IncludEd/internal/decision/policy"
)

type Provider struct {
	Actions int
	Dims    int
}

func New(actions, dims int) *Provider {
	return &Provider{Actions: actions, Dims: dims}
}

// weight derives a stable pseudo-weight in [-0.5, 0.5) for one
// (action, feature) cell.
func weight(action, feature int) float64 {
	h := sha256.Sum256([]byte(fmt.Sprintf("included-policy:%d:%d", action, feature)))
	u := binary.LittleEndian.Uint32(h[:4])
	return float64(u%10_000)/10_000.0 - 0.5
}

func (p *Provider) Predict(ctx context.Context, observation []float64) (policy.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return policy.Prediction{}, &policy.UnavailableError{Err: err}
	}
	if len(observation) != p.Dims {
		return policy.Prediction{}, fmt.Errorf("mock policy: got %d features, expected %d", len(observation), p.Dims)
	}

	scores := make([]float64, p.Actions)
	best := 0
	for a := 0; a < p.Actions; a++ {
		var sum float64
		for i, v := range observation {
			sum += weight(a, i) * v
		}
		scores[a] = sum
		if scores[a] > scores[best] {
			best = a
		}
	}

	return policy.Prediction{Action: best, Confidence: softmaxTop(scores, best)}, nil
}

// softmaxTop returns the softmax probability of the winning score, a crude
// but deterministic stand-in for a real policy's decision distribution.
func softmaxTop(scores []float64, best int) float64 {
	max := scores[best]
	var denom float64
	for _, s := range scores {
		denom += math.Exp(s - max)
	}
	if denom == 0 {
		return 0
	}
	return 1 / denom
}
