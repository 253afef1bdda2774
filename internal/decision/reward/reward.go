// Package reward scores state transitions for offline policy improvement.
// It lives out of the online decision path: samples flow to the training
// loop, never back into the current request.
package reward

import "github.com/shemankubana/IncludEd/internal/decision/state"

// Completion threshold and per-term weights of the math reward shaping.
const (
	engagementBonus     = 0.1
	confidenceBonus     = 0.15
	comprehensionWeight = 0.01
	attentionWeight     = 0.005
	hintOverusePenalty  = 0.2
	hintOveruseLimit    = 5
	completionScore     = 70.0
	completionBonus     = 1.0
)

// Calculate returns the scalar reward for moving from previous to current.
// All terms are independent and summed. The action parameter keeps the
// standard transition-reward signature (s, s', a); the current shaping
// does not use it.
func Calculate(previous, current state.MathStudentState, action int) float64 {
	_ = action

	r := 0.0

	if current.CanvasStrokes > previous.CanvasStrokes {
		r += engagementBonus
	}
	if current.EraserUsage < previous.EraserUsage {
		r += confidenceBonus
	}

	r += (current.ComprehensionScore - previous.ComprehensionScore) * comprehensionWeight
	r += (current.AttentionScore - previous.AttentionScore) * attentionWeight

	if current.HintRequests > hintOveruseLimit {
		r -= hintOverusePenalty
	}
	if current.ComprehensionScore >= completionScore {
		r += completionBonus
	}

	return r
}
