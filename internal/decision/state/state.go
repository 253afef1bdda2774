// Package state holds the typed telemetry snapshots the decision engine
// operates on. A snapshot is constructed once per request, validated
// atomically, and never mutated afterwards.
package state

import "math"

// StudentState is the 8-dimensional telemetry snapshot captured by the
// frontend during a learning session. Field order matters: Vector flattens
// the fields in the order the policy was trained on.
type StudentState struct {
	ReadingSpeed       float64 `json:"reading_speed"`
	MouseDwellTime     float64 `json:"mouse_dwell_time"`
	ScrollHesitation   float64 `json:"scroll_hesitation"`
	BacktrackFrequency float64 `json:"backtrack_frequency"`
	AttentionScore     float64 `json:"attention_score"`
	CurrentDifficulty  int     `json:"current_difficulty"`
	TimeOnTask         float64 `json:"time_on_task"`
	ComprehensionScore float64 `json:"comprehension_score"`
}

// MathStudentState extends StudentState with canvas telemetry captured
// during math exercises (12 dimensions total).
type MathStudentState struct {
	StudentState

	CanvasStrokes   int `json:"canvas_strokes"`
	EraserUsage     int `json:"eraser_usage"`
	ProblemAttempts int `json:"problem_attempts"`
	HintRequests    int `json:"hint_requests"`
}

// GenericDims and MathDims are the trained feature-vector lengths.
const (
	GenericDims = 8
	MathDims    = 12
)

type fieldBound struct {
	field string
	value float64
	min   float64
	max   float64 // +Inf when only a lower bound applies
}

func checkBounds(bounds []fieldBound) error {
	for _, b := range bounds {
		if b.value < b.min || b.value > b.max {
			return &InvalidStateError{
				Field:      b.field,
				Value:      b.value,
				Constraint: constraintString(b.min, b.max),
			}
		}
	}
	return nil
}

// Validate checks every field against its declared range and returns an
// *InvalidStateError naming the first out-of-range field.
func (s StudentState) Validate() error {
	return checkBounds([]fieldBound{
		{"reading_speed", s.ReadingSpeed, 0, math.Inf(1)},
		{"mouse_dwell_time", s.MouseDwellTime, 0, math.Inf(1)},
		{"scroll_hesitation", s.ScrollHesitation, 0, math.Inf(1)},
		{"backtrack_frequency", s.BacktrackFrequency, 0, math.Inf(1)},
		{"attention_score", s.AttentionScore, 0, 100},
		{"current_difficulty", float64(s.CurrentDifficulty), 1, 5},
		{"time_on_task", s.TimeOnTask, 0, math.Inf(1)},
		{"comprehension_score", s.ComprehensionScore, 0, 100},
	})
}

// Validate checks the embedded generic fields and the math extension.
func (s MathStudentState) Validate() error {
	if err := s.StudentState.Validate(); err != nil {
		return err
	}
	return checkBounds([]fieldBound{
		{"canvas_strokes", float64(s.CanvasStrokes), 0, math.Inf(1)},
		{"eraser_usage", float64(s.EraserUsage), 0, math.Inf(1)},
		{"problem_attempts", float64(s.ProblemAttempts), 0, math.Inf(1)},
		{"hint_requests", float64(s.HintRequests), 0, math.Inf(1)},
	})
}

// Vector flattens the snapshot into the fixed feature order the policy
// provider was trained against.
func (s StudentState) Vector() []float64 {
	return []float64{
		s.ReadingSpeed,
		s.MouseDwellTime,
		s.ScrollHesitation,
		s.BacktrackFrequency,
		s.AttentionScore,
		float64(s.CurrentDifficulty),
		s.TimeOnTask,
		s.ComprehensionScore,
	}
}

// Vector appends the math features to the generic 8 in trained order.
func (s MathStudentState) Vector() []float64 {
	return append(s.StudentState.Vector(),
		float64(s.CanvasStrokes),
		float64(s.EraserUsage),
		float64(s.ProblemAttempts),
		float64(s.HintRequests),
	)
}
