// Package struggle detects behavioral struggle signatures in math
// telemetry. Detection is an advisory signal independent of the policy
// decision; the two are never merged.
package struggle

import (
	"github.com/shemankubana/IncludEd/internal/decision/action"
	"github.com/shemankubana/IncludEd/internal/decision/state"
)

// Pattern names a behavioral struggle signature.
type Pattern string

const (
	PatternNone            Pattern = "none"
	ExcessiveErasing       Pattern = "excessive_erasing"
	AvoidingHelp           Pattern = "avoiding_help"
	LowEngagement          Pattern = "low_engagement"
	ComprehensionDifficult Pattern = "comprehension_difficulty"
	AttentionFatigue       Pattern = "attention_fatigue"
	NeedsScaffolding       Pattern = "needs_scaffolding"
)

// Result is one detection outcome. RecommendedAction is always a valid
// math-catalog id; Confidence is in [0,1].
type Result struct {
	Struggling        bool    `json:"struggling"`
	PatternType       Pattern `json:"pattern_type"`
	RecommendedAction int     `json:"recommended_action"`
	Confidence        float64 `json:"confidence"`
}

type rule struct {
	pattern Pattern
	action  int
	// match reports whether the rule fires and, if so, its confidence.
	match func(s state.MathStudentState) (bool, float64)
}

// rules are evaluated in declared order and every match overwrites the
// recorded result, so when several signals are present the LAST matching
// rule is the one that surfaces. That priority is part of the contract:
// scaffolding need (rule 6) outranks erasing frustration (rule 1).
var rules = []rule{
	{
		pattern: ExcessiveErasing,
		action:  action.MathSuggestHint,
		match: func(s state.MathStudentState) (bool, float64) {
			if s.EraserUsage <= 10 || s.CanvasStrokes <= 20 {
				return false, 0
			}
			ratio := float64(s.EraserUsage) / float64(s.CanvasStrokes)
			if ratio <= 0.3 {
				return false, 0
			}
			if ratio > 0.95 {
				ratio = 0.95
			}
			return true, ratio
		},
	},
	{
		pattern: AvoidingHelp,
		action:  action.MathSuggestHint,
		match: func(s state.MathStudentState) (bool, float64) {
			return s.ProblemAttempts >= 2 && s.HintRequests == 0, 0.85
		},
	},
	{
		pattern: LowEngagement,
		action:  action.MathShowVisualAid,
		match: func(s state.MathStudentState) (bool, float64) {
			return s.TimeOnTask > 5 && s.CanvasStrokes < 10, 0.75
		},
	},
	{
		pattern: ComprehensionDifficult,
		action:  action.MathActivateTTS,
		match: func(s state.MathStudentState) (bool, float64) {
			return s.BacktrackFrequency > 15 && s.CanvasStrokes < 5, 0.80
		},
	},
	{
		pattern: AttentionFatigue,
		action:  action.MathInsertBreak,
		match: func(s state.MathStudentState) (bool, float64) {
			return s.AttentionScore < 50 && s.TimeOnTask > 10, 0.90
		},
	},
	{
		pattern: NeedsScaffolding,
		action:  action.MathShowStepByStep,
		match: func(s state.MathStudentState) (bool, float64) {
			return s.HintRequests >= 3, 0.88
		},
	},
}

// Detect evaluates the fixed rule order over one math snapshot. Pure and
// deterministic; returns a fresh Result each call.
func Detect(s state.MathStudentState) Result {
	res := Result{
		Struggling:        false,
		PatternType:       PatternNone,
		RecommendedAction: action.MathMaintain,
		Confidence:        0.0,
	}
	for _, r := range rules {
		ok, conf := r.match(s)
		if !ok {
			continue
		}
		res = Result{
			Struggling:        true,
			PatternType:       r.pattern,
			RecommendedAction: r.action,
			Confidence:        conf,
		}
	}
	return res
}
