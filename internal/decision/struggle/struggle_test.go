package struggle

import (
	"math"
	"testing"

	"github.com/shemankubana/IncludEd/internal/decision/action"
	"github.com/shemankubana/IncludEd/internal/decision/state"
)

// calm satisfies none of the six rules.
func calm() state.MathStudentState {
	return state.MathStudentState{
		StudentState: state.StudentState{
			ReadingSpeed:       80,
			MouseDwellTime:     500,
			ScrollHesitation:   2,
			BacktrackFrequency: 3,
			AttentionScore:     85,
			CurrentDifficulty:  3,
			TimeOnTask:         4,
			ComprehensionScore: 75,
		},
		CanvasStrokes:   30,
		EraserUsage:     3,
		ProblemAttempts: 1,
		HintRequests:    1,
	}
}

func TestNoMatchDefault(t *testing.T) {
	got := Detect(calm())
	want := Result{Struggling: false, PatternType: PatternNone, RecommendedAction: action.MathMaintain, Confidence: 0.0}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestExcessiveErasingRatioConfidence(t *testing.T) {
	s := calm()
	s.EraserUsage = 15
	s.CanvasStrokes = 40

	got := Detect(s)
	if got.PatternType != ExcessiveErasing {
		t.Fatalf("pattern=%q", got.PatternType)
	}
	if got.RecommendedAction != action.MathSuggestHint {
		t.Fatalf("action=%d", got.RecommendedAction)
	}
	if math.Abs(got.Confidence-0.375) > 1e-12 {
		t.Fatalf("confidence=%v want 0.375", got.Confidence)
	}
}

func TestExcessiveErasingConfidenceCap(t *testing.T) {
	s := calm()
	s.CanvasStrokes = 21
	s.EraserUsage = 21 // ratio 1.0, capped at 0.95

	got := Detect(s)
	if got.PatternType != ExcessiveErasing {
		t.Fatalf("pattern=%q", got.PatternType)
	}
	if got.Confidence != 0.95 {
		t.Fatalf("confidence=%v", got.Confidence)
	}
}

func TestLastMatchWins(t *testing.T) {
	// Matches both rule 1 (erasing) and rule 6 (scaffolding); rule 6 is
	// declared later so it must be the surfaced result.
	s := calm()
	s.EraserUsage = 15
	s.CanvasStrokes = 40
	s.HintRequests = 4

	got := Detect(s)
	if got.PatternType != NeedsScaffolding {
		t.Fatalf("pattern=%q want %q", got.PatternType, NeedsScaffolding)
	}
	if got.RecommendedAction != action.MathShowStepByStep {
		t.Fatalf("action=%d", got.RecommendedAction)
	}
	if got.Confidence != 0.88 {
		t.Fatalf("confidence=%v", got.Confidence)
	}
}

func TestIndividualRules(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*state.MathStudentState)
		pattern Pattern
		act     int
		conf    float64
	}{
		{
			"avoiding help",
			func(s *state.MathStudentState) { s.ProblemAttempts = 2; s.HintRequests = 0 },
			AvoidingHelp, action.MathSuggestHint, 0.85,
		},
		{
			"low engagement",
			func(s *state.MathStudentState) { s.TimeOnTask = 6; s.CanvasStrokes = 9 },
			LowEngagement, action.MathShowVisualAid, 0.75,
		},
		{
			"comprehension difficulty",
			func(s *state.MathStudentState) { s.BacktrackFrequency = 16; s.CanvasStrokes = 4; s.TimeOnTask = 4 },
			ComprehensionDifficult, action.MathActivateTTS, 0.80,
		},
		{
			"attention fatigue",
			func(s *state.MathStudentState) { s.AttentionScore = 40; s.TimeOnTask = 11 },
			AttentionFatigue, action.MathInsertBreak, 0.90,
		},
		{
			"needs scaffolding",
			func(s *state.MathStudentState) { s.HintRequests = 3 },
			NeedsScaffolding, action.MathShowStepByStep, 0.88,
		},
	}

	for _, tc := range cases {
		s := calm()
		tc.mutate(&s)
		got := Detect(s)
		if !got.Struggling {
			t.Fatalf("%s: not struggling", tc.name)
		}
		if got.PatternType != tc.pattern {
			t.Fatalf("%s: pattern=%q want %q", tc.name, got.PatternType, tc.pattern)
		}
		if got.RecommendedAction != tc.act {
			t.Fatalf("%s: action=%d want %d", tc.name, got.RecommendedAction, tc.act)
		}
		if got.Confidence != tc.conf {
			t.Fatalf("%s: confidence=%v want %v", tc.name, got.Confidence, tc.conf)
		}
	}
}

func TestErasingRequiresAllThreeConditions(t *testing.T) {
	// 15/40 would clear the ratio bar, but strokes must exceed 20.
	s := calm()
	s.EraserUsage = 15
	s.CanvasStrokes = 20
	if got := Detect(s); got.PatternType == ExcessiveErasing {
		t.Fatalf("fired with strokes=20: %+v", got)
	}

	// Ratio at exactly 0.3 must not fire.
	s = calm()
	s.EraserUsage = 12
	s.CanvasStrokes = 40
	if got := Detect(s); got.PatternType == ExcessiveErasing {
		t.Fatalf("fired at ratio 0.3: %+v", got)
	}
}

func TestDeterministic(t *testing.T) {
	s := calm()
	s.EraserUsage = 15
	s.CanvasStrokes = 40
	s.HintRequests = 4

	first := Detect(s)
	for i := 0; i < 20; i++ {
		if got := Detect(s); got != first {
			t.Fatalf("result changed on call %d: %+v vs %+v", i, got, first)
		}
	}
}

func TestAllRecommendationsInMathCatalog(t *testing.T) {
	states := []func(*state.MathStudentState){
		func(s *state.MathStudentState) {},
		func(s *state.MathStudentState) { s.EraserUsage = 15; s.CanvasStrokes = 40 },
		func(s *state.MathStudentState) { s.ProblemAttempts = 5; s.HintRequests = 0 },
		func(s *state.MathStudentState) { s.TimeOnTask = 20; s.CanvasStrokes = 0 },
		func(s *state.MathStudentState) { s.BacktrackFrequency = 30; s.CanvasStrokes = 1 },
		func(s *state.MathStudentState) { s.AttentionScore = 10; s.TimeOnTask = 30 },
		func(s *state.MathStudentState) { s.HintRequests = 6 },
	}
	for i, mutate := range states {
		s := calm()
		mutate(&s)
		got := Detect(s)
		if _, err := action.Math().Get(got.RecommendedAction); err != nil {
			t.Fatalf("case %d: recommended action %d not in math catalog: %v", i, got.RecommendedAction, err)
		}
		if got.Confidence < 0 || got.Confidence > 1 {
			t.Fatalf("case %d: confidence=%v", i, got.Confidence)
		}
	}
}
