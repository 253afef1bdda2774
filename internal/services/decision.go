// Package services holds the decision service: it validates telemetry,
// drives the policy inference adapter, and assembles the wire responses.
package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shemankubana/IncludEd/internal/artifacts"
	"github.com/shemankubana/IncludEd/internal/decision/action"
	"github.com/shemankubana/IncludEd/internal/decision/engine"
	"github.com/shemankubana/IncludEd/internal/decision/reward"
	"github.com/shemankubana/IncludEd/internal/decision/state"
	"github.com/shemankubana/IncludEd/internal/decision/struggle"
	"github.com/shemankubana/IncludEd/internal/platform/logger"
	"github.com/shemankubana/IncludEd/internal/training"
)

// PredictionRequest is the decision-engine-facing request shape. State is
// decoded as the math superset; the generic variant reads only the 8
// generic fields.
type PredictionRequest struct {
	StudentID      string                 `json:"student_id"`
	SessionID      string                 `json:"session_id"`
	State          state.MathStudentState `json:"state"`
	DisabilityType string                 `json:"disability_type,omitempty"`
}

type PredictionResponse struct {
	StudentID         string            `json:"student_id"`
	SessionID         string            `json:"session_id"`
	Timestamp         string            `json:"timestamp"`
	PredictedAction   int               `json:"predicted_action"`
	ActionName        string            `json:"action_name"`
	ActionDescription string            `json:"action_description"`
	UIChanges         []action.UIChange `json:"ui_changes"`
	Confidence        float64           `json:"confidence"`
	ModelVersion      string            `json:"model_version"`
}

// ItemError is the per-item failure shape inside a batch response.
type ItemError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// BatchItem holds either a prediction or an error, never both.
type BatchItem struct {
	Index      int                 `json:"index"`
	Prediction *PredictionResponse `json:"prediction,omitempty"`
	Error      *ItemError          `json:"error,omitempty"`
}

type BatchResponse struct {
	Predictions []BatchItem `json:"predictions"`
	BatchSize   int         `json:"batch_size"`
	Timestamp   string      `json:"timestamp"`
}

type StruggleRequest struct {
	StudentID string                 `json:"student_id"`
	SessionID string                 `json:"session_id"`
	State     state.MathStudentState `json:"state"`
}

type StruggleResponse struct {
	StudentID         string            `json:"student_id"`
	SessionID         string            `json:"session_id"`
	Timestamp         string            `json:"timestamp"`
	Struggling        bool              `json:"struggling"`
	PatternType       struggle.Pattern  `json:"pattern_type"`
	RecommendedAction int               `json:"recommended_action"`
	ActionName        string            `json:"action_name"`
	UIChanges         []action.UIChange `json:"ui_changes"`
	Confidence        float64           `json:"confidence"`
	ModelVersion      string            `json:"model_version"`
}

type RewardRequest struct {
	StudentID     string                 `json:"student_id"`
	SessionID     string                 `json:"session_id"`
	PreviousState state.MathStudentState `json:"previous_state"`
	CurrentState  state.MathStudentState `json:"current_state"`
	Action        int                    `json:"action"`
}

type RewardResponse struct {
	StudentID string  `json:"student_id"`
	SessionID string  `json:"session_id"`
	Timestamp string  `json:"timestamp"`
	Action    int     `json:"action"`
	Reward    float64 `json:"reward"`
}

type DecisionService interface {
	Predict(ctx context.Context, req PredictionRequest) (*PredictionResponse, error)
	PredictBatch(ctx context.Context, reqs []PredictionRequest) *BatchResponse
	DetectStruggle(ctx context.Context, req StruggleRequest) (*StruggleResponse, error)
	RecordReward(ctx context.Context, req RewardRequest) (*RewardResponse, error)

	ModelInfo() artifacts.Metadata
	Actions() []action.Descriptor
}

type decisionService struct {
	log     *logger.Logger
	eng     *engine.Engine
	arts    *artifacts.Artifacts
	sink    training.Sink
	variant string

	batchParallelism int

	now func() time.Time
}

type Options struct {
	// Variant is "generic" or "math"; it decides which feature slice of the
	// request state feeds the policy.
	Variant          string
	BatchParallelism int

	// Now overrides the response timestamp clock; nil means time.Now.
	Now func() time.Time
}

func NewDecisionService(log *logger.Logger, eng *engine.Engine, arts *artifacts.Artifacts, sink training.Sink, opts Options) DecisionService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	parallelism := opts.BatchParallelism
	if parallelism <= 0 {
		parallelism = 8
	}
	return &decisionService{
		log:              log.With("service", "DecisionService"),
		eng:              eng,
		arts:             arts,
		sink:             sink,
		variant:          opts.Variant,
		batchParallelism: parallelism,
		now:              now,
	}
}

func (s *decisionService) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

// vectorFor validates the request state for the active variant and
// flattens it in trained feature order.
func (s *decisionService) vectorFor(st state.MathStudentState) ([]float64, error) {
	if s.variant == "generic" {
		if err := st.StudentState.Validate(); err != nil {
			return nil, err
		}
		return st.StudentState.Vector(), nil
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}
	return st.Vector(), nil
}

func (s *decisionService) Predict(ctx context.Context, req PredictionRequest) (*PredictionResponse, error) {
	vec, err := s.vectorFor(req.State)
	if err != nil {
		return nil, err
	}

	d, err := s.eng.Decide(ctx, vec)
	if err != nil {
		return nil, err
	}

	desc, err := s.arts.Catalog.Get(d.ActionID)
	if err != nil {
		return nil, err
	}

	s.log.Debug("prediction",
		"student_id", req.StudentID,
		"session_id", req.SessionID,
		"action", desc.Name,
		"confidence", d.Confidence,
	)

	return &PredictionResponse{
		StudentID:         req.StudentID,
		SessionID:         req.SessionID,
		Timestamp:         s.timestamp(),
		PredictedAction:   d.ActionID,
		ActionName:        desc.Name,
		ActionDescription: desc.Description,
		UIChanges:         desc.UIChanges,
		Confidence:        d.Confidence,
		ModelVersion:      s.arts.Meta.Version,
	}, nil
}

// PredictBatch evaluates items independently under bounded parallelism.
// An item failure fills that item's error slot; it never aborts siblings.
func (s *decisionService) PredictBatch(ctx context.Context, reqs []PredictionRequest) *BatchResponse {
	items := make([]BatchItem, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchParallelism)
	for i, req := range reqs {
		g.Go(func() error {
			resp, err := s.Predict(gctx, req)
			if err != nil {
				items[i] = BatchItem{Index: i, Error: &ItemError{Message: err.Error(), Code: ErrorCode(err)}}
				return nil
			}
			items[i] = BatchItem{Index: i, Prediction: resp}
			return nil
		})
	}
	_ = g.Wait()

	return &BatchResponse{
		Predictions: items,
		BatchSize:   len(reqs),
		Timestamp:   s.timestamp(),
	}
}

// DetectStruggle runs the math rule engine. It is an advisory signal and
// never consults the policy provider, so it works the same under both
// variants.
func (s *decisionService) DetectStruggle(_ context.Context, req StruggleRequest) (*StruggleResponse, error) {
	if err := req.State.Validate(); err != nil {
		return nil, err
	}

	res := struggle.Detect(req.State)
	desc, err := action.Math().Get(res.RecommendedAction)
	if err != nil {
		return nil, err
	}

	return &StruggleResponse{
		StudentID:         req.StudentID,
		SessionID:         req.SessionID,
		Timestamp:         s.timestamp(),
		Struggling:        res.Struggling,
		PatternType:       res.PatternType,
		RecommendedAction: res.RecommendedAction,
		ActionName:        desc.Name,
		UIChanges:         desc.UIChanges,
		Confidence:        res.Confidence,
		ModelVersion:      s.arts.Meta.Version,
	}, nil
}

func (s *decisionService) RecordReward(ctx context.Context, req RewardRequest) (*RewardResponse, error) {
	if err := req.PreviousState.Validate(); err != nil {
		return nil, err
	}
	if err := req.CurrentState.Validate(); err != nil {
		return nil, err
	}
	if _, err := action.Math().Get(req.Action); err != nil {
		return nil, err
	}

	r := reward.Calculate(req.PreviousState, req.CurrentState, req.Action)

	sample := training.Sample{
		StudentID:  req.StudentID,
		SessionID:  req.SessionID,
		Previous:   req.PreviousState,
		Current:    req.CurrentState,
		Action:     req.Action,
		Reward:     r,
		RecordedAt: s.now().UTC(),
	}
	if err := s.sink.Record(ctx, sample); err != nil {
		return nil, err
	}

	return &RewardResponse{
		StudentID: req.StudentID,
		SessionID: req.SessionID,
		Timestamp: s.timestamp(),
		Action:    req.Action,
		Reward:    r,
	}, nil
}

func (s *decisionService) ModelInfo() artifacts.Metadata {
	return s.arts.Meta
}

func (s *decisionService) Actions() []action.Descriptor {
	return s.arts.Catalog.List()
}
