// Package training carries reward samples out of the online decision path
// toward the offline policy-improvement loop.
package training

import (
	"context"
	"sync"
	"time"

	"github.com/shemankubana/IncludEd/internal/decision/state"
)

// Sample is one scored state transition.
type Sample struct {
	StudentID  string                 `json:"student_id"`
	SessionID  string                 `json:"session_id"`
	Previous   state.MathStudentState `json:"previous_state"`
	Current    state.MathStudentState `json:"current_state"`
	Action     int                    `json:"action"`
	Reward     float64                `json:"reward"`
	RecordedAt time.Time              `json:"recorded_at"`
}

// Sink receives reward samples. Implementations must be safe for
// concurrent use.
type Sink interface {
	Record(ctx context.Context, s Sample) error
	Close() error
}

// MemorySink buffers samples in memory. It is the default sink in
// development and the fixture for tests.
type MemorySink struct {
	mu      sync.Mutex
	samples []Sample
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (m *MemorySink) Record(_ context.Context, s Sample) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples = append(m.samples, s)
	return nil
}

// Samples returns a copy of everything recorded so far.
func (m *MemorySink) Samples() []Sample {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Sample, len(m.samples))
	copy(out, m.samples)
	return out
}

func (m *MemorySink) Close() error { return nil }
