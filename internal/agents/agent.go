package agents

import (
	"context"
	"errors"

	"github.com/dhiaselmi1/documind-ai/internal/domain/analysis"
)

// Agent is one pluggable analysis capability. Analyze must be safe to
// call concurrently with other agents over the same text, must not
// mutate shared state, and reports local faults through the returned
// error instead of panicking. The time budget comes from the caller via
// ctx; an agent never manages its own deadline.
type Agent interface {
	Name() analysis.AgentName
	Analyze(ctx context.Context, text string) (analysis.Payload, error)
}

// ErrInvalidInput marks an agent-local input fault (e.g. text the agent
// cannot process). Wrap it so the orchestrator can classify the result.
var ErrInvalidInput = errors.New("invalid input")

// classify maps an agent error to the report-level failure kind.
func classify(err error) analysis.FailureKind {
	if errors.Is(err, ErrInvalidInput) {
		return analysis.FailureInvalidInput
	}
	return analysis.FailureInternal
}
