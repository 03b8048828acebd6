package agents

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhiaselmi1/documind-ai/internal/domain/analysis"
	"github.com/dhiaselmi1/documind-ai/internal/domain/documents"
)

// stubAgent runs an arbitrary function under the agent contract.
type stubAgent struct {
	name analysis.AgentName
	fn   func(ctx context.Context, text string) (analysis.Payload, error)
}

func (a *stubAgent) Name() analysis.AgentName { return a.name }

func (a *stubAgent) Analyze(ctx context.Context, text string) (analysis.Payload, error) {
	return a.fn(ctx, text)
}

func okAgent(name analysis.AgentName) *stubAgent {
	return &stubAgent{name: name, fn: func(ctx context.Context, text string) (analysis.Payload, error) {
		return &analysis.SummaryPayload{Summary: text, KeyTopics: []string{}}, nil
	}}
}

func testDoc(text string) *documents.Document {
	return &documents.Document{ID: "7b0e7cc2-08ef-4f74-b0f8-4f0aa2a2a001", Text: text}
}

func newTestOrchestrator(reg *Registry, global time.Duration) *Orchestrator {
	return NewOrchestrator(reg, global, NewCorrelator(0))
}

func TestAnalyzeAllAgentsSucceed(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(okAgent("a"), 0))
	require.NoError(t, reg.Register(okAgent("b"), 0))
	require.NoError(t, reg.Register(okAgent("c"), 0))

	report, err := newTestOrchestrator(reg, time.Second).Analyze(context.Background(), testDoc("hello"))
	require.NoError(t, err)

	require.Len(t, report.Results, 3)
	// registry order is preserved in the result set
	assert.Equal(t, analysis.AgentName("a"), report.Results[0].Agent)
	assert.Equal(t, analysis.AgentName("b"), report.Results[1].Agent)
	assert.Equal(t, analysis.AgentName("c"), report.Results[2].Agent)
	for _, res := range report.Results {
		assert.Equal(t, analysis.StatusSuccess, res.Status)
		assert.NotNil(t, res.Payload)
		assert.Nil(t, res.Err)
	}
	assert.False(t, report.Degraded())
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "7b0e7cc2-08ef-4f74-b0f8-4f0aa2a2a001", report.DocumentID)
}

func TestAnalyzeMissingDocument(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(okAgent("a"), 0))
	o := newTestOrchestrator(reg, time.Second)

	_, err := o.Analyze(context.Background(), nil)
	assert.ErrorIs(t, err, analysis.ErrNoDocument)

	_, err = o.Analyze(context.Background(), &documents.Document{})
	assert.ErrorIs(t, err, analysis.ErrNoDocument)
}

func TestAnalyzeEmptyRegistry(t *testing.T) {
	report, err := newTestOrchestrator(NewRegistry(), time.Second).Analyze(context.Background(), testDoc("x"))
	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.False(t, report.Degraded())
}

func TestAnalyzeSlowAgentDoesNotBlockSiblings(t *testing.T) {
	stuck := &stubAgent{name: "stuck", fn: func(ctx context.Context, text string) (analysis.Payload, error) {
		// ignores ctx on purpose
		time.Sleep(2 * time.Second)
		return &analysis.SummaryPayload{}, nil
	}}

	reg := NewRegistry()
	require.NoError(t, reg.Register(okAgent("fast"), 0))
	require.NoError(t, reg.Register(stuck, 50*time.Millisecond))

	start := time.Now()
	report, err := newTestOrchestrator(reg, 5*time.Second).Analyze(context.Background(), testDoc("x"))
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)

	fast, ok := report.Result("fast")
	require.True(t, ok)
	assert.Equal(t, analysis.StatusSuccess, fast.Status)

	res, ok := report.Result("stuck")
	require.True(t, ok)
	assert.Equal(t, analysis.StatusTimeout, res.Status)
	assert.Nil(t, res.Payload)
	assert.Nil(t, res.Err)
	assert.True(t, report.Degraded())
}

func TestAnalyzeGlobalTimeoutBackstop(t *testing.T) {
	// per-agent budget exceeds the global one; the backstop must fire
	stuck := &stubAgent{name: "stuck", fn: func(ctx context.Context, text string) (analysis.Payload, error) {
		time.Sleep(2 * time.Second)
		return &analysis.SummaryPayload{}, nil
	}}

	reg := NewRegistry()
	require.NoError(t, reg.Register(stuck, 10*time.Second))

	start := time.Now()
	report, err := newTestOrchestrator(reg, 100*time.Millisecond).Analyze(context.Background(), testDoc("x"))
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)

	require.Len(t, report.Results, 1)
	assert.Equal(t, analysis.StatusTimeout, report.Results[0].Status)
}

func TestAnalyzeContainsPanic(t *testing.T) {
	boom := &stubAgent{name: "boom", fn: func(ctx context.Context, text string) (analysis.Payload, error) {
		panic("kaput")
	}}

	reg := NewRegistry()
	require.NoError(t, reg.Register(boom, 0))
	require.NoError(t, reg.Register(okAgent("ok"), 0))

	report, err := newTestOrchestrator(reg, time.Second).Analyze(context.Background(), testDoc("x"))
	require.NoError(t, err)

	res, ok := report.Result("boom")
	require.True(t, ok)
	assert.Equal(t, analysis.StatusFailure, res.Status)
	require.NotNil(t, res.Err)
	assert.Equal(t, analysis.FailureInternal, res.Err.Kind)
	assert.Contains(t, res.Err.Message, "kaput")

	okRes, _ := report.Result("ok")
	assert.Equal(t, analysis.StatusSuccess, okRes.Status)
}

func TestAnalyzeClassifiesFailures(t *testing.T) {
	invalid := &stubAgent{name: "invalid", fn: func(ctx context.Context, text string) (analysis.Payload, error) {
		return nil, fmt.Errorf("%w: text is gibberish", ErrInvalidInput)
	}}
	broken := &stubAgent{name: "broken", fn: func(ctx context.Context, text string) (analysis.Payload, error) {
		return nil, errors.New("index out of range")
	}}

	reg := NewRegistry()
	require.NoError(t, reg.Register(invalid, 0))
	require.NoError(t, reg.Register(broken, 0))

	report, err := newTestOrchestrator(reg, time.Second).Analyze(context.Background(), testDoc("x"))
	require.NoError(t, err)

	res, _ := report.Result("invalid")
	require.NotNil(t, res.Err)
	assert.Equal(t, analysis.FailureInvalidInput, res.Err.Kind)

	res, _ = report.Result("broken")
	require.NotNil(t, res.Err)
	assert.Equal(t, analysis.FailureInternal, res.Err.Kind)
}

func TestAnalyzeCooperativeCancellationIsTimeout(t *testing.T) {
	polite := &stubAgent{name: "polite", fn: func(ctx context.Context, text string) (analysis.Payload, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}

	reg := NewRegistry()
	require.NoError(t, reg.Register(polite, 20*time.Millisecond))

	report, err := newTestOrchestrator(reg, time.Second).Analyze(context.Background(), testDoc("x"))
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, analysis.StatusTimeout, report.Results[0].Status)
	assert.Nil(t, report.Results[0].Err)
}

func TestAnalyzeRealAgentsEndToEnd(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(NewSummarizer(SummarizerConfig{}), 0))
	require.NoError(t, reg.Register(NewRiskDetector(RiskConfig{}), 0))
	require.NoError(t, reg.Register(NewDecisionExtractor(DecisionConfig{}), 0))

	text := "We decided to terminate the vendor contract due to repeated compliance violations by March 31. " +
		"Legal will review the termination clause within 14 days."
	report, err := newTestOrchestrator(reg, 5*time.Second).Analyze(context.Background(), testDoc(text))
	require.NoError(t, err)
	require.Len(t, report.Results, 3)
	assert.False(t, report.Degraded())

	risks, _ := report.Result(analysis.AgentRisks)
	rp := risks.Payload.(*analysis.RiskPayload)
	require.NotEmpty(t, rp.Flags)

	decisions, _ := report.Result(analysis.AgentDecisions)
	dp := decisions.Payload.(*analysis.DecisionPayload)
	require.Len(t, dp.Items, 2)
	assert.Equal(t, "March 31", dp.Items[0].Deadline)

	assert.Equal(t, len(rp.Flags), report.Stats.TotalRiskFlags)
	assert.Equal(t, 2, report.Stats.TotalDecisions)
	assert.InDelta(t, 1.0, report.Assessment.Confidence, 1e-9)
}
