package agents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dhiaselmi1/documind-ai/internal/domain/analysis"
	"github.com/dhiaselmi1/documind-ai/internal/domain/documents"
)

// DefaultGlobalTimeout bounds a whole analyze call when the caller
// supplies none.
const DefaultGlobalTimeout = 30 * time.Second

// Orchestrator fans one document out to every registered agent,
// collects each task's terminal result independently and merges them
// into a single report. One slow or failed agent never blocks or
// cancels its siblings; the report is complete even when degraded.
type Orchestrator struct {
	Registry      *Registry
	GlobalTimeout time.Duration
	Correlator    Correlator
}

func NewOrchestrator(reg *Registry, globalTimeout time.Duration, corr Correlator) *Orchestrator {
	return &Orchestrator{Registry: reg, GlobalTimeout: globalTimeout, Correlator: corr}
}

type outcome struct {
	idx int
	res analysis.AgentResult
}

// Analyze runs every registered agent over the document text and
// returns the merged report. The only call-level error is structural:
// a missing document that prevents starting any agent at all. Agent
// faults and timeouts are captured inside the report instead.
func (o *Orchestrator) Analyze(ctx context.Context, doc *documents.Document) (*analysis.Report, error) {
	if doc == nil || doc.ID == "" {
		return nil, analysis.ErrNoDocument
	}
	start := time.Now()

	global := o.GlobalTimeout
	if global <= 0 {
		global = DefaultGlobalTimeout
	}

	tasks := o.Registry.Snapshot()
	results := make([]analysis.AgentResult, len(tasks))

	ch := make(chan outcome, len(tasks))
	for i, t := range tasks {
		go o.runTask(ctx, i, t, doc.Text, global, ch)
	}

	// Join barrier: wait for every task to reach a terminal state. If
	// the global timer fires first, every task still pending is
	// recorded as timed out and we return immediately.
	backstop := time.NewTimer(global)
	defer backstop.Stop()

	done := make([]bool, len(tasks))
	pending := len(tasks)
	for pending > 0 {
		select {
		case out := <-ch:
			results[out.idx] = out.res
			done[out.idx] = true
			pending--
		case <-backstop.C:
			o.markPending(tasks, results, done)
			pending = 0
		case <-ctx.Done():
			o.markPending(tasks, results, done)
			pending = 0
		}
	}

	report := &analysis.Report{
		ID:         analysis.ReportID(uuid.New().String()),
		DocumentID: string(doc.ID),
		Results:    results,
		Insights:   o.Correlator.Correlate(results),
		Assessment: BuildAssessment(results),
		Stats:      BuildStatistics(doc.Text, results),
		CreatedAt:  start,
	}
	report.DurationMS = time.Since(start).Milliseconds()
	return report, nil
}

func (o *Orchestrator) markPending(tasks []Task, results []analysis.AgentResult, done []bool) {
	for i := range tasks {
		if !done[i] {
			results[i] = analysis.AgentResult{
				Agent:  tasks[i].Agent.Name(),
				Status: analysis.StatusTimeout,
			}
			done[i] = true
		}
	}
}

// runTask executes one agent under its own deadline. The agent runs in
// a further goroutine so a capability that ignores its context still
// cannot hold up the join; its buffered channel lets the stray
// goroutine finish and be collected.
func (o *Orchestrator) runTask(ctx context.Context, idx int, t Task, text string, global time.Duration, ch chan<- outcome) {
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = global / 2
	}
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	name := t.Agent.Name()
	inner := make(chan analysis.AgentResult, 1)
	go func() {
		inner <- o.invoke(tctx, t.Agent, text)
	}()

	select {
	case res := <-inner:
		ch <- outcome{idx: idx, res: res}
	case <-tctx.Done():
		ch <- outcome{idx: idx, res: analysis.AgentResult{Agent: name, Status: analysis.StatusTimeout}}
	}
}

// invoke calls the agent and classifies its outcome. A panicking agent
// is contained here and surfaces as an internal_error failure.
func (o *Orchestrator) invoke(ctx context.Context, a Agent, text string) (res analysis.AgentResult) {
	name := a.Name()
	defer func() {
		if r := recover(); r != nil {
			res = analysis.AgentResult{
				Agent:  name,
				Status: analysis.StatusFailure,
				Err: &analysis.AgentError{
					Kind:    analysis.FailureInternal,
					Message: fmt.Sprintf("agent panic: %v", r),
				},
			}
		}
	}()

	payload, err := a.Analyze(ctx, text)
	switch {
	case err == nil:
		return analysis.AgentResult{Agent: name, Status: analysis.StatusSuccess, Payload: payload}
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		return analysis.AgentResult{Agent: name, Status: analysis.StatusTimeout}
	default:
		return analysis.AgentResult{
			Agent:  name,
			Status: analysis.StatusFailure,
			Err:    &analysis.AgentError{Kind: classify(err), Message: err.Error()},
		}
	}
}
