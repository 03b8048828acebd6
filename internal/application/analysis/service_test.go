package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhiaselmi1/documind-ai/internal/agents"
	"github.com/dhiaselmi1/documind-ai/internal/application"
	domain "github.com/dhiaselmi1/documind-ai/internal/domain/analysis"
	docdomain "github.com/dhiaselmi1/documind-ai/internal/domain/documents"
	"github.com/dhiaselmi1/documind-ai/internal/infra/db/memory"
)

type fakeAgent struct {
	name domain.AgentName
	fn   func(ctx context.Context, text string) (domain.Payload, error)
}

func (a *fakeAgent) Name() domain.AgentName { return a.name }

func (a *fakeAgent) Analyze(ctx context.Context, text string) (domain.Payload, error) {
	return a.fn(ctx, text)
}

func newTestService(t *testing.T, extra ...agents.Agent) (*Service, *memory.FaultLog, docdomain.DocumentID) {
	t.Helper()

	reg := agents.NewRegistry()
	require.NoError(t, reg.Register(&fakeAgent{name: domain.AgentSummary, fn: func(ctx context.Context, text string) (domain.Payload, error) {
		return &domain.SummaryPayload{Summary: text, KeyTopics: []string{}}, nil
	}}, 0))
	for _, a := range extra {
		require.NoError(t, reg.Register(a, 0))
	}

	docs := memory.NewDocumentStore()
	docID := docdomain.DocumentID("7b0e7cc2-08ef-4f74-b0f8-4f0aa2a2a001")
	require.NoError(t, docs.Save(context.Background(), &docdomain.Document{ID: docID, Text: "some text"}))

	faultLog := memory.NewFaultLog()
	svc := &Service{
		Documents:    docs,
		Reports:      memory.NewReportStore(),
		Faults:       faultLog,
		Orchestrator: agents.NewOrchestrator(reg, time.Second, agents.NewCorrelator(0)),
		Clock:        application.FixedClock{T: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)},
	}
	return svc, faultLog, docID
}

func TestAnalyzeDocumentPersistsReport(t *testing.T) {
	svc, _, docID := newTestService(t)

	report, err := svc.AnalyzeDocument(context.Background(), docID)
	require.NoError(t, err)
	assert.False(t, report.Degraded())

	stored, err := svc.GetReport(context.Background(), string(docID))
	require.NoError(t, err)
	assert.Equal(t, report.ID, stored.ID)

	latest, err := svc.Latest(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, latest, 1)
}

func TestAnalyzeDocumentUnknownID(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.AnalyzeDocument(context.Background(), "ffffffff-ffff-4fff-bfff-ffffffffffff")
	assert.ErrorIs(t, err, docdomain.ErrNotFound)
}

func TestAnalyzeDocumentRecordsFaults(t *testing.T) {
	broken := &fakeAgent{name: domain.AgentRisks, fn: func(ctx context.Context, text string) (domain.Payload, error) {
		return nil, errors.New("scanner crashed")
	}}
	svc, faultLog, docID := newTestService(t, broken)

	report, err := svc.AnalyzeDocument(context.Background(), docID)
	require.NoError(t, err)
	assert.True(t, report.Degraded())

	recorded, err := faultLog.ListByDocument(context.Background(), string(docID), 0)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, string(domain.AgentRisks), recorded[0].Agent)
	assert.Equal(t, string(domain.FailureInternal), recorded[0].Kind)
	assert.Contains(t, recorded[0].Message, "scanner crashed")

	viaService, err := svc.ListFaults(context.Background(), string(docID), 0)
	require.NoError(t, err)
	assert.Len(t, viaService, 1)
}

func TestGetReportNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.GetReport(context.Background(), "never-analyzed")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}

func TestAgentStatus(t *testing.T) {
	svc, _, _ := newTestService(t)
	status := svc.AgentStatus()
	assert.Equal(t, map[string]string{"summary": "ready"}, status)
}
