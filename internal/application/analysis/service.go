package analysis

import (
	"context"
	"log"

	"github.com/dhiaselmi1/documind-ai/internal/agents"
	"github.com/dhiaselmi1/documind-ai/internal/application"
	domain "github.com/dhiaselmi1/documind-ai/internal/domain/analysis"
	docdomain "github.com/dhiaselmi1/documind-ai/internal/domain/documents"
	"github.com/dhiaselmi1/documind-ai/internal/domain/faults"
)

// Service implements use-cases untuk analysis
// Service is designed to be used concurrently and is thread-safe
type Service struct {
	Documents    docdomain.Repository
	Reports      domain.Repository
	Faults       faults.Recorder // optional
	Orchestrator *agents.Orchestrator
	Clock        application.Clock
}

// AnalyzeDocument runs every registered agent over the stored document
// and persists the merged report. A degraded report (some agents
// failed or timed out) is a normal, successful outcome.
func (s *Service) AnalyzeDocument(ctx context.Context, id docdomain.DocumentID) (*domain.Report, error) {
	doc, err := s.Documents.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	report, err := s.Orchestrator.Analyze(ctx, doc)
	if err != nil {
		return nil, err
	}

	if err := s.Reports.Save(ctx, report); err != nil {
		// the caller still gets the report; persistence is archival
		log.Printf("report save failed for document=%s: %v", id, err)
	}
	s.recordFaults(report)

	return report, nil
}

// recordFaults keeps an audit trail of non-success agent results,
// best-effort.
func (s *Service) recordFaults(report *domain.Report) {
	if s.Faults == nil {
		return
	}
	for i := range report.Results {
		res := &report.Results[i]
		if res.Status == domain.StatusSuccess {
			continue
		}
		f := &faults.Fault{
			DocumentID: report.DocumentID,
			Agent:      string(res.Agent),
			Kind:       string(res.Status),
			CreatedAt:  s.Clock.Now(),
		}
		if res.Err != nil {
			f.Kind = string(res.Err.Kind)
			f.Message = res.Err.Message
		}
		if err := s.Faults.Save(context.Background(), f); err != nil {
			log.Printf("fault record failed for document=%s agent=%s: %v", report.DocumentID, res.Agent, err)
		}
	}
}

// GetReport ambil stored report untuk 1 document
func (s *Service) GetReport(ctx context.Context, documentID string) (*domain.Report, error) {
	return s.Reports.GetByDocument(ctx, documentID)
}

// Latest ambil N report terakhir
func (s *Service) Latest(ctx context.Context, limit int) ([]*domain.Report, error) {
	return s.Reports.Latest(ctx, limit)
}

// ListFaults returns the recorded agent faults for one document.
func (s *Service) ListFaults(ctx context.Context, documentID string, limit int) ([]*faults.Fault, error) {
	if s.Faults == nil {
		return nil, nil
	}
	return s.Faults.ListByDocument(ctx, documentID, limit)
}

// AgentStatus reports the registered agents, for the health endpoint.
func (s *Service) AgentStatus() map[string]string {
	out := make(map[string]string)
	for _, name := range s.Orchestrator.Registry.Names() {
		out[string(name)] = "ready"
	}
	return out
}
