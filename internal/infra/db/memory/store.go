package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dhiaselmi1/documind-ai/internal/domain/analysis"
	"github.com/dhiaselmi1/documind-ai/internal/domain/documents"
	"github.com/dhiaselmi1/documind-ai/internal/domain/faults"
)

// In-process stores. The default backend (the service makes no
// durability promises) and what the tests run against.

// DocumentStore implements documents.Repository in memory.
type DocumentStore struct {
	mu    sync.RWMutex
	docs  map[documents.DocumentID]*documents.Document
	order []documents.DocumentID
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[documents.DocumentID]*documents.Document)}
}

func (s *DocumentStore) Save(ctx context.Context, d *documents.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[d.ID]; !exists {
		s.order = append(s.order, d.ID)
	}
	cp := *d
	s.docs[d.ID] = &cp
	return nil
}

func (s *DocumentStore) Get(ctx context.Context, id documents.DocumentID) (*documents.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[id]
	if !ok {
		return nil, documents.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

// List returns documents newest first.
func (s *DocumentStore) List(ctx context.Context, limit int) ([]*documents.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.order) {
		limit = len(s.order)
	}
	out := make([]*documents.Document, 0, limit)
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *s.docs[s.order[i]]
		out = append(out, &cp)
	}
	return out, nil
}

func (s *DocumentStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order), nil
}

// ReportStore implements analysis.Repository in memory, keyed by
// document ID (one stored report per document, latest wins).
type ReportStore struct {
	mu      sync.RWMutex
	reports map[string]*analysis.Report
}

func NewReportStore() *ReportStore {
	return &ReportStore{reports: make(map[string]*analysis.Report)}
}

func (s *ReportStore) Save(ctx context.Context, r *analysis.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.DocumentID] = r
	return nil
}

func (s *ReportStore) GetByDocument(ctx context.Context, documentID string) (*analysis.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[documentID]
	if !ok {
		return nil, analysis.ErrReportNotFound
	}
	return r, nil
}

func (s *ReportStore) Latest(ctx context.Context, limit int) ([]*analysis.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*analysis.Report, 0, len(s.reports))
	for _, r := range s.reports {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// FaultLog implements faults.Recorder in memory.
type FaultLog struct {
	mu     sync.RWMutex
	faults []*faults.Fault
	nextID int64
}

func NewFaultLog() *FaultLog { return &FaultLog{} }

func (s *FaultLog) Save(ctx context.Context, f *faults.Fault) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	cp := *f
	cp.ID = s.nextID
	s.faults = append(s.faults, &cp)
	return nil
}

// ListByDocument returns faults newest first.
func (s *FaultLog) ListByDocument(ctx context.Context, documentID string, limit int) ([]*faults.Fault, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*faults.Fault
	for i := len(s.faults) - 1; i >= 0; i-- {
		if s.faults[i].DocumentID != documentID {
			continue
		}
		cp := *s.faults[i]
		out = append(out, &cp)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
