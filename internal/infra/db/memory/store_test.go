package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhiaselmi1/documind-ai/internal/domain/analysis"
	"github.com/dhiaselmi1/documind-ai/internal/domain/documents"
	"github.com/dhiaselmi1/documind-ai/internal/domain/faults"
)

func TestDocumentStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, documents.ErrNotFound)

	doc := &documents.Document{ID: "d1", Filename: "a.txt", Text: "hello"}
	require.NoError(t, s.Save(ctx, doc))

	got, err := s.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", got.Filename)

	// the store holds a copy, not the caller's pointer
	doc.Filename = "mutated.txt"
	got, _ = s.Get(ctx, "d1")
	assert.Equal(t, "a.txt", got.Filename)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDocumentStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore()
	for _, id := range []documents.DocumentID{"d1", "d2", "d3"} {
		require.NoError(t, s.Save(ctx, &documents.Document{ID: id}))
	}

	list, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, documents.DocumentID("d3"), list[0].ID)
	assert.Equal(t, documents.DocumentID("d2"), list[1].ID)

	all, _ := s.List(ctx, 0)
	assert.Len(t, all, 3)
}

func TestReportStoreLatestWins(t *testing.T) {
	ctx := context.Background()
	s := NewReportStore()

	_, err := s.GetByDocument(ctx, "d1")
	assert.ErrorIs(t, err, analysis.ErrReportNotFound)

	require.NoError(t, s.Save(ctx, &analysis.Report{ID: "r1", DocumentID: "d1"}))
	require.NoError(t, s.Save(ctx, &analysis.Report{ID: "r2", DocumentID: "d1"}))

	got, err := s.GetByDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, analysis.ReportID("r2"), got.ID)
}

func TestReportStoreLatestOrdering(t *testing.T) {
	ctx := context.Background()
	s := NewReportStore()
	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Save(ctx, &analysis.Report{ID: "old", DocumentID: "d1", CreatedAt: base}))
	require.NoError(t, s.Save(ctx, &analysis.Report{ID: "new", DocumentID: "d2", CreatedAt: base.Add(time.Hour)}))

	list, err := s.Latest(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, analysis.ReportID("new"), list[0].ID)
}

func TestFaultLogListByDocument(t *testing.T) {
	ctx := context.Background()
	s := NewFaultLog()
	require.NoError(t, s.Save(ctx, &faults.Fault{DocumentID: "d1", Agent: "risks", Kind: "timeout"}))
	require.NoError(t, s.Save(ctx, &faults.Fault{DocumentID: "d2", Agent: "summary", Kind: "internal_error"}))
	require.NoError(t, s.Save(ctx, &faults.Fault{DocumentID: "d1", Agent: "decisions", Kind: "invalid_input"}))

	list, err := s.ListByDocument(ctx, "d1", 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// newest first, IDs assigned by the log
	assert.Equal(t, "decisions", list[0].Agent)
	assert.Equal(t, "risks", list[1].Agent)
	assert.Greater(t, list[0].ID, list[1].ID)

	one, _ := s.ListByDocument(ctx, "d1", 1)
	assert.Len(t, one, 1)
}
