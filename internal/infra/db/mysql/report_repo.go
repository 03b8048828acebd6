package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	domain "github.com/dhiaselmi1/documind-ai/internal/domain/analysis"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Save inserts an analysis report; the full report travels as one JSON
// column, with the columns the dashboard filters on lifted out.
func (r *ReportRepository) Save(ctx context.Context, rep *domain.Report) error {
	const q = `
INSERT INTO analysis_reports
  (id, document_id, report_json, degraded, duration_ms, created_at)
VALUES (?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  report_json=VALUES(report_json), degraded=VALUES(degraded), duration_ms=VALUES(duration_ms);
`
	b, err := json.Marshal(rep)
	if err != nil {
		return err
	}
	body := string(b)
	if strings.TrimSpace(body) == "" {
		body = "{}"
	}
	created := rep.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err = r.db.ExecContext(ctx, q,
		rep.ID, stringOrDash(rep.DocumentID), body, rep.Degraded(), rep.DurationMS, created,
	)
	return err
}

// GetByDocument returns the stored report for one document
func (r *ReportRepository) GetByDocument(ctx context.Context, documentID string) (*domain.Report, error) {
	const q = `
SELECT report_json FROM analysis_reports
WHERE document_id=? ORDER BY created_at DESC LIMIT 1;
`
	var body string
	err := r.db.QueryRowContext(ctx, q, documentID).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	var rep domain.Report
	if err := json.Unmarshal([]byte(body), &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// Latest returns the most recent reports
func (r *ReportRepository) Latest(ctx context.Context, limit int) ([]*domain.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT report_json FROM analysis_reports
ORDER BY created_at DESC LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Report
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var rep domain.Report
		if err := json.Unmarshal([]byte(body), &rep); err != nil {
			return nil, err
		}
		out = append(out, &rep)
	}
	return out, rows.Err()
}
