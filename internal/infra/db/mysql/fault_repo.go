package mysql

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/dhiaselmi1/documind-ai/internal/domain/faults"
)

type FaultRepository struct {
	db *sql.DB
}

func NewFaultRepository(db *sql.DB) *FaultRepository {
	return &FaultRepository{db: db}
}

// Save inserts an agent fault entry
func (r *FaultRepository) Save(ctx context.Context, f *domain.Fault) error {
	const q = `
INSERT INTO agent_faults
  (document_id, agent, kind, message, created_at)
VALUES (?,?,?,?,?);
`
	created := f.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q,
		stringOrDash(f.DocumentID), stringOrDash(f.Agent), stringOrDash(f.Kind), f.Message, created,
	)
	return err
}

// ListByDocument returns fault entries for one document, newest first
func (r *FaultRepository) ListByDocument(ctx context.Context, documentID string, limit int) ([]*domain.Fault, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
SELECT id, document_id, agent, kind, message, created_at
FROM agent_faults
WHERE document_id=? ORDER BY created_at DESC, id DESC LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, q, documentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Fault
	for rows.Next() {
		var f domain.Fault
		if err := rows.Scan(&f.ID, &f.DocumentID, &f.Agent, &f.Kind, &f.Message, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}
