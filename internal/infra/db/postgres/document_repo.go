package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	domain "github.com/dhiaselmi1/documind-ai/internal/domain/documents"
)

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Save insert/update Document record
func (r *DocumentRepository) Save(ctx context.Context, d *domain.Document) error {
	const q = `
INSERT INTO documents
(id, filename, format, content, size_bytes, archive_url, uploaded_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id) DO UPDATE SET
 filename=EXCLUDED.filename, format=EXCLUDED.format, content=EXCLUDED.content,
 size_bytes=EXCLUDED.size_bytes, archive_url=EXCLUDED.archive_url;
`
	uploaded := d.UploadedAt
	if uploaded.IsZero() {
		uploaded = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q,
		d.ID, d.Filename, string(d.Format), d.Text, d.Size, d.ArchiveURL, uploaded,
	)
	return err
}

// Get by ID
func (r *DocumentRepository) Get(ctx context.Context, id domain.DocumentID) (*domain.Document, error) {
	const q = `
SELECT id, filename, format, content, size_bytes, archive_url, uploaded_at
FROM documents
WHERE id=$1 LIMIT 1;
`
	var d domain.Document
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.Filename, &d.Format, &d.Text, &d.Size, &d.ArchiveURL, &d.UploadedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// List newest documents first
func (r *DocumentRepository) List(ctx context.Context, limit int) ([]*domain.Document, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, filename, format, content, size_bytes, archive_url, uploaded_at
FROM documents
ORDER BY uploaded_at DESC LIMIT $1;
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(
			&d.ID, &d.Filename, &d.Format, &d.Text, &d.Size, &d.ArchiveURL, &d.UploadedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// Count total documents
func (r *DocumentRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents;`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
