package analysis

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, r *Report) error
	GetByDocument(ctx context.Context, documentID string) (*Report, error)
	Latest(ctx context.Context, limit int) ([]*Report, error)
}
