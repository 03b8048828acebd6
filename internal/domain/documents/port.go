package documents

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, d *Document) error
	Get(ctx context.Context, id DocumentID) (*Document, error)
	List(ctx context.Context, limit int) ([]*Document, error)
	Count(ctx context.Context) (int, error)
}

// Extractor port: turns uploaded bytes into plain text.
// The analysis core only ever sees the returned text.
type Extractor interface {
	Extract(filename string, content []byte) (text string, format Format, err error)
}

// ArchiveStore port (interface untuk penyimpanan file mentah)
type ArchiveStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
