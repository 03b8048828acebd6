package documents

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dhiaselmi1/documind-ai/internal/application"
	domain "github.com/dhiaselmi1/documind-ai/internal/domain/documents"
)

// Service implements use-cases untuk Document
// Service is designed to be used concurrently and is thread-safe
type Service struct {
	Repo      domain.Repository
	Extractor domain.Extractor
	Archive   domain.ArchiveStore // optional; nil disables raw-file archival
	Clock     application.Clock
}

// Command untuk upload dokumen
type UploadCommand struct {
	Filename string
	Content  []byte
}

// Upload extracts text from the uploaded bytes and persists the
// document. The raw file is archived best-effort when a store is
// configured; a failed archive never fails the upload.
func (s *Service) Upload(ctx context.Context, cmd UploadCommand) (*domain.Document, error) {
	if strings.TrimSpace(cmd.Filename) == "" {
		return nil, fmt.Errorf("%w: missing filename", domain.ErrUnsupportedFormat)
	}

	text, format, err := s.Extractor.Extract(cmd.Filename, cmd.Content)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrNoText
	}

	doc := &domain.Document{
		ID:         domain.DocumentID(uuid.New().String()),
		Filename:   cmd.Filename,
		Format:     format,
		Text:       text,
		Size:       int64(len(cmd.Content)),
		UploadedAt: s.Clock.Now(),
	}

	if s.Archive != nil {
		key := fmt.Sprintf("%s/%s", doc.ID, filepath.Base(cmd.Filename))
		url, aerr := s.Archive.Put(ctx, key, cmd.Content, contentTypeFor(format))
		if aerr != nil {
			log.Printf("archive upload failed for document=%s: %v", doc.ID, aerr)
		} else {
			doc.ArchiveURL = url
		}
	}

	if err := s.Repo.Save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Get ambil 1 document by id
func (s *Service) Get(ctx context.Context, id domain.DocumentID) (*domain.Document, error) {
	return s.Repo.Get(ctx, id)
}

// List ambil N document terakhir
func (s *Service) List(ctx context.Context, limit int) ([]*domain.Document, error) {
	return s.Repo.List(ctx, limit)
}

// Count total documents stored
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.Repo.Count(ctx)
}

func contentTypeFor(f domain.Format) string {
	switch f {
	case domain.FormatTXT:
		return "text/plain"
	case domain.FormatPDF:
		return "application/pdf"
	case domain.FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	return "application/octet-stream"
}
