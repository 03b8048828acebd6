package extract

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dhiaselmi1/documind-ai/internal/domain/documents"
)

// Extractor turns uploaded bytes into plain text. Only TXT has a
// native extractor; PDF and DOCX uploads are recognized but rejected
// until a converter sits in front of the service. The analysis core
// never sees anything but the returned string.
type Extractor struct{}

func New() *Extractor { return &Extractor{} }

func (e *Extractor) Extract(filename string, content []byte) (string, documents.Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return extractTXT(content), documents.FormatTXT, nil
	case ".pdf":
		return "", documents.FormatPDF, fmt.Errorf("%w: pdf extraction requires an upstream converter", documents.ErrUnsupportedFormat)
	case ".docx":
		return "", documents.FormatDOCX, fmt.Errorf("%w: docx extraction requires an upstream converter", documents.ErrUnsupportedFormat)
	default:
		return "", "", fmt.Errorf("%w: %s", documents.ErrUnsupportedFormat, ext)
	}
}

// extractTXT decodes as UTF-8, falling back to Latin-1 for legacy
// exports.
func extractTXT(content []byte) string {
	if utf8.Valid(content) {
		return strings.TrimSpace(string(content))
	}
	var b strings.Builder
	b.Grow(len(content))
	for _, c := range content {
		b.WriteRune(rune(c))
	}
	return strings.TrimSpace(b.String())
}
