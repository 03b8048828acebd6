package documents

import (
	"time"
)

// ID tipe untuk Document
type DocumentID string

// Format enum
type Format string

const (
	FormatTXT  Format = "txt"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// Aggregate Root: Document
// Immutable once text extraction completes; analysis only ever reads it.
type Document struct {
	ID         DocumentID `json:"id"`
	Filename   string     `json:"filename"`
	Format     Format     `json:"file_type"`
	Text       string     `json:"content"`
	Size       int64      `json:"size_bytes"`
	ArchiveURL string     `json:"archive_url,omitempty"`
	UploadedAt time.Time  `json:"uploaded_at"`
}

// WordCount hitung jumlah kata pada teks hasil ekstraksi
func (d *Document) WordCount() int {
	n := 0
	inWord := false
	for _, r := range d.Text {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			inWord = false
			continue
		}
		if !inWord {
			n++
			inWord = true
		}
	}
	return n
}
