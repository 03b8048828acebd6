package faults

import "time"

// Fault represents a persisted per-agent failure entry, kept for
// auditing degraded reports.
type Fault struct {
	ID         int64     `json:"id"`
	DocumentID string    `json:"document_id"`
	Agent      string    `json:"agent"`
	Kind       string    `json:"kind"` // invalid_input | internal_error | timeout
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}
