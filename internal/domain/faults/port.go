package faults

import "context"

// Recorder defines persistence for agent faults
type Recorder interface {
	Save(ctx context.Context, f *Fault) error
	ListByDocument(ctx context.Context, documentID string, limit int) ([]*Fault, error)
}
