package analysis

import "errors"

// ErrReportNotFound indicates no stored report exists for the document.
var ErrReportNotFound = errors.New("analysis report not found")

// ErrNoDocument is the single structural failure of an analyze call:
// there was no document to fan out to the agents at all.
var ErrNoDocument = errors.New("analysis: no document")
