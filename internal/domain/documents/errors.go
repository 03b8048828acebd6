package documents

import "errors"

// ErrNotFound indicates the requested document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrUnsupportedFormat indicates the uploaded file type has no extractor.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrNoText indicates extraction produced no usable text.
var ErrNoText = errors.New("no text could be extracted")
