package extract

import "errors"

var (
	ErrNotFound          = errors.New("file not found")
	ErrEmptyInput        = errors.New("empty file")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrExtractionFailure = errors.New("text extraction failed")
)
