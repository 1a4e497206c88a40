package extract

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"resume-screener/internal/shared/telemetry"
)

// Format identifies the source layout of a résumé file.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// Document is the raw text extracted from a single file.
type Document struct {
	Path      string
	Format    Format
	SizeBytes int64
	Text      string
}

// FormatForPath maps a file extension to a supported Format.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %q (use PDF or DOCX)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Extract validates the file at path and returns its text.
func Extract(ctx context.Context, path string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Document{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Document{}, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}
	if info.Size() == 0 {
		return Document{}, fmt.Errorf("%w: %s", ErrEmptyInput, path)
	}

	format, err := FormatForPath(path)
	if err != nil {
		return Document{}, err
	}

	var text string
	switch format {
	case FormatPDF:
		text, err = extractPDF(path)
	case FormatDOCX:
		text, err = extractDOCX(path)
	}
	if err != nil {
		telemetry.Error("extract.failed", map[string]any{
			"path":       path,
			"size_bytes": info.Size(),
			"format":     string(format),
			"err":        err,
		})
		return Document{}, fmt.Errorf("%w: %s: %v", ErrExtractionFailure, path, err)
	}

	telemetry.Info("extract.completed", map[string]any{
		"path":       path,
		"size_bytes": info.Size(),
		"format":     string(format),
		"chars":      len(text),
	})

	return Document{
		Path:      path,
		Format:    format,
		SizeBytes: info.Size(),
		Text:      text,
	}, nil
}
