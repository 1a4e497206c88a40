// Package jobdesc supplies the job description résumés are screened against.
package jobdesc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// DefaultPath is the job description file used when none is configured.
const DefaultPath = "sample_job.txt"

var (
	ErrNotFound = errors.New("job description not found")
	ErrEmpty    = errors.New("job description is empty")
)

// Source returns the current job description text.
type Source interface {
	Load(ctx context.Context) (string, error)
}

// FileSource reads the job description from a plain-text file on each call,
// so edits take effect without a restart.
type FileSource struct {
	Path string
}

// NewFileSource reads path, or DefaultPath when path is empty.
func NewFileSource(path string) *FileSource {
	if path == "" {
		path = DefaultPath
	}
	return &FileSource{Path: path}
}

// Load returns the file contents. A missing file is ErrNotFound and a blank one ErrEmpty.
func (s *FileSource) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, s.Path)
		}
		return "", fmt.Errorf("read job description %s: %w", s.Path, err)
	}
	text := string(raw)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmpty, s.Path)
	}
	return text, nil
}

// Static is a fixed in-memory job description.
type Static string

func (s Static) Load(context.Context) (string, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", ErrEmpty
	}
	return string(s), nil
}
