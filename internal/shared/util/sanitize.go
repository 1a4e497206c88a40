package util

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrInvalidFileName is returned when nothing usable is left after sanitising.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName strips directory components and keeps only ASCII letters,
// digits, '.', '_' and '-'.
func SanitizeFileName(name string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	s := strings.TrimSpace(b.String())
	if s == "" || strings.Trim(s, ".") == "" {
		return "", ErrInvalidFileName
	}
	return s, nil
}
