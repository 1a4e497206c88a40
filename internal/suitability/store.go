package suitability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"resume-screener/internal/shared/storage/object"
	"resume-screener/internal/shared/telemetry"
)

// DefaultModelKey is the object key of the persisted model artifact.
const DefaultModelKey = "models/resume_model.json"

// ErrModelUnavailable is returned when no model artifact has been persisted.
var ErrModelUnavailable = errors.New("suitability model unavailable")

// Store persists and loads the model artifact in an object store.
type Store struct {
	Objects object.ObjectStore
	Key     string
}

// NewStore returns a Store for key, falling back to DefaultModelKey.
func NewStore(objects object.ObjectStore, key string) *Store {
	if key == "" {
		key = DefaultModelKey
	}
	return &Store{Objects: objects, Key: key}
}

// Save writes m as JSON under the store key.
func (s *Store) Save(ctx context.Context, m *Model) error {
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	if _, err := s.Objects.Save(ctx, s.Key, "application/json", bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("save model %s: %w", s.Key, err)
	}
	return nil
}

// Load reads and validates the persisted model.
func (s *Store) Load(ctx context.Context) (*Model, error) {
	rc, err := s.Objects.Open(ctx, s.Key)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return nil, fmt.Errorf("%w: no artifact at %s", ErrModelUnavailable, s.Key)
		}
		return nil, fmt.Errorf("open model %s: %w", s.Key, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", s.Key, err)
	}
	var m Model
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrModelUnavailable, s.Key, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrModelUnavailable, s.Key, err)
	}
	return &m, nil
}

// TrainAndPersist fits the default model and writes it to the store.
func (s *Store) TrainAndPersist(ctx context.Context) (*Model, error) {
	m := Train()
	if err := s.Save(ctx, m); err != nil {
		return nil, err
	}
	telemetry.Info("model.trained", map[string]any{
		"key":    s.Key,
		"stumps": len(m.Stumps),
	})
	return m, nil
}

// EnsureModel trains and persists the model when no artifact exists yet.
func (s *Store) EnsureModel(ctx context.Context) error {
	_, err := s.Load(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrModelUnavailable) {
		return err
	}
	_, err = s.TrainAndPersist(ctx)
	return err
}
