package suitability

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"resume-screener/internal/shared/storage/object/local"
)

func TestTrainFitsTrainingTable(t *testing.T) {
	m := Train()
	for _, s := range DefaultSamples {
		if got := m.Predict(s.ExperienceYears, s.MatchScore); got != s.Suitable {
			t.Fatalf("sample %+v predicted %v", s, got)
		}
	}
}

func TestTrainIsDeterministic(t *testing.T) {
	a := Train()
	b := Train()
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("training produced different models")
	}
}

func TestFitRejectsSingleClass(t *testing.T) {
	samples := []Sample{
		{ExperienceYears: 1, MatchScore: 10},
		{ExperienceYears: 2, MatchScore: 20},
	}
	if _, err := Fit(samples, DefaultParams); err == nil {
		t.Fatalf("expected error for single-class training set")
	}
}

func TestClassifierPredict(t *testing.T) {
	store := NewStore(local.New(t.TempDir()), "")
	if _, err := store.TrainAndPersist(context.Background()); err != nil {
		t.Fatalf("train: %v", err)
	}
	c := NewClassifier(store, DefaultThreshold)

	tests := []struct {
		name  string
		years float64
		score float64
		want  Label
	}{
		{name: "strong candidate", years: 4, score: 85, want: Suitable},
		{name: "below threshold", years: 4, score: 20, want: NotSuitable},
		{name: "junior", years: 1, score: 70, want: NotSuitable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Predict(context.Background(), tt.years, tt.score)
			if err != nil {
				t.Fatalf("predict: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

type countingLoader struct {
	calls int
	model *Model
	err   error
}

func (l *countingLoader) Load(context.Context) (*Model, error) {
	l.calls++
	return l.model, l.err
}

func TestBelowThresholdSkipsModel(t *testing.T) {
	loader := &countingLoader{err: ErrModelUnavailable}
	c := NewClassifier(loader, DefaultThreshold)
	for _, years := range []float64{0, 1, 4, 10, 40} {
		got, err := c.Predict(context.Background(), years, 29.99)
		if err != nil {
			t.Fatalf("predict: %v", err)
		}
		if got != NotSuitable {
			t.Fatalf("years=%v: expected NotSuitable, got %q", years, got)
		}
	}
	if loader.calls != 0 {
		t.Fatalf("model loaded %d times below threshold", loader.calls)
	}
}

func TestClassifierCachesModel(t *testing.T) {
	loader := &countingLoader{model: Train()}
	c := NewClassifier(loader, DefaultThreshold)
	for i := 0; i < 3; i++ {
		if _, err := c.Predict(context.Background(), 4, 85); err != nil {
			t.Fatalf("predict: %v", err)
		}
	}
	if loader.calls != 1 {
		t.Fatalf("expected one load, got %d", loader.calls)
	}
}

func TestMissingArtifact(t *testing.T) {
	store := NewStore(local.New(t.TempDir()), "")
	c := NewClassifier(store, DefaultThreshold)
	_, err := c.Predict(context.Background(), 4, 85)
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestCorruptArtifact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultModelKey)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := NewStore(local.New(dir), "").Load(context.Background())
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestEnsureModel(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(local.New(dir), "models/m.json")
	if err := store.EnsureModel(context.Background()); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	first, err := os.ReadFile(filepath.Join(dir, "models", "m.json"))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if _, err := store.TrainAndPersist(context.Background()); err != nil {
		t.Fatalf("retrain: %v", err)
	}
	second, err := os.ReadFile(filepath.Join(dir, "models", "m.json"))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("retraining changed the artifact")
	}
}
