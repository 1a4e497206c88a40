package suitability

import (
	"context"
	"sync"
)

// DefaultThreshold is the match score below which a candidate is rejected
// without consulting the model.
const DefaultThreshold = 30

// Label is the classifier outcome.
type Label string

const (
	Suitable    Label = "Suitable"
	NotSuitable Label = "Not Suitable"
)

// Loader loads a persisted model.
type Loader interface {
	Load(ctx context.Context) (*Model, error)
}

// Classifier combines the threshold rule with the persisted model. The model
// is loaded lazily and kept after the first successful load.
type Classifier struct {
	threshold float64
	loader    Loader

	mu    sync.Mutex
	model *Model
}

// NewClassifier rejects scores below threshold before consulting the model from loader.
func NewClassifier(loader Loader, threshold float64) *Classifier {
	return &Classifier{threshold: threshold, loader: loader}
}

// Threshold returns the rejection threshold.
func (c *Classifier) Threshold() float64 {
	return c.threshold
}

// Predict labels a candidate. Scores below the threshold are NotSuitable
// regardless of experience.
func (c *Classifier) Predict(ctx context.Context, experienceYears, matchScore float64) (Label, error) {
	if matchScore < c.threshold {
		return NotSuitable, nil
	}
	m, err := c.load(ctx)
	if err != nil {
		return "", err
	}
	if m.Predict(experienceYears, matchScore) {
		return Suitable, nil
	}
	return NotSuitable, nil
}

func (c *Classifier) load(ctx context.Context) (*Model, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.model != nil {
		return c.model, nil
	}
	m, err := c.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.model = m
	return m, nil
}
