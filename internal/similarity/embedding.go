package similarity

import (
	"context"
	"fmt"
)

// Embedder turns text into a dense vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Embedding scores texts by the cosine of their embeddings, clamped to [0,1].
type Embedding struct {
	embedder Embedder
}

// NewEmbedding wraps an Embedder as a Scorer.
func NewEmbedding(e Embedder) *Embedding {
	return &Embedding{embedder: e}
}

// Name implements Scorer.
func (e *Embedding) Name() string { return StrategyEmbedding }

// Score implements Scorer.
func (e *Embedding) Score(ctx context.Context, resumeText, jobText string) (float64, error) {
	rv, err := e.embedder.Embed(ctx, resumeText)
	if err != nil {
		return 0, fmt.Errorf("embed resume: %w", err)
	}
	jv, err := e.embedder.Embed(ctx, jobText)
	if err != nil {
		return 0, fmt.Errorf("embed job description: %w", err)
	}
	cos, err := cosine32(rv, jv)
	if err != nil {
		return 0, err
	}
	return toPercent(cos), nil
}
