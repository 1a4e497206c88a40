// Package similarity scores how closely a résumé matches a job description.
// Scores are in [0, 100].
package similarity

import (
	"context"
	"fmt"
	"math"
)

const (
	StrategyTFIDF     = "tfidf"
	StrategyEmbedding = "embedding"
)

// Scorer compares two texts.
type Scorer interface {
	Score(ctx context.Context, resumeText, jobText string) (float64, error)
	Name() string
}

// toPercent clamps a cosine value to [0,1] and scales it to [0,100].
// Negative cosine is treated as no similarity.
func toPercent(cos float64) float64 {
	if math.IsNaN(cos) || cos < 0 {
		return 0
	}
	if cos > 1 {
		cos = 1
	}
	return cos * 100
}

func cosine32(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimensions differ: %d vs %d", len(a), len(b))
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}
