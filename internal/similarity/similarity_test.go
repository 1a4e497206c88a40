package similarity

import (
	"context"
	"errors"
	"math"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"resume-screener/internal/shared/cache"
)

const epsilon = 1e-6

func TestTFIDFIdenticalTexts(t *testing.T) {
	text := "Senior Python engineer with Machine Learning and SQL experience."
	got, err := NewTFIDF().Score(context.Background(), text, text)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if math.Abs(got-100) > epsilon {
		t.Fatalf("expected ~100, got %v", got)
	}
}

func TestTFIDFDisjointTexts(t *testing.T) {
	got, err := NewTFIDF().Score(context.Background(), "python pandas numpy", "forklift warehouse logistics")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestTFIDFBoundsAndDeterminism(t *testing.T) {
	scorer := NewTFIDF()
	resume := "Python developer. Built NLP pipelines, deep learning models and dashboards. " +
		"Python Python SQL. Led a team of five engineers over three years."
	job := "Looking for a Python engineer with SQL."

	first, err := scorer.Score(context.Background(), resume, job)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if first <= 0 || first >= 100 {
		t.Fatalf("expected partial similarity in (0,100), got %v", first)
	}
	for i := 0; i < 5; i++ {
		again, _ := scorer.Score(context.Background(), resume, job)
		if again != first {
			t.Fatalf("expected deterministic score, got %v then %v", first, again)
		}
	}
}

func TestTFIDFKnownValue(t *testing.T) {
	// "aa bb" vs "aa cc": shared term idf=1, unique terms idf=ln(1.5)+1.
	// cos = 1 / (1 + (ln(1.5)+1)^2)
	idf := math.Log(1.5) + 1
	want := 100 / (1 + idf*idf)
	got, err := NewTFIDF().Score(context.Background(), "aa bb", "aa cc")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if math.Abs(got-want) > epsilon {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestTFIDFEmptyInput(t *testing.T) {
	for _, pair := range [][2]string{{"", "python"}, {"python", ""}, {"a b c", "x"}} {
		got, err := NewTFIDF().Score(context.Background(), pair[0], pair[1])
		if err != nil {
			t.Fatalf("score: %v", err)
		}
		if got != 0 {
			t.Fatalf("expected 0 for %q vs %q, got %v", pair[0], pair[1], got)
		}
	}
}

type staticEmbedder map[string][]float32

func (s staticEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	v, ok := s[text]
	if !ok {
		return nil, errors.New("unknown text")
	}
	return v, nil
}

func TestEmbeddingScorer(t *testing.T) {
	emb := staticEmbedder{
		"resume":   {1, 0, 0},
		"same":     {2, 0, 0},
		"opposite": {-1, 0, 0},
		"ortho":    {0, 1, 0},
		"zero":     {0, 0, 0},
		"short":    {1, 0},
	}
	scorer := NewEmbedding(emb)

	tests := []struct {
		job  string
		want float64
	}{
		{job: "same", want: 100},
		{job: "opposite", want: 0},
		{job: "ortho", want: 0},
		{job: "zero", want: 0},
	}
	for _, tt := range tests {
		got, err := scorer.Score(context.Background(), "resume", tt.job)
		if err != nil {
			t.Fatalf("score %s: %v", tt.job, err)
		}
		if math.Abs(got-tt.want) > epsilon {
			t.Fatalf("job %s: expected %v, got %v", tt.job, tt.want, got)
		}
	}

	if _, err := scorer.Score(context.Background(), "resume", "short"); err == nil {
		t.Fatalf("expected dimension mismatch error")
	}
	if _, err := scorer.Score(context.Background(), "missing", "same"); err == nil {
		t.Fatalf("expected embed error")
	}
}

type countingEmbedder struct {
	calls int
}

func (c *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	c.calls++
	return []float32{float32(len(text)), 1.5, -2}, nil
}

func TestCachedEmbedderHitsCache(t *testing.T) {
	inner := &countingEmbedder{}
	cached := NewCachedEmbedder(inner, cache.NewMemory(0), "test-model")

	first, err := cached.Embed(context.Background(), "python")
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	second, err := cached.Embed(context.Background(), "python")
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected a single inner call, got %d", inner.calls)
	}
	if len(first) != len(second) || first[2] != second[2] {
		t.Fatalf("cached vector differs: %v vs %v", first, second)
	}
}

type fakeEmbeddingsAPI struct {
	resp openai.EmbeddingResponse
	err  error
}

func (f fakeEmbeddingsAPI) CreateEmbeddings(ctx context.Context, conv openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error) {
	return f.resp, f.err
}

func TestOpenAIEmbedder(t *testing.T) {
	ok := &OpenAIEmbedder{
		client: fakeEmbeddingsAPI{resp: openai.EmbeddingResponse{Data: []openai.Embedding{{Embedding: []float32{0.1, 0.2}}}}},
		model:  "test-model",
	}
	vec, err := ok.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if len(vec) != 2 {
		t.Fatalf("unexpected vector: %v", vec)
	}

	empty := &OpenAIEmbedder{client: fakeEmbeddingsAPI{}, model: "test-model"}
	if _, err := empty.Embed(context.Background(), "hello"); !errors.Is(err, ErrEmbeddingProvider) {
		t.Fatalf("expected provider error for empty response, got %v", err)
	}

	failing := &OpenAIEmbedder{
		client: fakeEmbeddingsAPI{err: &openai.APIError{HTTPStatusCode: 401, Message: "bad key"}},
		model:  "test-model",
	}
	if _, err := failing.Embed(context.Background(), "hello"); !errors.Is(err, ErrEmbeddingProvider) {
		t.Fatalf("expected provider error, got %v", err)
	}

	if _, err := NewOpenAIEmbedder(OpenAIConfig{}); err == nil {
		t.Fatalf("expected missing api key error")
	}
}
