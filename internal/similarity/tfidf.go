package similarity

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// TFIDF scores texts by cosine similarity of their TF-IDF vectors, fit over
// the two-document corpus {resume, job}. It uses smoothed IDF
// (ln((1+n)/(1+df)) + 1) and L2-normalised rows.
type TFIDF struct{}

// NewTFIDF returns the lexical scorer.
func NewTFIDF() TFIDF {
	return TFIDF{}
}

// Name implements Scorer.
func (TFIDF) Name() string { return StrategyTFIDF }

// Score implements Scorer. Empty or token-less input scores 0.
func (TFIDF) Score(ctx context.Context, resumeText, jobText string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	docs := [2]map[string]float64{termCounts(resumeText), termCounts(jobText)}
	if len(docs[0]) == 0 || len(docs[1]) == 0 {
		return 0, nil
	}

	df := make(map[string]int)
	for _, d := range docs {
		for term := range d {
			df[term]++
		}
	}
	n := float64(len(docs))

	// Sorted vocabulary keeps floating-point summation order stable.
	vocab := make([]string, 0, len(df))
	for term := range df {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	var vecs [2][]float64
	for i, d := range docs {
		v := make([]float64, len(vocab))
		var norm float64
		for j, term := range vocab {
			tf := d[term]
			if tf == 0 {
				continue
			}
			idf := math.Log((1+n)/(1+float64(df[term]))) + 1
			v[j] = tf * idf
			norm += v[j] * v[j]
		}
		norm = math.Sqrt(norm)
		for j := range v {
			v[j] /= norm
		}
		vecs[i] = v
	}

	var dot float64
	for j := range vocab {
		dot += vecs[0][j] * vecs[1][j]
	}
	return toPercent(dot), nil
}

func termCounts(text string) map[string]float64 {
	counts := make(map[string]float64)
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		counts[tok]++
	}
	return counts
}
