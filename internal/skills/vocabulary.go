package skills

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSkills is the built-in vocabulary used when no skills file is configured.
var DefaultSkills = []string{
	"Python",
	"Machine Learning",
	"Deep Learning",
	"NLP",
	"TensorFlow",
	"Keras",
	"PyTorch",
	"SQL",
	"Data Science",
	"Artificial Intelligence",
	"Computer Vision",
	"Statistics",
}

// Vocabulary is an ordered, immutable list of canonical skill names. Each
// entry is matched as a case-insensitive substring of free text.
type Vocabulary struct {
	terms   []string
	lowered []string
}

// NewVocabulary trims and deduplicates terms (case-insensitively), keeping
// the first spelling seen.
func NewVocabulary(terms []string) (Vocabulary, error) {
	seen := make(map[string]struct{}, len(terms))
	v := Vocabulary{}
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		key := strings.ToLower(term)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		v.terms = append(v.terms, term)
		v.lowered = append(v.lowered, key)
	}
	if len(v.terms) == 0 {
		return Vocabulary{}, errors.New("skill vocabulary is empty")
	}
	return v, nil
}

// Default returns the built-in vocabulary.
func Default() Vocabulary {
	v, _ := NewVocabulary(DefaultSkills)
	return v
}

type vocabularyFile struct {
	Skills []string `yaml:"skills"`
}

// LoadFile reads a YAML file of the form `skills: [..]`.
func LoadFile(path string) (Vocabulary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("read skills file: %w", err)
	}
	var file vocabularyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Vocabulary{}, fmt.Errorf("parse skills file %s: %w", path, err)
	}
	v, err := NewVocabulary(file.Skills)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("skills file %s: %w", path, err)
	}
	return v, nil
}

// Terms returns a copy of the vocabulary in order.
func (v Vocabulary) Terms() []string {
	return append([]string(nil), v.terms...)
}

// Len reports the number of terms.
func (v Vocabulary) Len() int {
	return len(v.terms)
}

// Find returns the vocabulary terms that occur in text, in vocabulary order.
func (v Vocabulary) Find(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for i, term := range v.lowered {
		if strings.Contains(lower, term) {
			found = append(found, v.terms[i])
		}
	}
	return found
}
