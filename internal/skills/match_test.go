package skills

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestMatchTextExample(t *testing.T) {
	resume := "Skills: Python, Machine Learning, NLP, Deep Learning"
	job := "We need Python and Machine Learning experience. SQL is a plus."

	m := MatchText(resume, job, Default())

	if !reflect.DeepEqual(m.Matched, []string{"Python", "Machine Learning"}) {
		t.Fatalf("unexpected matched skills: %#v", m.Matched)
	}
	if math.Abs(m.Score-66.67) > 0.01 {
		t.Fatalf("expected score ~66.67, got %v", m.Score)
	}
}

func TestMatchTextProperties(t *testing.T) {
	vocab := Default()
	tests := []struct {
		name   string
		resume string
		job    string
		score  float64
	}{
		{name: "job without vocabulary", resume: "Python SQL Keras", job: "Forklift operator wanted", score: 0},
		{name: "empty texts", resume: "", job: "", score: 0},
		{name: "case insensitive", resume: "PYTHON and sql", job: "python, Sql", score: 100},
		{name: "substring not word boundary", resume: "Pythonic code", job: "Python", score: 100},
		{name: "no overlap", resume: "Keras", job: "Statistics and SQL", score: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MatchText(tt.resume, tt.job, vocab)
			if m.Score < 0 || m.Score > 100 {
				t.Fatalf("score out of range: %v", m.Score)
			}
			if math.Abs(m.Score-tt.score) > 1e-9 {
				t.Fatalf("expected %v, got %v", tt.score, m.Score)
			}
			assertSubset(t, m.Matched, m.ResumeSkills)
			assertSubset(t, m.Matched, m.JobSkills)
		})
	}
}

func TestMatchedDeduplicated(t *testing.T) {
	vocab, err := NewVocabulary([]string{"SQL", "sql", " Python ", ""})
	if err != nil {
		t.Fatalf("vocabulary: %v", err)
	}
	if vocab.Len() != 2 {
		t.Fatalf("expected 2 terms, got %d", vocab.Len())
	}
	m := MatchText("SQL SQL python", "sql python SQL", vocab)
	if !reflect.DeepEqual(m.Matched, []string{"SQL", "Python"}) {
		t.Fatalf("unexpected matched: %#v", m.Matched)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skills.yaml")
	if err := os.WriteFile(path, []byte("skills:\n  - Go\n  - Kubernetes\n  - PostgreSQL\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	vocab, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(vocab.Terms(), []string{"Go", "Kubernetes", "PostgreSQL"}) {
		t.Fatalf("unexpected terms: %#v", vocab.Terms())
	}

	emptyPath := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(emptyPath, []byte("skills: []\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(emptyPath); err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("expected empty vocabulary error, got %v", err)
	}
}

func assertSubset(t *testing.T, sub, super []string) {
	t.Helper()
	set := make(map[string]struct{}, len(super))
	for _, s := range super {
		set[s] = struct{}{}
	}
	for _, s := range sub {
		if _, ok := set[s]; !ok {
			t.Fatalf("%q not in %#v", s, super)
		}
	}
}
