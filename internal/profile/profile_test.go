package profile

import (
	"reflect"
	"testing"

	"resume-screener/internal/skills"
)

func TestParse(t *testing.T) {
	text := "Jane Doe\n" +
		"Data engineer with 6 Years of Experience in Python and SQL.\n" +
		"  B.Sc Computer Science, State University  \n" +
		"I mastered many tools.\n" +
		"Master of Data Science\n"

	got := Parse(text, skills.Default())

	want := Profile{
		Skills:          []string{"Python", "SQL", "Data Science"},
		Education:       []string{"B.Sc Computer Science, State University", "Master of Data Science"},
		Experience:      "6 Years of Experience",
		ExperienceYears: 6,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected profile:\n got  %#v\n want %#v", got, want)
	}
}

func TestParseEmpty(t *testing.T) {
	got := Parse("", skills.Default())
	if len(got.Skills) != 0 || len(got.Education) != 0 {
		t.Fatalf("expected empty lists, got %#v", got)
	}
	if got.Skills == nil || got.Education == nil {
		t.Fatalf("lists should be non-nil for JSON output")
	}
	if got.ExperienceYears != 0 || got.Experience != "" {
		t.Fatalf("expected no experience, got %#v", got)
	}
}

func TestParseExperience(t *testing.T) {
	tests := []struct {
		text  string
		years int
	}{
		{text: "1 year of experience", years: 1},
		{text: "over 12   years of experience leading teams", years: 12},
		{text: "3 years experience", years: 0},
		{text: "first 2 years of experience, then 9 years of experience", years: 2},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Parse(tt.text, skills.Default()).ExperienceYears; got != tt.years {
				t.Fatalf("expected %d, got %d", tt.years, got)
			}
		})
	}
}
