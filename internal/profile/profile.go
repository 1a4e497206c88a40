// Package profile pulls structured fields out of résumé text.
package profile

import (
	"regexp"
	"strconv"
	"strings"

	"resume-screener/internal/skills"
)

var educationKeywords = []string{"Bachelor", "Master", "PhD", "B.Sc", "M.Sc", "Doctorate", "Degree", "University"}

var experiencePattern = regexp.MustCompile(`(?i)(\d+)\s+years? of experience`)

// Profile is the structured view of a résumé.
type Profile struct {
	Skills          []string `json:"skills"`
	Education       []string `json:"education"`
	Experience      string   `json:"experience,omitempty"`
	ExperienceYears int      `json:"experience_years"`
}

// Parse extracts skills, education lines and stated experience from text.
func Parse(text string, vocab skills.Vocabulary) Profile {
	p := Profile{
		Skills:    vocab.Find(text),
		Education: educationLines(text),
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if m := experiencePattern.FindStringSubmatch(text); m != nil {
		p.Experience = m[0]
		// Digits only; overflow leaves the years at zero.
		if n, err := strconv.Atoi(m[1]); err == nil {
			p.ExperienceYears = n
		}
	}
	return p
}

// educationLines keeps lines that mention a degree keyword. Matching is
// case-sensitive so words like "mastered" are not picked up.
func educationLines(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, kw := range educationKeywords {
			if strings.Contains(line, kw) {
				out = append(out, line)
				break
			}
		}
	}
	return out
}
