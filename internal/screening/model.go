package screening

import (
	"time"

	"resume-screener/internal/profile"
	"resume-screener/internal/suitability"
)

// Experience sources, in order of precedence.
const (
	ExperienceFromRequest = "request"
	ExperienceFromResume  = "resume"
	ExperienceFromDefault = "default"
)

// Screening is the recorded outcome of one résumé screening.
type Screening struct {
	ID               string
	FileName         string
	FilePath         string
	MatchScore       float64
	SkillMatchScore  float64
	MatchedSkills    []string
	Prediction       suitability.Label
	ExperienceYears  float64
	ExperienceSource string
	Scorer           string
	Profile          profile.Profile
	CreatedAt        time.Time
}
