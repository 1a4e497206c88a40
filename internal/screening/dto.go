package screening

import (
	"time"

	"resume-screener/internal/profile"
)

type screeningResponse struct {
	ID               string          `json:"id"`
	MatchScore       float64         `json:"match_score"`
	SkillMatchScore  float64         `json:"skill_match_score"`
	MatchedSkills    []string        `json:"matched_skills"`
	Prediction       string          `json:"prediction"`
	FileName         string          `json:"file_name"`
	FileSavedAt      string          `json:"file_saved_at"`
	ExperienceYears  float64         `json:"experience_years"`
	ExperienceSource string          `json:"experience_source"`
	Scorer           string          `json:"scorer"`
	Profile          profile.Profile `json:"profile"`
	CreatedAt        time.Time       `json:"created_at"`
}

func toResponse(s Screening) screeningResponse {
	matched := s.MatchedSkills
	if matched == nil {
		matched = []string{}
	}
	return screeningResponse{
		ID:               s.ID,
		MatchScore:       s.MatchScore,
		SkillMatchScore:  s.SkillMatchScore,
		MatchedSkills:    matched,
		Prediction:       string(s.Prediction),
		FileName:         s.FileName,
		FileSavedAt:      s.FilePath,
		ExperienceYears:  s.ExperienceYears,
		ExperienceSource: s.ExperienceSource,
		Scorer:           s.Scorer,
		Profile:          s.Profile,
		CreatedAt:        s.CreatedAt,
	}
}
