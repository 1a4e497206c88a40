package skills

// Match is the skill overlap between a résumé and a job description.
type Match struct {
	// Score is |Matched| / max(|JobSkills|, 1) * 100.
	Score        float64
	Matched      []string
	ResumeSkills []string
	JobSkills    []string
}

// MatchText computes the skill overlap of resume and job against vocab.
// Matched is deduplicated and ordered like the vocabulary.
func MatchText(resume, job string, vocab Vocabulary) Match {
	resumeSkills := vocab.Find(resume)
	jobSkills := vocab.Find(job)

	inResume := make(map[string]struct{}, len(resumeSkills))
	for _, s := range resumeSkills {
		inResume[s] = struct{}{}
	}

	matched := make([]string, 0, len(jobSkills))
	for _, s := range jobSkills {
		if _, ok := inResume[s]; ok {
			matched = append(matched, s)
		}
	}

	denom := len(jobSkills)
	if denom < 1 {
		denom = 1
	}

	return Match{
		Score:        float64(len(matched)) / float64(denom) * 100,
		Matched:      matched,
		ResumeSkills: resumeSkills,
		JobSkills:    jobSkills,
	}
}
