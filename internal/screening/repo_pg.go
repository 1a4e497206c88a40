package screening

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"resume-screener/internal/profile"
	"resume-screener/internal/suitability"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts one screening row.
func (r *PGRepo) Create(ctx context.Context, s Screening) error {
	const query = `
INSERT INTO screenings (
    id,
    file_name,
    file_path,
    match_score,
    skill_match_score,
    matched_skills,
    prediction,
    experience_years,
    experience_source,
    scorer,
    profile,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	matched := s.MatchedSkills
	if matched == nil {
		matched = []string{}
	}
	matchedJSON, err := json.Marshal(matched)
	if err != nil {
		return fmt.Errorf("encode matched skills: %w", err)
	}
	profileJSON, err := json.Marshal(s.Profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		s.ID,
		s.FileName,
		s.FilePath,
		s.MatchScore,
		s.SkillMatchScore,
		matchedJSON,
		string(s.Prediction),
		s.ExperienceYears,
		s.ExperienceSource,
		s.Scorer,
		profileJSON,
		s.CreatedAt,
	)
	return err
}

const selectColumns = `id, file_name, file_path, match_score, skill_match_score, matched_skills, prediction, experience_years, experience_source, scorer, profile, created_at`

func (r *PGRepo) GetByID(ctx context.Context, id string) (Screening, error) {
	query := `SELECT ` + selectColumns + ` FROM screenings WHERE id = $1`
	s, err := scanScreening(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Screening{}, ErrNotFound
		}
		return Screening{}, err
	}
	return s, nil
}

func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Screening, error) {
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + selectColumns + ` FROM screenings ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	} else {
		query += ` OFFSET $1`
		args = append(args, offset)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Screening{}
	for rows.Next() {
		s, err := scanScreening(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScreening(row rowScanner) (Screening, error) {
	var (
		s           Screening
		prediction  string
		matchedJSON []byte
		profileJSON []byte
	)
	err := row.Scan(
		&s.ID,
		&s.FileName,
		&s.FilePath,
		&s.MatchScore,
		&s.SkillMatchScore,
		&matchedJSON,
		&prediction,
		&s.ExperienceYears,
		&s.ExperienceSource,
		&s.Scorer,
		&profileJSON,
		&s.CreatedAt,
	)
	if err != nil {
		return Screening{}, err
	}
	s.Prediction = suitability.Label(prediction)
	if len(matchedJSON) > 0 {
		if err := json.Unmarshal(matchedJSON, &s.MatchedSkills); err != nil {
			return Screening{}, fmt.Errorf("decode matched skills: %w", err)
		}
	}
	if len(profileJSON) > 0 {
		var p profile.Profile
		if err := json.Unmarshal(profileJSON, &p); err != nil {
			return Screening{}, fmt.Errorf("decode profile: %w", err)
		}
		s.Profile = p
	}
	return s, nil
}
