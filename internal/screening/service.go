package screening

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-screener/internal/extract"
	"resume-screener/internal/jobdesc"
	"resume-screener/internal/profile"
	"resume-screener/internal/shared/metrics"
	"resume-screener/internal/shared/storage/object"
	"resume-screener/internal/shared/telemetry"
	"resume-screener/internal/shared/util"
	"resume-screener/internal/similarity"
	"resume-screener/internal/skills"
	"resume-screener/internal/suitability"
)

// Predictor labels a candidate from experience and match score.
type Predictor interface {
	Predict(ctx context.Context, experienceYears, matchScore float64) (suitability.Label, error)
}

// UploadStore keeps uploaded files on a filesystem the extractor can read.
type UploadStore interface {
	object.ObjectStore
	Path(storageKey string) (string, error)
}

// Request describes a résumé already on disk.
type Request struct {
	ID       string
	FileName string
	Path     string
	// ExperienceYears overrides any value found in the résumé when set.
	ExperienceYears *float64
}

// UploadRequest describes a résumé received over the wire.
type UploadRequest struct {
	FileName        string
	Body            io.Reader
	ExperienceYears *float64
}

// Service runs the screening pipeline.
type Service struct {
	Uploads           UploadStore
	UploadDir         string
	Jobs              jobdesc.Source
	Scorer            similarity.Scorer
	Vocab             skills.Vocabulary
	Classifier        Predictor
	Repo              Repo
	DefaultExperience float64

	// Extract defaults to extract.Extract.
	Extract func(ctx context.Context, path string) (extract.Document, error)
	Now     func() time.Time
}

// Upload stores the file under the upload directory and screens it.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (Screening, error) {
	if err := validateExperience(req.ExperienceYears); err != nil {
		return Screening{}, err
	}
	safeName, err := util.SanitizeFileName(req.FileName)
	if err != nil {
		return Screening{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	id := uuid.NewString()
	key := path.Join(s.uploadDir(), id+"_"+safeName)
	size, err := s.Uploads.Save(ctx, key, contentTypeFor(safeName), req.Body)
	if err != nil {
		return Screening{}, s.fail(StageUpload, id, key, 0, err)
	}
	fullPath, err := s.Uploads.Path(key)
	if err != nil {
		return Screening{}, s.fail(StageUpload, id, key, size, err)
	}
	telemetry.Info("screening.upload_saved", map[string]any{
		"screening_id": id,
		"path":         fullPath,
		"size_bytes":   size,
	})

	return s.Screen(ctx, Request{
		ID:              id,
		FileName:        safeName,
		Path:            fullPath,
		ExperienceYears: req.ExperienceYears,
	})
}

// Screen runs extraction, scoring and prediction for a file on disk and
// records the outcome. Any stage failure aborts with no recorded result.
func (s *Service) Screen(ctx context.Context, req Request) (Screening, error) {
	if strings.TrimSpace(req.Path) == "" {
		return Screening{}, fmt.Errorf("%w: path is required", ErrInvalidInput)
	}
	if err := validateExperience(req.ExperienceYears); err != nil {
		return Screening{}, err
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.FileName == "" {
		req.FileName = path.Base(strings.ReplaceAll(req.Path, "\\", "/"))
	}

	started := s.now()
	metrics.ScreeningsStarted.Inc()

	extractFn := s.Extract
	if extractFn == nil {
		extractFn = extract.Extract
	}
	doc, err := extractFn(ctx, req.Path)
	if err != nil {
		return Screening{}, s.fail(StageExtract, req.ID, req.Path, fileSize(req.Path), err)
	}

	job, err := s.Jobs.Load(ctx)
	if err != nil {
		return Screening{}, s.fail(StageJobDescription, req.ID, req.Path, doc.SizeBytes, err)
	}

	score, err := s.Scorer.Score(ctx, doc.Text, job)
	if err != nil {
		return Screening{}, s.fail(StageSimilarity, req.ID, req.Path, doc.SizeBytes, err)
	}

	match := skills.MatchText(doc.Text, job, s.Vocab)
	prof := profile.Parse(doc.Text, s.Vocab)
	years, source := s.resolveExperience(req.ExperienceYears, prof)

	label, err := s.Classifier.Predict(ctx, years, score)
	if err != nil {
		return Screening{}, s.fail(StagePredict, req.ID, req.Path, doc.SizeBytes, err)
	}

	result := Screening{
		ID:               req.ID,
		FileName:         req.FileName,
		FilePath:         req.Path,
		MatchScore:       score,
		SkillMatchScore:  match.Score,
		MatchedSkills:    match.Matched,
		Prediction:       label,
		ExperienceYears:  years,
		ExperienceSource: source,
		Scorer:           s.Scorer.Name(),
		Profile:          prof,
		CreatedAt:        s.now(),
	}
	if result.MatchedSkills == nil {
		result.MatchedSkills = []string{}
	}

	if err := s.Repo.Create(ctx, result); err != nil {
		return Screening{}, s.fail(StageRecord, req.ID, req.Path, doc.SizeBytes, err)
	}

	metrics.ScreeningsCompleted.WithLabelValues(string(label)).Inc()
	metrics.MatchScore.Observe(score)
	metrics.ScreeningDuration.Observe(s.now().Sub(started).Seconds())
	telemetry.Info("screening.completed", map[string]any{
		"screening_id":      result.ID,
		"path":              req.Path,
		"match_score":       result.MatchScore,
		"skill_match_score": result.SkillMatchScore,
		"prediction":        string(label),
		"experience_years":  years,
		"experience_source": source,
		"scorer":            result.Scorer,
	})
	return result, nil
}

// Get returns a recorded screening.
func (s *Service) Get(ctx context.Context, id string) (Screening, error) {
	if strings.TrimSpace(id) == "" {
		return Screening{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns recorded screenings, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Screening, error) {
	return s.Repo.List(ctx, limit, offset)
}

// resolveExperience picks the request override, then the years stated in
// the résumé, then the configured default.
func (s *Service) resolveExperience(override *float64, p profile.Profile) (float64, string) {
	if override != nil {
		return *override, ExperienceFromRequest
	}
	if p.ExperienceYears > 0 {
		return float64(p.ExperienceYears), ExperienceFromResume
	}
	return s.DefaultExperience, ExperienceFromDefault
}

func (s *Service) fail(stage, id, filePath string, size int64, err error) error {
	metrics.ScreeningsFailed.WithLabelValues(stage).Inc()
	telemetry.Error("screening.failed", map[string]any{
		"screening_id": id,
		"stage":        stage,
		"path":         filePath,
		"size_bytes":   size,
		"error":        err,
	})
	return &StageError{Stage: stage, Err: err}
}

func (s *Service) uploadDir() string {
	if s.UploadDir == "" {
		return "uploads"
	}
	return s.UploadDir
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func validateExperience(years *float64) error {
	if years == nil {
		return nil
	}
	if math.IsNaN(*years) || math.IsInf(*years, 0) || *years < 0 {
		return fmt.Errorf("%w: experience_years must be a non-negative number", ErrInvalidInput)
	}
	return nil
}

func contentTypeFor(name string) string {
	switch extract.Format(strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")) {
	case extract.FormatPDF:
		return "application/pdf"
	case extract.FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}

func fileSize(p string) int64 {
	info, err := os.Stat(p)
	if err != nil {
		return 0
	}
	return info.Size()
}
