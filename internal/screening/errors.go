package screening

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("screening not found")
)

// Pipeline stages reported in logs, metrics and StageError.
const (
	StageUpload         = "upload"
	StageExtract        = "extract"
	StageJobDescription = "job_description"
	StageSimilarity     = "similarity"
	StagePredict        = "predict"
	StageRecord         = "record"
)

// StageError marks the pipeline stage that failed. It unwraps to the cause.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}
