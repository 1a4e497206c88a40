package screening

import "context"

// Repo records screenings.
type Repo interface {
	Create(ctx context.Context, s Screening) error
	GetByID(ctx context.Context, id string) (Screening, error)
	List(ctx context.Context, limit, offset int) ([]Screening, error)
}
