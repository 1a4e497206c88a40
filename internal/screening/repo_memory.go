package screening

import (
	"context"
	"sort"
	"sync"
)

// DefaultMemoryEntries bounds a MemoryRepo built with a non-positive size.
const DefaultMemoryEntries = 1000

// MemoryRepo is an in-memory implementation of Repo. Once full, the oldest
// recorded screening is dropped first.
type MemoryRepo struct {
	mu   sync.RWMutex
	data []Screening
	max  int
}

// NewMemoryRepo constructs a MemoryRepo holding at most maxEntries screenings.
func NewMemoryRepo(maxEntries int) *MemoryRepo {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryEntries
	}
	return &MemoryRepo{max: maxEntries}
}

// Create records s, evicting the oldest entries past the cap.
func (r *MemoryRepo) Create(ctx context.Context, s Screening) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, s)
	if over := len(r.data) - r.max; over > 0 {
		clear(r.data[:over])
		r.data = r.data[over:]
	}
	return nil
}

// Len reports the number of stored screenings.
func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

// GetByID returns the screening with id or ErrNotFound.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Screening, error) {
	if err := ctx.Err(); err != nil {
		return Screening{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.data {
		if r.data[i].ID == id {
			return r.data[i], nil
		}
	}
	return Screening{}, ErrNotFound
}

// List returns screenings newest first, honoring limit/offset. A zero limit
// returns everything after offset.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Screening, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	items := make([]Screening, len(r.data))
	copy(items, r.data)
	r.mu.RUnlock()

	if offset >= len(items) {
		return []Screening{}, nil
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end], nil
}
