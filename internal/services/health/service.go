package health

import (
	"context"
	"sort"
	"time"
)

const checkTimeout = 3 * time.Second

// Check reports whether one dependency is usable.
type Check func(ctx context.Context) error

// Service runs readiness checks against the screener's dependencies.
type Service struct {
	checks map[string]Check
}

// NewService constructs a health service with the given named checks.
func NewService(checks map[string]Check) *Service {
	c := make(map[string]Check, len(checks))
	for name, check := range checks {
		if check != nil {
			c[name] = check
		}
	}
	return &Service{checks: c}
}

// Report is the outcome of a readiness run.
type Report struct {
	Ready  bool              `json:"ready"`
	Checks map[string]string `json:"checks"`
}

// Status returns the liveness payload.
func (s *Service) Status() map[string]string {
	return map[string]string{"status": "ok"}
}

// Ready runs every check in name order. Each check gets its own timeout.
func (s *Service) Ready(ctx context.Context) Report {
	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	report := Report{Ready: true, Checks: make(map[string]string, len(names))}
	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
		err := s.checks[name](checkCtx)
		cancel()
		if err != nil {
			report.Ready = false
			report.Checks[name] = err.Error()
			continue
		}
		report.Checks[name] = "ok"
	}
	return report
}
