package report

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Store keeps generated reports in memory until they expire. Nothing is
// written to disk; a restart forgets every report.
type Store struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	reports map[string]storedReport
}

type storedReport struct {
	report    *Report
	expiresAt time.Time
}

// NewStore creates a store whose entries live for ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		now:     time.Now,
		reports: make(map[string]storedReport),
	}
}

// Put stores r under r.ID.
func (s *Store) Put(r *Report) {
	s.mu.Lock()
	s.reports[r.ID] = storedReport{report: r, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
}

// Get returns the report with id, or ErrReportNotFound if it is unknown or
// has expired.
func (s *Store) Get(id string) (*Report, error) {
	s.mu.RLock()
	entry, ok := s.reports[id]
	s.mu.RUnlock()

	if !ok || !s.now().Before(entry.expiresAt) {
		return nil, ErrReportNotFound
	}
	return entry.report, nil
}

// Len returns the number of entries, expired ones included until swept.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}

// Sweep drops expired entries and returns how many were removed.
func (s *Store) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.reports {
		if !now.Before(entry.expiresAt) {
			delete(s.reports, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	slog.Info("report cleanup started", "interval", interval, "ttl", s.ttl)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("report cleanup stopped")
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.Debug("expired reports removed", "count", n, "remaining", s.Len())
			}
		}
	}
}
