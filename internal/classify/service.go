package classify

import (
	"context"
	"fmt"
	"sync"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=classify
type Repository interface {
	ListEntries(ctx context.Context) ([]Entry, error)
}

// Service serves classifications from an immutable in-memory snapshot of the
// reference table. The table is loaded once and swapped wholesale on Reload;
// classification itself never touches the repository.
type Service struct {
	repo Repository

	mu      sync.RWMutex
	entries []Entry
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Reload fetches the reference table and swaps the snapshot.
func (s *Service) Reload(ctx context.Context) error {
	entries, err := s.repo.ListEntries(ctx)
	if err != nil {
		return fmt.Errorf("loading reference table: %w", err)
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	return nil
}

// Classify returns the category for the description using the current
// snapshot. With an empty snapshot every description classifies to the
// default category.
func (s *Service) Classify(description string) string {
	s.mu.RLock()
	entries := s.entries
	s.mu.RUnlock()

	return Classify(description, entries)
}

// Snapshot returns the current reference table.
func (s *Service) Snapshot() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.entries
}
