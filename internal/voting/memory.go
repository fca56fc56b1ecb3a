package voting

import (
	"context"
	"fmt"
	"sync"
)

// MemoryService is an in-process Service used where no real vote backend is
// wired. It enforces the same principal/deputy/week uniqueness the backend
// constraint would, and publishes accepted ballots on an optional hub.
type MemoryService struct {
	mu     sync.Mutex
	seen   map[string]struct{}
	counts map[string]int
	hub    *Hub
}

// NewMemoryService returns an empty in-memory vote service. A nil hub
// disables notifications.
func NewMemoryService(hub *Hub) *MemoryService {
	return &MemoryService{
		seen:   make(map[string]struct{}),
		counts: make(map[string]int),
		hub:    hub,
	}
}

func uniquenessKey(principal string, deputyID int, week string) string {
	return fmt.Sprintf("%s|%d|%s", principal, deputyID, week)
}

func countKey(deputyID int, week string) string {
	return fmt.Sprintf("%d|%s", deputyID, week)
}

// Submit records a ballot, rejecting duplicates with ErrDuplicateVote.
func (s *MemoryService) Submit(_ context.Context, b Ballot) error {
	if err := b.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	key := uniquenessKey(b.Principal, b.DeputyID, b.Week)
	if _, ok := s.seen[key]; ok {
		s.mu.Unlock()
		return ErrDuplicateVote
	}
	s.seen[key] = struct{}{}
	s.counts[countKey(b.DeputyID, b.Week)]++
	s.mu.Unlock()

	if s.hub != nil {
		s.hub.Publish(b)
	}
	return nil
}

// Count returns the accepted votes for a deputy in a week bucket.
func (s *MemoryService) Count(_ context.Context, deputyID int, week string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[countKey(deputyID, week)], nil
}
