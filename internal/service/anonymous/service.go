// Package anonymous issues the ids that tie a browser to its storefront state
// and tracks when each id was last active.
package anonymous

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	idleTTL time.Duration
	now     func() time.Time

	mu   sync.Mutex
	seen map[string]time.Time
}

// New returns a Service that considers a visitor idle after idleTTL without
// activity. A non-positive idleTTL disables expiry.
func New(idleTTL time.Duration) *Service {
	return &Service{
		idleTTL: idleTTL,
		now:     time.Now,
		seen:    make(map[string]time.Time),
	}
}

// Issue mints a new visitor id.
func (s *Service) Issue() string {
	id := uuid.New().String()
	s.touch(id)
	return id
}

// Resolve accepts a presented id if it is well formed and marks it active.
// Ids that were swept are accepted again so a returning visitor keeps the
// same persisted cart.
func (s *Service) Resolve(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	canonical := parsed.String()
	s.touch(canonical)
	return canonical, true
}

// Expired removes and returns the ids idle for longer than the TTL.
func (s *Service) Expired() []string {
	if s.idleTTL <= 0 {
		return nil
	}
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for id, last := range s.seen {
		if last.Before(cutoff) {
			out = append(out, id)
			delete(s.seen, id)
		}
	}
	return out
}

// Active reports how many visitors are currently tracked.
func (s *Service) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

func (s *Service) touch(id string) {
	s.mu.Lock()
	s.seen[id] = s.now()
	s.mu.Unlock()
}
