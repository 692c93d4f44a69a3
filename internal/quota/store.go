package quota

import (
	"sync"
	"time"
)

// Store tracks per-client request counts keyed by calendar period.
// Implementations must be safe for concurrent use.
type Store interface {
	// Count returns the number of recorded requests for key in period.
	Count(period, key string) int
	// Increment records one request for key in period and returns the new count.
	Increment(period, key string) int
	// Prune drops all periods strictly older than oldest (lexicographic on
	// the "2006-01" period format, which orders chronologically).
	Prune(oldest string)
}

// MemberStore tracks which client keys hold an active membership.
// Implementations must be safe for concurrent use.
type MemberStore interface {
	IsMember(key string) bool
	Activate(key string)
}

// CurrentPeriod returns the calendar-month period key for t, e.g. "2026-09".
func CurrentPeriod(t time.Time) string {
	return t.Format("2006-01")
}

// PeriodResetTime returns the instant the current period's quota resets,
// i.e. the start of the next calendar month.
func PeriodResetTime(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month+1, 1, 0, 0, 0, 0, t.Location())
}

// MemoryStore is a process-local Store. Counters survive only as long as the
// process; a multi-instance deployment needs an external keyed store with
// atomic increments instead.
type MemoryStore struct {
	mu      sync.Mutex
	periods map[string]map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{periods: make(map[string]map[string]int)}
}

func (s *MemoryStore) Count(period, key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.periods[period][key]
}

func (s *MemoryStore) Increment(period, key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts, ok := s.periods[period]
	if !ok {
		counts = make(map[string]int)
		s.periods[period] = counts
	}
	counts[key]++
	return counts[key]
}

func (s *MemoryStore) Prune(oldest string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for period := range s.periods {
		if period < oldest {
			delete(s.periods, period)
		}
	}
}

// MemoryMemberStore is a process-local MemberStore.
type MemoryMemberStore struct {
	mu      sync.RWMutex
	members map[string]bool
}

func NewMemoryMemberStore() *MemoryMemberStore {
	return &MemoryMemberStore{members: make(map[string]bool)}
}

func (s *MemoryMemberStore) IsMember(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.members[key]
}

func (s *MemoryMemberStore) Activate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[key] = true
}
