package rate_limiter

import (
	"context"
	"feedcore/domain"
	"sync"
	"time"
)

// MemoryCounterStore keeps buckets in process memory. Limits are therefore
// per instance and reset on restart.
type MemoryCounterStore struct {
	mu      sync.Mutex
	buckets map[string]*domain.RateBucket
	now     func() time.Time
}

func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{
		buckets: make(map[string]*domain.RateBucket),
		now:     time.Now,
	}
}

func (s *MemoryCounterStore) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.buckets[key]
	if !ok || bucket.Expired(now) {
		s.buckets[key] = &domain.RateBucket{WindowStart: now, Count: 1, Window: window}
		return 1, nil
	}
	bucket.Count++
	return bucket.Count, nil
}

// Sweep drops buckets whose window has closed and returns how many it removed.
func (s *MemoryCounterStore) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, bucket := range s.buckets {
		if bucket.Expired(now) {
			delete(s.buckets, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of live buckets.
func (s *MemoryCounterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}
