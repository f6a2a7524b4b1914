package idempotency

import (
	log "log/slog"
	"sync"
	"time"
)

// Guard 进程内幂等键缓存，重复键在 TTL 窗口内被拒绝
type Guard struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

func NewGuard(ttl time.Duration) *Guard {
	return &Guard{
		seen: make(map[string]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Remember 原子地检查并登记幂等键，首次出现返回 true，重复返回 false
// 空键视为未携带幂等信息，始终放行且不登记
func (s *Guard) Remember(key string) bool {
	if key == "" {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = s.now()
	return true
}

// IsDuplicate 只读检查，不登记
func (s *Guard) IsDuplicate(key string) bool {
	if key == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[key]
	return ok
}

// Sweep 清理超过 TTL 的键，返回清理数量
func (s *Guard) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for key, firstSeen := range s.seen {
		if firstSeen.Before(cutoff) {
			delete(s.seen, key)
			removed++
		}
	}
	if removed > 0 {
		log.Info("幂等键清理完成", "removed", removed, "remaining", len(s.seen))
	}
	return removed
}

// Size 当前登记的键数量
func (s *Guard) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
