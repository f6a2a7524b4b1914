package notify

import (
	log "log/slog"
	"sync"
	"time"
)

type BreakerState int

const (
	StateClosed BreakerState = iota
	StateOpen
	StateHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "CLOSED"
	}
}

// Breaker 按下游目标维护的熔断器，连续失败达到阈值后在冷却期内直接短路
type Breaker struct {
	mu        sync.Mutex
	target    string
	threshold int
	cooldown  time.Duration
	now       func() time.Time

	state    BreakerState
	failures int
	openedAt time.Time
	probing  bool
}

func NewBreaker(target string, threshold int, cooldown time.Duration) *Breaker {
	return &Breaker{
		target:    target,
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// Allow 判断本次调用是否放行；OPEN 冷却结束后转入 HALF_OPEN 并放行单个探测请求
func (s *Breaker) Allow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateOpen {
		if s.now().Sub(s.openedAt) < s.cooldown {
			return false
		}
		s.state = StateHalfOpen
		s.probing = false
		log.Info("circuit breaker half-open", "target", s.target)
	}

	if s.state == StateHalfOpen {
		if s.probing {
			return false
		}
		s.probing = true
		return true
	}

	return true
}

// MarkSuccess 记录一次成功调用
func (s *Breaker) MarkSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateHalfOpen {
		log.Info("circuit breaker closed", "target", s.target)
	}
	s.state = StateClosed
	s.failures = 0
	s.probing = false
}

// MarkFailure 记录一次失败调用，必要时打开熔断
func (s *Breaker) MarkFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateHalfOpen {
		s.open()
		return
	}

	s.failures++
	if s.failures >= s.threshold {
		s.open()
	}
}

func (s *Breaker) open() {
	s.state = StateOpen
	s.failures = 0
	s.probing = false
	s.openedAt = s.now()
	log.Warn("circuit breaker open", "target", s.target, "cooldown", s.cooldown)
}

// State 返回当前状态
func (s *Breaker) State() BreakerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
