package job

import (
	"BlogPress/internal/pkg/idempotency"
	log "log/slog"
)

// IdempotencySweepJob 定时清理过期的幂等键
type IdempotencySweepJob struct {
	guard *idempotency.Guard
}

func NewIdempotencySweepJob(guard *idempotency.Guard) *IdempotencySweepJob {
	return &IdempotencySweepJob{guard: guard}
}

func (s *IdempotencySweepJob) Run() {
	removed := s.guard.Sweep()
	log.Info("sweep idempotency keys success", "removed", removed)
}
