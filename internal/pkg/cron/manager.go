package cron

import (
	"BlogPress/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine              *cron.Cron
	counterRefreshJob   *job.CounterRefreshJob
	idempotencySweepJob *job.IdempotencySweepJob
}

// NewCronManager 两个服务各自只注册自己需要的任务，未用的传 nil
func NewCronManager(counterRefreshJob *job.CounterRefreshJob, idempotencySweepJob *job.IdempotencySweepJob) *Manager {
	return &Manager{
		engine:              cron.New(cron.WithSeconds()),
		counterRefreshJob:   counterRefreshJob,
		idempotencySweepJob: idempotencySweepJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if s.counterRefreshJob != nil {
		if _, err := s.engine.AddJob("0 */5 * * * *", s.counterRefreshJob); err != nil {
			return err
		}
	}
	if s.idempotencySweepJob != nil {
		if _, err := s.engine.AddJob("@hourly", s.idempotencySweepJob); err != nil {
			return err
		}
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
