package notify

import (
	"BlogPress/internal/api/config"
	"BlogPress/internal/api/dto"
	"BlogPress/internal/pkg/logger"
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

const maxBackoff = 5 * time.Second

// Publisher 事件发布器，提交后立即返回，投递在后台 worker 池中完成
type Publisher interface {
	PublishBlogCreated(payload *dto.BlogCreatedPayload)
	PublishMilestone(payload *dto.MilestonePayload)
	PublishUserRegistered(payload *dto.UserRegisteredPayload)
	Close()
}

type deliveryTask struct {
	kind string
	key  string
	send func(ctx context.Context, key string) error
}

type publisherImpl struct {
	caller      Caller
	breaker     *Breaker
	maxAttempts int
	baseBackoff time.Duration
	sleep       func(time.Duration)

	mu     sync.Mutex
	closed bool
	tasks  chan deliveryTask
	wg     sync.WaitGroup
	once   sync.Once
}

func NewPublisher(caller Caller, breaker *Breaker, cfg config.NotifyConfig) Publisher {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	backoff := time.Duration(cfg.BackoffMillis) * time.Millisecond
	if backoff <= 0 {
		backoff = 100 * time.Millisecond
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 256
	}

	p := &publisherImpl{
		caller:      caller,
		breaker:     breaker,
		maxAttempts: maxAttempts,
		baseBackoff: backoff,
		sleep:       time.Sleep,
		tasks:       make(chan deliveryTask, queueSize),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (s *publisherImpl) PublishBlogCreated(payload *dto.BlogCreatedPayload) {
	s.submit(deliveryTask{
		kind: "blog-created",
		key:  uuid.NewString(),
		send: func(ctx context.Context, key string) error {
			return s.caller.NotifyBlogCreated(ctx, key, payload)
		},
	})
}

func (s *publisherImpl) PublishMilestone(payload *dto.MilestonePayload) {
	s.submit(deliveryTask{
		kind: "milestone",
		key:  uuid.NewString(),
		send: func(ctx context.Context, key string) error {
			return s.caller.NotifyMilestone(ctx, key, payload)
		},
	})
}

func (s *publisherImpl) PublishUserRegistered(payload *dto.UserRegisteredPayload) {
	s.submit(deliveryTask{
		kind: "user-registered",
		key:  uuid.NewString(),
		send: func(ctx context.Context, key string) error {
			return s.caller.NotifyUserRegistered(ctx, key, payload)
		},
	})
}

// submit 非阻塞入队，队列满或已关闭时丢弃并记录
func (s *publisherImpl) submit(task deliveryTask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		log.Warn("发布器已关闭，事件被丢弃", "kind", task.kind, "key", task.key)
		return
	}
	select {
	case s.tasks <- task:
	default:
		log.Warn("通知队列已满，事件被丢弃", "kind", task.kind, "key", task.key)
	}
}

func (s *publisherImpl) worker() {
	defer s.wg.Done()
	for task := range s.tasks {
		s.deliver(task)
	}
}

// deliver 带退避的有限重试，整个生命周期复用同一个幂等键
func (s *publisherImpl) deliver(task deliveryTask) {
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, "notify-"+task.key)

	backoff := s.baseBackoff
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if !s.breaker.Allow() {
			log.WarnContext(ctx, "熔断器打开，事件被丢弃", "kind", task.kind, "key", task.key)
			return
		}

		err := task.send(ctx, task.key)
		if err == nil {
			s.breaker.MarkSuccess()
			return
		}
		s.breaker.MarkFailure()
		log.WarnContext(ctx, "通知投递失败",
			"kind", task.kind, "key", task.key, "attempt", attempt, "error", err)

		if attempt < s.maxAttempts {
			s.sleep(backoff)
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}
	}
	log.ErrorContext(ctx, "重试耗尽，事件被丢弃", "kind", task.kind, "key", task.key)
}

// Close 停止接收新事件并等待在途投递完成
func (s *publisherImpl) Close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.tasks)
		s.mu.Unlock()
	})
	s.wg.Wait()
}
