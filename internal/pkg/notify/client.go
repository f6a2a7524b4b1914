package notify

import (
	"BlogPress/internal/api/config"
	"BlogPress/internal/api/dto"
	"BlogPress/internal/pkg/consts"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Caller 通知服务投递客户端，每次调用携带幂等键
type Caller interface {
	NotifyBlogCreated(ctx context.Context, key string, payload *dto.BlogCreatedPayload) error
	NotifyMilestone(ctx context.Context, key string, payload *dto.MilestonePayload) error
	NotifyUserRegistered(ctx context.Context, key string, payload *dto.UserRegisteredPayload) error
}

type restCaller struct {
	httpClient *resty.Client
}

func NewCaller(cfg config.NotifyConfig) Caller {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 5
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(timeout) * time.Second)

	return &restCaller{httpClient: client}
}

func (s *restCaller) NotifyBlogCreated(ctx context.Context, key string, payload *dto.BlogCreatedPayload) error {
	return s.post(ctx, key, "/api/notifications/blog-created", payload)
}

func (s *restCaller) NotifyMilestone(ctx context.Context, key string, payload *dto.MilestonePayload) error {
	return s.post(ctx, key, "/api/notifications/milestone", payload)
}

func (s *restCaller) NotifyUserRegistered(ctx context.Context, key string, payload *dto.UserRegisteredPayload) error {
	return s.post(ctx, key, "/api/notifications/user-registered", payload)
}

func (s *restCaller) post(ctx context.Context, key, path string, payload any) error {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetHeader(consts.IdempotencyKeyHeader, key).
		SetBody(payload).
		Post(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("notify %s status %d", path, resp.StatusCode())
	}
	return nil
}
