package client

import (
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// UserProfile 用户服务内部接口返回的档案信息
type UserProfile struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserClient 用户服务只读客户端，供通知侧解析收件人
type UserClient interface {
	GetUserByID(ctx context.Context, userID string) (*UserProfile, error)
	GetAllUserEmails(ctx context.Context) ([]string, error)
}

type userClientImpl struct {
	httpClient *resty.Client
}

func NewUserClient(baseURL string) UserClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5 * time.Second)

	return &userClientImpl{httpClient: client}
}

func (s *userClientImpl) GetUserByID(ctx context.Context, userID string) (*UserProfile, error) {
	var profile UserProfile
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetResult(&profile).
		Get("/api/users/internal/" + userID)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		log.WarnContext(ctx, "user lookup failed", "userID", userID, "status", resp.StatusCode())
		return nil, fmt.Errorf("user lookup status %d", resp.StatusCode())
	}
	return &profile, nil
}

func (s *userClientImpl) GetAllUserEmails(ctx context.Context) ([]string, error) {
	var emails []string
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetResult(&emails).
		Get("/api/users/internal/emails")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("user emails status %d", resp.StatusCode())
	}
	return emails, nil
}
