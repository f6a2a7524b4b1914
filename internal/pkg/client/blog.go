package client

import (
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// BlogSummary 博客服务内部接口返回的摘要信息
type BlogSummary struct {
	ID       uint64 `json:"id"`
	Title    string `json:"title"`
	AuthorID uint64 `json:"authorId"`
}

// BlogClient 博客服务只读客户端，用于里程碑上下文补全
type BlogClient interface {
	GetBlogSummary(ctx context.Context, blogID uint64) (*BlogSummary, error)
}

type blogClientImpl struct {
	httpClient *resty.Client
}

func NewBlogClient(baseURL string) BlogClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5 * time.Second)

	return &blogClientImpl{httpClient: client}
}

func (s *blogClientImpl) GetBlogSummary(ctx context.Context, blogID uint64) (*BlogSummary, error) {
	var summary BlogSummary
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetResult(&summary).
		Get(fmt.Sprintf("/api/blogs/internal/%d", blogID))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		log.WarnContext(ctx, "blog lookup failed", "blogID", blogID, "status", resp.StatusCode())
		return nil, fmt.Errorf("blog lookup status %d", resp.StatusCode())
	}
	return &summary, nil
}
