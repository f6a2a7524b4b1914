package service

import (
	"BlogPress/internal/api/dto"
	"BlogPress/internal/pkg/client"
	"BlogPress/internal/pkg/consts"
	"BlogPress/internal/pkg/notify"
	"BlogPress/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"
)

// counterCache 服务层依赖的计数缓存能力
type counterCache interface {
	GetCount(ctx context.Context, key string) (int64, error)
	SetCount(ctx context.Context, key string, value int64, expiration time.Duration) error
	MarkDirty(ctx context.Context, blogID uint64) error
}

// counterEvents 计数变化后的公共处理：标脏缓存，命中里程碑时发布事件
type counterEvents struct {
	repo      repository.EngagementRepo
	cache     counterCache
	blogs     client.BlogClient
	publisher notify.Publisher
}

// onIncrement 计数加一后调用，发布失败只记录不影响主流程
func (s *counterEvents) onIncrement(ctx context.Context, blogID uint64, milestoneType string) {
	s.markDirty(ctx, blogID)

	count, err := s.currentCount(ctx, blogID, milestoneType)
	if err != nil {
		log.WarnContext(ctx, "里程碑检查读取计数失败",
			"blogID", blogID, "type", milestoneType, "error", err)
		return
	}
	if !IsMilestone(count) {
		return
	}

	payload := &dto.MilestonePayload{
		BlogID:        strconv.FormatUint(blogID, 10),
		MilestoneType: milestoneType,
		Count:         count,
	}
	if summary, err := s.blogs.GetBlogSummary(ctx, blogID); err == nil {
		payload.BlogTitle = summary.Title
		payload.AuthorID = strconv.FormatUint(summary.AuthorID, 10)
	} else {
		log.WarnContext(ctx, "里程碑上下文补全失败", "blogID", blogID, "error", err)
	}

	s.publisher.PublishMilestone(payload)
	log.InfoContext(ctx, "里程碑命中", "blogID", blogID, "type", milestoneType, "count", count)
}

// onDecrement 计数减少只需标脏，里程碑不回退
func (s *counterEvents) onDecrement(ctx context.Context, blogID uint64) {
	s.markDirty(ctx, blogID)
}

func (s *counterEvents) markDirty(ctx context.Context, blogID uint64) {
	if err := s.cache.MarkDirty(ctx, blogID); err != nil {
		log.WarnContext(ctx, "标记脏计数失败", "blogID", blogID, "error", err)
	}
}

// currentCount 以数据库计数为准做里程碑判定
func (s *counterEvents) currentCount(ctx context.Context, blogID uint64, milestoneType string) (int64, error) {
	switch milestoneType {
	case consts.MilestoneTypeLikes:
		return s.repo.GetLikeCount(ctx, blogID)
	case consts.MilestoneTypeViews:
		return s.repo.GetViewCount(ctx, blogID)
	default:
		return s.repo.GetCommentCount(ctx, blogID)
	}
}
