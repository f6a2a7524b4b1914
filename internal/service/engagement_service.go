package service

import (
	"BlogPress/internal/api/dto"
	"BlogPress/internal/model"
	"BlogPress/internal/pkg/client"
	"BlogPress/internal/pkg/consts"
	"BlogPress/internal/pkg/notify"
	redisUtil "BlogPress/internal/pkg/redis"
	"BlogPress/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"golang.org/x/sync/errgroup"
)

const counterCacheTTL = 7 * 24 * time.Hour

// mysqlDuplicateEntry MySQL 唯一键冲突错误码
const mysqlDuplicateEntry = 1062

type EngagementService interface {
	LikeBlog(ctx context.Context, blogID uint64, username string) (bool, error)
	UnlikeBlog(ctx context.Context, blogID uint64, username string) (bool, error)
	ToggleLike(ctx context.Context, blogID uint64, username string) (bool, error)
	IsLiked(ctx context.Context, blogID uint64, username string) (bool, error)
	RecordView(ctx context.Context, blogID uint64, username, ipAddress string) error
	GetLikeCount(ctx context.Context, blogID uint64) (int64, error)
	GetViewCount(ctx context.Context, blogID uint64) (int64, error)
	GetCommentCount(ctx context.Context, blogID uint64) (int64, error)
	GetCounts(ctx context.Context, blogID uint64) (*dto.EngagementCounts, error)
}

type EngagementServiceImpl struct {
	counterEvents
}

func NewEngagementService(repo repository.EngagementRepo, cache counterCache,
	blogs client.BlogClient, publisher notify.Publisher) EngagementService {
	return &EngagementServiceImpl{
		counterEvents: counterEvents{
			repo:      repo,
			cache:     cache,
			blogs:     blogs,
			publisher: publisher,
		},
	}
}

// LikeBlog 点赞，唯一键冲突视为已点赞的无害重放，返回是否新增
func (s *EngagementServiceImpl) LikeBlog(ctx context.Context, blogID uint64, username string) (bool, error) {
	like := &model.Like{BlogID: blogID, Username: username, CreatedAt: time.Now()}
	if err := s.repo.CreateLike(ctx, like); err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return false, nil
		}
		log.ErrorContext(ctx, "点赞写入失败", "blogID", blogID, "username", username, "error", err)
		return false, UnExpectedError
	}

	s.onIncrement(ctx, blogID, consts.MilestoneTypeLikes)
	return true, nil
}

// UnlikeBlog 取消点赞，记录不存在时为无害重放，返回是否删除
func (s *EngagementServiceImpl) UnlikeBlog(ctx context.Context, blogID uint64, username string) (bool, error) {
	removed, err := s.repo.DeleteLike(ctx, blogID, username)
	if err != nil {
		log.ErrorContext(ctx, "取消点赞失败", "blogID", blogID, "username", username, "error", err)
		return false, UnExpectedError
	}
	if removed {
		s.onDecrement(ctx, blogID)
	}
	return removed, nil
}

// ToggleLike 翻转点赞状态，返回翻转后是否已点赞
func (s *EngagementServiceImpl) ToggleLike(ctx context.Context, blogID uint64, username string) (bool, error) {
	liked, err := s.repo.ToggleLike(ctx, blogID, username)
	if err != nil {
		log.ErrorContext(ctx, "翻转点赞失败", "blogID", blogID, "username", username, "error", err)
		return false, UnExpectedError
	}

	if liked {
		s.onIncrement(ctx, blogID, consts.MilestoneTypeLikes)
	} else {
		s.onDecrement(ctx, blogID)
	}
	return liked, nil
}

func (s *EngagementServiceImpl) IsLiked(ctx context.Context, blogID uint64, username string) (bool, error) {
	exists, err := s.repo.CheckLikeExists(ctx, blogID, username)
	if err != nil {
		log.ErrorContext(ctx, "查询点赞状态失败", "blogID", blogID, "username", username, "error", err)
		return false, UnExpectedError
	}
	return exists, nil
}

// RecordView 记录一次浏览，浏览不去重
func (s *EngagementServiceImpl) RecordView(ctx context.Context, blogID uint64, username, ipAddress string) error {
	view := &model.BlogView{
		BlogID:    blogID,
		Username:  username,
		IPAddress: ipAddress,
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateView(ctx, view); err != nil {
		log.ErrorContext(ctx, "浏览记录写入失败", "blogID", blogID, "error", err)
		return UnExpectedError
	}

	s.onIncrement(ctx, blogID, consts.MilestoneTypeViews)
	return nil
}

func (s *EngagementServiceImpl) GetLikeCount(ctx context.Context, blogID uint64) (int64, error) {
	return s.cachedCount(ctx, consts.BlogLikeKey, blogID, s.repo.GetLikeCount)
}

func (s *EngagementServiceImpl) GetViewCount(ctx context.Context, blogID uint64) (int64, error) {
	return s.cachedCount(ctx, consts.BlogViewKey, blogID, s.repo.GetViewCount)
}

func (s *EngagementServiceImpl) GetCommentCount(ctx context.Context, blogID uint64) (int64, error) {
	return s.cachedCount(ctx, consts.BlogCommentKey, blogID, s.repo.GetCommentCount)
}

// GetCounts 并发汇总三类计数
func (s *EngagementServiceImpl) GetCounts(ctx context.Context, blogID uint64) (*dto.EngagementCounts, error) {
	var counts dto.EngagementCounts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts.Likes, err = s.GetLikeCount(gctx, blogID)
		return
	})
	g.Go(func() (err error) {
		counts.Views, err = s.GetViewCount(gctx, blogID)
		return
	})
	g.Go(func() (err error) {
		counts.Comments, err = s.GetCommentCount(gctx, blogID)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &counts, nil
}

// cachedCount 旁路缓存读取，缓存故障时直接回源数据库
func (s *EngagementServiceImpl) cachedCount(ctx context.Context, keyPrefix string, blogID uint64,
	loader func(ctx context.Context, blogID uint64) (int64, error)) (int64, error) {
	key := keyPrefix + strconv.FormatUint(blogID, 10)

	count, err := s.cache.GetCount(ctx, key)
	if err == nil {
		return count, nil
	}
	if !errors.Is(err, redisUtil.ErrCacheMiss) {
		log.WarnContext(ctx, "计数缓存读取失败", "key", key, "error", err)
	}

	count, err = loader(ctx, blogID)
	if err != nil {
		log.ErrorContext(ctx, "计数回源失败", "key", key, "error", err)
		return 0, UnExpectedError
	}
	if err = s.cache.SetCount(ctx, key, count, counterCacheTTL); err != nil {
		log.WarnContext(ctx, "计数缓存回填失败", "key", key, "error", err)
	}
	return count, nil
}
