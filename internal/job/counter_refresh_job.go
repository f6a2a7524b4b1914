package job

import (
	"BlogPress/internal/pkg/consts"
	"BlogPress/internal/pkg/logger"
	"BlogPress/internal/pkg/redis"
	"BlogPress/internal/pkg/util"
	"BlogPress/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const counterRefreshTTL = 7 * 24 * time.Hour

// CounterRefreshJob 回刷脏博客的计数缓存
type CounterRefreshJob struct {
	repo  repository.EngagementRepo
	cache *redis.CounterCache
}

func NewCounterRefreshJob(repo repository.EngagementRepo, cache *redis.CounterCache) *CounterRefreshJob {
	return &CounterRefreshJob{repo: repo, cache: cache}
}

func (s *CounterRefreshJob) Run() {
	traceID := "job-counter-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	// 先把脏集合换名，避免处理期间的新脏数据丢失
	processingKey := consts.BlogDirtyKey + ":processing"
	err := redis.Rename(ctx, consts.BlogDirtyKey, processingKey)
	if err != nil {
		return
	}

	tempSet, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get blog dirty set error", "err", err)
		return
	}

	blogIDs, err := util.StrSliceToUInt64Slice(tempSet)
	if err != nil {
		log.ErrorContext(ctx, "convert blog set to int slice error", "err", err)
		return
	}

	for _, bid := range blogIDs {
		s.refreshCounter(ctx, consts.BlogLikeKey, bid, s.repo.GetLikeCount)
		s.refreshCounter(ctx, consts.BlogViewKey, bid, s.repo.GetViewCount)
		s.refreshCounter(ctx, consts.BlogCommentKey, bid, s.repo.GetCommentCount)
	}

	err = redis.DeleteKey(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "delete blog processing set error", "err", err)
	}

	log.InfoContext(ctx, "refresh blog counters success", "blog_count", len(blogIDs))
}

func (s *CounterRefreshJob) refreshCounter(ctx context.Context, keyPrefix string, blogID uint64,
	loader func(ctx context.Context, blogID uint64) (int64, error)) {
	count, err := loader(ctx, blogID)
	if err != nil {
		log.ErrorContext(ctx, "load counter error", "blogID", blogID, "prefix", keyPrefix, "err", err)
		return
	}
	key := keyPrefix + strconv.FormatUint(blogID, 10)
	if err = s.cache.SetCount(ctx, key, count, counterRefreshTTL); err != nil {
		log.ErrorContext(ctx, "refresh counter cache error", "key", key, "err", err)
	}
}
