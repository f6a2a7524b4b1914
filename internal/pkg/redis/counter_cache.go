package redis

import (
	"BlogPress/internal/pkg/consts"
	"context"
	"strconv"
	"time"
)

// CounterCache 基于 Redis 的计数缓存，供 engagement 服务做 cache-aside 读取
type CounterCache struct{}

func NewCounterCache() *CounterCache {
	return &CounterCache{}
}

func (s *CounterCache) GetCount(ctx context.Context, key string) (int64, error) {
	return GetInt64(ctx, key)
}

func (s *CounterCache) SetCount(ctx context.Context, key string, value int64, expiration time.Duration) error {
	return SetWithExpiration(ctx, key, value, expiration)
}

// MarkDirty 将博客加入脏集合，等待定时任务回刷缓存
func (s *CounterCache) MarkDirty(ctx context.Context, blogID uint64) error {
	return SAdd(ctx, consts.BlogDirtyKey, strconv.FormatUint(blogID, 10))
}
