package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	statsKey = "susu:admin:stats"
	statsTTL = 60 * time.Second
)

// StatsCache 运营统计缓存, 统计查询走多张表, 短 TTL 挡住管理面板轮询
type StatsCache struct {
	client redis.UniversalClient
}

// NewStatsCache 创建运营统计缓存
func NewStatsCache(client redis.UniversalClient) *StatsCache {
	return &StatsCache{client: client}
}

// Set 缓存统计结果
func (c *StatsCache) Set(ctx context.Context, stats interface{}) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statsKey, data, statsTTL).Err()
}

// Get 获取缓存统计, 未命中返回 false
func (c *StatsCache) Get(ctx context.Context, out interface{}) (bool, error) {
	data, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, err
	}

	return true, nil
}

// Invalidate 删除缓存统计
func (c *StatsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, statsKey).Err()
}
