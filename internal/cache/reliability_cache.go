// Package cache 提供互助会服务的缓存层
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/axiomcity/axiom-susu/internal/model"
)

const (
	reliabilityKeyPrefix = "susu:reliability:"
	reliabilityTTL       = 10 * time.Minute
)

// ReliabilityCache 可靠性画像缓存
type ReliabilityCache struct {
	client redis.UniversalClient
}

// NewReliabilityCache 创建可靠性画像缓存
func NewReliabilityCache(client redis.UniversalClient) *ReliabilityCache {
	return &ReliabilityCache{client: client}
}

// Set 缓存可靠性画像
func (c *ReliabilityCache) Set(ctx context.Context, profile *model.ReliabilityProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, reliabilityKeyPrefix+profile.UserID, data, reliabilityTTL).Err()
}

// Get 获取缓存画像, 未命中返回 nil
func (c *ReliabilityCache) Get(ctx context.Context, userID string) (*model.ReliabilityProfile, error) {
	data, err := c.client.Get(ctx, reliabilityKeyPrefix+userID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var profile model.ReliabilityProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// Invalidate 删除缓存画像, 事件写入后调用
func (c *ReliabilityCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, reliabilityKeyPrefix+userID).Err()
}
