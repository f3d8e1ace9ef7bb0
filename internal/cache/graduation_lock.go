package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	graduationLockPrefix = "susu:graduation:lock:"
	graduationLockTTL    = 30 * time.Second
)

// GraduationLock 毕业操作分布式锁
// 数据库条件更新已保证毕业只发生一次, 锁用于挡住并发重复请求,
// 让后来者直接得到冲突响应而不是排队进事务
type GraduationLock struct {
	client redis.UniversalClient
}

// NewGraduationLock 创建毕业锁
func NewGraduationLock(client redis.UniversalClient) *GraduationLock {
	return &GraduationLock{client: client}
}

// Acquire 尝试获取小组毕业锁, 返回是否获取成功
func (l *GraduationLock) Acquire(ctx context.Context, groupID int64) (bool, error) {
	key := fmt.Sprintf("%s%d", graduationLockPrefix, groupID)
	return l.client.SetNX(ctx, key, time.Now().UnixMilli(), graduationLockTTL).Result()
}

// Release 释放小组毕业锁
func (l *GraduationLock) Release(ctx context.Context, groupID int64) error {
	key := fmt.Sprintf("%s%d", graduationLockPrefix, groupID)
	return l.client.Del(ctx, key).Err()
}
