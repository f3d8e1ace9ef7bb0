package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiomcity/axiom-susu/internal/dto"
	"github.com/axiomcity/axiom-susu/internal/model"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	return s, client
}

func TestReliabilityCache_SetAndGet(t *testing.T) {
	_, client := setupTestRedis(t)
	cache := NewReliabilityCache(client)
	ctx := context.Background()

	profile := &model.ReliabilityProfile{
		UserID:             "0x1234567890123456789012345678901234567890",
		PoolsJoined:        3,
		TotalContributions: 12,
		OnTime:             11,
		Late:               1,
		ReliabilityScore:   95.5,
	}

	err := cache.Set(ctx, profile)
	require.NoError(t, err)

	got, err := cache.Get(ctx, profile.UserID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, profile.UserID, got.UserID)
	assert.Equal(t, profile.PoolsJoined, got.PoolsJoined)
	assert.Equal(t, profile.ReliabilityScore, got.ReliabilityScore)
}

func TestReliabilityCache_GetNotFound(t *testing.T) {
	_, client := setupTestRedis(t)
	cache := NewReliabilityCache(client)
	ctx := context.Background()

	got, err := cache.Get(ctx, "0xnonexistent")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestReliabilityCache_Invalidate(t *testing.T) {
	_, client := setupTestRedis(t)
	cache := NewReliabilityCache(client)
	ctx := context.Background()

	profile := &model.ReliabilityProfile{
		UserID:           "0x1234567890123456789012345678901234567890",
		ReliabilityScore: 100,
	}

	require.NoError(t, cache.Set(ctx, profile))

	err := cache.Invalidate(ctx, profile.UserID)
	require.NoError(t, err)

	got, err := cache.Get(ctx, profile.UserID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReliabilityCache_TTL(t *testing.T) {
	s, client := setupTestRedis(t)
	cache := NewReliabilityCache(client)
	ctx := context.Background()

	profile := &model.ReliabilityProfile{
		UserID:           "0xabcdef1234567890123456789012345678901234",
		ReliabilityScore: 88,
	}
	require.NoError(t, cache.Set(ctx, profile))

	// 超过 TTL 后缓存应失效
	s.FastForward(reliabilityTTL + 1)

	got, err := cache.Get(ctx, profile.UserID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStatsCache_SetAndGet(t *testing.T) {
	_, client := setupTestRedis(t)
	cache := NewStatsCache(client)
	ctx := context.Background()

	stats := &dto.AdminStats{
		TotalHubs:       60,
		TotalGroups:     10,
		GraduatedGroups: 3,
		EventFunnel:     map[string]int64{"hub_join": 40, "group_join": 25},
		ConversionRate:  62.5,
		GraduationRate:  30,
	}

	require.NoError(t, cache.Set(ctx, stats))

	var got dto.AdminStats
	hit, err := cache.Get(ctx, &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, stats.TotalHubs, got.TotalHubs)
	assert.Equal(t, stats.EventFunnel["group_join"], got.EventFunnel["group_join"])
	assert.Equal(t, stats.GraduationRate, got.GraduationRate)
}

func TestStatsCache_Miss(t *testing.T) {
	_, client := setupTestRedis(t)
	cache := NewStatsCache(client)
	ctx := context.Background()

	var got dto.AdminStats
	hit, err := cache.Get(ctx, &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestStatsCache_Expiry(t *testing.T) {
	s, client := setupTestRedis(t)
	cache := NewStatsCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &dto.AdminStats{TotalHubs: 1}))

	s.FastForward(statsTTL + 1)

	var got dto.AdminStats
	hit, err := cache.Get(ctx, &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestGraduationLock_AcquireRelease(t *testing.T) {
	_, client := setupTestRedis(t)
	lock := NewGraduationLock(client)
	ctx := context.Background()

	ok, err := lock.Acquire(ctx, 42)
	require.NoError(t, err)
	assert.True(t, ok)

	// 同一小组二次加锁失败
	ok, err = lock.Acquire(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)

	// 其他小组互不影响
	ok, err = lock.Acquire(ctx, 43)
	require.NoError(t, err)
	assert.True(t, ok)

	// 释放后可重新获取
	require.NoError(t, lock.Release(ctx, 42))
	ok, err = lock.Acquire(ctx, 42)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGraduationLock_ExpiresAfterTTL(t *testing.T) {
	s, client := setupTestRedis(t)
	lock := NewGraduationLock(client)
	ctx := context.Background()

	ok, err := lock.Acquire(ctx, 7)
	require.NoError(t, err)
	require.True(t, ok)

	// 持有方崩溃后锁随 TTL 过期
	s.FastForward(graduationLockTTL + 1)

	ok, err = lock.Acquire(ctx, 7)
	require.NoError(t, err)
	assert.True(t, ok)
}
