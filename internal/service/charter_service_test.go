package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiomcity/axiom-susu/internal/dto"
)

func charterReq() *dto.CreateCharterRequest {
	return &dto.CreateCharterRequest{
		GroupID:               0,
		PoolID:                10,
		Purpose:               "Emergency Fund Circle #1",
		Category:              "Emergency Fund",
		ContributionAmount:    decimal.NewFromInt(500),
		ContributionFrequency: "30 days",
		MemberCount:           5,
		RotationMethod:        "sequential",
		GracePeriodDays:       3,
		ExitPolicy:            "forfeit",
		DisputePolicy:         "vote",
		CustodyModel:          "smart-contract",
	}
}

func TestCharterService_GenerateVersions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.charterSvc.Generate(ctx, charterReq())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version)
	assert.Equal(t, "community", first.Mode)
	assert.True(t, strings.HasPrefix(first.CharterHash, "0x"))
	assert.Len(t, first.CharterHash, 66)

	// 相同参数重复提交产生新版本而不是覆盖
	second, err := env.charterSvc.Generate(ctx, charterReq())
	require.NoError(t, err)
	assert.Equal(t, 2, second.Version)

	views, err := env.charterSvc.ListCharters(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, views, 2)
	// 版本降序
	assert.Equal(t, 2, views[0].Version)
}

func TestCharterService_ConcurrentVersionAllocation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	const writers = 4
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		versions []int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// 唯一索引冲突由服务内部重试消化, 偶发耗尽时整次重来
			for {
				view, err := env.charterSvc.Generate(ctx, charterReq())
				if err != nil {
					var biz *dto.BizError
					if errors.As(err, &biz) && biz.Code == dto.ErrVersionConflict.Code {
						continue
					}
					t.Error(err)
					return
				}
				mu.Lock()
				versions = append(versions, view.Version)
				mu.Unlock()
				return
			}
		}()
	}
	wg.Wait()

	// 并发分配得到互不相同且连续的版本号
	require.Len(t, versions, writers)
	sort.Ints(versions)
	assert.Equal(t, []int{1, 2, 3, 4}, versions)

	views, err := env.charterSvc.ListCharters(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, views, writers)
}

func TestCharterService_GenerateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// 成员数不足
	req := charterReq()
	req.MemberCount = 1
	_, err := env.charterSvc.Generate(ctx, req)
	requireBizCode(t, err, dto.ErrInvalidParams)

	// 非法模式
	req = charterReq()
	req.Mode = "hybrid"
	_, err = env.charterSvc.Generate(ctx, req)
	requireBizCode(t, err, dto.ErrInvalidParams)

	// 指定的小组必须存在
	req = charterReq()
	req.GroupID = 9999
	_, err = env.charterSvc.Generate(ctx, req)
	requireBizCode(t, err, dto.ErrGroupNotFound)
}

func TestCharterService_Accept(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	view, err := env.charterSvc.Generate(ctx, charterReq())
	require.NoError(t, err)

	accept := &dto.AcceptCharterRequest{
		CharterID:       view.ID,
		WalletAddress:   walletMember2,
		WalletSignature: "0xsig",
	}
	require.NoError(t, env.charterSvc.Accept(ctx, accept, "10.0.0.1"))

	// 每版本每用户一次
	err = env.charterSvc.Accept(ctx, accept, "10.0.0.1")
	requireBizCode(t, err, dto.ErrAcceptanceExists)

	list, err := env.charterSvc.ListAcceptances(ctx, view.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, walletMember2, list[0].UserID)
	assert.Equal(t, "10.0.0.1", list[0].RequestIP)

	// 章程不存在
	err = env.charterSvc.Accept(ctx, &dto.AcceptCharterRequest{
		CharterID:     9999,
		WalletAddress: walletMember2,
	}, "10.0.0.1")
	requireBizCode(t, err, dto.ErrCharterNotFound)
}
