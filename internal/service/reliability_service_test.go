package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiomcity/axiom-susu/internal/dto"
	"github.com/axiomcity/axiom-susu/internal/repository"
)

func TestReliabilityService_GetProfileSynthetic(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// 无历史用户返回满分画像, 且不落库
	view, err := env.reliabilitySvc.GetProfile(ctx, walletOutsider)
	require.NoError(t, err)
	assert.Equal(t, walletOutsider, view.UserID)
	assert.Equal(t, 100.0, view.ReliabilityScore)

	_, err = env.reliabilityRepo.GetByUser(ctx, walletOutsider)
	assert.ErrorIs(t, err, repository.ErrProfileNotFound)

	// 钱包格式非法
	_, err = env.reliabilitySvc.GetProfile(ctx, "bogus")
	requireBizCode(t, err, dto.ErrInvalidWalletAddr)
}

func TestReliabilityService_ApplyEvent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// 未缴: base 70 再扣 10
	view, err := env.reliabilitySvc.ApplyEvent(ctx, &dto.ReliabilityEventRequest{
		WalletAddress: walletMember2,
		Event:         "contribution_missed",
	})
	require.NoError(t, err)
	assert.Equal(t, 60.0, view.ReliabilityScore)
	assert.Equal(t, 1, view.MissedContributions)

	// 未知事件
	_, err = env.reliabilitySvc.ApplyEvent(ctx, &dto.ReliabilityEventRequest{
		WalletAddress: walletMember2,
		Event:         "teleported",
	})
	requireBizCode(t, err, dto.ErrUnknownEvent)

	// 被移出扣 25
	view, err = env.reliabilitySvc.ApplyEvent(ctx, &dto.ReliabilityEventRequest{
		WalletAddress: walletMember3,
		Event:         "ejected",
	})
	require.NoError(t, err)
	assert.Equal(t, 75.0, view.ReliabilityScore)
}

func TestReliabilityService_RecordContribution(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	group := env.createReadyGroup(t)

	record := func(wallet string, cycle int, status string) (err error) {
		_, err = env.reliabilitySvc.RecordContribution(ctx, group.ID, &dto.RecordContributionRequest{
			WalletAddress: wallet,
			CycleNumber:   cycle,
			Amount:        decimal.NewFromInt(500),
			DueDate:       1700000000000,
			Status:        status,
		})
		return err
	}

	// 按时供款保持满分
	require.NoError(t, record(walletMember2, 1, "paid"))
	profile, err := env.reliabilityRepo.GetByUser(ctx, walletMember2)
	require.NoError(t, err)
	assert.Equal(t, 100.0, profile.ReliabilityScore)

	// 逾期: 按时率 0.5 -> base 85, 再扣 2
	require.NoError(t, record(walletMember2, 2, "late"))
	profile, err = env.reliabilityRepo.GetByUser(ctx, walletMember2)
	require.NoError(t, err)
	assert.Equal(t, 83.0, profile.ReliabilityScore)
	assert.Equal(t, 2, profile.TotalContributions)

	// pending 只记账不计分
	require.NoError(t, record(walletMember3, 1, "pending"))
	_, err = env.reliabilityRepo.GetByUser(ctx, walletMember3)
	assert.ErrorIs(t, err, repository.ErrProfileNotFound)

	// 同周期重复记录
	err = record(walletMember2, 1, "paid")
	requireBizCode(t, err, dto.ErrInvalidParams)

	// 非成员
	err = record(walletOutsider, 1, "paid")
	requireBizCode(t, err, dto.ErrGroupMemberExists)

	// 非法状态
	err = record(walletMember2, 3, "vanished")
	requireBizCode(t, err, dto.ErrInvalidParams)
}
