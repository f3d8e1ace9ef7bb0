package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiomcity/axiom-susu/internal/model"
)

func TestComputeReliabilityScore_NewUser(t *testing.T) {
	// 无任何历史的新用户分数恰为 100
	p := &model.ReliabilityProfile{UserID: "0xabc"}
	assert.Equal(t, 100.0, ComputeReliabilityScore(p))
}

func TestComputeReliabilityScore_AllOnTime(t *testing.T) {
	// 全部按时: base 保持 100
	p := &model.ReliabilityProfile{TotalContributions: 10, OnTime: 10}
	assert.Equal(t, 100.0, ComputeReliabilityScore(p))
}

func TestComputeReliabilityScore_Penalties(t *testing.T) {
	// 5 次供款 4 按时 1 逾期: base = 100×(0.7+0.3×0.8) = 94, 减 2 = 92
	p := &model.ReliabilityProfile{TotalContributions: 5, OnTime: 4, Late: 1}
	assert.Equal(t, 92.0, ComputeReliabilityScore(p))

	// 被移出重罚
	p = &model.ReliabilityProfile{Ejections: 2}
	assert.Equal(t, 50.0, ComputeReliabilityScore(p))
}

func TestComputeReliabilityScore_CompletionBonus(t *testing.T) {
	// 完成率加成: 2/4 完成 → +5
	p := &model.ReliabilityProfile{
		TotalContributions: 5, OnTime: 4, Late: 1,
		PoolsJoined: 4, PoolsCompleted: 2,
	}
	assert.Equal(t, 97.0, ComputeReliabilityScore(p))
}

func TestComputeReliabilityScore_Bounds(t *testing.T) {
	// 任意计数器组合下分数始终在 [0,100]
	cases := []*model.ReliabilityProfile{
		{Ejections: 10},                      // 重罚至下限
		{Missed: 50, TotalContributions: 50}, // 全部未缴
		{TotalContributions: 100, OnTime: 100, PoolsJoined: 1, PoolsCompleted: 1}, // 满分加成
		{EarlyExits: 3, Late: 20, TotalContributions: 20},
	}
	for _, p := range cases {
		score := ComputeReliabilityScore(p)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}

func TestApplyReliabilityEvent_Counters(t *testing.T) {
	p := &model.ReliabilityProfile{UserID: "0xabc", ReliabilityScore: 100}

	require.NoError(t, ApplyReliabilityEvent(p, EventPoolJoined))
	require.NoError(t, ApplyReliabilityEvent(p, EventContributionOnTime))
	require.NoError(t, ApplyReliabilityEvent(p, EventContributionLate))
	require.NoError(t, ApplyReliabilityEvent(p, EventContributionMissed))
	require.NoError(t, ApplyReliabilityEvent(p, EventPoolCompleted))

	assert.Equal(t, 3, p.TotalContributions)
	assert.Equal(t, 1, p.OnTime)
	assert.Equal(t, 1, p.Late)
	assert.Equal(t, 1, p.Missed)
	assert.Equal(t, 1, p.PoolsJoined)
	assert.Equal(t, 1, p.PoolsCompleted)

	// 分数为计数器的纯函数
	assert.Equal(t, ComputeReliabilityScore(p), p.ReliabilityScore)
}

func TestApplyReliabilityEvent_Replay(t *testing.T) {
	// 相同事件序列重放得到相同分数
	events := []ReliabilityEvent{
		EventPoolJoined, EventContributionOnTime, EventContributionOnTime,
		EventContributionLate, EventContributionMissed, EventPoolCompleted,
		EventEarlyExit,
	}

	p1 := &model.ReliabilityProfile{}
	p2 := &model.ReliabilityProfile{}
	for _, e := range events {
		require.NoError(t, ApplyReliabilityEvent(p1, e))
	}
	for _, e := range events {
		require.NoError(t, ApplyReliabilityEvent(p2, e))
	}
	assert.Equal(t, p1.ReliabilityScore, p2.ReliabilityScore)
}

func TestApplyReliabilityEvent_Unknown(t *testing.T) {
	p := &model.ReliabilityProfile{}
	err := ApplyReliabilityEvent(p, ReliabilityEvent("bogus"))
	assert.ErrorIs(t, err, ErrUnknownReliabilityEvent)

	_, err = ParseReliabilityEvent("bogus")
	assert.ErrorIs(t, err, ErrUnknownReliabilityEvent)

	ev, err := ParseReliabilityEvent("contribution_on_time")
	require.NoError(t, err)
	assert.Equal(t, EventContributionOnTime, ev)
}
