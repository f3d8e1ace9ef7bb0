package rules

import (
	"errors"
	"math"

	"github.com/axiomcity/axiom-susu/internal/model"
)

// ReliabilityEvent 可靠性事件类型
type ReliabilityEvent string

const (
	EventPoolJoined         ReliabilityEvent = "pool_joined"
	EventPoolCompleted      ReliabilityEvent = "pool_completed"
	EventContributionOnTime ReliabilityEvent = "contribution_on_time"
	EventContributionLate   ReliabilityEvent = "contribution_late"
	EventContributionMissed ReliabilityEvent = "contribution_missed"
	EventEarlyExit          ReliabilityEvent = "early_exit"
	EventEjected            ReliabilityEvent = "ejected"
)

var ErrUnknownReliabilityEvent = errors.New("unknown reliability event")

// ParseReliabilityEvent 解析事件类型
func ParseReliabilityEvent(s string) (ReliabilityEvent, error) {
	switch ReliabilityEvent(s) {
	case EventPoolJoined, EventPoolCompleted,
		EventContributionOnTime, EventContributionLate, EventContributionMissed,
		EventEarlyExit, EventEjected:
		return ReliabilityEvent(s), nil
	}
	return "", ErrUnknownReliabilityEvent
}

// ApplyReliabilityEvent 将事件累加到档案计数器并重算分数。
// 每次都从计数器全量重算而非增量更新, 保证分数始终可由事件重放恢复。
func ApplyReliabilityEvent(p *model.ReliabilityProfile, event ReliabilityEvent) error {
	switch event {
	case EventPoolJoined:
		p.PoolsJoined++
	case EventPoolCompleted:
		p.PoolsCompleted++
	case EventContributionOnTime:
		p.TotalContributions++
		p.OnTime++
	case EventContributionLate:
		p.TotalContributions++
		p.Late++
	case EventContributionMissed:
		p.TotalContributions++
		p.Missed++
	case EventEarlyExit:
		p.EarlyExits++
	case EventEjected:
		p.Ejections++
	default:
		return ErrUnknownReliabilityEvent
	}

	p.ReliabilityScore = ComputeReliabilityScore(p)
	return nil
}

// ComputeReliabilityScore 由计数器派生可靠性分数
//
// base = 100, 有供款历史时 base *= 0.7 + 0.3 × 按时率;
// 再扣减 2×逾期 + 10×未缴 + 15×提前退出 + 25×被移出;
// 有入池历史时加 10 × 完成率; 夹取 [0,100], 保留两位小数。
// 无任何历史的新用户分数恰为 100 (乐观先验)。
func ComputeReliabilityScore(p *model.ReliabilityProfile) float64 {
	base := 100.0
	if p.TotalContributions > 0 {
		onTimeRate := float64(p.OnTime) / float64(p.TotalContributions)
		base *= 0.7 + 0.3*onTimeRate
	}

	score := base -
		2*float64(p.Late) -
		10*float64(p.Missed) -
		15*float64(p.EarlyExits) -
		25*float64(p.Ejections)

	if p.PoolsJoined > 0 {
		completionRate := float64(p.PoolsCompleted) / float64(p.PoolsJoined)
		score += 10 * completionRate
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return math.Round(score*100) / 100
}
