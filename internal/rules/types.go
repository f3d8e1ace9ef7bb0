// Package rules 定义 SUSU 模式分类与可靠性评分的纯决策逻辑
package rules

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidContribution = errors.New("contribution amount must be positive")
	ErrInvalidMemberCount  = errors.New("member count must be at least 2")
	ErrInvalidCycleLength  = errors.New("cycle length days must be positive")
)

// 因子权重 (合计 100)。该曲线与上限 2 倍的突破乘数为既定风控策略, 不可调整。
const (
	WeightContribution = 30
	WeightTotalPot     = 35
	WeightGroupSize    = 15
	WeightCycleLength  = 20
)

// 因子名称
const (
	FactorContribution = "contribution"
	FactorTotalPot     = "totalPot"
	FactorGroupSize    = "memberCount"
	FactorCycleLength  = "cycleLengthDays"
)

// Thresholds 模式分类阈值快照 (每次分类即时读取, 支持在线调整)
type Thresholds struct {
	ContributionUSDMax float64 // 单期供款上限
	TotalPotUSDMax     float64 // 资金池总额上限
	GroupSizeMax       float64 // 小组人数上限
	CycleLengthDaysMax float64 // 周期长度上限
	RiskScoreMax       float64 // 综合风险分上限
}

// DefaultThresholds 返回默认阈值
func DefaultThresholds() Thresholds {
	return Thresholds{
		ContributionUSDMax: 1000,
		TotalPotUSDMax:     10000,
		GroupSizeMax:       20,
		CycleLengthDaysMax: 90,
		RiskScoreMax:       75,
	}
}

// DetectInput 模式分类输入
type DetectInput struct {
	ContributionAmount decimal.Decimal // 每期供款金额, 必须 > 0
	MemberCount        int             // 成员数, 必须 >= 2
	CycleLengthDays    int             // 周期长度 (天), 必须 > 0
	PurposeMultiplier  float64         // 目的类别乘数, 未配置时为 1.0
}

// Validate 校验输入
func (in *DetectInput) Validate() error {
	if !in.ContributionAmount.IsPositive() {
		return ErrInvalidContribution
	}
	if in.MemberCount < 2 {
		return ErrInvalidMemberCount
	}
	if in.CycleLengthDays <= 0 {
		return ErrInvalidCycleLength
	}
	return nil
}

// FactorResult 单因子评估结果
type FactorResult struct {
	Name      string  `json:"name"`      // 因子名称
	Value     float64 `json:"value"`     // 实际值
	Threshold float64 `json:"threshold"` // 阈值
	Weight    int     `json:"weight"`    // 权重
	Breached  bool    `json:"breached"`  // 是否突破阈值
	Score     float64 `json:"score"`     // 对风险分的贡献 (乘数前)
}

// DetectResult 模式分类结果
type DetectResult struct {
	Mode                 string          `json:"mode"`                 // community / capital
	RiskScore            int             `json:"riskScore"`            // [0,100] 取整
	CapitalModeTriggered bool            `json:"capitalModeTriggered"` // 是否触发资本模式
	TotalPotEstimate     decimal.Decimal `json:"totalPotEstimate"`     // 供款 × 成员数
	Factors              []FactorResult  `json:"factors"`              // 因子明细
	TriggerReasons       []string        `json:"triggerReasons"`       // 触发原因 (每个突破因子一条)
}
