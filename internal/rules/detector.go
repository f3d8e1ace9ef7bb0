package rules

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ModeDetector 模式分类器。纯函数, 无副作用, 可在毕业时用实时阈值重复求值。
type ModeDetector struct{}

// NewModeDetector 创建模式分类器
func NewModeDetector() *ModeDetector {
	return &ModeDetector{}
}

// Detect 对候选小组参数做 community/capital 分类
//
// 风险分: 每个因子若突破阈值贡献 weight × min(value/threshold, 2),
// 未突破贡献 weight × (value/threshold) × 0.5; 四因子求和后乘以目的
// 类别乘数, 夹取到 [0,100] 并取整。任一因子突破或风险分超过
// risk_score_max 即触发资本模式。
func (d *ModeDetector) Detect(in *DetectInput, th Thresholds) (*DetectResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	multiplier := in.PurposeMultiplier
	if multiplier <= 0 {
		multiplier = 1.0
	}

	totalPot := in.ContributionAmount.Mul(decimal.NewFromInt(int64(in.MemberCount)))

	factors := []FactorResult{
		evalFactor(FactorContribution, in.ContributionAmount.InexactFloat64(), th.ContributionUSDMax, WeightContribution),
		evalFactor(FactorTotalPot, totalPot.InexactFloat64(), th.TotalPotUSDMax, WeightTotalPot),
		evalFactor(FactorGroupSize, float64(in.MemberCount), th.GroupSizeMax, WeightGroupSize),
		evalFactor(FactorCycleLength, float64(in.CycleLengthDays), th.CycleLengthDaysMax, WeightCycleLength),
	}

	var rawScore float64
	anyBreached := false
	for _, f := range factors {
		rawScore += f.Score
		if f.Breached {
			anyBreached = true
		}
	}

	score := rawScore * multiplier
	riskScore := int(math.Round(score))
	if riskScore > 100 {
		riskScore = 100
	}
	if riskScore < 0 {
		riskScore = 0
	}

	scoreTriggered := float64(riskScore) > th.RiskScoreMax
	triggered := anyBreached || scoreTriggered

	reasons := triggerReasons(in, totalPot, factors, riskScore, scoreTriggered, anyBreached, th)

	mode := "community"
	if triggered {
		mode = "capital"
	}

	return &DetectResult{
		Mode:                 mode,
		RiskScore:            riskScore,
		CapitalModeTriggered: triggered,
		TotalPotEstimate:     totalPot,
		Factors:              factors,
		TriggerReasons:       reasons,
	}, nil
}

// evalFactor 评估单个因子
func evalFactor(name string, value, threshold float64, weight int) FactorResult {
	breached := threshold > 0 && value > threshold

	var ratio float64
	if threshold > 0 {
		ratio = value / threshold
	}

	var score float64
	if breached {
		score = float64(weight) * math.Min(ratio, 2)
	} else {
		score = float64(weight) * ratio * 0.5
	}

	return FactorResult{
		Name:      name,
		Value:     value,
		Threshold: threshold,
		Weight:    weight,
		Breached:  breached,
		Score:     score,
	}
}

// triggerReasons 生成触发原因说明
func triggerReasons(in *DetectInput, totalPot decimal.Decimal, factors []FactorResult, riskScore int, scoreTriggered, anyBreached bool, th Thresholds) []string {
	var reasons []string
	for _, f := range factors {
		if !f.Breached {
			continue
		}
		switch f.Name {
		case FactorContribution:
			reasons = append(reasons, fmt.Sprintf("Contribution amount $%s exceeds $%s limit",
				in.ContributionAmount.String(), formatThreshold(th.ContributionUSDMax)))
		case FactorTotalPot:
			reasons = append(reasons, fmt.Sprintf("Total pot estimate $%s exceeds $%s limit",
				totalPot.String(), formatThreshold(th.TotalPotUSDMax)))
		case FactorGroupSize:
			reasons = append(reasons, fmt.Sprintf("Group size %d exceeds %s member limit",
				in.MemberCount, formatThreshold(th.GroupSizeMax)))
		case FactorCycleLength:
			reasons = append(reasons, fmt.Sprintf("Cycle length %d days exceeds %s day limit",
				in.CycleLengthDays, formatThreshold(th.CycleLengthDaysMax)))
		}
	}
	if scoreTriggered && !anyBreached {
		reasons = append(reasons, fmt.Sprintf("Aggregate risk score %d exceeds maximum %s",
			riskScore, formatThreshold(th.RiskScoreMax)))
	}
	return reasons
}

func formatThreshold(v float64) string {
	return decimal.NewFromFloat(v).String()
}
