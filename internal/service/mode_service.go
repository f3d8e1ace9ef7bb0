package service

import (
	"context"
	"errors"

	"github.com/axiomcity/axiom-susu/internal/dto"
	"github.com/axiomcity/axiom-susu/internal/metrics"
	"github.com/axiomcity/axiom-susu/internal/model"
	"github.com/axiomcity/axiom-susu/internal/repository"
	"github.com/axiomcity/axiom-susu/internal/rules"
)

// ThresholdLoader 即时读取分类阈值。每次分类都重新读库,
// 管理员调整后的阈值对后续分类立即生效。
type ThresholdLoader struct {
	repo *repository.ThresholdRepository
}

// NewThresholdLoader 创建阈值读取器
func NewThresholdLoader(repo *repository.ThresholdRepository) *ThresholdLoader {
	return &ThresholdLoader{repo: repo}
}

// Load 读取阈值, 未配置的键用默认值补齐
func (l *ThresholdLoader) Load(ctx context.Context) (rules.Thresholds, error) {
	th := rules.DefaultThresholds()

	values, err := l.repo.GetAll(ctx)
	if err != nil {
		return th, err
	}

	if v, ok := values[model.ThresholdKeyContribution]; ok {
		th.ContributionUSDMax = v
	}
	if v, ok := values[model.ThresholdKeyTotalPot]; ok {
		th.TotalPotUSDMax = v
	}
	if v, ok := values[model.ThresholdKeyGroupSize]; ok {
		th.GroupSizeMax = v
	}
	if v, ok := values[model.ThresholdKeyCycleLength]; ok {
		th.CycleLengthDaysMax = v
	}
	if v, ok := values[model.ThresholdKeyRiskScore]; ok {
		th.RiskScoreMax = v
	}
	return th, nil
}

// Multiplier 读取目的类别乘数, categoryID 为 nil 时返回 1.0
func (l *ThresholdLoader) Multiplier(ctx context.Context, categoryID *int64) (float64, error) {
	if categoryID == nil {
		return 1.0, nil
	}
	return l.repo.GetMultiplier(ctx, *categoryID)
}

// ModeService 模式分类服务
type ModeService struct {
	detector     *rules.ModeDetector
	thresholds   *ThresholdLoader
	categoryRepo *repository.CategoryRepository
}

// NewModeService 创建模式分类服务
func NewModeService(thresholds *ThresholdLoader, categoryRepo *repository.CategoryRepository) *ModeService {
	return &ModeService{
		detector:     rules.NewModeDetector(),
		thresholds:   thresholds,
		categoryRepo: categoryRepo,
	}
}

// Detect 对候选小组参数做模式分类
func (s *ModeService) Detect(ctx context.Context, req *dto.ModeDetectRequest) (*dto.ModeDetectResult, error) {
	if req.PurposeCategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *req.PurposeCategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, dto.ErrCategoryNotFound
			}
			return nil, err
		}
	}

	th, err := s.thresholds.Load(ctx)
	if err != nil {
		return nil, err
	}

	multiplier, err := s.thresholds.Multiplier(ctx, req.PurposeCategoryID)
	if err != nil {
		return nil, err
	}

	result, err := s.detector.Detect(&rules.DetectInput{
		ContributionAmount: req.ContributionAmount,
		MemberCount:        req.MemberCount,
		CycleLengthDays:    req.CycleLengthDays,
		PurposeMultiplier:  multiplier,
	}, th)
	if err != nil {
		return nil, dto.ErrInvalidParams.WithMessage(err.Error())
	}

	metrics.ModeDetectionsTotal.WithLabelValues(result.Mode).Inc()
	metrics.RiskScoreDistribution.Observe(float64(result.RiskScore))

	return newModeDetectResult(result), nil
}

// newModeDetectResult 由规则层结果构造响应视图
func newModeDetectResult(result *rules.DetectResult) *dto.ModeDetectResult {
	factors := make([]dto.FactorBreakdown, 0, len(result.Factors))
	for _, f := range result.Factors {
		factors = append(factors, dto.FactorBreakdown{
			Name:      f.Name,
			Value:     f.Value,
			Threshold: f.Threshold,
			Weight:    float64(f.Weight),
			Score:     f.Score,
			Breached:  f.Breached,
		})
	}

	return &dto.ModeDetectResult{
		Mode:                 result.Mode,
		RiskScore:            result.RiskScore,
		CapitalModeTriggered: result.CapitalModeTriggered,
		TotalPotEstimate:     result.TotalPotEstimate,
		Factors:              factors,
		TriggerReasons:       result.TriggerReasons,
	}
}
