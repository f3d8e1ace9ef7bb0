package service

import (
	"context"
	"errors"
	"math"

	"github.com/axiomcity/axiom-susu/internal/cache"
	"github.com/axiomcity/axiom-susu/internal/dto"
	"github.com/axiomcity/axiom-susu/internal/model"
	"github.com/axiomcity/axiom-susu/internal/repository"
	"github.com/axiomcity/axiom-susu/pkg/logger"
)

// knownThresholdKeys 可调整的阈值键
var knownThresholdKeys = map[string]bool{
	model.ThresholdKeyContribution: true,
	model.ThresholdKeyTotalPot:     true,
	model.ThresholdKeyGroupSize:    true,
	model.ThresholdKeyCycleLength:  true,
	model.ThresholdKeyRiskScore:    true,
}

// AdminService 运营管理服务
type AdminService struct {
	thresholdRepo *repository.ThresholdRepository
	flagRepo      *repository.FeatureFlagRepository
	categoryRepo  *repository.CategoryRepository
	hubRepo       *repository.HubRepository
	groupRepo     *repository.GroupRepository
	thresholds    *ThresholdLoader
	events        *EventService

	// 可选缓存, nil 时每次重新统计
	statsCache *cache.StatsCache
}

// NewAdminService 创建运营管理服务
func NewAdminService(
	thresholdRepo *repository.ThresholdRepository,
	flagRepo *repository.FeatureFlagRepository,
	categoryRepo *repository.CategoryRepository,
	hubRepo *repository.HubRepository,
	groupRepo *repository.GroupRepository,
	thresholds *ThresholdLoader,
	events *EventService,
) *AdminService {
	return &AdminService{
		thresholdRepo: thresholdRepo,
		flagRepo:      flagRepo,
		categoryRepo:  categoryRepo,
		hubRepo:       hubRepo,
		groupRepo:     groupRepo,
		thresholds:    thresholds,
		events:        events,
	}
}

// SetStatsCache 设置运营统计缓存
func (s *AdminService) SetStatsCache(statsCache *cache.StatsCache) {
	s.statsCache = statsCache
}

// GetThresholds 读取当前生效阈值 (数据库覆盖项叠加默认值)
func (s *AdminService) GetThresholds(ctx context.Context) (map[string]float64, error) {
	th, err := s.thresholds.Load(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]float64{
		model.ThresholdKeyContribution: th.ContributionUSDMax,
		model.ThresholdKeyTotalPot:     th.TotalPotUSDMax,
		model.ThresholdKeyGroupSize:    th.GroupSizeMax,
		model.ThresholdKeyCycleLength:  th.CycleLengthDaysMax,
		model.ThresholdKeyRiskScore:    th.RiskScoreMax,
	}, nil
}

// SetThreshold 覆盖写阈值。取值必须有限且非负,
// 新值对后续所有分类立即生效, 已定格的历史分类不受影响。
func (s *AdminService) SetThreshold(ctx context.Context, req *dto.SetThresholdRequest, updatedBy string) error {
	if !knownThresholdKeys[req.Key] {
		return dto.ErrInvalidParams.WithMessage("unknown threshold key: " + req.Key)
	}
	if !isFiniteNonNegative(req.Value) {
		return dto.ErrInvalidParams.WithMessage("threshold value must be finite and non-negative")
	}

	if err := s.thresholdRepo.Set(ctx, req.Key, req.Value, updatedBy); err != nil {
		return err
	}

	logger.Info("threshold updated",
		"key", req.Key,
		"value", req.Value,
		"updated_by", updatedBy)

	return nil
}

// ListMultipliers 读取目的类别乘数
func (s *AdminService) ListMultipliers(ctx context.Context) ([]*model.PurposeCategoryMultiplier, error) {
	return s.thresholdRepo.ListMultipliers(ctx)
}

// SetMultiplier 覆盖写目的类别乘数
func (s *AdminService) SetMultiplier(ctx context.Context, req *dto.SetMultiplierRequest, updatedBy string) error {
	if !isFiniteNonNegative(req.Multiplier) {
		return dto.ErrInvalidParams.WithMessage("multiplier must be finite and non-negative")
	}

	if _, err := s.categoryRepo.GetByID(ctx, req.PurposeCategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return dto.ErrCategoryNotFound
		}
		return err
	}

	if err := s.thresholdRepo.SetMultiplier(ctx, req.PurposeCategoryID, req.Multiplier, updatedBy); err != nil {
		return err
	}

	logger.Info("category multiplier updated",
		"category_id", req.PurposeCategoryID,
		"multiplier", req.Multiplier,
		"updated_by", updatedBy)

	return nil
}

// ListFeatureFlags 读取功能开关
func (s *AdminService) ListFeatureFlags(ctx context.Context) ([]*model.FeatureFlag, error) {
	return s.flagRepo.List(ctx)
}

// SetFeatureFlag 覆盖写功能开关
func (s *AdminService) SetFeatureFlag(ctx context.Context, req *dto.SetFeatureFlagRequest, updatedBy string) error {
	if req.Key == "" {
		return dto.ErrInvalidParams
	}

	if err := s.flagRepo.Set(ctx, req.Key, req.Enabled, updatedBy); err != nil {
		return err
	}

	logger.Info("feature flag updated",
		"key", req.Key,
		"enabled", req.Enabled,
		"updated_by", updatedBy)

	return nil
}

// Stats 运营统计 (短 TTL 缓存)
func (s *AdminService) Stats(ctx context.Context) (*dto.AdminStats, error) {
	if s.statsCache != nil {
		var cached dto.AdminStats
		hit, err := s.statsCache.Get(ctx, &cached)
		if err != nil {
			logger.Error("failed to read stats cache", "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	totalHubs, err := s.hubRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalGroups, err := s.groupRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	graduatedGroups, err := s.groupRepo.CountGraduated(ctx)
	if err != nil {
		return nil, err
	}
	funnel, err := s.events.Funnel(ctx)
	if err != nil {
		return nil, err
	}

	// 漏斗转化率: 社区加入 → 小组加入
	conversionRate := 0.0
	if hubJoins := funnel[string(model.EventHubJoin)]; hubJoins > 0 {
		groupJoins := funnel[string(model.EventGroupJoin)]
		conversionRate = math.Round(float64(groupJoins)/float64(hubJoins)*10000) / 100
	}

	graduationRate := 0.0
	if totalGroups > 0 {
		graduationRate = math.Round(float64(graduatedGroups)/float64(totalGroups)*10000) / 100
	}

	stats := &dto.AdminStats{
		TotalHubs:       totalHubs,
		TotalGroups:     totalGroups,
		GraduatedGroups: graduatedGroups,
		EventFunnel:     funnel,
		ConversionRate:  conversionRate,
		GraduationRate:  graduationRate,
	}

	if s.statsCache != nil {
		if err := s.statsCache.Set(ctx, stats); err != nil {
			logger.Error("failed to write stats cache", "error", err)
		}
	}

	return stats, nil
}
