package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/axiomcity/axiom-susu/internal/cache"
	"github.com/axiomcity/axiom-susu/internal/charter"
	"github.com/axiomcity/axiom-susu/internal/dto"
	"github.com/axiomcity/axiom-susu/internal/metrics"
	"github.com/axiomcity/axiom-susu/internal/model"
	"github.com/axiomcity/axiom-susu/internal/repository"
	"github.com/axiomcity/axiom-susu/internal/rules"
	"github.com/axiomcity/axiom-susu/pkg/logger"
)

// 版本号分配冲突的事务级重试次数
const graduateMaxRetries = 3

// 缺口成员的预估补齐周期 (天/人)
const estimatedDaysPerMissingMember = 7

// GraduationService 毕业服务。把链下小组一次性转换为链上池:
// 标记毕业、用实时阈值定格模式分类、生成章程, 全部在单个事务内完成。
type GraduationService struct {
	db            *gorm.DB
	groupRepo     *repository.GroupRepository
	categoryRepo  *repository.CategoryRepository
	charterRepo   *repository.CharterRepository
	analyticsRepo *repository.AnalyticsRepository
	flagRepo      *repository.FeatureFlagRepository
	thresholds    *ThresholdLoader
	detector      *rules.ModeDetector
	events        *EventService

	// 可选组件, nil 时跳过
	lock       *cache.GraduationLock
	statsCache *cache.StatsCache
}

// NewGraduationService 创建毕业服务
func NewGraduationService(
	db *gorm.DB,
	groupRepo *repository.GroupRepository,
	categoryRepo *repository.CategoryRepository,
	charterRepo *repository.CharterRepository,
	analyticsRepo *repository.AnalyticsRepository,
	flagRepo *repository.FeatureFlagRepository,
	thresholds *ThresholdLoader,
	events *EventService,
) *GraduationService {
	return &GraduationService{
		db:            db,
		groupRepo:     groupRepo,
		categoryRepo:  categoryRepo,
		charterRepo:   charterRepo,
		analyticsRepo: analyticsRepo,
		flagRepo:      flagRepo,
		thresholds:    thresholds,
		detector:      rules.NewModeDetector(),
		events:        events,
	}
}

// SetLock 设置毕业分布式锁
func (s *GraduationService) SetLock(lock *cache.GraduationLock) {
	s.lock = lock
}

// SetStatsCache 设置运营统计缓存 (毕业后失效)
func (s *GraduationService) SetStatsCache(statsCache *cache.StatsCache) {
	s.statsCache = statsCache
}

// Graduate 执行毕业。操作幂等: 已毕业的小组返回冲突而不是重复执行,
// 无论调用方重试多少次, 毕业列只会被写入一次。
func (s *GraduationService) Graduate(ctx context.Context, groupID int64, req *dto.GraduateRequest) (*dto.GraduateResult, error) {
	if !IsValidWalletAddress(req.WalletAddress) {
		return nil, dto.ErrInvalidWalletAddr
	}
	if req.PoolID == nil || *req.PoolID <= 0 {
		return nil, dto.ErrMissingPoolID
	}
	poolID := *req.PoolID

	enabled, err := s.flagRepo.IsEnabled(ctx, model.FlagGraduationEnabled, true)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, dto.ErrGraduationDisabled
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, dto.ErrGroupNotFound
		}
		return nil, err
	}
	if group.IsGraduated() {
		metrics.GraduationsTotal.WithLabelValues("conflict", "").Inc()
		return nil, dto.ErrAlreadyGraduated.WithMessage(
			fmt.Sprintf("group already graduated to pool %d", *group.GraduatedToPoolID))
	}
	if !group.Active {
		return nil, dto.ErrGroupInactive
	}

	member, err := s.groupRepo.GetMember(ctx, groupID, req.WalletAddress)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return nil, dto.ErrNotOrganizer
		}
		return nil, err
	}
	if member.Role != model.MemberRoleOrganizer {
		return nil, dto.ErrNotOrganizer
	}

	if group.MemberCount < group.MinMembersToActivate {
		metrics.GraduationsTotal.WithLabelValues("rejected", "").Inc()
		return nil, dto.ErrNotEnoughMembers.WithMessage(
			fmt.Sprintf("group has %d members, needs %d to graduate", group.MemberCount, group.MinMembersToActivate))
	}

	// 并发重复请求直接拿到冲突响应, 不排队进事务
	if s.lock != nil {
		acquired, err := s.lock.Acquire(ctx, groupID)
		if err != nil {
			logger.Error("failed to acquire graduation lock", "group_id", groupID, "error", err)
		} else if !acquired {
			return nil, dto.ErrAlreadyGraduated.WithMessage("graduation already in progress")
		} else {
			defer func() {
				if err := s.lock.Release(ctx, groupID); err != nil {
					logger.Error("failed to release graduation lock", "group_id", groupID, "error", err)
				}
			}()
		}
	}

	category, err := s.categoryRepo.GetByID(ctx, group.PurposeCategoryID)
	if err != nil {
		return nil, err
	}

	// 分类在毕业时刻用实时阈值定格, 创建时的预览结果不复用
	th, err := s.thresholds.Load(ctx)
	if err != nil {
		return nil, err
	}
	multiplier, err := s.thresholds.Multiplier(ctx, &group.PurposeCategoryID)
	if err != nil {
		return nil, err
	}

	detection, err := s.detector.Detect(&rules.DetectInput{
		ContributionAmount: group.ContributionAmount,
		MemberCount:        group.MemberCount,
		CycleLengthDays:    group.CycleLengthDays,
		PurposeMultiplier:  multiplier,
	}, th)
	if err != nil {
		return nil, dto.ErrInvalidParams.WithMessage(err.Error())
	}

	mode, _ := model.ParsePoolMode(detection.Mode)
	effectiveDate := time.Now()

	var stored *model.Charter
	var event *model.AnalyticsEvent

	// 版本号唯一索引冲突时整个事务重试
	for attempt := 0; attempt < graduateMaxRetries; attempt++ {
		stored, event, err = s.graduateTx(ctx, group, category, poolID, req.TxHash, detection, mode, effectiveDate)
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrCharterVersionExists) {
			metrics.CharterVersionRetriesTotal.Inc()
			continue
		}
		if errors.Is(err, repository.ErrAlreadyGraduated) {
			// 事务内抢锁失败, 回读胜者的池ID放进冲突响应
			metrics.GraduationsTotal.WithLabelValues("conflict", "").Inc()
			if current, gerr := s.groupRepo.GetByID(ctx, groupID); gerr == nil && current.GraduatedToPoolID != nil {
				return nil, dto.ErrAlreadyGraduated.WithMessage(
					fmt.Sprintf("group already graduated to pool %d", *current.GraduatedToPoolID))
			}
			return nil, dto.ErrAlreadyGraduated
		}
		return nil, err
	}
	if err != nil {
		return nil, dto.ErrVersionConflict
	}

	metrics.GraduationsTotal.WithLabelValues("success", detection.Mode).Inc()
	metrics.ChartersGeneratedTotal.WithLabelValues(detection.Mode).Inc()
	s.events.Publish(ctx, event)

	if s.statsCache != nil {
		if err := s.statsCache.Invalidate(ctx); err != nil {
			logger.Error("failed to invalidate stats cache", "error", err)
		}
	}

	logger.Info("group graduated",
		"group_id", groupID,
		"pool_id", poolID,
		"mode", detection.Mode,
		"risk_score", detection.RiskScore,
		"charter_version", stored.Version,
		"charter_hash", stored.CharterHash)

	return &dto.GraduateResult{
		GroupID:        groupID,
		PoolID:         poolID,
		TxHash:         req.TxHash,
		Mode:           detection.Mode,
		RiskScore:      detection.RiskScore,
		CharterID:      stored.ID,
		CharterHash:    stored.CharterHash,
		CharterVersion: stored.Version,
		GraduatedAt:    effectiveDate.UnixMilli(),
	}, nil
}

// graduateTx 在单个事务内写毕业列、生成章程并落埋点事件
func (s *GraduationService) graduateTx(
	ctx context.Context,
	group *model.PurposeGroup,
	category *model.PurposeCategory,
	poolID int64,
	txHash *string,
	detection *rules.DetectResult,
	mode model.PoolMode,
	effectiveDate time.Time,
) (*model.Charter, *model.AnalyticsEvent, error) {
	var stored *model.Charter
	var event *model.AnalyticsEvent

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.groupRepo.WithTx(tx).MarkGraduated(ctx, group.ID, poolID, txHash); err != nil {
			return err
		}

		charterTx := s.charterRepo.WithTx(tx)
		version, err := charterTx.NextVersion(ctx, group.ID, poolID)
		if err != nil {
			return err
		}

		rendered := charter.Generate(charter.Params{
			Purpose:               group.Name,
			Category:              category.Label,
			ContributionAmount:    group.ContributionAmount,
			ContributionFrequency: fmt.Sprintf("%d days", group.CycleLengthDays),
			MemberCount:           group.MemberCount,
			Mode:                  detection.Mode,
			Version:               version,
		}, effectiveDate)

		stored = &model.Charter{
			GroupID:       group.ID,
			PoolID:        poolID,
			Version:       version,
			Mode:          mode,
			ParamsJSON:    rendered.CanonicalJSON,
			CharterText:   rendered.CharterText,
			CharterHash:   rendered.CharterHash,
			EffectiveDate: effectiveDate.UnixMilli(),
		}
		if err := charterTx.Create(ctx, stored); err != nil {
			return err
		}

		event = NewEvent(model.EventGraduation, &group.HubID, &group.ID, group.CreatedBy, &model.EventMetadata{
			PoolID:      &poolID,
			TxHash:      derefString(txHash),
			Mode:        detection.Mode,
			CharterHash: rendered.CharterHash,
		})
		return s.analyticsRepo.WithTx(tx).Append(ctx, event)
	})
	if err != nil {
		return nil, nil, err
	}
	return stored, event, nil
}

// Status 计算毕业就绪度 (只读, 不产生副作用)
func (s *GraduationService) Status(ctx context.Context, groupID int64) (*dto.GraduationStatus, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, dto.ErrGroupNotFound
		}
		return nil, err
	}

	members, err := s.groupRepo.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	walletsConnected := len(members) > 0
	commitmentsConfirmed := len(members) > 0
	for _, member := range members {
		if !member.WalletConnected {
			walletsConnected = false
		}
		if !member.CommitmentConfirmed {
			commitmentsConfirmed = false
		}
	}

	readiness := dto.BasicReadiness{
		MinMembersMet:        group.MemberCount >= group.MinMembersToActivate,
		WalletsConnected:     walletsConnected,
		CommitmentsConfirmed: commitmentsConfirmed,
	}
	met := 0
	if readiness.MinMembersMet {
		met++
	}
	if readiness.WalletsConnected {
		met++
	}
	if readiness.CommitmentsConfirmed {
		met++
	}
	readiness.Score = int(math.Round(float64(met) / 3 * 100))

	th, err := s.thresholds.Load(ctx)
	if err != nil {
		return nil, err
	}
	multiplier, err := s.thresholds.Multiplier(ctx, &group.PurposeCategoryID)
	if err != nil {
		return nil, err
	}

	// 成员不足 2 人时分类器无法求值, 按 community 模式零分展示
	mode := "community"
	riskScore := 0
	var factors []rules.FactorResult
	if group.MemberCount >= 2 {
		detection, err := s.detector.Detect(&rules.DetectInput{
			ContributionAmount: group.ContributionAmount,
			MemberCount:        group.MemberCount,
			CycleLengthDays:    group.CycleLengthDays,
			PurposeMultiplier:  multiplier,
		}, th)
		if err != nil {
			return nil, dto.ErrInvalidParams.WithMessage(err.Error())
		}
		mode = detection.Mode
		riskScore = detection.RiskScore
		factors = detection.Factors
	} else {
		amount := group.ContributionAmount.InexactFloat64()
		factors = []rules.FactorResult{
			{Name: rules.FactorContribution, Value: amount, Threshold: th.ContributionUSDMax},
			{Name: rules.FactorTotalPot, Value: amount * float64(group.MemberCount), Threshold: th.TotalPotUSDMax},
			{Name: rules.FactorGroupSize, Value: float64(group.MemberCount), Threshold: th.GroupSizeMax},
			{Name: rules.FactorCycleLength, Value: float64(group.CycleLengthDays), Threshold: th.CycleLengthDaysMax},
		}
	}

	progress := make([]dto.FactorProgress, 0, len(factors))
	for _, f := range factors {
		pct := 0.0
		if f.Threshold > 0 {
			pct = math.Min(f.Value/f.Threshold*100, 100)
			pct = math.Round(pct*100) / 100
		}
		progress = append(progress, dto.FactorProgress{
			Name:      f.Name,
			Current:   f.Value,
			Threshold: f.Threshold,
			Progress:  pct,
		})
	}

	estimatedDays := 0
	if missing := group.MinMembersToActivate - group.MemberCount; missing > 0 {
		estimatedDays = missing * estimatedDaysPerMissingMember
	}

	status := &dto.GraduationStatus{
		GroupID:                 groupID,
		Graduated:               group.IsGraduated(),
		PoolID:                  group.GraduatedToPoolID,
		Mode:                    mode,
		RiskScore:               riskScore,
		BasicReadiness:          readiness,
		CapitalModeProgress:     progress,
		IsReadyToGraduate:       readiness.Score == 100 && !group.IsGraduated() && group.Active,
		EstimatedGraduationDays: estimatedDays,
	}
	return status, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
