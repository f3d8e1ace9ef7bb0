package service

import (
	"context"
	"errors"

	"github.com/axiomcity/axiom-susu/internal/cache"
	"github.com/axiomcity/axiom-susu/internal/dto"
	"github.com/axiomcity/axiom-susu/internal/model"
	"github.com/axiomcity/axiom-susu/internal/repository"
	"github.com/axiomcity/axiom-susu/internal/rules"
	"github.com/axiomcity/axiom-susu/pkg/logger"
)

// ReliabilityService 可靠性评分服务
type ReliabilityService struct {
	reliabilityRepo  *repository.ReliabilityRepository
	contributionRepo *repository.ContributionRepository
	groupRepo        *repository.GroupRepository

	// 可选缓存, nil 时直接读库
	profileCache *cache.ReliabilityCache
}

// NewReliabilityService 创建可靠性评分服务
func NewReliabilityService(
	reliabilityRepo *repository.ReliabilityRepository,
	contributionRepo *repository.ContributionRepository,
	groupRepo *repository.GroupRepository,
) *ReliabilityService {
	return &ReliabilityService{
		reliabilityRepo:  reliabilityRepo,
		contributionRepo: contributionRepo,
		groupRepo:        groupRepo,
	}
}

// SetProfileCache 设置画像缓存
func (s *ReliabilityService) SetProfileCache(profileCache *cache.ReliabilityCache) {
	s.profileCache = profileCache
}

// GetProfile 获取用户可靠性画像。无历史的用户返回满分画像,
// 不落库 — 档案在首个事件到达时惰性创建。
func (s *ReliabilityService) GetProfile(ctx context.Context, userID string) (*dto.ReliabilityView, error) {
	if !IsValidWalletAddress(userID) {
		return nil, dto.ErrInvalidWalletAddr
	}

	if s.profileCache != nil {
		cached, err := s.profileCache.Get(ctx, userID)
		if err != nil {
			logger.Error("failed to read reliability cache", "user_id", userID, "error", err)
		} else if cached != nil {
			return dto.NewReliabilityView(cached), nil
		}
	}

	profile, err := s.reliabilityRepo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return dto.NewReliabilityView(&model.ReliabilityProfile{
				UserID:           userID,
				ReliabilityScore: 100,
			}), nil
		}
		return nil, err
	}

	if s.profileCache != nil {
		if err := s.profileCache.Set(ctx, profile); err != nil {
			logger.Error("failed to write reliability cache", "user_id", userID, "error", err)
		}
	}

	return dto.NewReliabilityView(profile), nil
}

// ApplyEvent 应用可靠性事件并重算分数
func (s *ReliabilityService) ApplyEvent(ctx context.Context, req *dto.ReliabilityEventRequest) (*dto.ReliabilityView, error) {
	if !IsValidWalletAddress(req.WalletAddress) {
		return nil, dto.ErrInvalidWalletAddr
	}

	event, err := rules.ParseReliabilityEvent(req.Event)
	if err != nil {
		return nil, dto.ErrUnknownEvent
	}

	profile, err := s.reliabilityRepo.ApplyEvent(ctx, req.WalletAddress, func(p *model.ReliabilityProfile) error {
		return rules.ApplyReliabilityEvent(p, event)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, req.WalletAddress)

	logger.Info("reliability event applied",
		"user_id", req.WalletAddress,
		"event", req.Event,
		"score", profile.ReliabilityScore)

	return dto.NewReliabilityView(profile), nil
}

// RecordContribution 记录供款并联动可靠性评分。
// paid/late/missed 分别映射为对应的供款事件, pending 不计分。
func (s *ReliabilityService) RecordContribution(ctx context.Context, groupID int64, req *dto.RecordContributionRequest) (*model.Contribution, error) {
	if !IsValidWalletAddress(req.WalletAddress) {
		return nil, dto.ErrInvalidWalletAddr
	}
	if req.CycleNumber <= 0 || !req.Amount.IsPositive() {
		return nil, dto.ErrInvalidParams
	}

	status, ok := model.ParseContributionStatus(req.Status)
	if !ok {
		return nil, dto.ErrInvalidParams.WithMessage("status must be pending, paid, late or missed")
	}

	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, dto.ErrGroupNotFound
		}
		return nil, err
	}
	if _, err := s.groupRepo.GetMember(ctx, groupID, req.WalletAddress); err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return nil, dto.ErrGroupMemberExists.WithMessage("user is not a member of this group")
		}
		return nil, err
	}

	contribution := &model.Contribution{
		GroupID:     groupID,
		UserID:      req.WalletAddress,
		CycleNumber: req.CycleNumber,
		Amount:      req.Amount,
		DueDate:     req.DueDate,
		Status:      status,
	}
	if err := s.contributionRepo.Create(ctx, contribution); err != nil {
		if errors.Is(err, repository.ErrContributionExists) {
			return nil, dto.ErrInvalidParams.WithMessage("contribution already recorded for this cycle")
		}
		return nil, err
	}

	if event, ok := contributionEvent(status); ok {
		_, err := s.reliabilityRepo.ApplyEvent(ctx, req.WalletAddress, func(p *model.ReliabilityProfile) error {
			return rules.ApplyReliabilityEvent(p, event)
		})
		if err != nil {
			return nil, err
		}
		s.invalidateCache(ctx, req.WalletAddress)
	}

	return contribution, nil
}

// contributionEvent 供款状态到可靠性事件的映射
func contributionEvent(status model.ContributionStatus) (rules.ReliabilityEvent, bool) {
	switch status {
	case model.ContributionStatusPaid:
		return rules.EventContributionOnTime, true
	case model.ContributionStatusLate:
		return rules.EventContributionLate, true
	case model.ContributionStatusMissed:
		return rules.EventContributionMissed, true
	}
	return "", false
}

func (s *ReliabilityService) invalidateCache(ctx context.Context, userID string) {
	if s.profileCache == nil {
		return
	}
	if err := s.profileCache.Invalidate(ctx, userID); err != nil {
		logger.Error("failed to invalidate reliability cache", "user_id", userID, "error", err)
	}
}
