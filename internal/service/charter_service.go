package service

import (
	"context"
	"errors"
	"time"

	"github.com/axiomcity/axiom-susu/internal/charter"
	"github.com/axiomcity/axiom-susu/internal/dto"
	"github.com/axiomcity/axiom-susu/internal/metrics"
	"github.com/axiomcity/axiom-susu/internal/model"
	"github.com/axiomcity/axiom-susu/internal/repository"
	"github.com/axiomcity/axiom-susu/pkg/logger"
)

// 版本号分配冲突的重试次数
const charterMaxRetries = 3

// CharterService 章程服务
type CharterService struct {
	charterRepo *repository.CharterRepository
	groupRepo   *repository.GroupRepository
}

// NewCharterService 创建章程服务
func NewCharterService(charterRepo *repository.CharterRepository, groupRepo *repository.GroupRepository) *CharterService {
	return &CharterService{
		charterRepo: charterRepo,
		groupRepo:   groupRepo,
	}
}

// Generate 渲染并持久化章程。相同参数重复提交会产生新版本,
// 版本号在 (group, pool) 范围内严格递增, 并发分配冲突时重试。
func (s *CharterService) Generate(ctx context.Context, req *dto.CreateCharterRequest) (*dto.CharterView, error) {
	if !req.ContributionAmount.IsPositive() || req.MemberCount < 2 {
		return nil, dto.ErrInvalidParams
	}

	mode := req.Mode
	if mode == "" {
		mode = "community"
	}
	poolMode, ok := model.ParsePoolMode(mode)
	if !ok {
		return nil, dto.ErrInvalidParams.WithMessage("mode must be community or capital")
	}

	if req.GroupID != 0 {
		if _, err := s.groupRepo.GetByID(ctx, req.GroupID); err != nil {
			if errors.Is(err, repository.ErrGroupNotFound) {
				return nil, dto.ErrGroupNotFound
			}
			return nil, err
		}
	}

	effectiveDate := time.Now()

	var stored *model.Charter
	for attempt := 0; attempt < charterMaxRetries; attempt++ {
		version, err := s.charterRepo.NextVersion(ctx, req.GroupID, req.PoolID)
		if err != nil {
			return nil, err
		}

		rendered := charter.Generate(charter.Params{
			Purpose:               req.Purpose,
			Category:              req.Category,
			ContributionAmount:    req.ContributionAmount,
			ContributionFrequency: req.ContributionFrequency,
			MemberCount:           req.MemberCount,
			RotationMethod:        req.RotationMethod,
			GracePeriodDays:       req.GracePeriodDays,
			ExitPolicy:            req.ExitPolicy,
			DisputePolicy:         req.DisputePolicy,
			CustodyModel:          req.CustodyModel,
			Mode:                  mode,
			Version:               version,
		}, effectiveDate)

		stored = &model.Charter{
			GroupID:       req.GroupID,
			PoolID:        req.PoolID,
			Version:       version,
			Mode:          poolMode,
			ParamsJSON:    rendered.CanonicalJSON,
			CharterText:   rendered.CharterText,
			CharterHash:   rendered.CharterHash,
			EffectiveDate: effectiveDate.UnixMilli(),
		}

		err = s.charterRepo.Create(ctx, stored)
		if err == nil {
			metrics.ChartersGeneratedTotal.WithLabelValues(mode).Inc()
			logger.Info("charter generated",
				"charter_id", stored.ID,
				"group_id", stored.GroupID,
				"pool_id", stored.PoolID,
				"version", stored.Version,
				"hash", stored.CharterHash)
			return dto.NewCharterView(stored), nil
		}
		if errors.Is(err, repository.ErrCharterVersionExists) {
			metrics.CharterVersionRetriesTotal.Inc()
			continue
		}
		return nil, err
	}

	return nil, dto.ErrVersionConflict
}

// GetCharter 获取章程详情
func (s *CharterService) GetCharter(ctx context.Context, id int64) (*dto.CharterView, error) {
	stored, err := s.charterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCharterNotFound) {
			return nil, dto.ErrCharterNotFound
		}
		return nil, err
	}
	return dto.NewCharterView(stored), nil
}

// ListCharters 查询章程列表 (版本降序)
func (s *CharterService) ListCharters(ctx context.Context, groupID, poolID int64) ([]*dto.CharterView, error) {
	charters, err := s.charterRepo.ListByScope(ctx, groupID, poolID)
	if err != nil {
		return nil, err
	}

	views := make([]*dto.CharterView, 0, len(charters))
	for _, c := range charters {
		views = append(views, dto.NewCharterView(c))
	}
	return views, nil
}

// Accept 记录章程接受 (每版本每用户一次)
func (s *CharterService) Accept(ctx context.Context, req *dto.AcceptCharterRequest, requestIP string) error {
	if !IsValidWalletAddress(req.WalletAddress) {
		return dto.ErrInvalidWalletAddr
	}

	if _, err := s.charterRepo.GetByID(ctx, req.CharterID); err != nil {
		if errors.Is(err, repository.ErrCharterNotFound) {
			return dto.ErrCharterNotFound
		}
		return err
	}

	acceptance := &model.CharterAcceptance{
		CharterID:       req.CharterID,
		UserID:          req.WalletAddress,
		WalletSignature: req.WalletSignature,
		RequestIP:       requestIP,
	}
	if err := s.charterRepo.CreateAcceptance(ctx, acceptance); err != nil {
		if errors.Is(err, repository.ErrAcceptanceExists) {
			return dto.ErrAcceptanceExists
		}
		return err
	}

	logger.Info("charter accepted",
		"charter_id", req.CharterID,
		"user_id", req.WalletAddress)

	return nil
}

// ListAcceptances 查询章程的接受记录
func (s *CharterService) ListAcceptances(ctx context.Context, charterID int64) ([]*model.CharterAcceptance, error) {
	if _, err := s.charterRepo.GetByID(ctx, charterID); err != nil {
		if errors.Is(err, repository.ErrCharterNotFound) {
			return nil, dto.ErrCharterNotFound
		}
		return nil, err
	}
	return s.charterRepo.ListAcceptances(ctx, charterID)
}
