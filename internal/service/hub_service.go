package service

import (
	"context"
	"errors"
	"strings"

	"github.com/axiomcity/axiom-susu/internal/dto"
	"github.com/axiomcity/axiom-susu/internal/metrics"
	"github.com/axiomcity/axiom-susu/internal/model"
	"github.com/axiomcity/axiom-susu/internal/repository"
	"github.com/axiomcity/axiom-susu/pkg/logger"
)

// HubService 地区社区服务
type HubService struct {
	hubRepo *repository.HubRepository
	events  *EventService
}

// NewHubService 创建地区社区服务
func NewHubService(hubRepo *repository.HubRepository, events *EventService) *HubService {
	return &HubService{
		hubRepo: hubRepo,
		events:  events,
	}
}

// ListHubs 查询社区列表, kind 为空时返回全部类型
func (s *HubService) ListHubs(ctx context.Context, kindStr string) ([]*dto.HubView, error) {
	var kind model.HubRegionKind
	if kindStr != "" {
		parsed, ok := model.ParseHubRegionKind(kindStr)
		if !ok {
			return nil, dto.ErrInvalidRegion
		}
		kind = parsed
	}

	hubs, err := s.hubRepo.List(ctx, kind, true)
	if err != nil {
		return nil, err
	}

	views := make([]*dto.HubView, 0, len(hubs))
	for _, hub := range hubs {
		views = append(views, dto.NewHubView(hub))
	}
	return views, nil
}

// GetHub 获取社区详情
func (s *HubService) GetHub(ctx context.Context, id int64) (*dto.HubView, error) {
	hub, err := s.hubRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHubNotFound) {
			return nil, dto.ErrHubNotFound
		}
		return nil, err
	}
	return dto.NewHubView(hub), nil
}

// CreateHub 创建社区
func (s *HubService) CreateHub(ctx context.Context, req *dto.CreateHubRequest) (*dto.HubView, error) {
	regionID := strings.TrimSpace(strings.ToLower(req.RegionID))
	name := strings.TrimSpace(req.Name)
	if regionID == "" || name == "" {
		return nil, dto.ErrInvalidParams
	}

	kind, ok := model.ParseHubRegionKind(req.RegionKind)
	if !ok {
		return nil, dto.ErrInvalidRegion
	}

	hub := &model.InterestHub{
		RegionID:   regionID,
		Name:       name,
		RegionKind: kind,
		Active:     true,
	}
	if err := s.hubRepo.Create(ctx, hub); err != nil {
		if errors.Is(err, repository.ErrHubDuplicate) {
			return nil, dto.ErrHubExists
		}
		return nil, err
	}

	logger.Info("hub created",
		"hub_id", hub.ID,
		"region_id", hub.RegionID,
		"region_kind", hub.RegionKind.String())

	return dto.NewHubView(hub), nil
}

// JoinHub 加入社区
func (s *HubService) JoinHub(ctx context.Context, hubID int64, walletAddress string) error {
	if !IsValidWalletAddress(walletAddress) {
		return dto.ErrInvalidWalletAddr
	}

	hub, err := s.hubRepo.GetByID(ctx, hubID)
	if err != nil {
		if errors.Is(err, repository.ErrHubNotFound) {
			return dto.ErrHubNotFound
		}
		return err
	}
	if !hub.Active {
		return dto.ErrHubInactive
	}

	member := &model.HubMember{
		HubID:  hubID,
		UserID: walletAddress,
		Role:   model.MemberRoleMember,
	}
	if err := s.hubRepo.AddMember(ctx, member); err != nil {
		if errors.Is(err, repository.ErrHubMemberExists) {
			return dto.ErrHubMemberExists
		}
		return err
	}

	metrics.HubJoinsTotal.Inc()
	s.events.Emit(ctx, NewEvent(model.EventHubJoin, &hubID, nil, walletAddress, nil))

	logger.Info("user joined hub",
		"hub_id", hubID,
		"user_id", walletAddress)

	return nil
}
