package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/axiomcity/axiom-susu/internal/dto"
	"github.com/axiomcity/axiom-susu/internal/metrics"
	"github.com/axiomcity/axiom-susu/internal/model"
	"github.com/axiomcity/axiom-susu/internal/repository"
	"github.com/axiomcity/axiom-susu/pkg/logger"
)

// 小组规模默认值
const (
	defaultMinMembersToActivate = 3
	defaultMaxMembers           = 50
)

// GroupService 目的小组服务
type GroupService struct {
	groupRepo       *repository.GroupRepository
	categoryRepo    *repository.CategoryRepository
	hubRepo         *repository.HubRepository
	reliabilityRepo *repository.ReliabilityRepository
	events          *EventService
}

// NewGroupService 创建目的小组服务
func NewGroupService(
	groupRepo *repository.GroupRepository,
	categoryRepo *repository.CategoryRepository,
	hubRepo *repository.HubRepository,
	reliabilityRepo *repository.ReliabilityRepository,
	events *EventService,
) *GroupService {
	return &GroupService{
		groupRepo:       groupRepo,
		categoryRepo:    categoryRepo,
		hubRepo:         hubRepo,
		reliabilityRepo: reliabilityRepo,
		events:          events,
	}
}

// CreateGroup 创建小组, 创建者自动成为组织者
func (s *GroupService) CreateGroup(ctx context.Context, req *dto.CreateGroupRequest) (*dto.GroupView, error) {
	if !IsValidWalletAddress(req.WalletAddress) {
		return nil, dto.ErrInvalidWalletAddr
	}
	if !req.ContributionAmount.IsPositive() || req.CycleLengthDays <= 0 {
		return nil, dto.ErrInvalidParams
	}

	minMembers := req.MinMembersToActivate
	if minMembers <= 0 {
		minMembers = defaultMinMembersToActivate
	}
	maxMembers := req.MaxMembers
	if maxMembers <= 0 {
		maxMembers = defaultMaxMembers
	}
	if minMembers > maxMembers {
		return nil, dto.ErrInvalidParams
	}

	hub, err := s.hubRepo.GetByID(ctx, req.HubID)
	if err != nil {
		if errors.Is(err, repository.ErrHubNotFound) {
			return nil, dto.ErrHubNotFound
		}
		return nil, err
	}
	if !hub.Active {
		return nil, dto.ErrHubInactive
	}

	category, err := s.categoryRepo.GetByID(ctx, req.PurposeCategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, dto.ErrCategoryNotFound
		}
		return nil, err
	}

	// 展示名称按社区内序号生成, 如 "Emergency Fund Circle #3"
	seq, err := s.groupRepo.CountByHub(ctx, req.HubID)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%s Circle #%d", category.Label, seq+1)

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "AXM"
	}

	group := &model.PurposeGroup{
		HubID:                req.HubID,
		PurposeCategoryID:    req.PurposeCategoryID,
		Name:                 name,
		ContributionAmount:   req.ContributionAmount,
		Currency:             currency,
		CycleLengthDays:      req.CycleLengthDays,
		MinMembersToActivate: minMembers,
		MaxMembers:           maxMembers,
		Active:               true,
		CreatedBy:            req.WalletAddress,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}

	metrics.GroupsCreatedTotal.Inc()
	s.events.Emit(ctx, NewEvent(model.EventGroupCreate, &req.HubID, &group.ID, req.WalletAddress, &model.EventMetadata{
		Role: model.MemberRoleOrganizer.String(),
	}))

	logger.Info("purpose group created",
		"group_id", group.ID,
		"hub_id", group.HubID,
		"name", group.Name,
		"created_by", group.CreatedBy)

	return dto.NewGroupView(group), nil
}

// GetGroup 获取小组详情
func (s *GroupService) GetGroup(ctx context.Context, id int64) (*dto.GroupView, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, dto.ErrGroupNotFound
		}
		return nil, err
	}
	return dto.NewGroupView(group), nil
}

// ListGroups 查询小组列表
func (s *GroupService) ListGroups(ctx context.Context, filter *repository.ListFilter, pagination *repository.Pagination) ([]*dto.GroupView, int64, error) {
	groups, total, err := s.groupRepo.List(ctx, filter, pagination)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*dto.GroupView, 0, len(groups))
	for _, group := range groups {
		views = append(views, dto.NewGroupView(group))
	}
	return views, total, nil
}

// ListCategories 查询目的类别
func (s *GroupService) ListCategories(ctx context.Context) ([]*model.PurposeCategory, error) {
	return s.categoryRepo.List(ctx)
}

// JoinGroup 加入小组。满员与重复加入分别返回不同错误,
// 并发加入由仓储层条件更新保证不会超员。
func (s *GroupService) JoinGroup(ctx context.Context, groupID int64, walletAddress string) error {
	if !IsValidWalletAddress(walletAddress) {
		return dto.ErrInvalidWalletAddr
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return dto.ErrGroupNotFound
		}
		return err
	}
	if group.IsGraduated() {
		return dto.ErrAlreadyGraduated
	}
	if !group.Active {
		return dto.ErrGroupInactive
	}

	// 用户ID即校验过的钱包地址, 入组即视为钱包已连接
	member := &model.GroupMember{
		GroupID:         groupID,
		UserID:          walletAddress,
		Role:            model.MemberRoleMember,
		WalletConnected: true,
	}
	if err := s.groupRepo.AddMember(ctx, member); err != nil {
		switch {
		case errors.Is(err, repository.ErrGroupFull):
			metrics.GroupJoinsTotal.WithLabelValues("full").Inc()
			return dto.ErrGroupFull
		case errors.Is(err, repository.ErrGroupMemberExists):
			metrics.GroupJoinsTotal.WithLabelValues("duplicate").Inc()
			return dto.ErrGroupMemberExists
		}
		return err
	}

	metrics.GroupJoinsTotal.WithLabelValues("joined").Inc()
	s.events.Emit(ctx, NewEvent(model.EventGroupJoin, &group.HubID, &groupID, walletAddress, &model.EventMetadata{
		Role: model.MemberRoleMember.String(),
	}))

	logger.Info("user joined group",
		"group_id", groupID,
		"user_id", walletAddress)

	return nil
}

// ConfirmCommitment 成员确认供款承诺
func (s *GroupService) ConfirmCommitment(ctx context.Context, groupID int64, walletAddress string) error {
	if !IsValidWalletAddress(walletAddress) {
		return dto.ErrInvalidWalletAddr
	}

	if _, err := s.groupRepo.GetMember(ctx, groupID, walletAddress); err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return dto.ErrGroupNotFound
		}
		return err
	}

	return s.groupRepo.ConfirmCommitment(ctx, groupID, walletAddress)
}

// Health 计算小组健康度
func (s *GroupService) Health(ctx context.Context, groupID int64) (*dto.GroupHealth, error) {
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

	walletsConnected := 0
	commitmentsConfirmed := 0
	totalScore := 0.0
	for _, member := range members {
		if member.WalletConnected {
			walletsConnected++
		}
		if member.CommitmentConfirmed {
			commitmentsConfirmed++
		}

		profile, err := s.reliabilityRepo.GetByUser(ctx, member.UserID)
		if err != nil {
			if !errors.Is(err, repository.ErrProfileNotFound) {
				return nil, err
			}
			// 无历史的新用户按满分计
			totalScore += 100
			continue
		}
		totalScore += profile.ReliabilityScore
	}

	avgScore := 0.0
	if len(members) > 0 {
		avgScore = math.Round(totalScore/float64(len(members))*100) / 100
	}

	fillRate := 0.0
	if group.MaxMembers > 0 {
		fillRate = math.Round(float64(group.MemberCount)/float64(group.MaxMembers)*10000) / 100
	}

	status := "forming"
	switch {
	case group.IsGraduated():
		status = "graduated"
	case !group.Active:
		status = "inactive"
	case group.MemberCount >= group.MinMembersToActivate:
		status = "ready"
	}

	return &dto.GroupHealth{
		GroupID:              groupID,
		MemberCount:          group.MemberCount,
		MinMembersToActivate: group.MinMembersToActivate,
		MaxMembers:           group.MaxMembers,
		FillRate:             fillRate,
		WalletsConnected:     walletsConnected,
		CommitmentsConfirmed: commitmentsConfirmed,
		AvgReliabilityScore:  avgScore,
		Status:               status,
	}, nil
}
