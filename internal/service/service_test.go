package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/axiomcity/axiom-susu/internal/dto"
	"github.com/axiomcity/axiom-susu/internal/model"
	"github.com/axiomcity/axiom-susu/internal/repository"
)

// 测试钱包地址
const (
	walletOrganizer = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	walletMember2   = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	walletMember3   = "0xcccccccccccccccccccccccccccccccccccccccc"
	walletOutsider  = "0xdddddddddddddddddddddddddddddddddddddddd"
)

// testEnv 组装完整的服务层 (sqlite 内存库, 无 Redis / Kafka)
type testEnv struct {
	db *gorm.DB

	hubRepo          *repository.HubRepository
	categoryRepo     *repository.CategoryRepository
	groupRepo        *repository.GroupRepository
	charterRepo      *repository.CharterRepository
	thresholdRepo    *repository.ThresholdRepository
	flagRepo         *repository.FeatureFlagRepository
	reliabilityRepo  *repository.ReliabilityRepository
	contributionRepo *repository.ContributionRepository
	analyticsRepo    *repository.AnalyticsRepository

	events         *EventService
	hubSvc         *HubService
	groupSvc       *GroupService
	modeSvc        *ModeService
	graduationSvc  *GraduationService
	charterSvc     *CharterService
	reliabilitySvc *ReliabilityService
	adminSvc       *AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.InterestHub{},
		&model.HubMember{},
		&model.PurposeCategory{},
		&model.PurposeGroup{},
		&model.GroupMember{},
		&model.Contribution{},
		&model.ModeThreshold{},
		&model.PurposeCategoryMultiplier{},
		&model.FeatureFlag{},
		&model.Charter{},
		&model.CharterAcceptance{},
		&model.ReliabilityProfile{},
		&model.AnalyticsEvent{},
	))

	env := &testEnv{
		db:               db,
		hubRepo:          repository.NewHubRepository(db),
		categoryRepo:     repository.NewCategoryRepository(db),
		groupRepo:        repository.NewGroupRepository(db),
		charterRepo:      repository.NewCharterRepository(db),
		thresholdRepo:    repository.NewThresholdRepository(db),
		flagRepo:         repository.NewFeatureFlagRepository(db),
		reliabilityRepo:  repository.NewReliabilityRepository(db),
		contributionRepo: repository.NewContributionRepository(db),
		analyticsRepo:    repository.NewAnalyticsRepository(db),
	}

	thresholds := NewThresholdLoader(env.thresholdRepo)
	env.events = NewEventService(env.analyticsRepo)
	env.hubSvc = NewHubService(env.hubRepo, env.events)
	env.groupSvc = NewGroupService(env.groupRepo, env.categoryRepo, env.hubRepo, env.reliabilityRepo, env.events)
	env.modeSvc = NewModeService(thresholds, env.categoryRepo)
	env.graduationSvc = NewGraduationService(
		db, env.groupRepo, env.categoryRepo, env.charterRepo, env.analyticsRepo, env.flagRepo, thresholds, env.events)
	env.charterSvc = NewCharterService(env.charterRepo, env.groupRepo)
	env.reliabilitySvc = NewReliabilityService(env.reliabilityRepo, env.contributionRepo, env.groupRepo)
	env.adminSvc = NewAdminService(
		env.thresholdRepo, env.flagRepo, env.categoryRepo, env.hubRepo, env.groupRepo, thresholds, env.events)

	return env
}

// createHub 创建激活状态的社区
func (e *testEnv) createHub(t *testing.T, regionID string) *model.InterestHub {
	hub := &model.InterestHub{
		RegionID:   regionID,
		Name:       "Test Region",
		RegionKind: model.HubRegionKindState,
		Active:     true,
	}
	require.NoError(t, e.hubRepo.Create(context.Background(), hub))
	return hub
}

// createCategory 创建目的类别
func (e *testEnv) createCategory(t *testing.T, slug, label string) *model.PurposeCategory {
	category := &model.PurposeCategory{Slug: slug, Label: label, Active: true}
	require.NoError(t, e.categoryRepo.CreateBatch(context.Background(), []*model.PurposeCategory{category}))
	return category
}

// createGroup 通过服务层创建小组 (创建者自动成为组织者)
func (e *testEnv) createGroup(t *testing.T, hubID, categoryID int64, amount int64, minMembers int) *dto.GroupView {
	view, err := e.groupSvc.CreateGroup(context.Background(), &dto.CreateGroupRequest{
		HubID:                hubID,
		PurposeCategoryID:    categoryID,
		ContributionAmount:   decimal.NewFromInt(amount),
		Currency:             "AXM",
		CycleLengthDays:      30,
		MinMembersToActivate: minMembers,
		MaxMembers:           5,
		WalletAddress:        walletOrganizer,
	})
	require.NoError(t, err)
	return view
}

// createReadyGroup 创建满足毕业成员门槛的小组 (组织者 + 2 名成员)
func (e *testEnv) createReadyGroup(t *testing.T) *dto.GroupView {
	hub := e.createHub(t, "us-california")
	category := e.createCategory(t, "emergency-fund", "Emergency Fund")
	group := e.createGroup(t, hub.ID, category.ID, 500, 3)

	ctx := context.Background()
	require.NoError(t, e.groupSvc.JoinGroup(ctx, group.ID, walletMember2))
	require.NoError(t, e.groupSvc.JoinGroup(ctx, group.ID, walletMember3))
	return group
}

// requireBizCode 断言业务错误码
func requireBizCode(t *testing.T, err error, want *dto.BizError) {
	t.Helper()
	var bizErr *dto.BizError
	require.ErrorAs(t, err, &bizErr)
	require.Equal(t, want.Code, bizErr.Code)
}
