package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/axiomcity/axiom-susu/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func testHub(regionID string) *model.InterestHub {
	return &model.InterestHub{
		RegionID:   regionID,
		Name:       "California",
		RegionKind: model.HubRegionKindState,
		Active:     true,
	}
}

func testGroup(hubID int64) *model.PurposeGroup {
	return &model.PurposeGroup{
		HubID:                hubID,
		PurposeCategoryID:    1,
		Name:                 "Emergency Fund Circle #1",
		ContributionAmount:   decimal.NewFromInt(500),
		Currency:             "AXM",
		CycleLengthDays:      30,
		MinMembersToActivate: 3,
		MaxMembers:           5,
		Active:               true,
		CreatedBy:            "0x1111111111111111111111111111111111111111",
	}
}

func TestHubRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHubRepository(db)
	ctx := context.Background()

	hub := testHub("us-california")
	require.NoError(t, repo.Create(ctx, hub))
	assert.NotZero(t, hub.ID)

	got, err := repo.GetByRegionID(ctx, "us-california")
	require.NoError(t, err)
	assert.Equal(t, hub.ID, got.ID)
	assert.Equal(t, model.HubRegionKindState, got.RegionKind)

	// 地区标识唯一
	err = repo.Create(ctx, testHub("us-california"))
	assert.ErrorIs(t, err, ErrHubDuplicate)

	_, err = repo.GetByRegionID(ctx, "us-nowhere")
	assert.ErrorIs(t, err, ErrHubNotFound)
}

func TestHubRepository_AddMember(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHubRepository(db)
	ctx := context.Background()

	hub := testHub("us-texas")
	require.NoError(t, repo.Create(ctx, hub))

	member := &model.HubMember{
		HubID:  hub.ID,
		UserID: "0x2222222222222222222222222222222222222222",
		Role:   model.MemberRoleMember,
	}
	require.NoError(t, repo.AddMember(ctx, member))

	// 成员数递增
	got, err := repo.GetByID(ctx, hub.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MemberCount)

	// 重复加入被拒绝, 成员数不变
	err = repo.AddMember(ctx, &model.HubMember{
		HubID:  hub.ID,
		UserID: member.UserID,
		Role:   model.MemberRoleMember,
	})
	assert.ErrorIs(t, err, ErrHubMemberExists)

	got, err = repo.GetByID(ctx, hub.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MemberCount)
}

func TestGroupRepository_CreateWithOrganizer(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	group := testGroup(1)
	require.NoError(t, repo.Create(ctx, group))
	assert.Equal(t, 1, group.MemberCount)

	// 创建者自动成为组织者
	member, err := repo.GetMember(ctx, group.ID, group.CreatedBy)
	require.NoError(t, err)
	assert.Equal(t, model.MemberRoleOrganizer, member.Role)
}

func TestGroupRepository_AddMemberFullGroup(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	group := testGroup(1)
	group.MaxMembers = 2
	require.NoError(t, repo.Create(ctx, group))

	require.NoError(t, repo.AddMember(ctx, &model.GroupMember{
		GroupID: group.ID,
		UserID:  "0x2222222222222222222222222222222222222222",
		Role:    model.MemberRoleMember,
	}))

	// 已满: 拒绝且 member_count 不变
	err := repo.AddMember(ctx, &model.GroupMember{
		GroupID: group.ID,
		UserID:  "0x3333333333333333333333333333333333333333",
		Role:    model.MemberRoleMember,
	})
	assert.ErrorIs(t, err, ErrGroupFull)

	got, err := repo.GetByID(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.MemberCount)
}

func TestGroupRepository_AddMemberDuplicateRollsBack(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	group := testGroup(1)
	require.NoError(t, repo.Create(ctx, group))

	// 创建者重复加入: 事务回滚, 计数器不变
	err := repo.AddMember(ctx, &model.GroupMember{
		GroupID: group.ID,
		UserID:  group.CreatedBy,
		Role:    model.MemberRoleMember,
	})
	assert.ErrorIs(t, err, ErrGroupMemberExists)

	got, err := repo.GetByID(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MemberCount)
}

func TestGroupRepository_MarkGraduatedOnce(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	group := testGroup(1)
	require.NoError(t, repo.Create(ctx, group))

	txHash := "0xdeadbeef"
	require.NoError(t, repo.MarkGraduated(ctx, group.ID, 42, &txHash))

	got, err := repo.GetByID(ctx, group.ID)
	require.NoError(t, err)
	require.NotNil(t, got.GraduatedToPoolID)
	assert.Equal(t, int64(42), *got.GraduatedToPoolID)
	assert.NotNil(t, got.GraduatedAt)
	assert.True(t, got.IsGraduated())

	// 毕业列一次写入: 第二次标记失败且原值不变
	err = repo.MarkGraduated(ctx, group.ID, 43, nil)
	assert.ErrorIs(t, err, ErrAlreadyGraduated)

	got, err = repo.GetByID(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), *got.GraduatedToPoolID)
}

func TestCharterRepository_VersionAllocation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCharterRepository(db)
	ctx := context.Background()

	// 版本从 1 开始连续分配
	for i := 1; i <= 3; i++ {
		version, err := repo.NextVersion(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, i, version)

		require.NoError(t, repo.Create(ctx, &model.Charter{
			GroupID:       1,
			PoolID:        10,
			Version:       version,
			Mode:          model.PoolModeCommunity,
			ParamsJSON:    "{}",
			CharterText:   "text",
			CharterHash:   "0xabc",
			EffectiveDate: 1,
		}))
	}

	// 不同 scope 独立计数
	version, err := repo.NextVersion(ctx, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	// 同版本重复插入触发唯一约束
	err = repo.Create(ctx, &model.Charter{
		GroupID:       1,
		PoolID:        10,
		Version:       3,
		Mode:          model.PoolModeCommunity,
		ParamsJSON:    "{}",
		CharterText:   "text",
		CharterHash:   "0xabc",
		EffectiveDate: 1,
	})
	assert.ErrorIs(t, err, ErrCharterVersionExists)
}

func TestCharterRepository_Acceptance(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCharterRepository(db)
	ctx := context.Background()

	acceptance := &model.CharterAcceptance{
		CharterID:       1,
		UserID:          "0x2222222222222222222222222222222222222222",
		WalletSignature: "0xsig",
		RequestIP:       "10.0.0.1",
	}
	require.NoError(t, repo.CreateAcceptance(ctx, acceptance))

	// 每版本每用户唯一
	err := repo.CreateAcceptance(ctx, &model.CharterAcceptance{
		CharterID: 1,
		UserID:    acceptance.UserID,
	})
	assert.ErrorIs(t, err, ErrAcceptanceExists)

	list, err := repo.ListAcceptances(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestThresholdRepository_SetOverwrites(t *testing.T) {
	db := setupTestDB(t)
	repo := NewThresholdRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, model.ThresholdKeyContribution, 1000, "admin"))
	require.NoError(t, repo.Set(ctx, model.ThresholdKeyContribution, 2000, "admin"))

	values, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, values[model.ThresholdKeyContribution])
}

func TestThresholdRepository_MultiplierDefault(t *testing.T) {
	db := setupTestDB(t)
	repo := NewThresholdRepository(db)
	ctx := context.Background()

	// 未配置的类别乘数默认 1.0
	m, err := repo.GetMultiplier(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, 1.0, m)

	require.NoError(t, repo.SetMultiplier(ctx, 99, 1.5, "admin"))
	m, err = repo.GetMultiplier(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, 1.5, m)
}

func TestFeatureFlagRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeatureFlagRepository(db)
	ctx := context.Background()

	// 未配置返回默认值
	enabled, err := repo.IsEnabled(ctx, model.FlagGraduationEnabled, true)
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, repo.Set(ctx, model.FlagGraduationEnabled, false, "admin"))
	enabled, err = repo.IsEnabled(ctx, model.FlagGraduationEnabled, true)
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestReliabilityRepository_LazyCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReliabilityRepository(db)
	ctx := context.Background()

	user := "0x4444444444444444444444444444444444444444"
	_, err := repo.GetByUser(ctx, user)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	// 首个事件惰性建档
	profile, err := repo.ApplyEvent(ctx, user, func(p *model.ReliabilityProfile) error {
		p.PoolsJoined++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, profile.PoolsJoined)

	got, err := repo.GetByUser(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 1, got.PoolsJoined)
}

func TestAnalyticsRepository_CountByType(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnalyticsRepository(db)
	ctx := context.Background()

	groupID := int64(1)
	for i, eventType := range []model.AnalyticsEventType{
		model.EventGroupJoin, model.EventGroupJoin, model.EventGraduation,
	} {
		require.NoError(t, repo.Append(ctx, &model.AnalyticsEvent{
			EventID:   string(rune('a'+i)) + "-event",
			EventType: eventType,
			GroupID:   &groupID,
			UserID:    "0x5555555555555555555555555555555555555555",
		}))
	}

	counts, err := repo.CountByType(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[model.EventGroupJoin])
	assert.Equal(t, int64(1), counts[model.EventGraduation])
}

func TestContributionRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContributionRepository(db)
	ctx := context.Background()

	contribution := &model.Contribution{
		GroupID:     1,
		UserID:      "0x6666666666666666666666666666666666666666",
		CycleNumber: 1,
		Amount:      decimal.NewFromInt(500),
		DueDate:     1000,
		Status:      model.ContributionStatusPending,
	}
	require.NoError(t, repo.Create(ctx, contribution))

	// (group, user, cycle) 唯一
	err := repo.Create(ctx, &model.Contribution{
		GroupID:     1,
		UserID:      contribution.UserID,
		CycleNumber: 1,
		Amount:      decimal.NewFromInt(500),
		DueDate:     1000,
	})
	assert.ErrorIs(t, err, ErrContributionExists)

	require.NoError(t, repo.UpdateStatus(ctx, 1, contribution.UserID, 1, model.ContributionStatusPaid))
	list, err := repo.ListByGroup(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.ContributionStatusPaid, list[0].Status)
}
