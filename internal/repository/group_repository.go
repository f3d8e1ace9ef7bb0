package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/axiomcity/axiom-susu/internal/model"
)

var (
	ErrGroupNotFound     = errors.New("purpose group not found")
	ErrGroupMemberExists = errors.New("group membership already exists")
	ErrMemberNotFound    = errors.New("group member not found")
	ErrGroupFull         = errors.New("group is full")
	ErrAlreadyGraduated  = errors.New("group already graduated")
	ErrCategoryNotFound  = errors.New("purpose category not found")
)

// GroupRepository 目的小组仓储
type GroupRepository struct {
	db *gorm.DB
}

// NewGroupRepository 创建目的小组仓储
func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// WithTx 返回绑定到事务的仓储
func (r *GroupRepository) WithTx(tx *gorm.DB) *GroupRepository {
	return &GroupRepository{db: tx}
}

// Create 创建小组, 创建者自动成为组织者 (member_count 从 1 开始)
func (r *GroupRepository) Create(ctx context.Context, group *model.PurposeGroup) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group.MemberCount = 1
		if err := tx.Create(group).Error; err != nil {
			return err
		}

		organizer := &model.GroupMember{
			GroupID:         group.ID,
			UserID:          group.CreatedBy,
			Role:            model.MemberRoleOrganizer,
			WalletConnected: true,
		}
		if err := tx.Create(organizer).Error; err != nil {
			if isDuplicateKeyError(err) {
				return ErrGroupMemberExists
			}
			return err
		}
		return nil
	})
}

// GetByID 根据ID获取小组
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*model.PurposeGroup, error) {
	var group model.PurposeGroup
	err := r.db.WithContext(ctx).First(&group, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

// ListFilter 小组查询过滤条件
type ListFilter struct {
	HubID             int64
	PurposeCategoryID int64
	ActiveOnly        bool
}

// List 查询小组列表
func (r *GroupRepository) List(ctx context.Context, filter *ListFilter, pagination *Pagination) ([]*model.PurposeGroup, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.PurposeGroup{})
	if filter != nil {
		if filter.HubID != 0 {
			query = query.Where("hub_id = ?", filter.HubID)
		}
		if filter.PurposeCategoryID != 0 {
			query = query.Where("purpose_category_id = ?", filter.PurposeCategoryID)
		}
		if filter.ActiveOnly {
			query = query.Where("active = ?", true)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var groups []*model.PurposeGroup
	err := query.
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Order("created_at DESC").
		Find(&groups).Error
	if err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}

// CountByHub 统计某社区内的小组数 (用于生成展示名称序号)
func (r *GroupRepository) CountByHub(ctx context.Context, hubID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.PurposeGroup{}).
		Where("hub_id = ?", hubID).
		Count(&count).Error
	return count, err
}

// Count 统计小组总数
func (r *GroupRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PurposeGroup{}).Count(&count).Error
	return count, err
}

// CountGraduated 统计已毕业小组数
func (r *GroupRepository) CountGraduated(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.PurposeGroup{}).
		Where("graduated_to_pool_id IS NOT NULL").
		Count(&count).Error
	return count, err
}

// AddMember 添加小组成员。条件更新保证并发加入不会超过 max_members:
// 两个并发请求只有先提交者能通过 member_count < max_members 的判断。
func (r *GroupRepository) AddMember(ctx context.Context, member *model.GroupMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.PurposeGroup{}).
			Where("id = ? AND member_count < max_members", member.GroupID).
			Update("member_count", gorm.Expr("member_count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrGroupFull
		}

		if err := tx.Create(member).Error; err != nil {
			if isDuplicateKeyError(err) {
				return ErrGroupMemberExists
			}
			return err
		}
		return nil
	})
}

// GetMember 获取成员关系
func (r *GroupRepository) GetMember(ctx context.Context, groupID int64, userID string) (*model.GroupMember, error) {
	var member model.GroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// ListMembers 查询小组全部成员
func (r *GroupRepository) ListMembers(ctx context.Context, groupID int64) ([]*model.GroupMember, error) {
	var members []*model.GroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// CountMembers 统计全部小组成员关系数
func (r *GroupRepository) CountMembers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.GroupMember{}).Count(&count).Error
	return count, err
}

// ConfirmCommitment 标记成员已确认承诺
func (r *GroupRepository) ConfirmCommitment(ctx context.Context, groupID int64, userID string) error {
	result := r.db.WithContext(ctx).
		Model(&model.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Updates(map[string]interface{}{
			"commitment_confirmed": true,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGroupNotFound
	}
	return nil
}

// MarkGraduated 写入毕业列 (一次写入)。条件更新保证并发毕业只有一个成功:
// 已有 graduated_to_pool_id 的行不会被再次更新。
func (r *GroupRepository) MarkGraduated(ctx context.Context, groupID, poolID int64, txHash *string) error {
	now := time.Now().UnixMilli()
	result := r.db.WithContext(ctx).
		Model(&model.PurposeGroup{}).
		Where("id = ? AND graduated_to_pool_id IS NULL AND active = ?", groupID, true).
		Updates(map[string]interface{}{
			"graduated_to_pool_id": poolID,
			"graduation_tx_hash":   txHash,
			"graduated_at":         now,
			"updated_at":           now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyGraduated
	}
	return nil
}

// CategoryRepository 目的类别仓储
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建目的类别仓储
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetByID 根据ID获取类别
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*model.PurposeCategory, error) {
	var category model.PurposeCategory
	err := r.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// List 查询激活的类别
func (r *CategoryRepository) List(ctx context.Context) ([]*model.PurposeCategory, error) {
	var categories []*model.PurposeCategory
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateBatch 批量创建类别 (目录播种)
func (r *CategoryRepository) CreateBatch(ctx context.Context, categories []*model.PurposeCategory) error {
	if len(categories) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&categories).Error
}

// Count 统计类别数
func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PurposeCategory{}).Count(&count).Error
	return count, err
}
