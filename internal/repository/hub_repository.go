package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/axiomcity/axiom-susu/internal/model"
)

var (
	ErrHubNotFound     = errors.New("hub not found")
	ErrHubDuplicate    = errors.New("hub already exists")
	ErrHubMemberExists = errors.New("hub membership already exists")
)

// HubRepository 地区社区仓储
type HubRepository struct {
	db *gorm.DB
}

// NewHubRepository 创建地区社区仓储
func NewHubRepository(db *gorm.DB) *HubRepository {
	return &HubRepository{db: db}
}

// WithTx 返回绑定到事务的仓储
func (r *HubRepository) WithTx(tx *gorm.DB) *HubRepository {
	return &HubRepository{db: tx}
}

// Create 创建社区
func (r *HubRepository) Create(ctx context.Context, hub *model.InterestHub) error {
	result := r.db.WithContext(ctx).Create(hub)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return ErrHubDuplicate
		}
		return result.Error
	}
	return nil
}

// CreateBatch 批量创建社区 (目录播种)
func (r *HubRepository) CreateBatch(ctx context.Context, hubs []*model.InterestHub) error {
	if len(hubs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&hubs).Error
}

// GetByID 根据ID获取社区
func (r *HubRepository) GetByID(ctx context.Context, id int64) (*model.InterestHub, error) {
	var hub model.InterestHub
	err := r.db.WithContext(ctx).First(&hub, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHubNotFound
		}
		return nil, err
	}
	return &hub, nil
}

// GetByRegionID 根据地区标识获取社区
func (r *HubRepository) GetByRegionID(ctx context.Context, regionID string) (*model.InterestHub, error) {
	var hub model.InterestHub
	err := r.db.WithContext(ctx).
		Where("region_id = ?", regionID).
		First(&hub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHubNotFound
		}
		return nil, err
	}
	return &hub, nil
}

// List 查询社区列表, kind 为 0 时不过滤地区类型
func (r *HubRepository) List(ctx context.Context, kind model.HubRegionKind, activeOnly bool) ([]*model.InterestHub, error) {
	query := r.db.WithContext(ctx).Model(&model.InterestHub{})
	if kind != 0 {
		query = query.Where("region_kind = ?", kind)
	}
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var hubs []*model.InterestHub
	err := query.Order("member_count DESC, id ASC").Find(&hubs).Error
	if err != nil {
		return nil, err
	}
	return hubs, nil
}

// Count 统计社区总数
func (r *HubRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.InterestHub{}).Count(&count).Error
	return count, err
}

// Deactivate 停用社区 (不做物理删除)
func (r *HubRepository) Deactivate(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Model(&model.InterestHub{}).
		Where("id = ?", id).
		Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrHubNotFound
	}
	return nil
}

// AddMember 添加社区成员并递增成员数, 重复加入返回 ErrHubMemberExists
func (r *HubRepository) AddMember(ctx context.Context, member *model.HubMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(member).Error; err != nil {
			if isDuplicateKeyError(err) {
				return ErrHubMemberExists
			}
			return err
		}

		result := tx.Model(&model.InterestHub{}).
			Where("id = ?", member.HubID).
			Update("member_count", gorm.Expr("member_count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrHubNotFound
		}
		return nil
	})
}

// IsMember 检查用户是否已是社区成员
func (r *HubRepository) IsMember(ctx context.Context, hubID int64, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.HubMember{}).
		Where("hub_id = ? AND user_id = ?", hubID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountMembers 统计全部社区成员关系数
func (r *HubRepository) CountMembers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.HubMember{}).Count(&count).Error
	return count, err
}
