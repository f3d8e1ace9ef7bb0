package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/axiomcity/axiom-susu/internal/model"
)

var (
	ErrContributionNotFound = errors.New("contribution not found")
	ErrContributionExists   = errors.New("contribution already recorded for this cycle")
)

// ContributionRepository 供款记录仓储
type ContributionRepository struct {
	db *gorm.DB
}

// NewContributionRepository 创建供款记录仓储
func NewContributionRepository(db *gorm.DB) *ContributionRepository {
	return &ContributionRepository{db: db}
}

// Create 创建供款记录, (group, user, cycle) 重复返回 ErrContributionExists
func (r *ContributionRepository) Create(ctx context.Context, contribution *model.Contribution) error {
	result := r.db.WithContext(ctx).Create(contribution)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return ErrContributionExists
		}
		return result.Error
	}
	return nil
}

// UpdateStatus 更新供款状态
func (r *ContributionRepository) UpdateStatus(ctx context.Context, groupID int64, userID string, cycleNumber int, status model.ContributionStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.Contribution{}).
		Where("group_id = ? AND user_id = ? AND cycle_number = ?", groupID, userID, cycleNumber).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UnixMilli(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContributionNotFound
	}
	return nil
}

// ListByGroup 查询小组供款记录
func (r *ContributionRepository) ListByGroup(ctx context.Context, groupID int64) ([]*model.Contribution, error) {
	var contributions []*model.Contribution
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("cycle_number ASC, user_id ASC").
		Find(&contributions).Error
	if err != nil {
		return nil, err
	}
	return contributions, nil
}

// ListByUser 查询用户供款记录
func (r *ContributionRepository) ListByUser(ctx context.Context, userID string) ([]*model.Contribution, error) {
	var contributions []*model.Contribution
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&contributions).Error
	if err != nil {
		return nil, err
	}
	return contributions, nil
}
