package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/axiomcity/axiom-susu/internal/model"
)

var ErrFlagNotFound = errors.New("feature flag not found")

// ThresholdRepository 模式阈值与类别乘数仓储
type ThresholdRepository struct {
	db *gorm.DB
}

// NewThresholdRepository 创建阈值仓储
func NewThresholdRepository(db *gorm.DB) *ThresholdRepository {
	return &ThresholdRepository{db: db}
}

// GetAll 读取全部阈值键值
func (r *ThresholdRepository) GetAll(ctx context.Context) (map[string]float64, error) {
	var rows []*model.ModeThreshold
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}

	values := make(map[string]float64, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}

// Set 覆盖写单个阈值 (不保留历史)
func (r *ThresholdRepository) Set(ctx context.Context, key string, value float64, updatedBy string) error {
	now := time.Now().UnixMilli()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_by": updatedBy,
			"updated_at": now,
		}),
	}).Create(&model.ModeThreshold{
		Key:       key,
		Value:     value,
		UpdatedBy: updatedBy,
	}).Error
}

// GetMultiplier 读取类别乘数, 未配置返回 1.0
func (r *ThresholdRepository) GetMultiplier(ctx context.Context, categoryID int64) (float64, error) {
	var row model.PurposeCategoryMultiplier
	err := r.db.WithContext(ctx).
		Where("purpose_category_id = ?", categoryID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 1.0, nil
		}
		return 0, err
	}
	return row.Multiplier, nil
}

// SetMultiplier 覆盖写类别乘数
func (r *ThresholdRepository) SetMultiplier(ctx context.Context, categoryID int64, multiplier float64, updatedBy string) error {
	now := time.Now().UnixMilli()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "purpose_category_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"multiplier": multiplier,
			"updated_by": updatedBy,
			"updated_at": now,
		}),
	}).Create(&model.PurposeCategoryMultiplier{
		PurposeCategoryID: categoryID,
		Multiplier:        multiplier,
		UpdatedBy:         updatedBy,
	}).Error
}

// ListMultipliers 读取全部类别乘数
func (r *ThresholdRepository) ListMultipliers(ctx context.Context) ([]*model.PurposeCategoryMultiplier, error) {
	var rows []*model.PurposeCategoryMultiplier
	err := r.db.WithContext(ctx).Order("purpose_category_id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FeatureFlagRepository 功能开关仓储
type FeatureFlagRepository struct {
	db *gorm.DB
}

// NewFeatureFlagRepository 创建功能开关仓储
func NewFeatureFlagRepository(db *gorm.DB) *FeatureFlagRepository {
	return &FeatureFlagRepository{db: db}
}

// IsEnabled 检查开关状态, 未配置返回给定默认值
func (r *FeatureFlagRepository) IsEnabled(ctx context.Context, key string, defaultVal bool) (bool, error) {
	var flag model.FeatureFlag
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&flag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return defaultVal, nil
		}
		return false, err
	}
	return flag.Enabled, nil
}

// Set 覆盖写开关
func (r *FeatureFlagRepository) Set(ctx context.Context, key string, enabled bool, updatedBy string) error {
	now := time.Now().UnixMilli()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"enabled":    enabled,
			"updated_by": updatedBy,
			"updated_at": now,
		}),
	}).Create(&model.FeatureFlag{
		Key:       key,
		Enabled:   enabled,
		UpdatedBy: updatedBy,
	}).Error
}

// List 读取全部开关
func (r *FeatureFlagRepository) List(ctx context.Context) ([]*model.FeatureFlag, error) {
	var flags []*model.FeatureFlag
	err := r.db.WithContext(ctx).Order("key ASC").Find(&flags).Error
	if err != nil {
		return nil, err
	}
	return flags, nil
}
