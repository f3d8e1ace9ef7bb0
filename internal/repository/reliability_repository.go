package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/axiomcity/axiom-susu/internal/model"
)

var ErrProfileNotFound = errors.New("reliability profile not found")

// ReliabilityRepository 可靠性档案仓储
type ReliabilityRepository struct {
	db *gorm.DB
}

// NewReliabilityRepository 创建可靠性档案仓储
func NewReliabilityRepository(db *gorm.DB) *ReliabilityRepository {
	return &ReliabilityRepository{db: db}
}

// GetByUser 根据用户获取档案
func (r *ReliabilityRepository) GetByUser(ctx context.Context, userID string) (*model.ReliabilityProfile, error) {
	var profile model.ReliabilityProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// ApplyEvent 在单个事务内读取档案、应用更新函数并整行持久化。
// 读改写串行化在事务内完成, 避免并发事件丢失更新。
func (r *ReliabilityRepository) ApplyEvent(ctx context.Context, userID string, apply func(*model.ReliabilityProfile) error) (*model.ReliabilityProfile, error) {
	var out *model.ReliabilityProfile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile model.ReliabilityProfile
		err := tx.Where("user_id = ?", userID).First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 首个事件惰性建档, 初始分 100
			profile = model.ReliabilityProfile{
				UserID:           userID,
				ReliabilityScore: 100,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if err := apply(&profile); err != nil {
			return err
		}

		profile.UpdatedAt = time.Now().UnixMilli()
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}
		out = &profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
