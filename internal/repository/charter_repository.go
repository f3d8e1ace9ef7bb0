package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/axiomcity/axiom-susu/internal/model"
)

var (
	ErrCharterNotFound      = errors.New("charter not found")
	ErrCharterVersionExists = errors.New("charter version already exists")
	ErrAcceptanceExists     = errors.New("charter acceptance already exists")
)

// CharterRepository 章程仓储
type CharterRepository struct {
	db *gorm.DB
}

// NewCharterRepository 创建章程仓储
func NewCharterRepository(db *gorm.DB) *CharterRepository {
	return &CharterRepository{db: db}
}

// WithTx 返回绑定到事务的仓储
func (r *CharterRepository) WithTx(tx *gorm.DB) *CharterRepository {
	return &CharterRepository{db: tx}
}

// NextVersion 计算 (group_id, pool_id) 范围内的下一个版本号
func (r *CharterRepository) NextVersion(ctx context.Context, groupID, poolID int64) (int, error) {
	var maxVersion int
	err := r.db.WithContext(ctx).
		Model(&model.Charter{}).
		Where("group_id = ? AND pool_id = ?", groupID, poolID).
		Select("COALESCE(MAX(version), 0)").
		Scan(&maxVersion).Error
	if err != nil {
		return 0, err
	}
	return maxVersion + 1, nil
}

// Create 插入章程。版本列上的唯一索引保证并发分配同一版本时
// 只有一个插入成功, 冲突者返回 ErrCharterVersionExists 由调用方重试。
func (r *CharterRepository) Create(ctx context.Context, charter *model.Charter) error {
	result := r.db.WithContext(ctx).Create(charter)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return ErrCharterVersionExists
		}
		return result.Error
	}
	return nil
}

// GetByID 根据ID获取章程
func (r *CharterRepository) GetByID(ctx context.Context, id int64) (*model.Charter, error) {
	var charter model.Charter
	err := r.db.WithContext(ctx).First(&charter, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCharterNotFound
		}
		return nil, err
	}
	return &charter, nil
}

// ListByScope 查询 (group_id, pool_id) 范围内的章程, 版本降序
func (r *CharterRepository) ListByScope(ctx context.Context, groupID, poolID int64) ([]*model.Charter, error) {
	query := r.db.WithContext(ctx).Model(&model.Charter{})
	if groupID != 0 {
		query = query.Where("group_id = ?", groupID)
	}
	if poolID != 0 {
		query = query.Where("pool_id = ?", poolID)
	}

	var charters []*model.Charter
	err := query.Order("version DESC").Find(&charters).Error
	if err != nil {
		return nil, err
	}
	return charters, nil
}

// GetLatestByGroup 获取小组最新版本章程
func (r *CharterRepository) GetLatestByGroup(ctx context.Context, groupID int64) (*model.Charter, error) {
	var charter model.Charter
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("version DESC").
		First(&charter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCharterNotFound
		}
		return nil, err
	}
	return &charter, nil
}

// CreateAcceptance 记录章程接受 (每版本每用户唯一)
func (r *CharterRepository) CreateAcceptance(ctx context.Context, acceptance *model.CharterAcceptance) error {
	result := r.db.WithContext(ctx).Create(acceptance)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return ErrAcceptanceExists
		}
		return result.Error
	}
	return nil
}

// ListAcceptances 查询章程的接受记录
func (r *CharterRepository) ListAcceptances(ctx context.Context, charterID int64) ([]*model.CharterAcceptance, error) {
	var acceptances []*model.CharterAcceptance
	err := r.db.WithContext(ctx).
		Where("charter_id = ?", charterID).
		Order("accepted_at ASC").
		Find(&acceptances).Error
	if err != nil {
		return nil, err
	}
	return acceptances, nil
}
