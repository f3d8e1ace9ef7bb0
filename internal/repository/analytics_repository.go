package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/axiomcity/axiom-susu/internal/model"
)

// AnalyticsRepository 埋点事件仓储 (仅追加)
type AnalyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository 创建埋点事件仓储
func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// WithTx 返回绑定到事务的仓储
func (r *AnalyticsRepository) WithTx(tx *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: tx}
}

// Append 追加事件 (事件一经写入不再修改)
func (r *AnalyticsRepository) Append(ctx context.Context, event *model.AnalyticsEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// CountByType 按事件类型统计
func (r *AnalyticsRepository) CountByType(ctx context.Context) (map[model.AnalyticsEventType]int64, error) {
	type row struct {
		EventType model.AnalyticsEventType
		Count     int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.AnalyticsEvent{}).
		Select("event_type, COUNT(*) as count").
		Group("event_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.AnalyticsEventType]int64, len(rows))
	for _, r := range rows {
		counts[r.EventType] = r.Count
	}
	return counts, nil
}

// ListByGroup 查询小组相关事件
func (r *AnalyticsRepository) ListByGroup(ctx context.Context, groupID int64, pagination *Pagination) ([]*model.AnalyticsEvent, error) {
	var events []*model.AnalyticsEvent
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
