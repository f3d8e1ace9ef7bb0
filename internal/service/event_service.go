package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/axiomcity/axiom-susu/internal/metrics"
	"github.com/axiomcity/axiom-susu/internal/model"
	"github.com/axiomcity/axiom-susu/internal/repository"
	"github.com/axiomcity/axiom-susu/pkg/logger"
)

// EventService 埋点事件服务。事件落库是业务操作的一部分,
// 消息总线发布是尽力而为 — 发布失败只记日志, 不影响主流程。
type EventService struct {
	repo *repository.AnalyticsRepository

	// 事件发布回调 (Kafka)
	onEvent func(ctx context.Context, event *model.AnalyticsEvent) error
}

// NewEventService 创建埋点事件服务
func NewEventService(repo *repository.AnalyticsRepository) *EventService {
	return &EventService{repo: repo}
}

// SetOnEvent 设置事件发布回调
func (s *EventService) SetOnEvent(fn func(ctx context.Context, event *model.AnalyticsEvent) error) {
	s.onEvent = fn
}

// NewEvent 构造埋点事件
func NewEvent(eventType model.AnalyticsEventType, hubID, groupID *int64, userID string, meta *model.EventMetadata) *model.AnalyticsEvent {
	metadata := ""
	if meta != nil {
		data, err := json.Marshal(meta)
		if err == nil {
			metadata = string(data)
		}
	}

	return &model.AnalyticsEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		HubID:     hubID,
		GroupID:   groupID,
		UserID:    userID,
		Metadata:  metadata,
	}
}

// Emit 落库并发布事件
func (s *EventService) Emit(ctx context.Context, event *model.AnalyticsEvent) {
	if err := s.repo.Append(ctx, event); err != nil {
		logger.Error("failed to append analytics event",
			"event_id", event.EventID,
			"event_type", event.EventType,
			"error", err)
		return
	}

	s.Publish(ctx, event)
}

// Publish 仅发布已落库的事件 (毕业事件在事务内落库, 提交后发布)
func (s *EventService) Publish(ctx context.Context, event *model.AnalyticsEvent) {
	if s.onEvent == nil {
		return
	}

	if err := s.onEvent(ctx, event); err != nil {
		metrics.EventsPublishedTotal.WithLabelValues(string(event.EventType), "error").Inc()
		logger.Error("failed to publish analytics event",
			"event_id", event.EventID,
			"event_type", event.EventType,
			"error", err)
		return
	}

	metrics.EventsPublishedTotal.WithLabelValues(string(event.EventType), "success").Inc()
}

// Funnel 按事件类型统计漏斗
func (s *EventService) Funnel(ctx context.Context) (map[string]int64, error) {
	counts, err := s.repo.CountByType(ctx)
	if err != nil {
		return nil, err
	}

	funnel := make(map[string]int64, len(counts))
	for eventType, count := range counts {
		funnel[string(eventType)] = count
	}
	return funnel, nil
}
