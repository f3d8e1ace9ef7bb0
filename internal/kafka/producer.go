package kafka

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"

	"github.com/axiomcity/axiom-susu/internal/model"
	"github.com/axiomcity/axiom-susu/pkg/logger"
)

// Producer Kafka 生产者
type Producer struct {
	producer sarama.SyncProducer
}

// NewProducer 创建 Kafka 生产者
func NewProducer(brokers []string, clientID string) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.ClientID = clientID

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return &Producer{producer: producer}, nil
}

// Close 关闭生产者
func (p *Producer) Close() error {
	return p.producer.Close()
}

// SendSusuEvent 发送生命周期事件, 按用户分区保证单用户事件有序
func (p *Producer) SendSusuEvent(ctx context.Context, event *model.AnalyticsEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: TopicSusuEvents,
		Key:   sarama.StringEncoder(event.UserID),
		Value: sarama.ByteEncoder(data),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		logger.Error("failed to send susu event",
			"event_id", event.EventID,
			"event_type", event.EventType,
			"error", err)
		return err
	}

	logger.Debug("susu event sent",
		"event_id", event.EventID,
		"event_type", event.EventType,
		"partition", partition,
		"offset", offset)

	return nil
}

// SusuEventCallback 创建生命周期事件回调函数
func (p *Producer) SusuEventCallback() func(ctx context.Context, event *model.AnalyticsEvent) error {
	return func(ctx context.Context, event *model.AnalyticsEvent) error {
		return p.SendSusuEvent(ctx, event)
	}
}
