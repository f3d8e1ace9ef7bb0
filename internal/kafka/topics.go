// Package kafka 提供互助会服务的 Kafka 消息处理
package kafka

// Kafka 主题定义
const (
	// TopicSusuEvents 互助会生命周期事件, 下游分析与通知服务消费
	TopicSusuEvents = "susu-events"
)
