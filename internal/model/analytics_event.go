package model

// AnalyticsEventType 埋点事件类型
type AnalyticsEventType string

const (
	EventHubJoin            AnalyticsEventType = "hub_join"
	EventHubLeave           AnalyticsEventType = "hub_leave"
	EventGroupJoin          AnalyticsEventType = "group_join"
	EventGroupLeave         AnalyticsEventType = "group_leave"
	EventGroupCreate        AnalyticsEventType = "group_create"
	EventGraduation         AnalyticsEventType = "graduation"
	EventInvitationSent     AnalyticsEventType = "invitation_sent"
	EventInvitationAccepted AnalyticsEventType = "invitation_accepted"
)

// EventMetadata 事件元数据 (固定结构, 不使用不透明 JSON 块)
type EventMetadata struct {
	PoolID      *int64 `json:"poolId,omitempty"`
	TxHash      string `json:"txHash,omitempty"`
	Mode        string `json:"mode,omitempty"`
	CharterHash string `json:"charterHash,omitempty"`
	Role        string `json:"role,omitempty"`
}

// AnalyticsEvent 埋点事件 (仅追加, 不修改)
type AnalyticsEvent struct {
	ID        int64              `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID   string             `gorm:"type:varchar(64);uniqueIndex;not null" json:"event_id"`       // 事件唯一ID (uuid)
	EventType AnalyticsEventType `gorm:"type:varchar(32);not null;index" json:"event_type"`           // 事件类型
	GroupID   *int64             `gorm:"type:bigint;index" json:"group_id"`                           // 相关小组
	HubID     *int64             `gorm:"type:bigint;index" json:"hub_id"`                             // 相关社区
	UserID    string             `gorm:"type:varchar(64);index" json:"user_id"`                       // 相关用户
	Metadata  string             `gorm:"type:text" json:"metadata"`                                   // 元数据 (EventMetadata 的 JSON)
	CreatedAt int64              `gorm:"type:bigint;not null;autoCreateTime:milli" json:"created_at"` // 记录时间
}

// TableName 返回表名
func (AnalyticsEvent) TableName() string {
	return "susu_analytics_events"
}
