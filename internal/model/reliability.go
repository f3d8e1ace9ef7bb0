package model

// ReliabilityProfile 用户可靠性档案 (事件溯源计数器 + 派生分数)
type ReliabilityProfile struct {
	ID                 int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             string  `gorm:"type:varchar(64);uniqueIndex;not null" json:"user_id"`        // 用户钱包地址
	TotalContributions int     `gorm:"type:integer;not null;default:0" json:"total_contributions"`  // 总供款次数
	OnTime             int     `gorm:"type:integer;not null;default:0" json:"on_time"`              // 按时供款次数
	Late               int     `gorm:"type:integer;not null;default:0" json:"late"`                 // 逾期供款次数
	Missed             int     `gorm:"type:integer;not null;default:0" json:"missed"`               // 未缴次数
	EarlyExits         int     `gorm:"type:integer;not null;default:0" json:"early_exits"`          // 提前退出次数
	Ejections          int     `gorm:"type:integer;not null;default:0" json:"ejections"`            // 被移出次数
	PoolsJoined        int     `gorm:"type:integer;not null;default:0" json:"pools_joined"`         // 加入池次数
	PoolsCompleted     int     `gorm:"type:integer;not null;default:0" json:"pools_completed"`      // 完成池次数
	ReliabilityScore   float64 `gorm:"type:double precision;not null;default:100" json:"reliability_score"` // 派生分数 [0,100]
	CreatedAt          int64   `gorm:"type:bigint;not null;autoCreateTime:milli" json:"created_at"` // 创建时间
	UpdatedAt          int64   `gorm:"type:bigint;not null;autoUpdateTime:milli" json:"updated_at"` // 更新时间
}

// TableName 返回表名
func (ReliabilityProfile) TableName() string {
	return "susu_reliability_profiles"
}
