package model

import (
	"github.com/shopspring/decimal"
)

// ContributionStatus 供款状态
type ContributionStatus int8

const (
	ContributionStatusPending ContributionStatus = 1 // 待缴
	ContributionStatusPaid    ContributionStatus = 2 // 按时缴纳
	ContributionStatusLate    ContributionStatus = 3 // 逾期缴纳
	ContributionStatusMissed  ContributionStatus = 4 // 未缴纳
)

// String 返回供款状态的字符串表示
func (s ContributionStatus) String() string {
	switch s {
	case ContributionStatusPending:
		return "pending"
	case ContributionStatusPaid:
		return "paid"
	case ContributionStatusLate:
		return "late"
	case ContributionStatusMissed:
		return "missed"
	default:
		return "unknown"
	}
}

// ParseContributionStatus 解析供款状态字符串
func ParseContributionStatus(s string) (ContributionStatus, bool) {
	switch s {
	case "pending":
		return ContributionStatusPending, true
	case "paid":
		return ContributionStatusPaid, true
	case "late":
		return ContributionStatusLate, true
	case "missed":
		return ContributionStatusMissed, true
	default:
		return 0, false
	}
}

// Contribution 每期供款记录
type Contribution struct {
	ID          int64              `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID     int64              `gorm:"not null;uniqueIndex:idx_group_user_cycle,priority:1" json:"group_id"` // 小组ID
	UserID      string             `gorm:"type:varchar(64);not null;uniqueIndex:idx_group_user_cycle,priority:2" json:"user_id"` // 用户钱包地址
	CycleNumber int                `gorm:"type:integer;not null;uniqueIndex:idx_group_user_cycle,priority:3" json:"cycle_number"` // 周期序号
	Amount      decimal.Decimal    `gorm:"type:decimal(36,18);not null" json:"amount"`                  // 金额
	DueDate     int64              `gorm:"type:bigint;not null" json:"due_date"`                        // 到期时间
	Status      ContributionStatus `gorm:"type:smallint;not null;default:1" json:"status"`              // 状态
	CreatedAt   int64              `gorm:"type:bigint;not null;autoCreateTime:milli" json:"created_at"` // 创建时间
	UpdatedAt   int64              `gorm:"type:bigint;not null;autoUpdateTime:milli" json:"updated_at"` // 更新时间
}

// TableName 返回表名
func (Contribution) TableName() string {
	return "susu_contributions"
}
