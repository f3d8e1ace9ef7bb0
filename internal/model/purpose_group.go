package model

import (
	"github.com/shopspring/decimal"
)

// MemberRole 成员角色
type MemberRole int8

const (
	MemberRoleOrganizer     MemberRole = 1 // 组织者
	MemberRoleMember        MemberRole = 2 // 普通成员
	MemberRoleRegionalOwner MemberRole = 3 // 地区负责人 (仅 hub)
)

// String 返回成员角色的字符串表示
func (r MemberRole) String() string {
	switch r {
	case MemberRoleOrganizer:
		return "organizer"
	case MemberRoleMember:
		return "member"
	case MemberRoleRegionalOwner:
		return "regional_owner"
	default:
		return "unknown"
	}
}

// PoolMode 资金池模式分类
type PoolMode int8

const (
	PoolModeCommunity PoolMode = 1 // 社区模式
	PoolModeCapital   PoolMode = 2 // 资本模式 (需额外披露)
)

// String 返回模式的字符串表示
func (m PoolMode) String() string {
	if m == PoolModeCapital {
		return "capital"
	}
	return "community"
}

// ParsePoolMode 解析模式字符串
func ParsePoolMode(s string) (PoolMode, bool) {
	switch s {
	case "community":
		return PoolModeCommunity, true
	case "capital":
		return PoolModeCapital, true
	default:
		return 0, false
	}
}

// PurposeCategory 目的类别
type PurposeCategory struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug      string `gorm:"type:varchar(64);uniqueIndex;not null" json:"slug"`           // 类别标识 (如 emergency-fund)
	Label     string `gorm:"type:varchar(128);not null" json:"label"`                     // 展示名称
	Active    bool   `gorm:"not null;default:true" json:"active"`                         // 是否激活
	CreatedAt int64  `gorm:"type:bigint;not null;autoCreateTime:milli" json:"created_at"` // 创建时间
}

// TableName 返回表名
func (PurposeCategory) TableName() string {
	return "susu_purpose_categories"
}

// PurposeGroup 目的储蓄小组 (链下预承诺阶段)
type PurposeGroup struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	HubID               int64           `gorm:"not null;index" json:"hub_id"`                                // 所属社区
	PurposeCategoryID   int64           `gorm:"not null;index" json:"purpose_category_id"`                   // 目的类别
	Name                string          `gorm:"type:varchar(128);not null" json:"name"`                      // 生成的展示名称
	ContributionAmount  decimal.Decimal `gorm:"type:decimal(36,18);not null" json:"contribution_amount"`     // 每期供款金额
	Currency            string          `gorm:"type:varchar(16);not null;default:AXM" json:"currency"`       // 币种
	CycleLengthDays     int             `gorm:"type:integer;not null" json:"cycle_length_days"`              // 周期长度 (天)
	MemberCount         int             `gorm:"type:integer;not null;default:0" json:"member_count"`         // 当前成员数
	MinMembersToActivate int            `gorm:"type:integer;not null;default:3" json:"min_members_to_activate"` // 激活所需最少成员
	MaxMembers          int             `gorm:"type:integer;not null;default:50" json:"max_members"`         // 最大成员数
	Active              bool            `gorm:"not null;default:true" json:"active"`                         // 是否激活
	GraduatedToPoolID   *int64          `gorm:"type:bigint" json:"graduated_to_pool_id"`                     // 毕业后的链上池ID (一次写入)
	GraduationTxHash    *string         `gorm:"type:varchar(128)" json:"graduation_tx_hash"`                 // 毕业交易哈希 (可能尚未上链)
	GraduatedAt         *int64          `gorm:"type:bigint" json:"graduated_at"`                             // 毕业时间
	CreatedBy           string          `gorm:"type:varchar(64);not null" json:"created_by"`                 // 创建者钱包地址
	CreatedAt           int64           `gorm:"type:bigint;not null;autoCreateTime:milli" json:"created_at"` // 创建时间
	UpdatedAt           int64           `gorm:"type:bigint;not null;autoUpdateTime:milli" json:"updated_at"` // 更新时间
}

// TableName 返回表名
func (PurposeGroup) TableName() string {
	return "susu_purpose_groups"
}

// IsGraduated 检查小组是否已毕业
func (g *PurposeGroup) IsGraduated() bool {
	return g.GraduatedToPoolID != nil
}

// GroupStatus 小组生命周期状态 (由毕业列派生的显式视图)
type GroupStatus struct {
	Graduated   bool    `json:"graduated"`
	PoolID      *int64  `json:"pool_id,omitempty"`
	TxHash      *string `json:"tx_hash,omitempty"`
	GraduatedAt *int64  `json:"graduated_at,omitempty"`
}

// Status 返回小组的生命周期状态
func (g *PurposeGroup) Status() GroupStatus {
	if !g.IsGraduated() {
		return GroupStatus{Graduated: false}
	}
	return GroupStatus{
		Graduated:   true,
		PoolID:      g.GraduatedToPoolID,
		TxHash:      g.GraduationTxHash,
		GraduatedAt: g.GraduatedAt,
	}
}

// GroupMember 小组成员关系
type GroupMember struct {
	ID                  int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID             int64      `gorm:"not null;uniqueIndex:idx_group_member,priority:1" json:"group_id"` // 小组ID
	UserID              string     `gorm:"type:varchar(64);not null;uniqueIndex:idx_group_member,priority:2" json:"user_id"` // 用户钱包地址
	Role                MemberRole `gorm:"type:smallint;not null;default:2" json:"role"`                     // 角色 (创建者为组织者)
	WalletConnected     bool       `gorm:"not null;default:false" json:"wallet_connected"`                   // 是否已连接钱包
	CommitmentConfirmed bool       `gorm:"not null;default:false" json:"commitment_confirmed"`               // 是否已确认承诺
	JoinedAt            int64      `gorm:"type:bigint;not null;autoCreateTime:milli" json:"joined_at"`       // 加入时间
}

// TableName 返回表名
func (GroupMember) TableName() string {
	return "susu_group_members"
}
