// Package model 定义 SUSU 服务的数据模型
package model

// HubRegionKind 地区类型
type HubRegionKind int8

const (
	HubRegionKindState   HubRegionKind = 1 // 州
	HubRegionKindCity    HubRegionKind = 2 // 城市
	HubRegionKindCountry HubRegionKind = 3 // 国家 (侨民社区)
)

// String 返回地区类型的字符串表示
func (k HubRegionKind) String() string {
	switch k {
	case HubRegionKindState:
		return "state"
	case HubRegionKindCity:
		return "city"
	case HubRegionKindCountry:
		return "country"
	default:
		return "unknown"
	}
}

// ParseHubRegionKind 解析地区类型字符串
func ParseHubRegionKind(s string) (HubRegionKind, bool) {
	switch s {
	case "state":
		return HubRegionKindState, true
	case "city":
		return HubRegionKindCity, true
	case "country":
		return HubRegionKindCountry, true
	default:
		return 0, false
	}
}

// InterestHub 地区兴趣社区
type InterestHub struct {
	ID          int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	RegionID    string        `gorm:"type:varchar(64);uniqueIndex;not null" json:"region_id"`      // 地区唯一标识 (如 us-california)
	Name        string        `gorm:"type:varchar(128);not null" json:"name"`                      // 展示名称
	RegionKind  HubRegionKind `gorm:"type:smallint;not null" json:"region_kind"`                   // 地区类型
	MemberCount int           `gorm:"type:integer;not null;default:0" json:"member_count"`         // 成员数
	Active      bool          `gorm:"not null;default:true" json:"active"`                         // 是否激活 (停用不删除)
	CreatedAt   int64         `gorm:"type:bigint;not null;autoCreateTime:milli" json:"created_at"` // 创建时间
	UpdatedAt   int64         `gorm:"type:bigint;not null;autoUpdateTime:milli" json:"updated_at"` // 更新时间
}

// TableName 返回表名
func (InterestHub) TableName() string {
	return "susu_interest_hubs"
}

// HubMember 社区成员关系
type HubMember struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	HubID     int64      `gorm:"not null;uniqueIndex:idx_hub_member,priority:1" json:"hub_id"`  // 社区ID
	UserID    string     `gorm:"type:varchar(64);not null;uniqueIndex:idx_hub_member,priority:2" json:"user_id"` // 用户钱包地址
	Role      MemberRole `gorm:"type:smallint;not null;default:2" json:"role"`                  // 角色
	JoinedAt  int64      `gorm:"type:bigint;not null;autoCreateTime:milli" json:"joined_at"`    // 加入时间
}

// TableName 返回表名
func (HubMember) TableName() string {
	return "susu_hub_members"
}
