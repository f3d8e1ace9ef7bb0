package model

// Charter 章程 (插入后不可变, 修订产生新版本)
type Charter struct {
	ID            int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID       int64    `gorm:"not null;uniqueIndex:idx_charter_scope_version,priority:1" json:"group_id"` // 小组ID
	PoolID        int64    `gorm:"not null;uniqueIndex:idx_charter_scope_version,priority:2" json:"pool_id"`  // 链上池ID (0 表示尚未绑定)
	Version       int      `gorm:"type:integer;not null;uniqueIndex:idx_charter_scope_version,priority:3" json:"version"` // 版本号 (每 scope 严格递增)
	Mode          PoolMode `gorm:"type:smallint;not null" json:"mode"`                          // 模式分类
	ParamsJSON    string   `gorm:"type:text;not null" json:"params_json"`                       // 规范化参数快照 (键名字典序)
	CharterText   string   `gorm:"type:text;not null" json:"charter_text"`                      // 渲染后的章程文本
	CharterHash   string   `gorm:"type:varchar(80);not null;index" json:"charter_hash"`         // 0x + SHA-256 (hex, 小写)
	EffectiveDate int64    `gorm:"type:bigint;not null" json:"effective_date"`                  // 生效时间
	CreatedAt     int64    `gorm:"type:bigint;not null;autoCreateTime:milli" json:"created_at"` // 创建时间
}

// TableName 返回表名
func (Charter) TableName() string {
	return "susu_charters"
}

// CharterAcceptance 章程接受记录 (审计用, 每版本每用户唯一)
type CharterAcceptance struct {
	ID              int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	CharterID       int64  `gorm:"not null;uniqueIndex:idx_charter_user,priority:1" json:"charter_id"` // 章程ID
	UserID          string `gorm:"type:varchar(64);not null;uniqueIndex:idx_charter_user,priority:2" json:"user_id"` // 用户钱包地址
	WalletSignature string `gorm:"type:varchar(256)" json:"wallet_signature"`                   // 钱包签名
	RequestIP       string `gorm:"type:varchar(64)" json:"request_ip"`                          // 请求来源IP
	AcceptedAt      int64  `gorm:"type:bigint;not null;autoCreateTime:milli" json:"accepted_at"` // 接受时间
}

// TableName 返回表名
func (CharterAcceptance) TableName() string {
	return "susu_charter_acceptances"
}
