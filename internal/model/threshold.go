package model

// 模式阈值键名
const (
	ThresholdKeyContribution = "contribution_usd_max" // 单期供款上限 (USD)
	ThresholdKeyTotalPot     = "total_pot_usd_max"    // 资金池总额上限 (USD)
	ThresholdKeyGroupSize    = "group_size_max"       // 小组人数上限
	ThresholdKeyCycleLength  = "cycle_length_days_max" // 周期长度上限 (天)
	ThresholdKeyRiskScore    = "risk_score_max"       // 综合风险分上限
)

// ModeThreshold 模式分类阈值 (管理员可调, 覆盖写, 不保留历史)
type ModeThreshold struct {
	ID        int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Key       string  `gorm:"type:varchar(64);uniqueIndex;not null" json:"key"`            // 阈值键
	Value     float64 `gorm:"type:double precision;not null" json:"value"`                 // 阈值 (有限且 >= 0)
	UpdatedBy string  `gorm:"type:varchar(64)" json:"updated_by"`                          // 最近修改者
	CreatedAt int64   `gorm:"type:bigint;not null;autoCreateTime:milli" json:"created_at"` // 创建时间
	UpdatedAt int64   `gorm:"type:bigint;not null;autoUpdateTime:milli" json:"updated_at"` // 更新时间
}

// TableName 返回表名
func (ModeThreshold) TableName() string {
	return "susu_mode_thresholds"
}

// PurposeCategoryMultiplier 目的类别风险乘数 (>= 0, 默认 1.0)
type PurposeCategoryMultiplier struct {
	ID                int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	PurposeCategoryID int64   `gorm:"not null;uniqueIndex" json:"purpose_category_id"`             // 目的类别ID
	Multiplier        float64 `gorm:"type:double precision;not null;default:1.0" json:"multiplier"` // 风险乘数
	UpdatedBy         string  `gorm:"type:varchar(64)" json:"updated_by"`                          // 最近修改者
	CreatedAt         int64   `gorm:"type:bigint;not null;autoCreateTime:milli" json:"created_at"` // 创建时间
	UpdatedAt         int64   `gorm:"type:bigint;not null;autoUpdateTime:milli" json:"updated_at"` // 更新时间
}

// TableName 返回表名
func (PurposeCategoryMultiplier) TableName() string {
	return "susu_purpose_category_multipliers"
}

// FeatureFlag 功能开关
type FeatureFlag struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Key         string `gorm:"type:varchar(64);uniqueIndex;not null" json:"key"`            // 开关键
	Enabled     bool   `gorm:"not null;default:false" json:"enabled"`                       // 是否启用
	Description string `gorm:"type:varchar(256)" json:"description"`                        // 说明
	UpdatedBy   string `gorm:"type:varchar(64)" json:"updated_by"`                          // 最近修改者
	CreatedAt   int64  `gorm:"type:bigint;not null;autoCreateTime:milli" json:"created_at"` // 创建时间
	UpdatedAt   int64  `gorm:"type:bigint;not null;autoUpdateTime:milli" json:"updated_at"` // 更新时间
}

// TableName 返回表名
func (FeatureFlag) TableName() string {
	return "susu_feature_flags"
}

// 功能开关键名
const (
	FlagGraduationEnabled = "graduation_enabled" // 毕业流程总开关
)
