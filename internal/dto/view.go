package dto

import (
	"github.com/shopspring/decimal"

	"github.com/axiomcity/axiom-susu/internal/model"
)

// HubView 社区视图
type HubView struct {
	ID          int64  `json:"id"`
	RegionID    string `json:"regionId"`
	Name        string `json:"name"`
	RegionKind  string `json:"regionKind"`
	MemberCount int    `json:"memberCount"`
	Active      bool   `json:"active"`
	CreatedAt   int64  `json:"createdAt"`
}

// NewHubView 由模型构造社区视图
func NewHubView(h *model.InterestHub) *HubView {
	return &HubView{
		ID:          h.ID,
		RegionID:    h.RegionID,
		Name:        h.Name,
		RegionKind:  h.RegionKind.String(),
		MemberCount: h.MemberCount,
		Active:      h.Active,
		CreatedAt:   h.CreatedAt,
	}
}

// GroupView 小组视图
type GroupView struct {
	ID                   int64             `json:"id"`
	HubID                int64             `json:"hubId"`
	PurposeCategoryID    int64             `json:"purposeCategoryId"`
	Name                 string            `json:"name"`
	ContributionAmount   decimal.Decimal   `json:"contributionAmount"`
	Currency             string            `json:"currency"`
	CycleLengthDays      int               `json:"cycleLengthDays"`
	MemberCount          int               `json:"memberCount"`
	MinMembersToActivate int               `json:"minMembersToActivate"`
	MaxMembers           int               `json:"maxMembers"`
	Status               model.GroupStatus `json:"status"`
	GraduatedToPoolID    *int64            `json:"graduatedToPoolId,omitempty"`
	GraduationTxHash     *string           `json:"graduationTxHash,omitempty"`
	CreatedBy            string            `json:"createdBy"`
	CreatedAt            int64             `json:"createdAt"`
}

// NewGroupView 由模型构造小组视图
func NewGroupView(g *model.PurposeGroup) *GroupView {
	return &GroupView{
		ID:                   g.ID,
		HubID:                g.HubID,
		PurposeCategoryID:    g.PurposeCategoryID,
		Name:                 g.Name,
		ContributionAmount:   g.ContributionAmount,
		Currency:             g.Currency,
		CycleLengthDays:      g.CycleLengthDays,
		MemberCount:          g.MemberCount,
		MinMembersToActivate: g.MinMembersToActivate,
		MaxMembers:           g.MaxMembers,
		Status:               g.Status(),
		GraduatedToPoolID:    g.GraduatedToPoolID,
		GraduationTxHash:     g.GraduationTxHash,
		CreatedBy:            g.CreatedBy,
		CreatedAt:            g.CreatedAt,
	}
}

// CharterView 章程视图
type CharterView struct {
	ID            int64  `json:"id"`
	GroupID       int64  `json:"groupId"`
	PoolID        int64  `json:"poolId"`
	Version       int    `json:"version"`
	Mode          string `json:"mode"`
	CharterText   string `json:"charterText"`
	CharterHash   string `json:"charterHash"`
	EffectiveDate int64  `json:"effectiveDate"`
	CreatedAt     int64  `json:"createdAt"`
}

// NewCharterView 由模型构造章程视图
func NewCharterView(c *model.Charter) *CharterView {
	return &CharterView{
		ID:            c.ID,
		GroupID:       c.GroupID,
		PoolID:        c.PoolID,
		Version:       c.Version,
		Mode:          c.Mode.String(),
		CharterText:   c.CharterText,
		CharterHash:   c.CharterHash,
		EffectiveDate: c.EffectiveDate,
		CreatedAt:     c.CreatedAt,
	}
}

// ModeDetectResult 模式分类结果
type ModeDetectResult struct {
	Mode                 string            `json:"mode"`
	RiskScore            int               `json:"riskScore"`
	CapitalModeTriggered bool              `json:"capitalModeTriggered"`
	TotalPotEstimate     decimal.Decimal   `json:"totalPotEstimate"`
	Factors              []FactorBreakdown `json:"factors"`
	TriggerReasons       []string          `json:"triggerReasons"`
}

// FactorBreakdown 单项风险因子明细
type FactorBreakdown struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
	Weight    float64 `json:"weight"`
	Score     float64 `json:"score"`
	Breached  bool    `json:"breached"`
}

// ReliabilityView 可靠性画像视图
type ReliabilityView struct {
	UserID              string  `json:"userId"`
	PoolsJoined         int     `json:"poolsJoined"`
	PoolsCompleted      int     `json:"poolsCompleted"`
	TotalContributions  int     `json:"totalContributions"`
	OnTimeContributions int     `json:"onTimeContributions"`
	LateContributions   int     `json:"lateContributions"`
	MissedContributions int     `json:"missedContributions"`
	EarlyExits          int     `json:"earlyExits"`
	Ejections           int     `json:"ejections"`
	ReliabilityScore    float64 `json:"reliabilityScore"`
	UpdatedAt           int64   `json:"updatedAt"`
}

// NewReliabilityView 由模型构造可靠性视图
func NewReliabilityView(p *model.ReliabilityProfile) *ReliabilityView {
	return &ReliabilityView{
		UserID:              p.UserID,
		PoolsJoined:         p.PoolsJoined,
		PoolsCompleted:      p.PoolsCompleted,
		TotalContributions:  p.TotalContributions,
		OnTimeContributions: p.OnTime,
		LateContributions:   p.Late,
		MissedContributions: p.Missed,
		EarlyExits:          p.EarlyExits,
		Ejections:           p.Ejections,
		ReliabilityScore:    p.ReliabilityScore,
		UpdatedAt:           p.UpdatedAt,
	}
}

// BasicReadiness 基础毕业就绪度
type BasicReadiness struct {
	MinMembersMet        bool `json:"minMembersMet"`
	WalletsConnected     bool `json:"walletsConnected"`
	CommitmentsConfirmed bool `json:"commitmentsConfirmed"`
	Score                int  `json:"score"`
}

// FactorProgress 风险因子进度条
type FactorProgress struct {
	Name      string  `json:"name"`
	Current   float64 `json:"current"`
	Threshold float64 `json:"threshold"`
	Progress  float64 `json:"progress"` // 百分比, 上限 100
}

// GraduationStatus 毕业状态视图
type GraduationStatus struct {
	GroupID                 int64            `json:"groupId"`
	Graduated               bool             `json:"graduated"`
	PoolID                  *int64           `json:"poolId,omitempty"`
	Mode                    string           `json:"mode"`
	RiskScore               int              `json:"riskScore"`
	BasicReadiness          BasicReadiness   `json:"basicReadiness"`
	CapitalModeProgress     []FactorProgress `json:"capitalModeProgress"`
	IsReadyToGraduate       bool             `json:"isReadyToGraduate"`
	EstimatedGraduationDays int              `json:"estimatedGraduationDays"`
}

// GraduateResult 毕业操作结果
type GraduateResult struct {
	GroupID        int64   `json:"groupId"`
	PoolID         int64   `json:"poolId"`
	TxHash         *string `json:"txHash,omitempty"`
	Mode           string  `json:"mode"`
	RiskScore      int     `json:"riskScore"`
	CharterID      int64   `json:"charterId"`
	CharterHash    string  `json:"charterHash"`
	CharterVersion int     `json:"charterVersion"`
	GraduatedAt    int64   `json:"graduatedAt"`
}

// GroupHealth 小组健康度视图
type GroupHealth struct {
	GroupID              int64   `json:"groupId"`
	MemberCount          int     `json:"memberCount"`
	MinMembersToActivate int     `json:"minMembersToActivate"`
	MaxMembers           int     `json:"maxMembers"`
	FillRate             float64 `json:"fillRate"`
	WalletsConnected     int     `json:"walletsConnected"`
	CommitmentsConfirmed int     `json:"commitmentsConfirmed"`
	AvgReliabilityScore  float64 `json:"avgReliabilityScore"`
	Status               string  `json:"status"`
}

// AdminStats 运营统计视图
type AdminStats struct {
	TotalHubs       int64            `json:"totalHubs"`
	TotalGroups     int64            `json:"totalGroups"`
	GraduatedGroups int64            `json:"graduatedGroups"`
	EventFunnel     map[string]int64 `json:"eventFunnel"`
	ConversionRate  float64          `json:"conversionRate"`
	GraduationRate  float64          `json:"graduationRate"`
}
