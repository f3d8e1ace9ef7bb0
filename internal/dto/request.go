package dto

import (
	"github.com/shopspring/decimal"
)

// CreateHubRequest 创建社区请求
type CreateHubRequest struct {
	RegionID   string `json:"regionId"`
	Name       string `json:"name"`
	RegionKind string `json:"regionKind"` // state / city / country
}

// JoinHubRequest 加入社区请求
type JoinHubRequest struct {
	WalletAddress string `json:"walletAddress"`
}

// CreateGroupRequest 创建小组请求
type CreateGroupRequest struct {
	HubID                int64           `json:"hubId"`
	PurposeCategoryID    int64           `json:"purposeCategoryId"`
	ContributionAmount   decimal.Decimal `json:"contributionAmount"`
	Currency             string          `json:"currency"`
	CycleLengthDays      int             `json:"cycleLengthDays"`
	MinMembersToActivate int             `json:"minMembersToActivate"`
	MaxMembers           int             `json:"maxMembers"`
	WalletAddress        string          `json:"walletAddress"`
}

// JoinGroupRequest 加入小组请求
type JoinGroupRequest struct {
	WalletAddress string `json:"walletAddress"`
}

// GraduateRequest 毕业请求
type GraduateRequest struct {
	WalletAddress string  `json:"walletAddress"`
	PoolID        *int64  `json:"poolId"`
	TxHash        *string `json:"txHash"`
}

// ModeDetectRequest 模式分类请求
type ModeDetectRequest struct {
	ContributionAmount decimal.Decimal `json:"contributionAmount"`
	MemberCount        int             `json:"memberCount"`
	CycleLengthDays    int             `json:"cycleLengthDays"`
	PurposeCategoryID  *int64          `json:"purposeCategoryId"`
}

// CreateCharterRequest 生成章程请求
type CreateCharterRequest struct {
	GroupID               int64           `json:"groupId"`
	PoolID                int64           `json:"poolId"`
	Purpose               string          `json:"purpose"`
	Category              string          `json:"category"`
	ContributionAmount    decimal.Decimal `json:"contributionAmount"`
	ContributionFrequency string          `json:"contributionFrequency"`
	MemberCount           int             `json:"memberCount"`
	RotationMethod        string          `json:"rotationMethod"`
	GracePeriodDays       int             `json:"gracePeriodDays"`
	ExitPolicy            string          `json:"exitPolicy"`
	DisputePolicy         string          `json:"disputePolicy"`
	CustodyModel          string          `json:"custodyModel"`
	Mode                  string          `json:"mode"`
}

// AcceptCharterRequest 接受章程请求
type AcceptCharterRequest struct {
	CharterID       int64  `json:"charterId"`
	WalletAddress   string `json:"walletAddress"`
	WalletSignature string `json:"walletSignature"`
}

// ReliabilityEventRequest 可靠性事件请求
type ReliabilityEventRequest struct {
	WalletAddress string `json:"walletAddress"`
	Event         string `json:"event"`
}

// RecordContributionRequest 记录供款请求
type RecordContributionRequest struct {
	WalletAddress string          `json:"walletAddress"`
	CycleNumber   int             `json:"cycleNumber"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       int64           `json:"dueDate"`
	Status        string          `json:"status"` // paid / late / missed / pending
}

// SetThresholdRequest 设置阈值请求
type SetThresholdRequest struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// SetMultiplierRequest 设置类别乘数请求
type SetMultiplierRequest struct {
	PurposeCategoryID int64   `json:"purposeCategoryId"`
	Multiplier        float64 `json:"multiplier"`
}

// SetFeatureFlagRequest 设置功能开关请求
type SetFeatureFlagRequest struct {
	Key         string `json:"key"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description"`
}
