// Package charter 提供章程文本渲染与规范化哈希
package charter

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// 默认条款
const (
	DefaultRotationMethod  = "sequential"
	DefaultGracePeriodDays = 3
	DefaultCustodyModel    = "non-custodial"

	defaultExitPolicy    = "Members may exit the pool before receiving their payout. Exiting after receiving payout forfeits future participation in this pool."
	defaultDisputePolicy = "Disputes are handled through the Axiom SUSU support system. All parties agree to abide by the resolution process."
)

// capitalDisclosures 资本模式附加披露, 逐字附加, 不得省略或改写
const capitalDisclosures = `

CAPITAL MODE ENHANCED DISCLOSURES:
- This pool involves higher value amounts and is subject to enhanced governance requirements.
- All members must acknowledge additional risk disclosures before participation.
- Dispute escalation paths are mandatory and binding.
- Transaction records are permanently logged for compliance purposes.`

// Params 章程参数
type Params struct {
	Purpose               string
	Category              string
	ContributionAmount    decimal.Decimal
	ContributionFrequency string
	MemberCount           int
	RotationMethod        string
	GracePeriodDays       int
	ExitPolicy            string
	DisputePolicy         string
	CustodyModel          string
	Mode                  string // community / capital
	Version               int
}

// applyDefaults 填充缺省条款
func (p *Params) applyDefaults() {
	if p.RotationMethod == "" {
		p.RotationMethod = DefaultRotationMethod
	}
	if p.GracePeriodDays <= 0 {
		p.GracePeriodDays = DefaultGracePeriodDays
	}
	if p.CustodyModel == "" {
		p.CustodyModel = DefaultCustodyModel
	}
	if p.ExitPolicy == "" {
		p.ExitPolicy = defaultExitPolicy
	}
	if p.DisputePolicy == "" {
		p.DisputePolicy = defaultDisputePolicy
	}
	if p.Mode == "" {
		p.Mode = "community"
	}
}

// Rendered 生成结果
type Rendered struct {
	CharterText   string // 最终文本 (占位符已替换)
	CharterHash   string // 0x + 小写 hex SHA-256
	CanonicalJSON string // 哈希输入 (键名字典序)
	Version       int
	EffectiveDate time.Time
}

// Generate 渲染章程并计算规范化哈希。
// 哈希覆盖规范化参数对象的 JSON 序列化, 键按字典序排列,
// 与插入顺序无关 — 相同逻辑参数必然得到相同哈希。
func Generate(p Params, effectiveDate time.Time) *Rendered {
	p.applyDefaults()

	canonical := canonicalJSON(p)
	sum := sha256.Sum256([]byte(canonical))
	hash := "0x" + hex.EncodeToString(sum[:])

	text := renderText(p)
	text = strings.Replace(text, "[HASH_PLACEHOLDER]", hash, 1)
	text = strings.Replace(text, "[DATE_PLACEHOLDER]", effectiveDate.UTC().Format(time.RFC3339), 1)
	text = strings.Replace(text, "[VERSION_PLACEHOLDER]", fmt.Sprintf("%d", p.Version), 1)

	return &Rendered{
		CharterText:   text,
		CharterHash:   hash,
		CanonicalJSON: canonical,
		Version:       p.Version,
		EffectiveDate: effectiveDate,
	}
}

// canonicalJSON 序列化规范化参数快照。map 经 encoding/json
// 序列化时键名按字典序输出, 即为所需的规范形式。
func canonicalJSON(p Params) string {
	snapshot := map[string]interface{}{
		"purpose":               p.Purpose,
		"category":              p.Category,
		"contributionAmount":    json.Number(p.ContributionAmount.String()),
		"contributionFrequency": p.ContributionFrequency,
		"rotationMethod":        p.RotationMethod,
		"gracePeriodDays":       p.GracePeriodDays,
		"custodyModel":          p.CustodyModel,
		"mode":                  p.Mode,
		"version":               p.Version,
	}
	data, _ := json.Marshal(snapshot)
	return string(data)
}

// renderText 按固定模板渲染章程正文
func renderText(p Params) string {
	rotationNote := "randomized at pool creation"
	if p.RotationMethod == "sequential" {
		rotationNote = "fixed and predetermined"
	}

	custodyNote := "- Funds are held in smart contract escrow with rule-based release. Axiom cannot withdraw funds."
	if p.CustodyModel == "non-custodial" {
		custodyNote = "- Funds are transferred directly between members through smart contract. Axiom does not hold or control member funds."
	}

	modeDisclosure := ""
	if p.Mode == "capital" {
		modeDisclosure = capitalDisclosures
	}

	totalPool := p.ContributionAmount.Mul(decimal.NewFromInt(int64(p.MemberCount)))

	return fmt.Sprintf(`AXIOM SUSU POOL CHARTER

PURPOSE: %s
CATEGORY: %s
MODE: %s MODE

1. CONTRIBUTION TERMS
   - Amount: %s per %s
   - Total Members: %d
   - Total Pool Value: %s

2. ROTATION METHOD
   - Method: %s
   - Payout order is %s

3. GRACE PERIOD
   - Members have %d days after the due date to make contributions
   - Late contributions may affect reliability score

4. EXIT POLICY
   %s

5. DISPUTE RESOLUTION
   %s

6. CUSTODY MODEL
   - Model: %s
   %s

7. RISK ACKNOWLEDGEMENT
   - This is a peer-to-peer rotating savings arrangement
   - There is no guarantee of returns or profit
   - Members assume the risk of non-payment by other members
   - This is not a bank account, investment, or insured product
%s

By participating in this SUSU pool, all members agree to these terms.

Charter Hash: [HASH_PLACEHOLDER]
Effective Date: [DATE_PLACEHOLDER]
Version: [VERSION_PLACEHOLDER]
`,
		p.Purpose,
		p.Category,
		strings.ToUpper(p.Mode),
		p.ContributionAmount.String(),
		p.ContributionFrequency,
		p.MemberCount,
		totalPool.String(),
		p.RotationMethod,
		rotationNote,
		p.GracePeriodDays,
		p.ExitPolicy,
		p.DisputePolicy,
		p.CustodyModel,
		custodyNote,
		modeDisclosure,
	)
}
