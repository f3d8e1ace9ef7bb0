package charter

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleParams() Params {
	return Params{
		Purpose:               "Emergency Fund Circle #1",
		Category:              "Emergency Fund",
		ContributionAmount:    decimal.NewFromInt(500),
		ContributionFrequency: "30 days",
		MemberCount:           5,
		Mode:                  "community",
		Version:               1,
	}
}

func TestGenerate_DeterministicHash(t *testing.T) {
	// 相同逻辑参数多次生成得到相同哈希 (键序无关)
	now := time.Now()
	first := Generate(sampleParams(), now)
	for i := 0; i < 5; i++ {
		again := Generate(sampleParams(), now)
		assert.Equal(t, first.CharterHash, again.CharterHash)
		assert.Equal(t, first.CanonicalJSON, again.CanonicalJSON)
	}
}

func TestGenerate_HashFormat(t *testing.T) {
	r := Generate(sampleParams(), time.Now())

	// 0x + 64 位小写 hex
	require.Len(t, r.CharterHash, 66)
	assert.True(t, strings.HasPrefix(r.CharterHash, "0x"))
	assert.Equal(t, strings.ToLower(r.CharterHash), r.CharterHash)
}

func TestGenerate_HashChangesWithParams(t *testing.T) {
	now := time.Now()
	base := Generate(sampleParams(), now)

	p := sampleParams()
	p.ContributionAmount = decimal.NewFromInt(501)
	assert.NotEqual(t, base.CharterHash, Generate(p, now).CharterHash)

	p = sampleParams()
	p.Version = 2
	assert.NotEqual(t, base.CharterHash, Generate(p, now).CharterHash)

	p = sampleParams()
	p.Mode = "capital"
	assert.NotEqual(t, base.CharterHash, Generate(p, now).CharterHash)
}

func TestGenerate_CanonicalKeysSorted(t *testing.T) {
	r := Generate(sampleParams(), time.Now())

	keys := []string{"category", "contributionAmount", "contributionFrequency",
		"custodyModel", "gracePeriodDays", "mode", "purpose", "rotationMethod", "version"}
	prev := -1
	for _, k := range keys {
		idx := strings.Index(r.CanonicalJSON, `"`+k+`"`)
		require.GreaterOrEqual(t, idx, 0, "missing key %s", k)
		assert.Greater(t, idx, prev, "key %s out of order", k)
		prev = idx
	}
}

func TestGenerate_PlaceholdersReplaced(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := Generate(sampleParams(), now)

	assert.NotContains(t, r.CharterText, "[HASH_PLACEHOLDER]")
	assert.NotContains(t, r.CharterText, "[DATE_PLACEHOLDER]")
	assert.NotContains(t, r.CharterText, "[VERSION_PLACEHOLDER]")
	assert.Contains(t, r.CharterText, "Charter Hash: "+r.CharterHash)
	assert.Contains(t, r.CharterText, "Effective Date: 2026-03-01T12:00:00Z")
	assert.Contains(t, r.CharterText, "Version: 1")
}

func TestGenerate_CommunityOmitsDisclosures(t *testing.T) {
	r := Generate(sampleParams(), time.Now())

	assert.Contains(t, r.CharterText, "AXIOM SUSU POOL CHARTER")
	assert.Contains(t, r.CharterText, "MODE: COMMUNITY MODE")
	assert.NotContains(t, r.CharterText, "CAPITAL MODE ENHANCED DISCLOSURES")
}

func TestGenerate_CapitalAppendsDisclosures(t *testing.T) {
	// 资本模式章程必须逐字附加披露块
	p := sampleParams()
	p.Mode = "capital"
	r := Generate(p, time.Now())

	assert.Contains(t, r.CharterText, "MODE: CAPITAL MODE")
	assert.Contains(t, r.CharterText, "CAPITAL MODE ENHANCED DISCLOSURES:")
	assert.Contains(t, r.CharterText, "Dispute escalation paths are mandatory and binding.")
	assert.Contains(t, r.CharterText, "Transaction records are permanently logged for compliance purposes.")
}

func TestGenerate_Defaults(t *testing.T) {
	p := sampleParams()
	r := Generate(p, time.Now())

	// 未指定时使用默认条款
	assert.Contains(t, r.CharterText, "Method: sequential")
	assert.Contains(t, r.CharterText, "fixed and predetermined")
	assert.Contains(t, r.CharterText, "Members have 3 days after the due date")
	assert.Contains(t, r.CharterText, "Model: non-custodial")
	assert.Contains(t, r.CharterText, "Axiom does not hold or control member funds")
	assert.Contains(t, r.CharterText, "Disputes are handled through the Axiom SUSU support system")
}

func TestGenerate_ContributionTerms(t *testing.T) {
	r := Generate(sampleParams(), time.Now())

	assert.Contains(t, r.CharterText, "Amount: 500 per 30 days")
	assert.Contains(t, r.CharterText, "Total Members: 5")
	assert.Contains(t, r.CharterText, "Total Pool Value: 2500")
}
