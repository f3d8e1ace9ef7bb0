// Package service 实现互助会生命周期的业务逻辑
package service

import (
	"math"
	"regexp"
)

// walletAddrPattern 钱包地址格式 (0x + 40 位十六进制)
var walletAddrPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// IsValidWalletAddress 校验钱包地址格式
func IsValidWalletAddress(addr string) bool {
	return walletAddrPattern.MatchString(addr)
}

// isFiniteNonNegative 校验阈值与乘数取值
func isFiniteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
