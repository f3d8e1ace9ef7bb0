package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/axiomcity/axiom-susu/internal/dto"
)

const (
	// AdminWalletHeader 管理员钱包地址请求头
	AdminWalletHeader = "x-wallet-address"
	// AdminWalletKey context 中的管理员钱包键名
	AdminWalletKey = "admin_wallet"
)

// AdminAuth 返回管理员鉴权中间件。
// 请求头中的钱包地址必须在白名单内, 比较不区分大小写。
func AdminAuth(allowedWallets []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedWallets))
	for _, wallet := range allowedWallets {
		allowed[strings.ToLower(wallet)] = true
	}

	return func(c *gin.Context) {
		wallet := strings.ToLower(strings.TrimSpace(c.GetHeader(AdminWalletHeader)))
		if wallet == "" {
			c.AbortWithStatusJSON(dto.ErrUnauthorized.HTTPStatus, dto.NewErrorResponse(dto.ErrUnauthorized))
			return
		}
		if !allowed[wallet] {
			c.AbortWithStatusJSON(dto.ErrForbidden.HTTPStatus, dto.NewErrorResponse(dto.ErrForbidden))
			return
		}

		c.Set(AdminWalletKey, wallet)
		c.Next()
	}
}
