package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/axiomcity/axiom-susu/internal/dto"
	"github.com/axiomcity/axiom-susu/internal/middleware"
	"github.com/axiomcity/axiom-susu/internal/service"
)

// AdminHandler 运营管理处理器
type AdminHandler struct {
	svc    *service.AdminService
	seeder func(c *gin.Context) error
}

// NewAdminHandler 创建运营管理处理器
func NewAdminHandler(svc *service.AdminService, seeder func(c *gin.Context) error) *AdminHandler {
	return &AdminHandler{
		svc:    svc,
		seeder: seeder,
	}
}

// adminWallet 从 context 取鉴权中间件写入的管理员钱包
func adminWallet(c *gin.Context) string {
	wallet, _ := c.Get(middleware.AdminWalletKey)
	if w, ok := wallet.(string); ok {
		return w
	}
	return ""
}

// GetThresholds 获取当前生效阈值
// GET /api/susu/admin/thresholds
func (h *AdminHandler) GetThresholds(c *gin.Context) {
	thresholds, err := h.svc.GetThresholds(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, thresholds)
}

// SetThreshold 设置阈值
// PUT /api/susu/admin/thresholds
func (h *AdminHandler) SetThreshold(c *gin.Context) {
	var req dto.SetThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	if err := h.svc.SetThreshold(c.Request.Context(), &req, adminWallet(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, gin.H{"key": req.Key, "value": req.Value})
}

// ListMultipliers 获取目的类别乘数
// GET /api/susu/admin/multipliers
func (h *AdminHandler) ListMultipliers(c *gin.Context) {
	multipliers, err := h.svc.ListMultipliers(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, multipliers)
}

// SetMultiplier 设置目的类别乘数
// PUT /api/susu/admin/multipliers
func (h *AdminHandler) SetMultiplier(c *gin.Context) {
	var req dto.SetMultiplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	if err := h.svc.SetMultiplier(c.Request.Context(), &req, adminWallet(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, gin.H{"purposeCategoryId": req.PurposeCategoryID, "multiplier": req.Multiplier})
}

// ListFeatureFlags 获取功能开关
// GET /api/susu/admin/feature-flags
func (h *AdminHandler) ListFeatureFlags(c *gin.Context) {
	flags, err := h.svc.ListFeatureFlags(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, flags)
}

// SetFeatureFlag 设置功能开关
// PUT /api/susu/admin/feature-flags
func (h *AdminHandler) SetFeatureFlag(c *gin.Context) {
	var req dto.SetFeatureFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	if err := h.svc.SetFeatureFlag(c.Request.Context(), &req, adminWallet(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, gin.H{"key": req.Key, "enabled": req.Enabled})
}

// Stats 获取运营统计
// GET /api/susu/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, stats)
}

// SeedHubs 播种社区与类别目录 (幂等)
// POST /api/susu/admin/seed-hubs
func (h *AdminHandler) SeedHubs(c *gin.Context) {
	if h.seeder == nil {
		Error(c, dto.ErrServiceUnavailable)
		return
	}

	if err := h.seeder(c); err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, gin.H{"seeded": true})
}
