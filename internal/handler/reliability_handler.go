package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/axiomcity/axiom-susu/internal/dto"
	"github.com/axiomcity/axiom-susu/internal/service"
)

// ReliabilityHandler 可靠性评分处理器
type ReliabilityHandler struct {
	svc *service.ReliabilityService
}

// NewReliabilityHandler 创建可靠性评分处理器
func NewReliabilityHandler(svc *service.ReliabilityService) *ReliabilityHandler {
	return &ReliabilityHandler{svc: svc}
}

// GetProfile 获取用户可靠性画像
// GET /api/susu/reliability?wallet=0x...
func (h *ReliabilityHandler) GetProfile(c *gin.Context) {
	wallet := c.Query("wallet")
	if wallet == "" {
		BadRequest(c, "wallet is required")
		return
	}

	profile, err := h.svc.GetProfile(c.Request.Context(), wallet)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, profile)
}

// ApplyEvent 应用可靠性事件
// POST /api/susu/reliability
func (h *ReliabilityHandler) ApplyEvent(c *gin.Context) {
	var req dto.ReliabilityEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	profile, err := h.svc.ApplyEvent(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, profile)
}
