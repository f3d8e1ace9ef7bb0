package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/axiomcity/axiom-susu/internal/dto"
	"github.com/axiomcity/axiom-susu/internal/service"
)

// ModeHandler 模式分类处理器
type ModeHandler struct {
	svc *service.ModeService
}

// NewModeHandler 创建模式分类处理器
func NewModeHandler(svc *service.ModeService) *ModeHandler {
	return &ModeHandler{svc: svc}
}

// Detect 对候选小组参数做模式分类 (无副作用, 可重复调用)
// POST /api/susu/mode-detect
func (h *ModeHandler) Detect(c *gin.Context) {
	var req dto.ModeDetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	result, err := h.svc.Detect(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, result)
}
