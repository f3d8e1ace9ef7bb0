package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/axiomcity/axiom-susu/internal/dto"
	"github.com/axiomcity/axiom-susu/internal/service"
)

// GraduationHandler 毕业处理器
type GraduationHandler struct {
	svc *service.GraduationService
}

// NewGraduationHandler 创建毕业处理器
func NewGraduationHandler(svc *service.GraduationService) *GraduationHandler {
	return &GraduationHandler{svc: svc}
}

// Status 获取毕业就绪度
// GET /api/susu/groups/:id/graduation-status
func (h *GraduationHandler) Status(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	status, err := h.svc.Status(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, status)
}

// Graduate 执行毕业
// POST /api/susu/groups/:id/graduate
func (h *GraduationHandler) Graduate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.GraduateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	result, err := h.svc.Graduate(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, result)
}
