package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/axiomcity/axiom-susu/internal/dto"
	"github.com/axiomcity/axiom-susu/internal/service"
)

// CharterHandler 章程处理器
type CharterHandler struct {
	svc *service.CharterService
}

// NewCharterHandler 创建章程处理器
func NewCharterHandler(svc *service.CharterService) *CharterHandler {
	return &CharterHandler{svc: svc}
}

// ListCharters 获取章程列表 (版本降序)
// GET /api/susu/charters?group_id=&pool_id=
func (h *CharterHandler) ListCharters(c *gin.Context) {
	groupID, _ := strconv.ParseInt(c.Query("group_id"), 10, 64)
	poolID, _ := strconv.ParseInt(c.Query("pool_id"), 10, 64)
	if groupID == 0 && poolID == 0 {
		BadRequest(c, "group_id or pool_id is required")
		return
	}

	charters, err := h.svc.ListCharters(c.Request.Context(), groupID, poolID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, charters)
}

// GetCharter 获取章程详情
// GET /api/susu/charters/:id
func (h *CharterHandler) GetCharter(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	charter, err := h.svc.GetCharter(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, charter)
}

// CreateCharter 生成章程
// POST /api/susu/charters
func (h *CharterHandler) CreateCharter(c *gin.Context) {
	var req dto.CreateCharterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	charter, err := h.svc.Generate(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, charter)
}

// Accept 接受章程
// POST /api/susu/charter-accept
func (h *CharterHandler) Accept(c *gin.Context) {
	var req dto.AcceptCharterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}
	if req.CharterID <= 0 {
		BadRequest(c, "charterId is required")
		return
	}

	if err := h.svc.Accept(c.Request.Context(), &req, c.ClientIP()); err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, gin.H{"charterId": req.CharterID, "accepted": true})
}

// ListAcceptances 获取章程接受记录
// GET /api/susu/charter-accept?charter_id=
func (h *CharterHandler) ListAcceptances(c *gin.Context) {
	charterID, _ := strconv.ParseInt(c.Query("charter_id"), 10, 64)
	if charterID <= 0 {
		BadRequest(c, "charter_id is required")
		return
	}

	acceptances, err := h.svc.ListAcceptances(c.Request.Context(), charterID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, acceptances)
}
