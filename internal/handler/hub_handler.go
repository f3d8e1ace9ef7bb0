package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/axiomcity/axiom-susu/internal/dto"
	"github.com/axiomcity/axiom-susu/internal/service"
)

// HubHandler 地区社区处理器
type HubHandler struct {
	svc *service.HubService
}

// NewHubHandler 创建地区社区处理器
func NewHubHandler(svc *service.HubService) *HubHandler {
	return &HubHandler{svc: svc}
}

// ListHubs 获取社区列表
// GET /api/susu/hubs?kind=state|city|country
func (h *HubHandler) ListHubs(c *gin.Context) {
	hubs, err := h.svc.ListHubs(c.Request.Context(), c.Query("kind"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, hubs)
}

// GetHub 获取社区详情
// GET /api/susu/hubs/:id
func (h *HubHandler) GetHub(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	hub, err := h.svc.GetHub(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, hub)
}

// CreateHub 创建社区
// POST /api/susu/hubs
func (h *HubHandler) CreateHub(c *gin.Context) {
	var req dto.CreateHubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	hub, err := h.svc.CreateHub(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, hub)
}

// JoinHub 加入社区
// POST /api/susu/hubs/:id/join
func (h *HubHandler) JoinHub(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.JoinHubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	if err := h.svc.JoinHub(c.Request.Context(), id, req.WalletAddress); err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, gin.H{"hubId": id, "joined": true})
}
