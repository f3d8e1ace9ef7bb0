package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/axiomcity/axiom-susu/internal/dto"
	"github.com/axiomcity/axiom-susu/internal/repository"
	"github.com/axiomcity/axiom-susu/internal/service"
)

// GroupHandler 目的小组处理器
type GroupHandler struct {
	svc            *service.GroupService
	reliabilitySvc *service.ReliabilityService
}

// NewGroupHandler 创建目的小组处理器
func NewGroupHandler(svc *service.GroupService, reliabilitySvc *service.ReliabilityService) *GroupHandler {
	return &GroupHandler{
		svc:            svc,
		reliabilitySvc: reliabilitySvc,
	}
}

// ListGroups 获取小组列表
// GET /api/susu/groups?hub_id=&category_id=&page=&page_size=
func (h *GroupHandler) ListGroups(c *gin.Context) {
	hubID, _ := strconv.ParseInt(c.Query("hub_id"), 10, 64)
	categoryID, _ := strconv.ParseInt(c.Query("category_id"), 10, 64)
	page, pageSize := parsePagination(c)

	filter := &repository.ListFilter{
		HubID:             hubID,
		PurposeCategoryID: categoryID,
		ActiveOnly:        c.Query("include_inactive") != "true",
	}

	groups, total, err := h.svc.ListGroups(c.Request.Context(), filter, repository.NewPagination(page, pageSize))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	SuccessWithPagination(c, groups, total, page, pageSize)
}

// GetGroup 获取小组详情
// GET /api/susu/groups/:id
func (h *GroupHandler) GetGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	group, err := h.svc.GetGroup(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, group)
}

// CreateGroup 创建小组
// POST /api/susu/groups
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	group, err := h.svc.CreateGroup(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, group)
}

// JoinGroup 加入小组
// POST /api/susu/groups/:id/join
func (h *GroupHandler) JoinGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	if err := h.svc.JoinGroup(c.Request.Context(), id, req.WalletAddress); err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, gin.H{"groupId": id, "joined": true})
}

// ConfirmCommitment 确认供款承诺
// POST /api/susu/groups/:id/confirm
func (h *GroupHandler) ConfirmCommitment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	if err := h.svc.ConfirmCommitment(c.Request.Context(), id, req.WalletAddress); err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, gin.H{"groupId": id, "confirmed": true})
}

// Health 获取小组健康度
// GET /api/susu/groups/:id/health
func (h *GroupHandler) Health(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	health, err := h.svc.Health(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, health)
}

// ListCategories 获取目的类别列表
// GET /api/susu/categories
func (h *GroupHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, categories)
}

// RecordContribution 记录供款
// POST /api/susu/groups/:id/contributions
func (h *GroupHandler) RecordContribution(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.RecordContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	contribution, err := h.reliabilitySvc.RecordContribution(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	Success(c, contribution)
}
