// Package router 提供路由注册
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/axiomcity/axiom-susu/internal/config"
	"github.com/axiomcity/axiom-susu/internal/handler"
	"github.com/axiomcity/axiom-susu/internal/middleware"
)

// Router 路由管理器
type Router struct {
	engine *gin.Engine
	cfg    *config.Config
}

// New 创建路由管理器
func New(engine *gin.Engine, cfg *config.Config) *Router {
	return &Router{
		engine: engine,
		cfg:    cfg,
	}
}

// RegisterMiddleware 注册全局中间件
func (r *Router) RegisterMiddleware() {
	// 中间件链: Recovery → Trace → Logger → CORS → Metrics
	r.engine.Use(
		middleware.Recovery(),
		middleware.Trace(),
		middleware.Logger(),
		middleware.CORS(),
		middleware.Metrics(),
	)
}

// Handlers 路由依赖的处理器集合
type Handlers struct {
	Health      *handler.HealthHandler
	Hub         *handler.HubHandler
	Group       *handler.GroupHandler
	Graduation  *handler.GraduationHandler
	Mode        *handler.ModeHandler
	Charter     *handler.CharterHandler
	Reliability *handler.ReliabilityHandler
	Admin       *handler.AdminHandler
}

// RegisterRoutes 注册路由
func (r *Router) RegisterRoutes(h *Handlers) {
	// ========== 健康检查（无中间件） ==========
	r.engine.GET("/health/live", h.Health.Live)
	r.engine.GET("/health/ready", h.Health.Ready)

	// ========== Prometheus 监控端点 ==========
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ========== SUSU API ==========
	api := r.engine.Group("/api/susu")

	// 社区
	hubs := api.Group("/hubs")
	{
		hubs.GET("", h.Hub.ListHubs)
		hubs.POST("", h.Hub.CreateHub)
		hubs.GET("/:id", h.Hub.GetHub)
		hubs.POST("/:id/join", h.Hub.JoinHub)
	}

	// 目的类别
	api.GET("/categories", h.Group.ListCategories)

	// 小组与毕业
	groups := api.Group("/groups")
	{
		groups.GET("", h.Group.ListGroups)
		groups.POST("", h.Group.CreateGroup)
		groups.GET("/:id", h.Group.GetGroup)
		groups.POST("/:id/join", h.Group.JoinGroup)
		groups.POST("/:id/confirm", h.Group.ConfirmCommitment)
		groups.GET("/:id/health", h.Group.Health)
		groups.POST("/:id/contributions", h.Group.RecordContribution)
		groups.GET("/:id/graduation-status", h.Graduation.Status)
		groups.POST("/:id/graduate", h.Graduation.Graduate)
	}

	// 模式分类
	api.POST("/mode-detect", h.Mode.Detect)

	// 章程
	api.GET("/charters", h.Charter.ListCharters)
	api.POST("/charters", h.Charter.CreateCharter)
	api.GET("/charters/:id", h.Charter.GetCharter)
	api.GET("/charter-accept", h.Charter.ListAcceptances)
	api.POST("/charter-accept", h.Charter.Accept)

	// 可靠性评分
	api.GET("/reliability", h.Reliability.GetProfile)
	api.POST("/reliability", h.Reliability.ApplyEvent)

	// ========== 管理接口（钱包白名单鉴权） ==========
	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(r.cfg.Susu.AdminWallets))
	{
		admin.GET("/thresholds", h.Admin.GetThresholds)
		admin.PUT("/thresholds", h.Admin.SetThreshold)
		admin.GET("/multipliers", h.Admin.ListMultipliers)
		admin.PUT("/multipliers", h.Admin.SetMultiplier)
		admin.GET("/feature-flags", h.Admin.ListFeatureFlags)
		admin.PUT("/feature-flags", h.Admin.SetFeatureFlag)
		admin.GET("/stats", h.Admin.Stats)
		admin.POST("/seed-hubs", h.Admin.SeedHubs)
	}
}
