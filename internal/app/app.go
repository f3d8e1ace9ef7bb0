// Package app 提供互助会服务的应用入口
//
// ========================================
// axiom-susu 服务对接总览
// ========================================
//
// ## 服务信息
// - 服务名: axiom-susu
// - HTTP 端口: 8080
// - 数据库: axiom_susu (PostgreSQL)
//
// ## 依赖服务
// - PostgreSQL: 数据持久化
// - Redis: 缓存 (可靠性画像、运营统计、毕业锁), 可选
// - Kafka: 消息队列 (生命周期事件), 可选
//
// ## Kafka 主题
// - 生产: susu-events
//
// ## 下游对接
// 1. 消费 susu-events 主题
//   - 分析管道与通知服务
//   - event_type: hub_join/group_create/group_join/graduation/...
//
// ========================================
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/axiomcity/axiom-susu/internal/cache"
	"github.com/axiomcity/axiom-susu/internal/config"
	"github.com/axiomcity/axiom-susu/internal/handler"
	"github.com/axiomcity/axiom-susu/internal/kafka"
	"github.com/axiomcity/axiom-susu/internal/repository"
	"github.com/axiomcity/axiom-susu/internal/router"
	"github.com/axiomcity/axiom-susu/internal/seed"
	"github.com/axiomcity/axiom-susu/internal/service"
	"github.com/axiomcity/axiom-susu/pkg/logger"
)

// App 互助会服务应用
type App struct {
	cfg *config.Config

	// 基础设施
	db          *gorm.DB
	redisClient redis.UniversalClient
	httpServer  *http.Server

	// Kafka
	kafkaProducer *kafka.Producer

	// 仓储层
	hubRepo      *repository.HubRepository
	categoryRepo *repository.CategoryRepository

	// 服务层
	eventSvc       *service.EventService
	hubSvc         *service.HubService
	groupSvc       *service.GroupService
	modeSvc        *service.ModeService
	graduationSvc  *service.GraduationService
	charterSvc     *service.CharterService
	reliabilitySvc *service.ReliabilityService
	adminSvc       *service.AdminService

	healthHandler *handler.HealthHandler

	// 上下文
	ctx    context.Context
	cancel context.CancelFunc
}

// New 创建应用实例
func New(cfg *config.Config) *App {
	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Run 启动应用
func (a *App) Run() error {
	// 1. 初始化数据库
	if err := a.initDB(); err != nil {
		return fmt.Errorf("failed to init database: %w", err)
	}

	// 2. 初始化 Redis (可选)
	if err := a.initRedis(); err != nil {
		return fmt.Errorf("failed to init redis: %w", err)
	}

	// 3. 初始化 Kafka (可选)
	if err := a.initKafka(); err != nil {
		logger.Warn("failed to init kafka, running without kafka", "error", err)
	}

	// 4. 初始化服务层
	a.initServices()

	// 5. 播种目录
	if a.cfg.Susu.SeedOnStartup {
		if err := seed.Run(a.ctx, a.hubRepo, a.categoryRepo); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	// 6. 启动 HTTP 服务
	if err := a.startHTTP(); err != nil {
		return fmt.Errorf("failed to start http server: %w", err)
	}

	a.healthHandler.SetReady(true)
	return nil
}

// Shutdown 优雅关闭
func (a *App) Shutdown(ctx context.Context) error {
	logger.Info("shutting down susu service...")

	// 关闭顺序: HTTP 服务 -> Kafka 生产者 -> 数据库 -> Redis
	if a.healthHandler != nil {
		a.healthHandler.SetReady(false)
	}

	if a.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}

	if a.kafkaProducer != nil {
		if err := a.kafkaProducer.Close(); err != nil {
			logger.Error("kafka producer close error", "error", err)
		}
	}

	if a.db != nil {
		sqlDB, _ := a.db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	}

	if a.redisClient != nil {
		a.redisClient.Close()
	}

	a.cancel()
	logger.Info("susu service stopped")
	return nil
}

// initDB 初始化数据库
func (a *App) initDB() error {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		a.cfg.Postgres.Host,
		a.cfg.Postgres.Port,
		a.cfg.Postgres.User,
		a.cfg.Postgres.Password,
		a.cfg.Postgres.Database,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(a.cfg.Postgres.MaxConnections)
	sqlDB.SetMaxIdleConns(a.cfg.Postgres.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(a.cfg.Postgres.ConnMaxLifetimeMinutes) * time.Minute)

	a.db = db

	// 自动迁移
	if err := AutoMigrate(a.db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Info("database migrated")

	return nil
}

// initRedis 初始化 Redis
func (a *App) initRedis() error {
	if !a.cfg.Redis.Enabled {
		logger.Info("redis disabled")
		return nil
	}

	a.redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", a.cfg.Redis.Host, a.cfg.Redis.Port),
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
		PoolSize: a.cfg.Redis.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return a.redisClient.Ping(ctx).Err()
}

// initKafka 初始化 Kafka
func (a *App) initKafka() error {
	if !a.cfg.Kafka.Enabled || len(a.cfg.Kafka.Brokers) == 0 {
		logger.Info("kafka disabled")
		return nil
	}

	producer, err := kafka.NewProducer(a.cfg.Kafka.Brokers, a.cfg.Kafka.ClientID)
	if err != nil {
		return err
	}
	a.kafkaProducer = producer

	logger.Info("kafka producer initialized",
		"brokers", a.cfg.Kafka.Brokers)

	return nil
}

// initServices 初始化服务层
func (a *App) initServices() {
	// 创建仓储层
	a.hubRepo = repository.NewHubRepository(a.db)
	a.categoryRepo = repository.NewCategoryRepository(a.db)
	groupRepo := repository.NewGroupRepository(a.db)
	charterRepo := repository.NewCharterRepository(a.db)
	thresholdRepo := repository.NewThresholdRepository(a.db)
	flagRepo := repository.NewFeatureFlagRepository(a.db)
	reliabilityRepo := repository.NewReliabilityRepository(a.db)
	contributionRepo := repository.NewContributionRepository(a.db)
	analyticsRepo := repository.NewAnalyticsRepository(a.db)

	// 创建服务层
	thresholds := service.NewThresholdLoader(thresholdRepo)
	a.eventSvc = service.NewEventService(analyticsRepo)
	a.hubSvc = service.NewHubService(a.hubRepo, a.eventSvc)
	a.groupSvc = service.NewGroupService(groupRepo, a.categoryRepo, a.hubRepo, reliabilityRepo, a.eventSvc)
	a.modeSvc = service.NewModeService(thresholds, a.categoryRepo)
	a.graduationSvc = service.NewGraduationService(
		a.db, groupRepo, a.categoryRepo, charterRepo, analyticsRepo, flagRepo, thresholds, a.eventSvc)
	a.charterSvc = service.NewCharterService(charterRepo, groupRepo)
	a.reliabilitySvc = service.NewReliabilityService(reliabilityRepo, contributionRepo, groupRepo)
	a.adminSvc = service.NewAdminService(
		thresholdRepo, flagRepo, a.categoryRepo, a.hubRepo, groupRepo, thresholds, a.eventSvc)

	// 接入缓存层
	if a.redisClient != nil {
		statsCache := cache.NewStatsCache(a.redisClient)
		a.reliabilitySvc.SetProfileCache(cache.NewReliabilityCache(a.redisClient))
		a.graduationSvc.SetLock(cache.NewGraduationLock(a.redisClient))
		a.graduationSvc.SetStatsCache(statsCache)
		a.adminSvc.SetStatsCache(statsCache)
	}

	// 设置 Kafka 回调
	if a.kafkaProducer != nil {
		a.eventSvc.SetOnEvent(a.kafkaProducer.SusuEventCallback())
	}
}

// startHTTP 启动 HTTP 服务
func (a *App) startHTTP() error {
	if a.cfg.Service.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	deps := &handler.HealthDeps{
		Database: dbPinger{db: a.db},
	}
	if a.redisClient != nil {
		deps.Redis = redisPinger{client: a.redisClient}
	}
	a.healthHandler = handler.NewHealthHandler(deps)

	r := router.New(engine, a.cfg)
	r.RegisterMiddleware()
	r.RegisterRoutes(&router.Handlers{
		Health:      a.healthHandler,
		Hub:         handler.NewHubHandler(a.hubSvc),
		Group:       handler.NewGroupHandler(a.groupSvc, a.reliabilitySvc),
		Graduation:  handler.NewGraduationHandler(a.graduationSvc),
		Mode:        handler.NewModeHandler(a.modeSvc),
		Charter:     handler.NewCharterHandler(a.charterSvc),
		Reliability: handler.NewReliabilityHandler(a.reliabilitySvc),
		Admin: handler.NewAdminHandler(a.adminSvc, func(c *gin.Context) error {
			return seed.Run(c.Request.Context(), a.hubRepo, a.categoryRepo)
		}),
	})

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Service.HTTPPort),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", "port", a.cfg.Service.HTTPPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
		}
	}()

	return nil
}

// dbPinger 数据库健康检查适配
type dbPinger struct {
	db *gorm.DB
}

func (p dbPinger) Ping() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// redisPinger Redis 健康检查适配
type redisPinger struct {
	client redis.UniversalClient
}

func (p redisPinger) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return p.client.Ping(ctx).Err()
}
