package router

import (
	"lokma/config"
	"lokma/internal/cache"
	"lokma/internal/handler"
	"lokma/internal/logger"
	"lokma/internal/middleware"
	"lokma/internal/repository"
	"lokma/internal/service"
	"lokma/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const internalSecretHeader = "X-Internal-Secret"

// App is the assembled HTTP surface plus the pieces main runs alongside it.
type App struct {
	Engine   *gin.Engine
	Notifier *service.OrderNotifier
	Limiter  *middleware.IPRateLimiter
}

// Setup wires repositories, services and routes. rdb may be nil, in which case plans are read uncached.
func Setup(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	log := logger.Component("router")
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories
	orderRepo := repository.NewOrderRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	var plans service.PlanStore = repository.NewPlanRepository(db)
	if rdb != nil {
		plans = cache.NewPlanCache(rdb, plans, cfg.Redis.PlanTTL)
		log.Info().Msg("plan cache enabled")
	}

	// Services
	fcmSvc := service.NewFCMService(cfg.Firebase.ServiceAccountPath)
	if fcmSvc != nil {
		log.Info().Msg("push notifications enabled")
	} else {
		log.Warn().Msg("push notifications disabled: set FIREBASE_SERVICE_ACCOUNT_PATH to enable")
	}
	hub := ws.NewHub()
	commissionSvc := service.NewCommissionService(commissionRepo, businessRepo, plans, staffRepo, settingRepo)
	notifier := service.NewOrderNotifier(orderRepo, businessRepo, staffRepo, fcmSvc, commissionSvc, hub,
		service.NewGatewayClient(cfg.Gateway.Timeout),
		service.NotifierConfig{SupportPhone: cfg.Ledger.SupportPhone, FeedbackDelay: cfg.Ledger.FeedbackDelay})
	orderSvc := service.NewOrderService(orderRepo, notifier)
	staffSvc := service.NewStaffService(staffRepo)
	ledgerSvc := service.NewLedgerQueryService(commissionRepo, businessRepo)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Handlers
	orderHandler := handler.NewOrderHandler(orderSvc)
	ledgerHandler := handler.NewLedgerHandler(ledgerSvc)
	staffHandler := handler.NewStaffHandler(staffSvc)
	eventHandler := handler.NewEventHandler(notifier)
	healthHandler := handler.NewHealthHandler(sqlDB)

	limiter := middleware.NewIPRateLimiter(cfg.Server.RateLimit, cfg.Server.RateLimitBurst)
	r := newEngine(limiter)

	r.GET("/healthz", healthHandler.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/ws/orders", ws.UpgradeOrderFeed(&cfg.JWT, hub))

	v1 := r.Group("/api/v1")
	v1.POST("/internal/order-events", middleware.SharedSecret(internalSecretHeader, cfg.Server.InternalEventSecret), eventHandler.OrderEvent)

	authed := v1.Group("")
	authed.Use(middleware.AuthRequired(&cfg.JWT))
	{
		authed.GET("/orders/:id", orderHandler.Get)
		authed.PATCH("/orders/:id/status", orderHandler.UpdateStatus)

		authed.POST("/me/fcm-token", staffHandler.RegisterFCMToken)
		authed.POST("/me/shift", staffHandler.UpdateShift)

		biz := authed.Group("/businesses/:id", middleware.BusinessAccess())
		biz.GET("/commissions", ledgerHandler.Commissions)
		biz.GET("/usage", ledgerHandler.Usage)
	}

	return &App{Engine: r, Notifier: notifier, Limiter: limiter}, nil
}

func newEngine(limiter *middleware.IPRateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(limiter))
	return r
}
