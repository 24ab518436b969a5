package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/uniedit/anet/cmd/server/docs" // swagger docs

	// Domain
	"github.com/uniedit/anet/internal/domain"
	"github.com/uniedit/anet/internal/domain/gateway"
	"github.com/uniedit/anet/internal/model"

	// Inbound adapters
	ginadapter "github.com/uniedit/anet/internal/adapter/inbound/gin"

	// Outbound adapters
	"github.com/uniedit/anet/internal/adapter/outbound/anet"
	"github.com/uniedit/anet/internal/adapter/outbound/postgres"
	redisadapter "github.com/uniedit/anet/internal/adapter/outbound/redis"
	"github.com/uniedit/anet/internal/port/outbound"

	// Infrastructure
	"github.com/uniedit/anet/internal/infra/cache"
	"github.com/uniedit/anet/internal/infra/config"
	"github.com/uniedit/anet/internal/infra/database"
	"github.com/uniedit/anet/internal/infra/events"
	"github.com/uniedit/anet/internal/infra/httpclient"
	"github.com/uniedit/anet/internal/utils/logger"
	"github.com/uniedit/anet/internal/utils/metrics"
	"github.com/uniedit/anet/internal/utils/middleware"
)

// App wires configuration, infrastructure, domain services and the HTTP API.
type App struct {
	config   *config.Config
	db       *gorm.DB
	redis    goredis.UniversalClient
	router   *gin.Engine
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	bus      *events.Bus
	domain   *domain.Domain

	cleanupFuncs []func()
}

// New creates the application, opening the database and, when enabled, Redis.
func New(cfg *config.Config) (*App, error) {
	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	db, err := database.New(&cfg.Database, cfg.Log.Level == "debug")
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a, err := build(cfg, db, registry, log)
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}
	a.cleanupFuncs = append(a.cleanupFuncs, func() { _ = database.Close(db) })
	return a, nil
}

// build assembles the application on an open database.
func build(cfg *config.Config, db *gorm.DB, registry *prometheus.Registry, log *zap.Logger) (*App, error) {
	a := &App{
		config:   cfg,
		db:       db,
		logger:   log,
		registry: registry,
		metrics:  metrics.NewWithRegistry(cfg.Metrics.Namespace, registry),
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	a.initRedis()
	a.initEvents()

	if err := a.initDomain(); err != nil {
		return nil, fmt.Errorf("init domain: %w", err)
	}

	a.router = a.setupRouter()
	a.registerRoutes()

	return a, nil
}

// initRedis connects to Redis when enabled. An unreachable Redis disables
// the features that need it instead of failing startup.
func (a *App) initRedis() {
	if !a.config.Redis.Enabled {
		return
	}
	client, err := cache.NewRedisClient(context.Background(), &a.config.Redis)
	if err != nil {
		a.logger.Warn("Redis connection failed, fact publishing, rate limiting and idempotent replay are off", zap.Error(err))
		return
	}
	a.redis = client
	a.cleanupFuncs = append(a.cleanupFuncs, func() { _ = client.Close() })
}

// initEvents builds the event bus and, when Redis is available, forwards
// profile facts to it.
func (a *App) initEvents() {
	a.bus = events.NewBus(a.logger)

	var publisher outbound.ProfileFactPublisherPort
	if a.redis != nil {
		publisher = redisadapter.NewProfileFactPublisher(a.redis)
	}

	a.bus.Register(events.NewProfileFactHandler(publisher, a.metrics))
}

// initDomain initializes the domain services with their adapters.
func (a *App) initDomain() error {
	gwCfg := a.config.Gateway

	clientCfg := &anet.Config{
		Breaker: &anet.BreakerConfig{
			MaxRequests:      gwCfg.Breaker.MaxRequests,
			Interval:         gwCfg.Breaker.Interval,
			Timeout:          gwCfg.Breaker.Timeout,
			FailureThreshold: gwCfg.Breaker.FailureThreshold,
		},
	}
	if gwCfg.Endpoint != "" {
		clientCfg.Endpoints = map[model.Environment]string{
			gateway.ParseEnvironment(gwCfg.Environment): gwCfg.Endpoint,
		}
	}

	client := anet.NewClient(
		httpclient.New(a.config.HTTPClient, gwCfg.Timeout),
		clientCfg,
		a.metrics,
		a.logger,
	)

	d, err := domain.NewDomain(&domain.OutboundPorts{
		GatewayClient:       client,
		CustomerProfileDB:   postgres.NewCustomerProfileAdapter(a.db),
		PaymentProfileDB:    postgres.NewPaymentProfileAdapter(a.db),
		ProfileObserver:     a.bus,
		TransactionRecorder: a.metrics,
	}, gateway.Config{
		LoginID:        gwCfg.LoginID,
		TransactionKey: gwCfg.TransactionKey,
		Environment:    gwCfg.Environment,
	}, a.logger)
	if err != nil {
		return err
	}
	a.domain = d

	a.logger.Info("gateway configured",
		zap.String("environment", string(d.Gateway.Environment())),
	)
	return nil
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	if a.config.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(a.logger))
	r.Use(middleware.CORS(a.config.Server.CORSOrigins, a.config.Server.CORSMaxAge))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(a.logger))
	r.Use(middleware.Metrics(a.metrics))

	r.GET("/health", a.health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	return r
}

// registerRoutes registers all API routes.
func (a *App) registerRoutes() {
	v1 := a.router.Group("/v1")
	if a.config.Auth.Enabled {
		v1.Use(middleware.RequireAuth(middleware.NewHMACValidator(
			a.config.Auth.JWTSecret,
			a.config.Auth.Issuer,
			a.config.Auth.Audience,
		)))
	}

	var idempotency outbound.IdempotencyStorePort
	if a.redis != nil {
		v1.Use(middleware.RateLimit(redisadapter.NewRateLimiter(a.redis), middleware.RateLimitConfig{
			Limit:  a.config.RateLimit.Limit,
			Window: a.config.RateLimit.Window,
		}, a.logger))
		idempotency = redisadapter.NewIdempotencyStore(a.redis)
	}

	ginadapter.RegisterCustomerProfileRoutes(v1, ginadapter.NewCustomerProfileAdapter(a.domain.Customer, a.logger))
	ginadapter.RegisterPaymentProfileRoutes(v1, ginadapter.NewPaymentProfileAdapter(a.domain.PaymentProfile, a.logger))

	// Charges and refunds replay their recorded response for a repeated Idempotency-Key.
	money := v1.Group("", middleware.Idempotency(idempotency, middleware.IdempotencyConfig{
		TTL:     a.config.Idempotency.TTL,
		LockTTL: a.config.Idempotency.LockTTL,
	}, a.logger))
	ginadapter.RegisterTransactionRoutes(money, ginadapter.NewTransactionAdapter(a.domain.Transaction, a.logger))
}

func (a *App) health(c *gin.Context) {
	status := gin.H{"status": "ok", "environment": a.domain.Gateway.Environment()}

	sqlDB, err := a.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}

	c.JSON(http.StatusOK, status)
}

// Router returns the HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Stop releases resources in reverse order of acquisition.
func (a *App) Stop() {
	for i := len(a.cleanupFuncs) - 1; i >= 0; i-- {
		a.cleanupFuncs[i]()
	}
	_ = a.logger.Sync()
}
