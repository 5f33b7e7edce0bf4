package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Belhormamohamed13/RohWinBghit-sub002/internal/geo"
	"github.com/Belhormamohamed13/RohWinBghit-sub002/internal/marketdata"
	"github.com/Belhormamohamed13/RohWinBghit-sub002/internal/pricing"
	"github.com/Belhormamohamed13/RohWinBghit-sub002/internal/quotes"
	"github.com/Belhormamohamed13/RohWinBghit-sub002/pkg/common"
	"github.com/Belhormamohamed13/RohWinBghit-sub002/pkg/config"
	"github.com/Belhormamohamed13/RohWinBghit-sub002/pkg/database"
	"github.com/Belhormamohamed13/RohWinBghit-sub002/pkg/health"
	"github.com/Belhormamohamed13/RohWinBghit-sub002/pkg/logger"
	"github.com/Belhormamohamed13/RohWinBghit-sub002/pkg/middleware"
	"github.com/Belhormamohamed13/RohWinBghit-sub002/pkg/ratelimit"
	"github.com/Belhormamohamed13/RohWinBghit-sub002/pkg/redis"
)

const (
	serviceName = "pricing"
	version     = "1.0.0"
)

func main() {
	// Load configuration
	cfg, err := config.Load(serviceName)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	if err := logger.Init(cfg.Server.Environment); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	// Connect to PostgreSQL
	db, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)
	logger.Info("connected to PostgreSQL")

	// Apply migrations
	if err := database.RunMigrations(&cfg.Database, "migrations"); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Connect to Redis
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()
	logger.Info("connected to Redis")

	// Build services
	pricingDefaults := pricing.Options{
		BaseFare:           cfg.Pricing.BaseFare,
		PricePerKm:         cfg.Pricing.PricePerKm,
		MinimumFare:        cfg.Pricing.MinimumFare,
		MaxSurgeMultiplier: cfg.Pricing.MaxSurgeMultiplier,
		DemandThreshold:    cfg.Pricing.DemandThreshold,
	}

	geoService := geo.NewService()
	marketService := marketdata.NewService(marketdata.NewRedisStore(redisClient.Client))
	quoteService := quotes.NewService(quotes.NewRepository(db))

	pricingHandler := pricing.NewHandler(pricingDefaults, geoService, marketService, quoteService)
	quoteHandler := quotes.NewHandler(quoteService)

	// Set up Gin router
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics(serviceName))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.CORSOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Correlation-ID"}
	router.Use(cors.New(corsConfig))

	// Health check and metrics (no timeout wrapper). Probe results are cached
	// briefly so orchestrator polling does not hammer the dependencies.
	router.GET("/healthz", common.HealthCheckWithDeps(serviceName, version, map[string]func() error{
		"postgres": health.NewCachedChecker(health.PoolChecker(db), 5*time.Second).Check,
		"redis":    health.NewCachedChecker(health.RedisChecker(redisClient.Client), 5*time.Second).Check,
	}))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimit(ratelimit.NewLimiter(redisClient.Client, cfg.RateLimit)))
	api.Use(timeout.New(
		timeout.WithTimeout(time.Duration(cfg.Server.RequestTimeout)*time.Second),
		timeout.WithHandler(func(c *gin.Context) { c.Next() }),
		timeout.WithResponse(func(c *gin.Context) {
			common.ErrorResponse(c, http.StatusRequestTimeout, "request timed out")
		}),
	))
	pricingHandler.RegisterRoutes(api)
	quoteHandler.RegisterRoutes(api)

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("pricing service starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}
