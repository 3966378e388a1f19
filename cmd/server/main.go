// Package main is the entry point for the card entry API server.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ccentry/internal/config"
	"ccentry/internal/handlers"
	"ccentry/internal/metrics"
	"ccentry/internal/middleware"
	"ccentry/internal/observability"
	"ccentry/internal/repositories"
	"ccentry/internal/repositories/cache"
	"ccentry/internal/routes"
	"ccentry/internal/services/audit"
	"ccentry/internal/services/entry"
	"ccentry/internal/services/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	config.LoadEnv()
	cfg := config.Load()

	observability.InitializeLogger(cfg.Logger)
	defer observability.Sync()
	log := observability.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]handlers.HealthChecker{}

	// Redis is optional; without it stats are uncached and rate limits are
	// kept per instance.
	var cacheService *cache.CacheService
	var limiterStorage fiber.Storage
	if cfg.RedisEnabled {
		client, err := cache.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		} else {
			cacheService = cache.NewCacheService(client, cfg.StatsTTL)
			limiterStorage = cache.NewLimiterStorage(client)
			checks["redis"] = cacheService
			defer func() {
				if err := cacheService.Close(); err != nil {
					log.Warn("Failed to close Redis connection", zap.Error(err))
				}
			}()
			log.Info("Redis connected", zap.String("host", cfg.Redis.Host))
		}
	}

	var auditor audit.Auditor = audit.NoopService{}
	if cfg.AuditEnabled {
		db, err := repositories.InitDB(cfg.DB, log)
		if err != nil {
			log.Fatal("Failed to initialize database", zap.Error(err))
		}
		defer func() {
			if err := repositories.CloseDB(db); err != nil {
				log.Warn("Failed to close database connection", zap.Error(err))
			}
		}()
		checks["database"] = handlers.HealthCheckFunc(func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		})

		var statsCache cache.Cache
		if cacheService != nil {
			statsCache = cacheService
		}
		auditor = audit.NewService(repositories.NewValidationRepository(db), statsCache, cfg.StatsTTL, log)
	}

	collector := metrics.NewPrometheusCollector()
	defaults := entry.Config{
		IncludeZip:     cfg.FormDefaults.IncludeZip,
		IncludeHelper:  cfg.FormDefaults.IncludeHelper,
		CardNumberHint: cfg.FormDefaults.CardNumberHint,
	}
	registry := session.NewRegistry(session.Config{
		TTL:         cfg.SessionTTL,
		MaxSessions: cfg.MaxSessions,
		Defaults:    defaults,
	},
		session.WithLogger(log),
		session.WithAuditor(auditor),
		session.WithMetrics(collector),
	)
	defer registry.Close()

	app := fiber.New(fiber.Config{
		AppName:               cfg.Logger.ServiceName,
		DisableStartupMessage: config.IsProduction(),
	})

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE",
		AllowCredentials: true,
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Use("/api", limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		Storage:    limiterStorage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	routes.SetupRoutes(app, routes.Handlers{
		Auth:   middleware.NewAuthMiddleware(cfg.AuthEnabled, cfg.JWTSecret, cfg.JWTIssuer, log),
		Cards:  handlers.NewCreditCardHandler(auditor, collector, defaults.IncludeZip, log),
		Forms:  handlers.NewFormHandler(registry, defaults, log),
		Stats:  handlers.NewStatsHandler(auditor, log),
		Health: handlers.NewHealthHandler(checks, registry.Len),
	})

	go func() {
		<-ctx.Done()
		log.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("Starting server",
		zap.String("port", cfg.Port),
		zap.Bool("auth", cfg.AuthEnabled),
		zap.Bool("audit", cfg.AuditEnabled),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("Server stopped", zap.Error(err))
	}
}
