package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hortechia/hortechia-engine/pkg/auth"
	"github.com/hortechia/hortechia-engine/pkg/config"
	"github.com/hortechia/hortechia-engine/pkg/database"
	"github.com/hortechia/hortechia-engine/pkg/handlers"
	"github.com/hortechia/hortechia-engine/pkg/logging"
	"github.com/hortechia/hortechia-engine/pkg/middleware"
	"github.com/hortechia/hortechia-engine/pkg/recommend"
	"github.com/hortechia/hortechia-engine/pkg/repositories"
	"github.com/hortechia/hortechia-engine/pkg/retry"
	"github.com/hortechia/hortechia-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("bind_addr", cfg.BindAddr),
		zap.String("port", cfg.Port),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.ConnectionString())))

	ctx := context.Background()

	// The engine often races its database on fresh deployments, so retry
	// the initial connection instead of failing immediately.
	db, err := retry.DoWithResult(ctx, retry.DefaultConfig(), func() (*database.DB, error) {
		return database.NewConnection(ctx, &cfg.Database)
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(&cfg.Database, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis is optional; without it the rate limiter is process-local.
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	var rateLimiter middleware.RateLimiter
	if redisClient != nil {
		rateLimiter = middleware.NewRedisRateLimiter(redisClient, cfg.Recommendations.GeneratePerMinute, logger)
		logger.Info("Using Redis-backed rate limiter", zap.String("redis_host", cfg.Redis.Host))
	} else {
		rateLimiter = middleware.NewLocalRateLimiter(cfg.Recommendations.GeneratePerMinute)
		logger.Info("Redis not configured, using in-memory rate limiter")
	}

	jwksClient, err := auth.NewJWKSClient(ctx, auth.JWKSConfig{
		EnableVerification: cfg.Auth.EnableVerification,
		Endpoints:          cfg.Auth.JWKSEndpoints,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize JWKS client", zap.Error(err))
	}
	authService := auth.NewAuthService(jwksClient, logger)
	authMiddleware := auth.NewMiddleware(authService, logger)

	userRepo := repositories.NewUserRepository(db)
	plantRepo := repositories.NewPlantRepository(db)
	gardenRepo := repositories.NewGardenRepository(db)
	recRepo := repositories.NewRecommendationRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)
	planRepo := repositories.NewCultivationPlanRepository(db)

	engine := recommend.NewEngine(recommend.Config{
		Threshold:             cfg.Recommendations.ConfidenceThreshold,
		MaxResults:            cfg.Recommendations.MaxResults,
		TruncateBeforeScoring: cfg.Recommendations.TruncateBeforeScoring,
	})
	noise := recommend.NewUniformNoise(time.Now().UnixNano())

	recService := services.NewRecommendationService(userRepo, gardenRepo, plantRepo, recRepo, engine, noise, logger)
	feedbackService := services.NewFeedbackService(recRepo, feedbackRepo, logger)
	gardenService := services.NewGardenService(gardenRepo, logger)
	plantService := services.NewPlantService(plantRepo)
	planService := services.NewCultivationPlanService(planRepo, gardenRepo, plantRepo, logger)
	weatherService := services.NewWeatherService()

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewRecommendationHandler(recService, feedbackService, logger).
		RegisterRoutes(mux, authMiddleware, middleware.PerUserRateLimit(rateLimiter, logger))
	handlers.NewGardenHandler(gardenService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewPlantHandler(plantService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewCultivationPlanHandler(planService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewWeatherHandler(weatherService, logger).RegisterRoutes(mux, authMiddleware)

	server := &http.Server{
		Addr:              cfg.BindAddr + ":" + cfg.Port,
		Handler:           middleware.RequestLogger(logger)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting hortechia-engine",
			zap.String("addr", server.Addr),
			zap.String("version", cfg.Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
