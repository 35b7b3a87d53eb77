package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/HarshaPerabathula/backend-hcl-wellness/config"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/handler"
	accountHandler "github.com/HarshaPerabathula/backend-hcl-wellness/internal/handler/account"
	authHandler "github.com/HarshaPerabathula/backend-hcl-wellness/internal/handler/auth"
	careHandler "github.com/HarshaPerabathula/backend-hcl-wellness/internal/handler/care"
	patientHandler "github.com/HarshaPerabathula/backend-hcl-wellness/internal/handler/patient"
	providerHandler "github.com/HarshaPerabathula/backend-hcl-wellness/internal/handler/provider"
	tipHandler "github.com/HarshaPerabathula/backend-hcl-wellness/internal/handler/tip"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/middleware"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/repository/postgres"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/router"
	accountService "github.com/HarshaPerabathula/backend-hcl-wellness/internal/service/account"
	authService "github.com/HarshaPerabathula/backend-hcl-wellness/internal/service/auth"
	careService "github.com/HarshaPerabathula/backend-hcl-wellness/internal/service/care"
	goalService "github.com/HarshaPerabathula/backend-hcl-wellness/internal/service/goal"
	metricsService "github.com/HarshaPerabathula/backend-hcl-wellness/internal/service/healthmetrics"
	progressService "github.com/HarshaPerabathula/backend-hcl-wellness/internal/service/progress"
	tipService "github.com/HarshaPerabathula/backend-hcl-wellness/internal/service/tip"
	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/auth"
	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/event"
	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/logger"
	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/messaging/redis"
	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/metrics"
	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	key, err := hex.DecodeString(cfg.Security.EncryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid encryption key")
	}
	encryptor, err := security.NewAESEncryptor(key)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize encryptor")
	}

	m := metrics.NewMetrics("wellness", "api")

	appLogger := logger.NewLogger(nil).WithComponent("api")

	// Domain events are best-effort, so a missing broker only disables them.
	var events *event.Publisher
	if broker, err := redis.NewRedisBroker(cfg.Redis.ToBrokerConfig(), appLogger.Zerolog()); err != nil {
		log.Warn().Err(err).Msg("event publishing disabled, broker unavailable")
	} else {
		defer broker.Close()
		events = event.NewPublisher(broker, appLogger)
	}

	// Repositories
	accountRepo := postgres.NewAccountRepository(db, encryptor)
	goalRepo := postgres.NewGoalRepository(db)
	progressRepo := postgres.NewProgressRepository(db)
	careRepo := postgres.NewCareRepository(db)
	healthMetricsRepo := postgres.NewHealthMetricsRepository(db)
	tipRepo := postgres.NewTipRepository(db)

	// Services
	jwtManager := auth.NewJWTManager(cfg.JWT.ToAuthConfig())
	authSvc := authService.NewService(accountRepo, jwtManager, security.NewBcryptHasher(0))
	accountSvc := accountService.NewService(accountRepo)
	goalSvc := goalService.NewService(goalRepo, progressRepo, accountRepo)
	progressSvc := progressService.NewService(goalRepo, progressRepo, m, events)
	careSvc := careService.NewService(careRepo, accountRepo, m, events)
	healthMetricsSvc := metricsService.NewService(healthMetricsRepo)
	tipSvc := tipService.NewService(tipRepo)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	// Handlers
	h := handler.NewHandler(db.Ping)
	authH := authHandler.NewHandler(authSvc)
	accountH := accountHandler.NewHandler(accountSvc)
	patientH := patientHandler.NewHandler(progressSvc, goalSvc, careSvc, tipSvc, healthMetricsSvc)
	providerH := providerHandler.NewHandler(goalSvc)
	careH := careHandler.NewHandler(careSvc)
	tipH := tipHandler.NewHandler(tipSvc)

	r := router.NewRouter(
		authMiddleware,
		authH,
		accountH,
		patientH,
		providerH,
		careH,
		tipH,
		h,
		router.Config{
			RateLimitRPS: cfg.RateLimit.RequestsPerSecond,
			RateBurst:    cfg.RateLimit.Burst,
			CORSConfig: middleware.CORSConfig{
				AllowOrigins: cfg.Security.AllowedOrigins,
				AllowMethods: cfg.Security.AllowedMethods,
				AllowHeaders: cfg.Security.AllowedHeaders,
			},
			MetricsPrefix: cfg.Monitoring.MetricsPrefix,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
