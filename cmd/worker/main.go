package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/HarshaPerabathula/backend-hcl-wellness/config"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/email"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/repository/postgres"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/worker"
	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/logger"
	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/messaging/redis"
	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/metrics"
	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/security"
)

const metricsPort = 9090

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil).WithComponent("reminder-worker")

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

	broker, err := redis.NewRedisBroker(cfg.Redis.ToBrokerConfig(), appLogger.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	m := metrics.NewMetrics("wellness", "worker")

	careRepo := postgres.NewCareRepository(db)
	accountRepo := postgres.NewAccountRepository(db, encryptor)
	emailSvc := email.NewSMTPService(cfg.SMTP.ToEmailConfig())

	processor := worker.NewReminderProcessor(
		careRepo,
		accountRepo,
		emailSvc,
		broker,
		cfg.Reminder.ToWorkerConfig(),
		appLogger,
		m,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go processor.Start(ctx)

	// Expose worker metrics alongside the sweep loop.
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(fmt.Sprintf(":%d", metricsPort), nil); err != nil {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	appLogger.Info("reminder worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down reminder worker")
	cancel()
}
