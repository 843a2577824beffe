package main

import (
	"context"
	"log"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/LavaJover/booking-settlement-service/internal/client"
	"github.com/LavaJover/booking-settlement-service/internal/config"
	httpdelivery "github.com/LavaJover/booking-settlement-service/internal/delivery/http"
	publisher "github.com/LavaJover/booking-settlement-service/internal/infrastructure/kafka"
	"github.com/LavaJover/booking-settlement-service/internal/infrastructure/metrics"
	"github.com/LavaJover/booking-settlement-service/internal/infrastructure/migrate"
	"github.com/LavaJover/booking-settlement-service/internal/infrastructure/postgres"
	"github.com/LavaJover/booking-settlement-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/booking-settlement-service/internal/usecase"
	"github.com/LavaJover/booking-settlement-service/internal/usecase/settlement"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found")
	}

	cfg := config.MustLoad()
	setupLogger(cfg.LogConfig)

	db := postgres.MustInitDB(cfg)
	if err := migrate.RunMigrations(db, cfg.SettlementDB.MigrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	kafkaPublisher := publisher.NewDefaultKafkaPublisher([]string{
		net.JoinHostPort(cfg.KafkaService.Host, cfg.KafkaService.Port),
	})
	defer kafkaPublisher.Close()
	notifier := publisher.NewKafkaNotificationTrigger(kafkaPublisher, cfg.KafkaService.Topic)

	catalogClient := client.NewCatalogClient(net.JoinHostPort(cfg.CatalogService.Host, cfg.CatalogService.Port))
	usersClient := client.NewUsersClient(net.JoinHostPort(cfg.UserService.Host, cfg.UserService.Port))
	telephonyClient := client.NewTelephonyClient(net.JoinHostPort(cfg.TelephonyService.Host, cfg.TelephonyService.Port))

	ledger, err := usecase.NewWalletLedger()
	if err != nil {
		log.Fatalf("failed to init wallet ledger: %v", err)
	}
	commission, err := usecase.NewCommissionEngine(cfg.Settlement.CommissionRateBps)
	if err != nil {
		log.Fatalf("failed to init commission engine: %v", err)
	}
	abuse := usecase.NewAbusePolicy(cfg.Settlement.CancelThreshold)

	settlementUsecase := settlement.NewDefaultSettlementUsecase(
		repository.NewGormTxManager(db),
		ledger,
		commission,
		abuse,
		catalogClient,
		usersClient,
		notifier,
		telephonyClient,
		metrics.NewSettlementMetrics(),
		cfg.Settlement.PlatformUserID,
		cfg.Settlement.OverdueGrace,
	)

	go runOverdueSweep(settlementUsecase, cfg.Settlement.SweepInterval)

	r := httpdelivery.Setup(settlementUsecase)
	addr := net.JoinHostPort(cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	slog.Info("settlement service listening", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		log.Fatalf("failed to run http server: %v", err)
	}
}

func runOverdueSweep(uc settlement.SettlementUsecase, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		if err := uc.CancelOverdueOrders(ctx); err != nil {
			slog.Error("overdue sweep failed", "error", err)
		}
		cancel()
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
