package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/ogurasousui/placement-crm/internal/adapters/events"
	"github.com/ogurasousui/placement-crm/internal/adapters/grpc/handler"
	"github.com/ogurasousui/placement-crm/internal/adapters/repository/postgres"
	"github.com/ogurasousui/placement-crm/internal/core/analytics"
	"github.com/ogurasousui/placement-crm/internal/core/employment"
	"github.com/ogurasousui/placement-crm/internal/core/joboffer"
	"github.com/ogurasousui/placement-crm/internal/core/message"
	"github.com/ogurasousui/placement-crm/internal/platform/config"
	pg "github.com/ogurasousui/placement-crm/internal/platform/db/postgres"
	"github.com/ogurasousui/placement-crm/internal/platform/logging"
	redisplatform "github.com/ogurasousui/placement-crm/internal/platform/redis"
	"github.com/ogurasousui/placement-crm/internal/platform/scheduler"
	"github.com/ogurasousui/placement-crm/internal/platform/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize database pool: %v", err)
	}
	defer dbPool.Close()

	var publisher analytics.Publisher = analytics.NoopPublisher{}
	if cfg.Analytics.Enabled {
		rdb, err := redisplatform.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatalf("failed to initialize redis client: %v", err)
		}
		defer rdb.Close()
		publisher = events.NewRedisPublisher(rdb)
	}

	txManager := pg.NewTransactionManager(dbPool, pg.WithReadWriteIsolation(pgx.RepeatableRead))
	jobOfferRepo := postgres.NewJobOfferRepository(dbPool)
	professionalRepo := postgres.NewProfessionalRepository(dbPool)
	messageRepo := postgres.NewMessageRepository(dbPool)
	historyRepo := postgres.NewHistoryRepository(dbPool)

	coordinator := employment.NewCoordinator(professionalRepo, jobOfferRepo, nil, txManager, logger)
	jobOfferSvc := joboffer.NewService(jobOfferRepo, professionalRepo, coordinator, publisher, nil, txManager, logger)
	messageSvc := message.NewService(messageRepo, historyRepo, publisher, nil, txManager, logger)

	if cfg.Reconciler.Enabled {
		reconciler := scheduler.New(coordinator, cfg.Reconciler.Schedule, logger)
		if err := reconciler.Start(ctx); err != nil {
			log.Fatalf("failed to start reconcile scheduler: %v", err)
		}
		defer reconciler.Stop()
	}

	grpcServer := server.New(cfg.Server.ListenAddr, server.Services{
		JobOffers:  handler.NewJobOfferGrpcHandler(jobOfferSvc),
		Messages:   handler.NewMessageGrpcHandler(messageSvc),
		Employment: handler.NewProfessionalGrpcHandler(coordinator),
	}, logger)

	if err := grpcServer.Run(ctx); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
}
