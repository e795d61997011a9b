package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	apicontract "github.com/tuanvumaihuynh/chicken-vending/api-contract"
	"github.com/tuanvumaihuynh/chicken-vending/internal/config"
	"github.com/tuanvumaihuynh/chicken-vending/internal/event"
	"github.com/tuanvumaihuynh/chicken-vending/internal/http"
	"github.com/tuanvumaihuynh/chicken-vending/internal/log"
	"github.com/tuanvumaihuynh/chicken-vending/internal/relay"
	"github.com/tuanvumaihuynh/chicken-vending/internal/repository"
	"github.com/tuanvumaihuynh/chicken-vending/internal/service"
	"github.com/tuanvumaihuynh/chicken-vending/internal/storage/db"
	"github.com/tuanvumaihuynh/chicken-vending/internal/storage/db/sqlc"
	"github.com/tuanvumaihuynh/chicken-vending/internal/storage/mq"
	"github.com/tuanvumaihuynh/chicken-vending/internal/telemetry"
	"github.com/tuanvumaihuynh/chicken-vending/pkg/cmdutil"
	"github.com/tuanvumaihuynh/chicken-vending/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running standalone application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		HTTP     config.HTTP
		Relay    config.Relay
		Kafka    config.Kafka
		Event    config.Event
		Otel     config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	if _, err := apicontract.Load(ctx); err != nil {
		return fmt.Errorf("error loading api contract: %w", err)
	}

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	dbClient, err := db.NewClientFromConfig(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating db client: %w", err)
	}
	defer dbClient.Close()

	queries := sqlc.New()

	kafkaProducer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
	if err != nil {
		return fmt.Errorf("error creating kafka producer: %w", err)
	}
	defer kafkaProducer.Close()

	kafkaConsumer, err := mq.NewKafkaConsumer(ctx, cfg.Kafka, logger)
	if err != nil {
		return fmt.Errorf("error creating kafka consumer: %w", err)
	}
	defer kafkaConsumer.Close()

	v := validator.MustNewDefaultValidator()

	productRepository := repository.NewProductRepository(dbClient, queries)
	transactionRepository := repository.NewTransactionRepository(dbClient, queries)
	outboxMsgRepository := repository.NewOutboxMsgRepository(dbClient, queries)

	productService := service.NewProductService(dbClient, v, productRepository, outboxMsgRepository)
	purchaseService := service.NewPurchaseService(dbClient, logger, v, productRepository, transactionRepository, outboxMsgRepository)
	transactionService := service.NewTransactionService(v, transactionRepository)

	interruptChan := cmdutil.InterruptChan()
	var wg sync.WaitGroup

	wg.Go(func() {
		svc := event.New(cfg.Event, logger, kafkaConsumer)
		cleanup, err := svc.Run(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "error running event service", slog.Any("error", err))
			cancel()
			return
		}
		logger.InfoContext(ctx, "event service started")

		select {
		case <-interruptChan:
		case <-ctx.Done():
		}

		logger.InfoContext(ctx, "event service is shutting down")
		cleanup()

		logger.InfoContext(ctx, "event service is stopped")
	})

	wg.Go(func() {
		svc := http.New(cfg.HTTP, logger, v, dbClient, productService, purchaseService, transactionService)
		cleanup, err := svc.Run(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "error running http service", slog.Any("error", err))
			cancel()
			return
		}

		logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

		select {
		case <-interruptChan:
		case <-ctx.Done():
		}

		logger.InfoContext(ctx, "http service is shutting down")
		if err := cleanup(context.WithoutCancel(ctx)); err != nil {
			logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
		}

		logger.InfoContext(ctx, "http service is stopped")
	})

	wg.Go(func() {
		svc := relay.NewService(cfg.Relay, logger, dbClient, outboxMsgRepository, kafkaProducer)
		cleanup := svc.Run(ctx)
		logger.InfoContext(ctx, "relay service started")

		select {
		case <-interruptChan:
		case <-ctx.Done():
		}

		logger.InfoContext(ctx, "relay service is shutting down")
		cleanup()

		logger.InfoContext(ctx, "relay service is stopped")
	})

	wg.Wait()

	return nil
}
