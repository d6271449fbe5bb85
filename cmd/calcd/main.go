package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/credsphere/loancalc-service/internal/application/usecase"
	"github.com/credsphere/loancalc-service/internal/domain/service"
	"github.com/credsphere/loancalc-service/internal/infrastructure/cache"
	"github.com/credsphere/loancalc-service/internal/infrastructure/config"
	"github.com/credsphere/loancalc-service/internal/infrastructure/engine"
	"github.com/credsphere/loancalc-service/internal/infrastructure/messaging"
	pgRepo "github.com/credsphere/loancalc-service/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/credsphere/loancalc-service/internal/presentation/grpc"
	"github.com/credsphere/loancalc-service/internal/presentation/rest"
	"github.com/credsphere/loancalc-service/pkg/auth"
	pkgkafka "github.com/credsphere/loancalc-service/pkg/kafka"
	"github.com/credsphere/loancalc-service/pkg/observability"
	pkgpostgres "github.com/credsphere/loancalc-service/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()
	cfg.Validate()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: "json",
	})
	slog.SetDefault(logger)

	logger.Info("starting loancalc-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize tracing.
	shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdown(ctx) }() //nolint:errcheck // best-effort tracer shutdown
	}

	// Initialize metrics.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Run database migrations.
	migDSN := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}.DSN()
	if migErr := pkgpostgres.RunMigrations(migDSN, "file://migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Wire infrastructure adapters.
	loanRepo := pgRepo.NewLoanRepo(pool)
	engineClient := engine.NewClient(engine.Config{
		BaseURL:        cfg.Engine.BaseURL,
		APIKey:         cfg.Engine.APIKey,
		TimeoutSeconds: cfg.Engine.TimeoutSeconds,
	}, nil)
	calcCache := cache.NewMemoryCache()
	calculator := service.NewCalculator()

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()
	publisher := messaging.NewKafkaEventPublisher(kafkaProducer, cfg.Kafka.EventsTopic, logger)

	// Wire use cases.
	getCalcUC := usecase.NewGetCalculationUseCase(loanRepo, engineClient, calcCache, calculator)
	invalidateUC := usecase.NewInvalidateCalculationUseCase(calcCache, publisher)
	updateAmountUC := usecase.NewUpdateLoanAmountUseCase(engineClient, calcCache, publisher)
	updateInputsUC := usecase.NewUpdateCalculationInputsUseCase(engineClient, calcCache, publisher)
	preCloseUC := usecase.NewGetPreCloseQuoteUseCase(getCalcUC)

	// Consume loan mutations so upstream edits drop stale cache entries.
	invalidationHandler := messaging.NewInvalidationHandler(invalidateUC, logger)
	consumer := pkgkafka.NewConsumer(pkgkafka.Config{
		Brokers:       cfg.Kafka.Brokers,
		ConsumerGroup: cfg.Kafka.ConsumerGroup,
	}, cfg.Kafka.LoanMutationTopic, invalidationHandler.Handle, logger)
	defer consumer.Close() //nolint:errcheck

	go func() {
		if consumeErr := consumer.Start(ctx); consumeErr != nil && ctx.Err() == nil {
			logger.Error("loan mutation consumer stopped", "error", consumeErr)
		}
	}()

	// JWT service (validation-only: public key preferred, secret as fallback).
	jwtCfg := auth.JWTConfig{
		Issuer: getEnv("JWT_ISSUER", "credsphere-gateway"),
	}
	switch {
	case os.Getenv("JWT_PUBLIC_KEY") != "":
		jwtCfg.PublicKeyPEM = os.Getenv("JWT_PUBLIC_KEY")
	case os.Getenv("JWT_PUBLIC_KEY_FILE") != "":
		keyData, loadErr := auth.LoadKeyFromFile(os.Getenv("JWT_PUBLIC_KEY_FILE"))
		if loadErr != nil {
			logger.Error("failed to load JWT public key file", "error", loadErr)
			os.Exit(1)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	default:
		jwtCfg.Secret = getEnv("JWT_SECRET", "test-e2e-secret")
	}
	jwtSvc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	handler := grpcPresentation.NewCalculationHandler(getCalcUC, invalidateUC, updateAmountUC, updateInputsUC,
		preCloseUC)
	grpcServer := grpcPresentation.NewServer(handler, logger, jwtSvc)

	// HTTP server (health checks and metrics).
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(pool, logger)
	healthHandler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("loancalc-service stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
