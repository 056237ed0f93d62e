package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bibbank/loanscore/internal/application/usecase"
	"github.com/bibbank/loanscore/internal/domain/port"
	"github.com/bibbank/loanscore/internal/infrastructure/artifact"
	"github.com/bibbank/loanscore/internal/infrastructure/config"
	kafkapublisher "github.com/bibbank/loanscore/internal/infrastructure/kafka"
	"github.com/bibbank/loanscore/internal/infrastructure/messaging"
	"github.com/bibbank/loanscore/internal/infrastructure/metrics"
	"github.com/bibbank/loanscore/internal/infrastructure/postgres"
	grpcpresentation "github.com/bibbank/loanscore/internal/presentation/grpc"
	"github.com/bibbank/loanscore/internal/presentation/rest"
	pkgkafka "github.com/bibbank/loanscore/pkg/kafka"
	"github.com/bibbank/loanscore/pkg/observability"
	pgutil "github.com/bibbank/loanscore/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting scoringd",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"artifact_path", cfg.ArtifactPath,
		"reference_sample_source", cfg.ReferenceSampleSource,
	)

	// Initialize tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.Version,
		Endpoint:       cfg.Tracing.OTLPEndpoint,
		Insecure:       cfg.Tracing.Insecure,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer shutdownTracer(context.Background())
	}

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer meterProvider.Shutdown(context.Background())

	recorder, err := metrics.NewRecorder(meterProvider.Meter(cfg.ServiceName))
	if err != nil {
		logger.Error("failed to create metric instruments", "error", err)
		os.Exit(1)
	}

	// Load model artifacts.
	artifacts, err := artifact.LoadFile(cfg.ArtifactPath)
	if err != nil {
		logger.Error("failed to load model artifacts", "error", err)
		os.Exit(1)
	}

	readiness := map[string]rest.ReadinessCheck{}

	// Reference samples come from the artifact file or from Postgres.
	var samples port.ReferenceSampleSource = artifacts
	if cfg.ReferenceSampleSource == config.SampleSourcePostgres {
		pool, err := connectDatabase(ctx, cfg, logger)
		if err != nil {
			logger.Error("failed to prepare reference sample database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		samples = postgres.NewReferenceSampleRepository(pool)
		readiness["database"] = func() error {
			checkCtx, checkCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer checkCancel()
			return pgutil.HealthCheck(checkCtx, pool)
		}
	}

	loadCtx, loadCancel := context.WithTimeout(ctx, 30*time.Second)
	registry, err := artifact.BuildRegistry(loadCtx, artifacts, samples, cfg.DefaultVariant, logger)
	loadCancel()
	if err != nil {
		logger.Error("failed to build variant registry", "error", err)
		os.Exit(1)
	}
	readiness["registry"] = func() error {
		if len(registry.Names()) == 0 {
			return errors.New("no variants loaded")
		}
		return nil
	}

	// Wire the event publisher: Kafka when brokers are configured, the log otherwise.
	var publisher port.EventPublisher
	kafkaCfg := pkgkafka.Config{
		ClientID:      cfg.Kafka.ClientID,
		Brokers:       cfg.Kafka.Brokers,
		TLS:           cfg.Kafka.TLS,
		SASLEnabled:   cfg.Kafka.SASLEnabled,
		SASLMechanism: cfg.Kafka.SASLMechanism,
		SASLUsername:  cfg.Kafka.SASLUsername,
		SASLPassword:  cfg.Kafka.SASLPassword,
	}
	if kafkaCfg.Enabled() {
		producer, err := pkgkafka.NewProducer(kafkaCfg)
		if err != nil {
			logger.Error("failed to create kafka producer", "error", err)
			os.Exit(1)
		}
		defer producer.Close()
		publisher = kafkapublisher.NewPublisher(producer, cfg.Kafka.Topic, logger)
		logger.Info("publishing assessment events to kafka", "topic", cfg.Kafka.Topic, "brokers", cfg.Kafka.Brokers)
	} else {
		publisher = messaging.NewLogPublisher(logger)
		logger.Info("kafka not configured, logging assessment events")
	}

	// Wire use cases.
	assessApplicationUC := usecase.NewAssessApplication(registry, publisher, recorder, logger)
	listVariantsUC := usecase.NewListVariants(registry)

	// gRPC server.
	grpcHandler := grpcpresentation.NewScoringServiceHandler(assessApplicationUC, listVariantsUC, logger)
	grpcServer, err := grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerConfig{
		Address:     cfg.GRPCAddr(),
		ServiceName: cfg.ServiceName,
		TLSCertFile: cfg.TLS.CertFile,
		TLSKeyFile:  cfg.TLS.KeyFile,
		Reflection:  cfg.GRPCReflection,
	}, logger)
	if err != nil {
		logger.Error("failed to create gRPC server", "error", err)
		os.Exit(1)
	}

	// HTTP server (scoring API, health checks, metrics).
	healthHandler := rest.NewHealthHandler(cfg.ServiceName, readiness, logger)
	scoringHandler := rest.NewScoringHandler(assessApplicationUC, listVariantsUC, logger)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      rest.NewRouter(scoringHandler, healthHandler, metricsHandler, logger),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("scoringd started",
		"grpc_address", cfg.GRPCAddr(),
		"http_address", cfg.HTTPAddr(),
		"environment", cfg.Environment,
		"variants", registry.Names(),
		"default_variant", registry.DefaultVariant(),
	)

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	logger.Info("shutting down scoringd")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("scoringd stopped")
}

// connectDatabase applies the migrations and opens the reference sample pool.
func connectDatabase(ctx context.Context, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	if err := pgutil.RunMigrations(cfg.DB.URL, cfg.DB.MigrationsDir); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("migrations applied", "dir", cfg.DB.MigrationsDir)

	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pgutil.NewPool(dbCtx, pgutil.Config{
		URL:      cfg.DB.URL,
		MaxConns: int32(cfg.DB.MaxConns),
	})
	if err != nil {
		return nil, err
	}
	logger.Info("connected to database")
	return pool, nil
}
