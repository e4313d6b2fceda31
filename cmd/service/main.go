package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	application "carriers/internal/app"
	"carriers/internal/gateway/kafka/carrier_events"
	"carriers/internal/migrations"
	"carriers/internal/pkg/config"
	"carriers/internal/pkg/dotenv"
	"carriers/internal/pkg/grpcserver"
	"carriers/internal/pkg/kafka"
	"carriers/internal/pkg/middlewares/idempotency"
	"carriers/internal/pkg/postgres"
	"carriers/internal/pkg/redis"
	carrierService "carriers/internal/service/carrier"
	"carriers/pkg/logger"
	"carriers/pkg/logger/zap_adapter"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
)

const (
	logMaxSizeMB  = 100
	logMaxBackups = 5
	logMaxAgeDays = 14
)

func main() {
	_, statErr := os.Stat(".env")
	if err := dotenv.Load(statErr == nil); err != nil {
		stdlog.Fatalf("failed to load .env file: %v", err)
	}

	zapLogger, err := zap_adapter.NewZapAdapter(
		zap_adapter.WithFile(zap_adapter.FileSink{
			Path:       os.Getenv("LOG_FILE"),
			MaxSizeMB:  logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAgeDays: logMaxAgeDays,
			Compress:   true,
		}),
	)
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting carriers application")
	if statErr != nil {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // Получаю предупреждения от линтера в местах де наследуюсь от context.Background(), хотя это часть gracefull shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With(
		logger.NewField("storage", cfg.Storage.Driver),
	)

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	publisher, closePublisher, err := newEventPublisher(ctx, log, cfg)
	if err != nil {
		return fmt.Errorf("event publisher: %w", err)
	}
	defer closePublisher()

	// Фоновые задачи живут до отмены ongoingCtx, а не ctx сигнала.
	businessApp, closeStorage, err := newApplication(ctx, ongoingCtx, log, publisher, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}
	defer closeStorage()

	var idempotencyCache idempotency.Cache
	if cfg.Redis.Enabled() {
		redisClient, err := redis.NewClient(ctx, log, &cfg.Redis)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				runLog.Error("failed to close redis client", logger.NewField("error", err))
			}
		}()
		idempotencyCache = redisClient
	} else {
		runLog.Warn("REDIS_URL is not set, Idempotency-Key header is ignored")
	}

	// основной http сервер
	server := &http.Server{
		Addr: fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, routerConfig{
			server:           cfg.Server,
			idempotencyCache: idempotencyCache,
			idempotencyTTL:   cfg.Redis.IdempotencyTTL,
		}),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	// основной http сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	// grpc health сервер
	var healthServer *grpcserver.HealthServer
	var healthServerErr chan error
	if cfg.Server.GRPCHealthPort != "" {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Server.GRPCHealthPort))
		if err != nil {
			return fmt.Errorf("grpc health listener: %w", err)
		}

		healthServer = grpcserver.NewHealthServer(log)
		healthServerErr = make(chan error, 1)
		go func() {
			defer close(healthServerErr)
			if err := healthServer.Serve(lis); err != nil {
				healthServerErr <- err
			}
		}()
	}
	// grpc health сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // nil-канал, если pprof выключен
		return fmt.Errorf("pprof server: %w", err)
	case err := <-healthServerErr:
		return fmt.Errorf("grpc health server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)
	if healthServer != nil {
		healthServer.SetServing(false)
	}

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}
	if healthServer != nil {
		healthServer.Stop()
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	runLog.Info("Server stopped")
	return nil
}

// newApplication выбирает хранилище по STORAGE_DRIVER. Для postgres накатывает
// миграции, если POSTGRES_MIGRATE=true.
func newApplication(
	ctx context.Context,
	workersCtx context.Context,
	log logger.Logger,
	publisher carrierService.EventPublisher,
	cfg *config.Config,
) (*application.Application, func(), error) {
	if !cfg.Storage.UsePostgres() {
		log.Warn("using in-memory storage, data is lost on restart")
		app, err := application.InitializeMemoryApplication(workersCtx, log, publisher, cfg)
		return app, func() {}, err
	}

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database: %w", err)
	}

	if cfg.Storage.Migrate {
		if err := migrations.Up(ctx, log, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
	}

	app, err := application.InitializePostgresApplication(workersCtx, log, pool, pgxv5.DefaultCtxGetter, publisher, cfg)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return app, pool.Close, nil
}

// newEventPublisher подключает Kafka, если задан KAFKA_BROKERS, иначе события только пишутся в лог.
func newEventPublisher(
	ctx context.Context,
	log logger.Logger,
	cfg *config.Config,
) (carrierService.EventPublisher, func(), error) {
	if !cfg.Kafka.Enabled() {
		return carrier_events.NewLogPublisher(log), func() {}, nil
	}

	producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		return nil, nil, err
	}

	closeProducer := func() {
		if err := producer.Close(); err != nil {
			log.Error("failed to close kafka producer", logger.NewField("error", err))
		}
	}
	return carrier_events.New(log, producer, cfg.Kafka.Topic), closeProducer, nil
}
