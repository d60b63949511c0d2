package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/adapters/event"
	httpAdapter "github.com/khoahotran/portfolio-builder/adapters/http"
	"github.com/khoahotran/portfolio-builder/adapters/llm"
	"github.com/khoahotran/portfolio-builder/adapters/media_storage"
	"github.com/khoahotran/portfolio-builder/adapters/persistence"
	"github.com/khoahotran/portfolio-builder/internal/application/service"
	authUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/auth"
	"github.com/khoahotran/portfolio-builder/internal/application/usecase/ingest"
	mediaUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/media"
	portfolioUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio-builder/internal/config"
	"github.com/khoahotran/portfolio-builder/internal/metrics"
	"github.com/khoahotran/portfolio-builder/pkg/auth"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
	"github.com/khoahotran/portfolio-builder/pkg/tracing"
)

const serviceName = "portfolio-builder-api"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.NewTracerProvider(cfg, appLogger, serviceName)
	if err != nil {
		appLogger.Fatal("Cannot init tracer provider", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			appLogger.Error("Failed to shutdown tracer provider", err)
		}
	}()

	metrics.Register()

	// Infrastructure
	dbPool, err := persistence.NewPostgresPool(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	var cache service.PortfolioCache
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(ctx, cfg, appLogger)
		if err != nil {
			appLogger.Warn("Redis unavailable, public portfolios are served uncached", zap.Error(err))
		} else {
			defer redisClient.Close()
			cache = persistence.NewRedisPortfolioCache(redisClient, cfg.Cache.PortfolioTTL)
		}
	}

	var publisher service.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot init Kafka producer", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	} else if cache != nil {
		appLogger.Warn("Kafka brokers not configured, invalidating the portfolio cache in-process")
		publisher = event.NewLocalPublisher(portfolioUC.NewInvalidatePortfolioUseCase(cache, appLogger).Execute, appLogger)
	} else {
		appLogger.Warn("Kafka brokers not configured, portfolio events are not published")
	}

	llmService, err := llm.NewLLMService(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot init LLM service", err, zap.String("provider", cfg.LLM.Provider))
	}

	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	portfolioStore := persistence.NewPostgresPortfolioStore(dbPool, appLogger)
	portfolioRepo := persistence.NewPostgresPortfolioRepo(dbPool, appLogger)

	// Use cases
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	generateContentUseCase := ingest.NewGenerateContentUseCase(llmService, appLogger)
	generatePortfolioUseCase := ingest.NewGeneratePortfolioUseCase(portfolioStore, publisher, appLogger)
	importResumeUseCase := ingest.NewImportResumeUseCase(generateContentUseCase, generatePortfolioUseCase)
	getPortfolioUseCase := portfolioUC.NewGetPortfolioUseCase(portfolioRepo, cache, appLogger)

	handlers := httpAdapter.Handlers{
		Auth: httpAdapter.NewAuthHandler(loginUseCase, appLogger),
		Portfolio: httpAdapter.NewPortfolioHandler(
			generateContentUseCase,
			generatePortfolioUseCase,
			importResumeUseCase,
			getPortfolioUseCase,
			appLogger,
		),
	}

	if uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger); err != nil {
		appLogger.Warn("Media uploads disabled", zap.Error(err))
	} else {
		handlers.Media = httpAdapter.NewMediaHandler(mediaUC.NewUploadMediaUseCase(uploader, appLogger), appLogger)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           httpAdapter.NewRouter(serviceName, handlers, jwtSvc, appLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port), zap.String("llm_provider", cfg.LLM.Provider))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
	appLogger.Info("Server exited")
}
