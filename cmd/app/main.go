package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/omotosho-cloud/church-visitor-manager/config"
	"github.com/omotosho-cloud/church-visitor-manager/internal/api"
	"github.com/omotosho-cloud/church-visitor-manager/internal/cache"
	"github.com/omotosho-cloud/church-visitor-manager/internal/dispatch"
	"github.com/omotosho-cloud/church-visitor-manager/internal/provider"
	"github.com/omotosho-cloud/church-visitor-manager/internal/repository"
	"github.com/omotosho-cloud/church-visitor-manager/internal/scheduler"
	"github.com/omotosho-cloud/church-visitor-manager/internal/services"
	"github.com/omotosho-cloud/church-visitor-manager/internal/worker"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var wg sync.WaitGroup

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	dbPool, redisClient, err := setupDependencies(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to setup dependencies")
	}
	defer dbPool.Close()
	defer redisClient.Close()

	app := buildApplication(ctx, cfg, dbPool, redisClient, &wg, logger)

	startBackgroundJob(ctx, app, &wg, logger)
	app.scheduler.Start()
	startServer(app.server, logger)

	waitForShutdown(app, cancel, &wg, logger)

	logger.Info().Msg("server gracefully stopped")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level := zerolog.InfoLevel
	if cfg.App.Debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stdout).Level(level).With().
		Timestamp().
		Str("app", cfg.App.Name).
		Logger()
}

func setupDependencies(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*pgxpool.Pool, *redis.Client, error) {
	dbPool, err := repository.NewConnection(ctx, cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to establish database connection: %w", err)
	}
	logger.Info().Msg("database connection established")

	if err := repository.EnsureSchema(ctx, dbPool); err != nil {
		return nil, nil, err
	}

	redisClient, err := cache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to establish Redis connection: %w", err)
	}
	logger.Info().Msg("redis connection established")

	return dbPool, redisClient, nil
}

type application struct {
	server       *http.Server
	jobManager   *worker.JobManager
	scheduler    *scheduler.Scheduler
	settingsRepo repository.SettingsRepository
}

func buildApplication(appCtx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, redisClient *redis.Client, wg *sync.WaitGroup, logger zerolog.Logger) *application {
	visitorRepo := repository.NewVisitorRepository(dbPool)
	memberRepo := repository.NewMemberRepository(dbPool)
	templateRepo := repository.NewTemplateRepository(dbPool)
	queueRepo := repository.NewQueueRepository(dbPool)
	logRepo := repository.NewLogRepository(dbPool)
	settingsRepo := repository.NewSettingsRepository(dbPool)
	serviceRepo := repository.NewServiceRepository(dbPool)
	logCache := cache.NewLogCache(redisClient)

	registry := provider.NewRegistry(&cfg.Providers)
	router := dispatch.NewRouter(registry, logger)

	messagingService := services.NewMessagingService(
		router, settingsRepo, logRepo, logCache, memberRepo, templateRepo,
		cfg.App.ChurchName, logger,
	)
	visitorService := services.NewVisitorService(
		visitorRepo, memberRepo, templateRepo, queueRepo, messagingService, logger,
	)
	memberService := services.NewMemberService(memberRepo, logger)
	broadcastService := services.NewBroadcastService(visitorRepo, templateRepo, queueRepo, logger)
	processorService := services.NewProcessorService(
		queueRepo, visitorRepo, templateRepo, messagingService, logger,
	)

	jobManager := worker.NewJobManager(processorService, wg, logger)
	birthdayScheduler := scheduler.NewScheduler(messagingService, logger)

	apiHandler := api.NewHandler(
		visitorService, memberService, messagingService, broadcastService,
		templateRepo, queueRepo, settingsRepo, serviceRepo,
		jobManager, appCtx, logger,
	)

	engine := api.NewRouter(apiHandler, cfg.App.Debug)
	server := &http.Server{
		Addr:    ":" + cfg.App.ServerPort,
		Handler: engine,
	}

	logger.Info().Msg("application components built")
	return &application{
		server:       server,
		jobManager:   jobManager,
		scheduler:    birthdayScheduler,
		settingsRepo: settingsRepo,
	}
}

func startBackgroundJob(ctx context.Context, app *application, wg *sync.WaitGroup, logger zerolog.Logger) {
	settings, err := app.settingsRepo.Get(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("could not load settings, follow-up job not started")
		return
	}
	if !settings.AutomationEnabled {
		logger.Info().Msg("automation disabled, follow-up job not started")
		return
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.jobManager.Start(ctx); err != nil {
			logger.Error().Err(err).Msg("unexpected error while starting job")
		}
	}()
	logger.Info().Msg("follow-up job started")
}

func startServer(server *http.Server, logger zerolog.Logger) {
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("unexpected error while starting server")
		}
	}()
}

func waitForShutdown(app *application, cancelApp context.CancelFunc, wg *sync.WaitGroup, logger zerolog.Logger) {
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	<-shutdownChan

	logger.Info().Msg("shutting down gracefully")

	app.scheduler.Stop()

	// give the HTTP server 15 seconds to drain in-flight requests
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("unexpected error while shutting down server")
	}

	cancelApp()
	wg.Wait()
}
