package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/peakyminds/challenge-seo/src/handler"
	"github.com/peakyminds/challenge-seo/src/repository"
	"github.com/peakyminds/challenge-seo/src/service"
	"github.com/rs/zerolog"
	postgresDriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type Application struct {
	config           AppConfig
	database         *gorm.DB
	redis            *redis.Client
	Renderer         *service.Renderer
	ChallengeService *service.ChallengeService
	PageService      *service.PageService
	PrerenderService *service.PrerenderService
}

func NewApplication(ctx context.Context, config AppConfig) (*Application, error) {
	logger := zerolog.Ctx(ctx).With().Str("function", "NewApplication").Logger()

	// Connect to Redis
	redisOpts, err := redis.ParseURL(*config.RedisAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(redisOpts)

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connection to redis failed: %w", err)
	}
	logger.Info().Msg("Redis connection established")

	app := &Application{
		config: config,
		redis:  rdb,
	}

	// Select the challenge source
	var challengeRepo repository.ChallengeRepository
	if *config.DSN != "" {
		database, err := openDatabase(*config.DSN)
		if err != nil {
			app.Shutdown(ctx)
			return nil, err
		}
		app.database = database
		challengeRepo = repository.NewGormChallengeRepository(database)
		logger.Info().Msg("Database connection established, reading documents from Postgres")
	} else {
		challengeRepo = repository.NewPostgRESTRepository(repository.PostgRESTConfig{
			BaseURL: *config.SupabaseURL,
			APIKey:  *config.SupabaseAPIKey,
			Timeout: *config.BackendTimeout,
		})
		logger.Info().Str("backend", *config.SupabaseURL).Msg("Reading documents from PostgREST")
	}

	renderer, err := service.NewRenderer(service.RendererConfig{
		AppBaseURL: *config.AppBaseURL,
		SiteName:   *config.SiteName,
	})
	if err != nil {
		app.Shutdown(ctx)
		return nil, fmt.Errorf("creation of renderer failed: %w", err)
	}

	pageCache := repository.NewPageCacheRepository(rdb, *config.CachePrefix, *config.CacheRetention)
	challengeService := service.NewChallengeService(challengeRepo)
	pageService := service.NewPageService(challengeService, renderer, pageCache, service.PageServiceConfig{
		RevalidateInterval: *config.RevalidateInterval,
		GenerateTimeout:    *config.BackendTimeout,
	})
	prerenderService := service.NewPrerenderService(challengeService, pageService, pageCache, service.PrerenderConfig{
		Interval:     *config.PrerenderInterval,
		Concurrency:  *config.PrerenderConcurrency,
		MaxListPaths: *config.BackendMaxRows,
	})

	app.Renderer = renderer
	app.ChallengeService = challengeService
	app.PageService = pageService
	app.PrerenderService = prerenderService

	return app, nil
}

func openDatabase(dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(postgresDriver.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connection to database failed: %w", err)
	}

	db, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connection to database failed: %w", err)
	}

	return database, nil
}

func (app *Application) Shutdown(ctx context.Context) {
	logger := zerolog.Ctx(ctx).With().Str("function", "Shutdown").Logger()

	// Close database connection
	if app.database != nil {
		db, err := app.database.DB()
		if err != nil {
			logger.Error().Err(err).Msg("Failed to get underlying database connection")
		} else if err := db.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close database connection")
		} else {
			logger.Info().Msg("Database connection closed")
		}
	}

	// Close Redis connection
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close redis connection")
		} else {
			logger.Info().Msg("Redis connection closed")
		}
	}
}

// Router builds the gin engine serving pages and the API
func (app *Application) Router(ctx context.Context) (*gin.Engine, error) {
	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())

	err := handler.RegisterRoutes(ctx, ginRouter, handler.RouterConfig{
		PageService:      app.PageService,
		ChallengeService: app.ChallengeService,
		Renderer:         app.Renderer,
		AllowOrigins:     *app.config.AllowOrigins,
	})
	if err != nil {
		return nil, err
	}

	return ginRouter, nil
}

func (app *Application) RunHTTPServer(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	logger := zerolog.Ctx(ctx).With().Str("function", "RunHTTPServer").Logger()

	// Release mode disables gin debug output
	gin.SetMode(gin.ReleaseMode)

	ginRouter, err := app.Router(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to register routes")
		return
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", *app.config.Port),
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Msgf("HTTP server is on http://localhost:%s/health", *app.config.Port)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logger.Panic().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for context cancellation
	<-ctx.Done()

	logger.Info().Msg("Gracefully shutting down HTTP server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Failed to shutdown HTTP server gracefully")
	} else {
		logger.Info().Msg("HTTP server shutdown complete")
	}
}

func (app *Application) RunPrerenderWorker(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	logger := zerolog.Ctx(ctx).With().Str("function", "RunPrerenderWorker").Logger()
	logger.Info().Msg("Starting prerender worker")

	if err := app.PrerenderService.Start(ctx); err != nil && err != context.Canceled {
		logger.Error().Err(err).Msg("Prerender worker stopped with error")
		return
	}

	logger.Info().Msg("Prerender worker stopped")
}
