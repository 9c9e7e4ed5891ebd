package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fhuszti/blog-media-go/internal/cache"
	"github.com/fhuszti/blog-media-go/internal/config"
	"github.com/fhuszti/blog-media-go/internal/db"
	"github.com/fhuszti/blog-media-go/internal/extractor"
	"github.com/fhuszti/blog-media-go/internal/handler"
	"github.com/fhuszti/blog-media-go/internal/handler/api"
	"github.com/fhuszti/blog-media-go/internal/logger"
	cMiddleware "github.com/fhuszti/blog-media-go/internal/middleware"
	"github.com/fhuszti/blog-media-go/internal/optimiser"
	"github.com/fhuszti/blog-media-go/internal/port"
	"github.com/fhuszti/blog-media-go/internal/renderer"
	"github.com/fhuszti/blog-media-go/internal/repository/mongodb"
	"github.com/fhuszti/blog-media-go/internal/storage"
	"github.com/fhuszti/blog-media-go/internal/task"
	mediaSvc "github.com/fhuszti/blog-media-go/internal/usecase/media"
	usageSvc "github.com/fhuszti/blog-media-go/internal/usecase/usage"
	"github.com/fhuszti/blog-media-go/internal/uuid"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	strg := initStorage(ctx, cfg)
	// a failed bucket init must not keep the API down: uploads will fail
	// loudly but reads keep working
	if err := strg.InitBucket(ctx); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.Bucket, err)
	}

	mediaRepo := mongodb.NewMediaRepository(database.DB)
	if err := mediaRepo.EnsureIndexes(ctx); err != nil {
		logger.Warnf(ctx, "⚠️  Failed to ensure indexes: %v", err)
	}

	var ca port.Cache
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoop()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured — caching is disabled")
	}

	r := initRouter(ctx, cfg.JWTSecret)
	registerRoutes(r, cfg, mediaRepo, strg, ca, dispatcher)

	listenRouter(ctx, r, cfg, database)
}

func registerRoutes(r *chi.Mux, cfg *config.Settings, mediaRepo *mongodb.MediaRepository, strg port.Storage, ca port.Cache, dispatcher port.TaskDispatcher) {
	authEnabled := cfg.JWTSecret != ""
	write := cMiddleware.RequireCapabilities(authEnabled, "media:write")

	fo := optimiser.NewFileOptimiser(optimiser.NewWebPEncoder(), optimiser.NewPDFOptimizer())
	uploaderSvc := mediaSvc.NewMediaUploader(mediaRepo, strg, fo, uuid.New)
	r.With(write).Post("/medias", api.UploadMediaHandler(uploaderSvc))

	listerSvc := mediaSvc.NewMediaLister(mediaRepo)
	r.Get("/medias", api.ListMediasHandler(listerSvc))

	statsSvc := mediaSvc.NewStatsGetter(mediaRepo)
	r.Get("/medias/stats", api.GetStorageStatsHandler(statsSvc))
	r.Get("/medias/folders", api.GetFolderStatsHandler(statsSvc))

	getterSvc := mediaSvc.NewMediaGetter(mediaRepo)
	rendererSvc := renderer.NewHTTPRenderer(ca, cfg.CacheTTL)
	r.With(cMiddleware.WithMediaID()).
		Get("/medias/{id}", api.GetMediaHandler(rendererSvc, getterSvc))

	updaterSvc := mediaSvc.NewMediaUpdater(mediaRepo, ca)
	r.With(write, cMiddleware.WithMediaID()).
		Patch("/medias/{id}", api.UpdateMediaHandler(updaterSvc))

	deleterSvc := mediaSvc.NewMediaDeleter(mediaRepo, ca, strg)
	r.With(write, cMiddleware.WithMediaID()).
		Delete("/medias/{id}", api.DeleteMediaHandler(deleterSvc))
	r.With(write).Post("/medias/bulk_delete", api.BulkDeleteMediasHandler(deleterSvc))

	restorerSvc := mediaSvc.NewMediaRestorer(mediaRepo, ca)
	r.With(write, cMiddleware.WithMediaID()).
		Post("/medias/{id}/restore", api.RestoreMediaHandler(restorerSvc))

	resolverSvc := extractor.New(mediaRepo, strg.BaseURL())
	trackerSvc := usageSvc.NewTracker(resolverSvc, mediaRepo)
	r.Route("/usages", func(r chi.Router) {
		r.With(write).Post("/owner_created", api.OwnerCreatedHandler(trackerSvc))
		r.With(write).Post("/owner_updated", api.OwnerUpdatedHandler(trackerSvc))
		r.With(write).Post("/owner_deleted", api.OwnerDeletedHandler(trackerSvc))
		r.With(write).Post("/health_scan", api.UsageHealthScanHandler(dispatcher))
	})
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MongoURI, cfg.MongoDatabase, cfg.ConnectTimeout)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(ctx context.Context, jwtSecret string) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(cMiddleware.WithJWTAuth(jwtSecret))

	r.NotFound(handler.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
		cfg.Bucket,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
